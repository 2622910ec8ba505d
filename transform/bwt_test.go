/*
Copyright 2011-2024 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package transform

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"
)

func TestBWTBananaFast(t *testing.T) {
	src := []byte("banana")
	dst := make([]byte, len(src))

	bwt, err := NewBWT()

	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := bwt.Forward(src, dst); err != nil {
		t.Fatal(err)
	}

	if string(dst) != "nnbaaa" {
		t.Fatalf("expected L=nnbaaa, got %q", dst)
	}

	if bwt.PrimaryIndex() != 3 {
		t.Fatalf("expected p=3, got %d", bwt.PrimaryIndex())
	}

	back := make([]byte, len(src))
	inv, err := NewBWTInverse()

	if err != nil {
		t.Fatal(err)
	}

	inv.SetPrimaryIndex(bwt.PrimaryIndex())

	if _, _, err := inv.Inverse(dst, back); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(back, src) {
		t.Fatalf("round trip mismatch: got %q, want %q", back, src)
	}
}

func TestBWTAbracadabraFast(t *testing.T) {
	src := []byte("abracadabra")
	dst := make([]byte, len(src))

	bwt, _ := NewBWT()

	if _, _, err := bwt.Forward(src, dst); err != nil {
		t.Fatal(err)
	}

	if string(dst) != "rdarcaaaabb" {
		t.Fatalf("expected L=rdarcaaaabb, got %q", dst)
	}

	if bwt.PrimaryIndex() != 2 {
		t.Fatalf("expected p=2, got %d", bwt.PrimaryIndex())
	}

	back := make([]byte, len(src))
	inv, _ := NewBWTInverse()
	inv.SetPrimaryIndex(bwt.PrimaryIndex())

	if _, _, err := inv.Inverse(dst, back); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(back, src) {
		t.Fatalf("round trip mismatch: got %q, want %q", back, src)
	}
}

func TestBWTAllSameByte(t *testing.T) {
	src := bytes.Repeat([]byte("a"), 6)
	dst := make([]byte, len(src))

	bwt, _ := NewBWT()

	if _, _, err := bwt.Forward(src, dst); err != nil {
		t.Fatal(err)
	}

	if string(dst) != "aaaaaa" {
		t.Fatalf("expected L=aaaaaa, got %q", dst)
	}

	if p := bwt.PrimaryIndex(); p >= uint(len(src)) {
		t.Fatalf("primary index %d out of range", p)
	}

	back := make([]byte, len(src))
	inv, _ := NewBWTInverse()
	inv.SetPrimaryIndex(bwt.PrimaryIndex())

	if _, _, err := inv.Inverse(dst, back); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(back, src) {
		t.Fatalf("round trip mismatch: got %q, want %q", back, src)
	}
}

func TestBWTEmpty(t *testing.T) {
	bwt, _ := NewBWT()
	n, m, err := bwt.Forward(nil, nil)

	if err != nil || n != 0 || m != 0 {
		t.Fatalf("expected no-op on empty input, got n=%d m=%d err=%v", n, m, err)
	}
}

func TestBWTIdentityByteRange(t *testing.T) {
	src := make([]byte, 256)

	for i := range src {
		src[i] = byte(i)
	}

	dst := make([]byte, len(src))
	bwt, _ := NewBWT()

	if _, _, err := bwt.Forward(src, dst); err != nil {
		t.Fatal(err)
	}

	sorted := append([]byte(nil), dst...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for i := range sorted {
		if sorted[i] != byte(i) {
			t.Fatalf("L is not a permutation of 0..255")
		}
	}

	back := make([]byte, len(src))
	inv, _ := NewBWTInverse()
	inv.SetPrimaryIndex(bwt.PrimaryIndex())

	if _, _, err := inv.Inverse(dst, back); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(back, src) {
		t.Fatalf("round trip mismatch for 0..255 identity block")
	}
}

func TestBWTRandomBlockFastAndLowMemory(t *testing.T) {
	rnd := rand.New(rand.NewSource(12345))
	src := make([]byte, 64*1024)
	rnd.Read(src)

	modes := []struct {
		name    string
		fwd     func() (*BWT, error)
		inverse func() (*BWTInverse, error)
	}{
		{"fast", NewBWT, NewBWTInverse},
		{"lowMemory", func() (*BWT, error) { return NewBWTLowMemory("") }, NewBWTInverseLowMemory},
	}

	for _, m := range modes {
		m := m

		t.Run(m.name, func(t *testing.T) {
			dst := make([]byte, len(src))
			bwt, err := m.fwd()

			if err != nil {
				t.Fatal(err)
			}

			if _, _, err := bwt.Forward(src, dst); err != nil {
				t.Fatal(err)
			}

			gotCounts := make(map[byte]int)
			wantCounts := make(map[byte]int)

			for _, b := range dst {
				gotCounts[b]++
			}

			for _, b := range src {
				wantCounts[b]++
			}

			for b, c := range wantCounts {
				if gotCounts[b] != c {
					t.Fatalf("L is not a permutation of the input: byte %d count %d want %d", b, gotCounts[b], c)
				}
			}

			back := make([]byte, len(src))
			inv, err := m.inverse()

			if err != nil {
				t.Fatal(err)
			}

			inv.SetPrimaryIndex(bwt.PrimaryIndex())

			if _, _, err := inv.Inverse(dst, back); err != nil {
				t.Fatal(err)
			}

			if !bytes.Equal(back, src) {
				t.Fatalf("round trip mismatch for random block (mode %s)", m.name)
			}
		})
	}
}

func TestBWTInverseRejectsBadPrimaryIndex(t *testing.T) {
	inv, _ := NewBWTInverse()
	inv.SetPrimaryIndex(10)
	dst := make([]byte, 4)

	if _, _, err := inv.Inverse([]byte("abcd"), dst); err == nil {
		t.Fatal("expected an error for an out-of-range primary index")
	}
}
