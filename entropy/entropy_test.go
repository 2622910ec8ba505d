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

package entropy

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestSquashMonotonic(t *testing.T) {
	prev := squash(-2047)

	for d := -2046; d <= 2047; d++ {
		cur := squash(d)

		if cur < prev {
			t.Fatalf("squash is not non-decreasing at d=%d: %d < %d", d, cur, prev)
		}

		prev = cur
	}

	if squash(-3000) != 0 || squash(3000) != 4095 {
		t.Fatalf("squash must clamp outside [-2047, 2047]")
	}
}

func TestStretchMonotonic(t *testing.T) {
	prev := stretch(0)

	for p := 1; p <= 4095; p++ {
		cur := stretch(p)

		if cur < prev {
			t.Fatalf("stretch is not non-decreasing at p=%d: %d < %d", p, cur, prev)
		}

		prev = cur
	}
}

func TestSquashStretchRoundTrip(t *testing.T) {
	for p := 0; p <= 4095; p++ {
		if got := squash(stretch(p)); abs(got-p) > 1 {
			t.Fatalf("squash(stretch(%d)) = %d, want within 1 ulp", p, got)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func TestStateMapBounds(t *testing.T) {
	sm := newStateMap()
	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 100000; i++ {
		cx := rnd.Intn(256)
		y := byte(rnd.Intn(2))
		p := sm.p(y, cx)

		if p < 0 || p > 4095 {
			t.Fatalf("state map probability out of bounds: %d", p)
		}

		for _, v := range sm.t {
			if v > 65535 {
				t.Fatalf("state map cell out of [0, 65535]: %d", v)
			}
		}
	}
}

func TestAPMBounds(t *testing.T) {
	a := newAPM(16)
	rnd := rand.New(rand.NewSource(2))

	for i := 0; i < 100000; i++ {
		cx := rnd.Intn(16)
		y := byte(rnd.Intn(2))
		pr := rnd.Intn(4096)
		out := a.p(y, pr, cx, 7)

		if out < 0 || out > 4095 {
			t.Fatalf("APM output out of bounds: %d", out)
		}
	}
}

func TestPredictorGetNeverOutOfRange(t *testing.T) {
	p := NewPredictor()
	rnd := rand.New(rand.NewSource(3))

	for i := 0; i < 200000; i++ {
		g := p.Get()

		if g < 0 || g > 4095 {
			t.Fatalf("predictor probability out of bounds: %d", g)
		}

		p.Update(byte(rnd.Intn(2)))
	}
}

func TestRangeCoderRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("a"),
		[]byte("banana"),
		bytes.Repeat([]byte{0}, 1000),
		bytes.Repeat([]byte{0xff}, 1000),
	}

	rnd := rand.New(rand.NewSource(4))
	random := make([]byte, 8192)
	rnd.Read(random)
	cases = append(cases, random)

	for _, src := range cases {
		var buf bytes.Buffer
		enc := NewEncoder(&buf, NewPredictor())

		for _, b := range src {
			if err := enc.EncodeByte(b); err != nil {
				t.Fatal(err)
			}
		}

		if err := enc.Flush(); err != nil {
			t.Fatal(err)
		}

		dec := NewDecoder(&buf, NewPredictor())
		got := make([]byte, len(src))

		for i := range got {
			got[i] = dec.DecodeByte()
		}

		if !bytes.Equal(got, src) {
			t.Fatalf("range coder round trip mismatch for %d bytes", len(src))
		}
	}
}

func TestRangeCoderDeterministic(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog")

	var buf1, buf2 bytes.Buffer
	enc1 := NewEncoder(&buf1, NewPredictor())
	enc2 := NewEncoder(&buf2, NewPredictor())

	for _, b := range src {
		enc1.EncodeByte(b)
		enc2.EncodeByte(b)
	}

	enc1.Flush()
	enc2.Flush()

	if !bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Fatal("identical input with identical initial predictor state must produce identical output")
	}
}
