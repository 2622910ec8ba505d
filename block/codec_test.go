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

package block

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, data []byte, blockSize int, mode MemoryMode, cksum Checksum) {
	t.Helper()

	enc, err := NewCodec(blockSize, mode, cksum)

	if err != nil {
		t.Fatal(err)
	}

	var compressed bytes.Buffer

	if err := enc.Encode(bytes.NewReader(data), &compressed); err != nil {
		t.Fatal(err)
	}

	dec, err := NewCodec(blockSize, mode, cksum)

	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	if err := dec.Decode(&compressed, &out); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", out.Len(), len(data))
	}
}

func TestCodecEmptyInput(t *testing.T) {
	roundTrip(t, nil, DefaultBlockSize, ModeFast, ChecksumNone)
}

func TestCodecSmallInputs(t *testing.T) {
	for _, s := range []string{"a", "banana", "abracadabra", "mississippi"} {
		roundTrip(t, []byte(s), DefaultBlockSize, ModeFast, ChecksumNone)
	}
}

func TestCodecMultiBlock(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	data := make([]byte, 10*1024+37)
	rnd.Read(data)
	roundTrip(t, data, 4096, ModeFast, ChecksumNone)
}

func TestCodecLowMemoryMode(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	data := make([]byte, 5000)
	rnd.Read(data)
	roundTrip(t, data, 1024, ModeLowMemory, ChecksumNone)
}

func TestCodecChecksums(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	data := make([]byte, 3000)
	rnd.Read(data)

	for _, cksum := range []Checksum{ChecksumXXHash, ChecksumWhirlpool} {
		roundTrip(t, data, 1024, ModeFast, cksum)
	}
}

func TestCodecDetectsCorruption(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeatedly, many times over")

	enc, _ := NewCodec(DefaultBlockSize, ModeFast, ChecksumXXHash)
	var compressed bytes.Buffer

	if err := enc.Encode(bytes.NewReader(data), &compressed); err != nil {
		t.Fatal(err)
	}

	corrupted := compressed.Bytes()
	corrupted[len(corrupted)/2] ^= 0xff

	dec, _ := NewCodec(DefaultBlockSize, ModeFast, ChecksumXXHash)
	var out bytes.Buffer
	err := dec.Decode(bytes.NewReader(corrupted), &out)

	if err == nil && bytes.Equal(out.Bytes(), data) {
		t.Fatal("expected corruption to be detected or decoding to diverge from the original")
	}
}

func TestCodecRejectsBadBlockSize(t *testing.T) {
	if _, err := NewCodec(0, ModeFast, ChecksumNone); err == nil {
		t.Fatal("expected an error for a zero block size")
	}

	if _, err := NewCodec(-1, ModeFast, ChecksumNone); err == nil {
		t.Fatal("expected an error for a negative block size")
	}
}
