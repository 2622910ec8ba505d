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
	"github.com/jzelinskie/whirlpool"
	"github.com/kvark/bwtdark/hash"
)

// Checksum is the per-block integrity check written (optionally) between
// a block's framing and its coded payload. Off by default, matching the
// minimal container described for this compressor; an archive may opt
// into one of the stronger variants at construction time.
type Checksum int

const (
	// ChecksumNone carries no per-block digest.
	ChecksumNone Checksum = iota
	// ChecksumXXHash carries a 32-bit digest derived from XXHash64,
	// cheap enough to compute on every block unconditionally.
	ChecksumXXHash
	// ChecksumWhirlpool carries a cryptographic-strength 512-bit digest,
	// for archives where block tampering must be detectable even under
	// an adversarial model, not just accidental corruption.
	ChecksumWhirlpool
)

// Size returns the digest size in bytes for this checksum kind.
func (c Checksum) Size() int {
	switch c {
	case ChecksumXXHash:
		return 4
	case ChecksumWhirlpool:
		return 64
	default:
		return 0
	}
}

// compute returns the digest of block under this checksum kind, or nil
// for ChecksumNone.
func (c Checksum) compute(block []byte) []byte {
	switch c {
	case ChecksumXXHash:
		h, _ := hash.NewXXHash64(0)
		sum := h.Hash(block)
		return []byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)}
	case ChecksumWhirlpool:
		w := whirlpool.New()
		w.Write(block)
		return w.Sum(nil)
	default:
		return nil
	}
}
