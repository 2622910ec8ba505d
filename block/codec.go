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

// Package block drives the forward and inverse BWT across a stream split
// into bounded blocks, framing each block's length and primary index
// through the entropy coder itself rather than as raw header bytes.
package block

import (
	"bytes"
	"io"

	kanzi "github.com/kvark/bwtdark"
	"github.com/kvark/bwtdark/entropy"
	"github.com/kvark/bwtdark/transform"
)

// DefaultBlockSize is the encoder's default block size, 4 MiB.
const DefaultBlockSize = 4 * 1024 * 1024

// MaxBlockSize is the largest block size the container format admits.
const MaxBlockSize = 1 << 30

// MemoryMode selects the auxiliary memory/time tradeoff used by the BWT
// for this codec's blocks.
type MemoryMode int

const (
	// ModeFast sorts a full index array (~5n memory).
	ModeFast MemoryMode = iota
	// ModeLowMemory spills partial sorts to scratch files and merges
	// them (~1.25n memory, plus transient scratch storage).
	ModeLowMemory
)

// Codec drives the forward BWT on encode and the inverse BWT on decode
// (component I). It owns the block buffers exclusively for the duration
// of each block; the BWT transforms themselves only borrow them.
type Codec struct {
	blockSize int
	mode      MemoryMode
	checksum  Checksum
}

// NewCodec creates a Codec with the given block size, memory mode and
// optional per-block checksum.
func NewCodec(blockSize int, mode MemoryMode, checksum Checksum) (*Codec, error) {
	if blockSize <= 0 || blockSize > MaxBlockSize {
		return nil, kanzi.NewError(kanzi.InvalidArgument, "block size must be in (0, 2^30]")
	}

	return &Codec{blockSize: blockSize, mode: mode, checksum: checksum}, nil
}

func (c *Codec) newForwardBWT() (*transform.BWT, error) {
	if c.mode == ModeLowMemory {
		return transform.NewBWTLowMemory("")
	}

	return transform.NewBWT()
}

func (c *Codec) newInverseBWT() (*transform.BWTInverse, error) {
	if c.mode == ModeLowMemory {
		return transform.NewBWTInverseLowMemory()
	}

	return transform.NewBWTInverse()
}

func writeUint32(enc *entropy.Encoder, v uint32) error {
	for i := 3; i >= 0; i-- {
		if err := enc.EncodeByte(byte(v >> (8 * uint(i)))); err != nil {
			return err
		}
	}

	return nil
}

func readUint32(dec *entropy.Decoder) uint32 {
	var v uint32

	for i := 0; i < 4; i++ {
		v = (v << 8) | uint32(dec.DecodeByte())
	}

	return v
}

// Encode reads r in blockSize chunks, BWT-transforms and entropy-codes
// each one, and writes the compressed stream to w. A terminating
// zero-length block is written even for an empty input (spec ss4.I).
func (c *Codec) Encode(r io.Reader, w io.Writer) error {
	bwt, err := c.newForwardBWT()

	if err != nil {
		return err
	}

	enc := entropy.NewEncoder(w, entropy.NewPredictor())
	buf := make([]byte, c.blockSize)
	out := make([]byte, c.blockSize)

	for {
		n, rerr := io.ReadFull(r, buf)

		if rerr != nil && rerr != io.EOF && rerr != io.ErrUnexpectedEOF {
			return kanzi.WrapError(kanzi.IoError, "failed reading input block", rerr)
		}

		if n == 0 {
			if err := writeUint32(enc, 0); err != nil {
				return err
			}

			return enc.Flush()
		}

		if _, _, err := bwt.Forward(buf[:n], out[:n]); err != nil {
			return err
		}

		p := bwt.PrimaryIndex()

		if err := writeUint32(enc, uint32(n)); err != nil {
			return err
		}

		if err := writeUint32(enc, uint32(p)); err != nil {
			return err
		}

		if c.checksum != ChecksumNone {
			for _, b := range c.checksum.compute(buf[:n]) {
				if err := enc.EncodeByte(b); err != nil {
					return err
				}
			}
		}

		for i := 0; i < n; i++ {
			if err := enc.EncodeByte(out[i]); err != nil {
				return err
			}
		}
	}
}

// Decode reverses Encode: it reads the compressed stream from r, block by
// block, and writes the recovered bytes to w. Buffers are sized from the
// first block's length, per spec ss4.I.
func (c *Codec) Decode(r io.Reader, w io.Writer) error {
	bwtInv, err := c.newInverseBWT()

	if err != nil {
		return err
	}

	dec := entropy.NewDecoder(r, entropy.NewPredictor())

	var buf, out []byte

	for {
		n := readUint32(dec)

		if n == 0 {
			return nil
		}

		if n > MaxBlockSize {
			return kanzi.NewError(kanzi.CorruptInput, "decoded block length out of range")
		}

		if int(n) > len(buf) {
			buf = make([]byte, n)
			out = make([]byte, n)
		}

		p := readUint32(dec)

		var sum []byte

		if c.checksum != ChecksumNone {
			sum = make([]byte, c.checksum.Size())

			for i := range sum {
				sum[i] = dec.DecodeByte()
			}
		}

		for i := uint32(0); i < n; i++ {
			buf[i] = dec.DecodeByte()
		}

		bwtInv.SetPrimaryIndex(uint(p))

		if _, _, err := bwtInv.Inverse(buf[:n], out[:n]); err != nil {
			return err
		}

		if sum != nil {
			if !bytes.Equal(c.checksum.compute(out[:n]), sum) {
				return kanzi.NewError(kanzi.CorruptInput, "block checksum mismatch")
			}
		}

		if _, err := w.Write(out[:n]); err != nil {
			return kanzi.WrapError(kanzi.IoError, "failed writing decoded block", err)
		}
	}
}
