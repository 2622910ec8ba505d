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

import "io"

// Encoder is a bitwise arithmetic coder driven by an external Predictor
// (component F). It maintains a 32-bit inclusive range [lo, hi] that is
// split, per bit, in proportion to the predictor's probability estimate.
type Encoder struct {
	pred   *Predictor
	lo, hi uint32
	w      io.Writer
}

// NewEncoder creates an Encoder writing to w and driven by pred.
func NewEncoder(w io.Writer, pred *Predictor) *Encoder {
	return &Encoder{pred: pred, lo: 0, hi: 0xffffffff, w: w}
}

// split computes the range split point for probability p of a 1-bit,
// guaranteed to satisfy lo <= mid < hi (spec ss4.F).
func split(lo, hi uint32, p uint32) uint32 {
	r := hi - lo
	return lo + (r>>12)*p + (((r & 0xfff) * p) >> 12)
}

// EncodeBit encodes one bit using the predictor's current estimate, then
// updates the predictor with the observed bit.
func (e *Encoder) EncodeBit(y byte) error {
	p := uint32(e.pred.Get())

	if p < 2048 {
		p++
	}

	mid := split(e.lo, e.hi, p)

	if y != 0 {
		e.hi = mid
	} else {
		e.lo = mid + 1
	}

	e.pred.Update(y)

	for (e.lo^e.hi)>>24 == 0 {
		if _, err := e.w.Write([]byte{byte(e.hi >> 24)}); err != nil {
			return err
		}

		e.lo <<= 8
		e.hi = (e.hi << 8) | 0xff
	}

	return nil
}

// EncodeByte encodes the eight bits of val, most significant first.
func (e *Encoder) EncodeByte(val byte) error {
	for i := 7; i >= 0; i-- {
		if err := e.EncodeBit((val >> uint(i)) & 1); err != nil {
			return err
		}
	}

	return nil
}

// Flush emits one final byte: the top byte of lo plus one. Since the top
// bytes of lo and hi differ, that byte followed by the decoder's zero fill
// on EOF lies inside [lo, hi]. Must be called exactly once after the last
// EncodeBit/EncodeByte call.
func (e *Encoder) Flush() error {
	_, err := e.w.Write([]byte{byte(e.lo>>24) + 1})
	return err
}

// Decoder is the inverse of Encoder: it reconstructs the bit sequence
// that produced a given compressed stream, driven by the same kind of
// Predictor evolving identically on both sides.
type Decoder struct {
	pred   *Predictor
	lo, hi uint32
	x      uint32
	r      io.Reader
}

// NewDecoder creates a Decoder reading from r and driven by pred. It
// primes its 32-bit input window with the first four archive bytes.
func NewDecoder(r io.Reader, pred *Predictor) *Decoder {
	d := &Decoder{pred: pred, lo: 0, hi: 0xffffffff, r: r}

	for i := 0; i < 4; i++ {
		d.x = (d.x << 8) | uint32(d.readByte())
	}

	return d
}

// readByte reads one byte, returning 0 on EOF (spec ss7: the decoder
// tolerates reads past the logical end of the stream).
func (d *Decoder) readByte() byte {
	var b [1]byte

	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0
	}

	return b[0]
}

// DecodeBit recovers one bit using the predictor's current estimate, then
// updates the predictor with the recovered bit.
func (d *Decoder) DecodeBit() byte {
	p := uint32(d.pred.Get())

	if p < 2048 {
		p++
	}

	mid := split(d.lo, d.hi, p)

	var y byte

	if d.x <= mid {
		y = 1
		d.hi = mid
	} else {
		d.lo = mid + 1
	}

	d.pred.Update(y)

	for (d.lo^d.hi)>>24 == 0 {
		d.lo <<= 8
		d.hi = (d.hi << 8) | 0xff
		d.x = (d.x << 8) | uint32(d.readByte())
	}

	return y
}

// DecodeByte recovers one byte, most significant bit first.
func (d *Decoder) DecodeByte() byte {
	var val byte

	for i := 0; i < 8; i++ {
		val = (val << 1) | d.DecodeBit()
	}

	return val
}
