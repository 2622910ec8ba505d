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
	kanzi "github.com/kvark/bwtdark"
	"github.com/kvark/bwtdark/internal"
)

// coarseStride is the occurrence sampling interval for the low-memory
// inverse's coarse index (spec ss4.H low-memory mode).
const coarseStride = 16

// BWTInverse reconstructs a block from its last column L and primary
// index p (component H). It supports a fast mode (a single next-pointer
// array, ~5n memory) and a low-memory mode (a coarse per-byte occurrence
// index plus a bounded linear scan, ~1.25n memory).
type BWTInverse struct {
	buffer       []int32
	primaryIndex uint
	lowMemory    bool
}

// NewBWTInverse creates a fast-mode inverse BWT instance.
func NewBWTInverse() (*BWTInverse, error) {
	return &BWTInverse{buffer: make([]int32, 0)}, nil
}

// NewBWTInverseLowMemory creates a low-memory-mode inverse BWT instance.
func NewBWTInverseLowMemory() (*BWTInverse, error) {
	return &BWTInverse{buffer: make([]int32, 0), lowMemory: true}, nil
}

// PrimaryIndex returns the primary index used by the next Inverse call.
func (this *BWTInverse) PrimaryIndex() uint {
	return this.primaryIndex
}

// SetPrimaryIndex sets the primary index to use for the next Inverse call.
func (this *BWTInverse) SetPrimaryIndex(primaryIndex uint) {
	this.primaryIndex = primaryIndex
}

// MaxEncodedLen returns the max size required for the decoding output
// buffer given a source length. The inverse BWT does not change length.
func (this *BWTInverse) MaxEncodedLen(srcLen int) int {
	return srcLen
}

// cumulativeCounts builds t[0..256], t[c] = number of bytes < c in src
// (spec ss3 "Cumulative byte counts").
func cumulativeCounts(src []byte) [257]int {
	var freqs [256]int
	internal.ComputeHistogram(src, freqs[:], false)

	var t [257]int
	sum := 0

	for c := 0; c < 256; c++ {
		t[c] = sum
		sum += freqs[c]
	}

	t[256] = sum
	return t
}

// Inverse reconstructs the original block from src (the last column L)
// and the primary index previously set via SetPrimaryIndex, writing the
// result to dst.
func (this *BWTInverse) Inverse(src, dst []byte) (uint, uint, error) {
	n := len(src)

	if n == 0 {
		return 0, 0, nil
	}

	p := int(this.primaryIndex)

	if p < 0 || p >= n {
		return 0, 0, kanzi.NewError(kanzi.CorruptInput, "BWT primary index out of range")
	}

	if len(dst) < n {
		return 0, 0, kanzi.NewError(kanzi.InvalidArgument, "BWT inverse output buffer is too small")
	}

	if n == 1 {
		dst[0] = src[0]
		return 1, 1, nil
	}

	t := cumulativeCounts(src)

	if this.lowMemory {
		return this.inverseLowMemory(src, dst, n, p, t)
	}

	return this.inverseFast(src, dst, n, p, t)
}

// inverseFast builds a single next-pointer array by scanning L left to
// right, then walks it from p, following one pointer before each emitted
// byte so that the walk starts at the row whose last byte is B[0]
// (spec ss4.H fast mode).
func (this *BWTInverse) inverseFast(src, dst []byte, n, p int, t [257]int) (uint, uint, error) {
	if cap(this.buffer) < n {
		this.buffer = make([]int32, n)
	} else {
		this.buffer = this.buffer[:n]
	}

	nxt := this.buffer

	for i := 0; i < n; i++ {
		c := src[i]
		nxt[t[c]] = int32(i)
		t[c]++
	}

	q := p

	for i := 0; i < n; i++ {
		q = int(nxt[q])
		dst[i] = src[q]
	}

	return uint(n), uint(n), nil
}

// inverseLowMemory avoids the full next-pointer array by recording every
// coarseStride-th occurrence of each byte value in L, then recovering
// intermediate positions with a bounded linear scan (spec ss4.H
// low-memory mode). The first-column byte c of the current row is found
// by binary search over t (t[c] <= q < t[c+1]); the next row is the
// position of the (q - t[c])-th occurrence of c in L.
func (this *BWTInverse) inverseLowMemory(src, dst []byte, n, p int, t [257]int) (uint, uint, error) {
	var coarse [256][]int32
	var occCount [256]int

	for i := 0; i < n; i++ {
		c := src[i]

		if occCount[c]%coarseStride == 0 {
			coarse[c] = append(coarse[c], int32(i))
		}

		occCount[c]++
	}

	q := p

	for i := 0; i < n; i++ {
		lo, hi := 0, 255

		for lo < hi {
			mid := (lo + hi + 1) >> 1

			if t[mid] <= q {
				lo = mid
			} else {
				hi = mid - 1
			}
		}

		c := byte(lo)
		j := q - t[c]
		pos := int(coarse[c][j/coarseStride])
		remaining := j % coarseStride

		for remaining > 0 {
			pos++

			if src[pos] == c {
				remaining--
			}
		}

		q = pos
		dst[i] = src[q]
	}

	return uint(n), uint(n), nil
}
