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
	"sort"

	kanzi "github.com/kvark/bwtdark"
)

// The Burrows-Wheeler Transform is a reversible permutation of a block's
// bytes that groups together bytes following similar contexts, making the
// result far more compressible by an order-0 predictor than the original.
//
// E.G.    0123456789A
// Source: mississippi
//
// The sorted rotation-start positions SA and B combine as
// L[i] = B[(SA[i]-1) mod n], with p the position of rotation 0 in SA.

const bwtSpillParts = 16

// BWT is the forward Burrows-Wheeler Transform (component G). It supports
// two memory modes: fast (full index sort, ~5n memory) and low-memory
// (16-way spill-to-scratch-file merge, ~1.25n memory).
type BWT struct {
	buffer       []int32
	primaryIndex uint
	lowMemory    bool
	scratchDir   string
}

// NewBWT creates a fast-mode BWT instance.
func NewBWT() (*BWT, error) {
	return &BWT{buffer: make([]int32, 0)}, nil
}

// NewBWTLowMemory creates a low-memory-mode BWT instance. scratchDir
// selects the directory for spill files; empty uses the OS default.
func NewBWTLowMemory(scratchDir string) (*BWT, error) {
	return &BWT{buffer: make([]int32, 0), lowMemory: true, scratchDir: scratchDir}, nil
}

// PrimaryIndex returns the primary index computed by the last Forward call.
func (this *BWT) PrimaryIndex() uint {
	return this.primaryIndex
}

// SetPrimaryIndex overwrites the primary index returned by PrimaryIndex
// until the next Forward call.
func (this *BWT) SetPrimaryIndex(primaryIndex uint) {
	this.primaryIndex = primaryIndex
}

// MaxEncodedLen returns the max size required for the encoding output
// buffer given a source length. The BWT does not change block length.
func (this *BWT) MaxEncodedLen(srcLen int) int {
	return srcLen
}

// lessThan is the cyclic rotation comparator mandated by spec ss4.G: the
// rotation starting at a is less than the rotation starting at c if, read
// cyclically from there, its bytes compare lexicographically smaller.
// Distinct indices of an all-equal block compare by index, keeping the
// relation a strict weak order even when rotations repeat (spec ss4.G).
func lessThan(b []byte, n, a, c int) bool {
	for k := 0; k < n; k++ {
		ba := b[(a+k)%n]
		bc := b[(c+k)%n]

		if ba != bc {
			return ba < bc
		}
	}

	return a < c
}

// Forward applies the transform to src and writes the result to dst.
// Returns the number of bytes read, the number of bytes written and
// possibly an error.
func (this *BWT) Forward(src, dst []byte) (uint, uint, error) {
	n := len(src)

	if n == 0 {
		return 0, 0, nil
	}

	if len(dst) < n {
		return 0, 0, kanzi.NewError(kanzi.InvalidArgument, "BWT output buffer is too small")
	}

	if n == 1 {
		dst[0] = src[0]
		this.primaryIndex = 0
		return 1, 1, nil
	}

	if this.lowMemory {
		return this.forwardLowMemory(src, dst, n)
	}

	return this.forwardFast(src, dst, n)
}

// forwardFast sorts a full index array in place (spec ss4.G fast mode).
func (this *BWT) forwardFast(src, dst []byte, n int) (uint, uint, error) {
	if cap(this.buffer) < n {
		this.buffer = make([]int32, n)
	} else {
		this.buffer = this.buffer[:n]
	}

	ptr := this.buffer

	for i := 0; i < n; i++ {
		ptr[i] = int32(i)
	}

	sort.SliceStable(ptr, func(i, j int) bool {
		return lessThan(src, n, int(ptr[i]), int(ptr[j]))
	})

	p := 0

	for i, v := range ptr {
		if v == 0 {
			p = i
		}

		pos := int(v) - 1

		if pos < 0 {
			pos += n
		}

		dst[i] = src[pos]
	}

	this.primaryIndex = uint(p)
	return uint(n), uint(n), nil
}

// forwardLowMemory partitions the index range into bwtSpillParts
// subranges, sorts and spills each one to its own scratch store, then
// merges the sorted streams by repeatedly picking the smallest head under
// lessThan (spec ss4.G low-memory mode). The primary index is recovered
// independently by counting, per the spec's mandated low-memory formula,
// rather than tracked through the merge.
func (this *BWT) forwardLowMemory(src, dst []byte, n int) (uint, uint, error) {
	parts := bwtSpillParts

	if parts > n {
		parts = n
	}

	stores := make([]*spillStore, parts)

	defer func() {
		for _, s := range stores {
			if s != nil {
				s.close()
			}
		}
	}()

	base := n / parts
	rem := n % parts
	start := 0

	for k := 0; k < parts; k++ {
		size := base

		if k < rem {
			size++
		}

		sub := make([]int32, size)

		for i := 0; i < size; i++ {
			sub[i] = int32(start + i)
		}

		sort.SliceStable(sub, func(i, j int) bool {
			return lessThan(src, n, int(sub[i]), int(sub[j]))
		})

		st, err := newSpillStore(this.scratchDir)

		if err != nil {
			return 0, 0, err
		}

		stores[k] = st

		for _, v := range sub {
			if err := st.write(v); err != nil {
				return 0, 0, err
			}
		}

		if err := st.startRead(); err != nil {
			return 0, 0, err
		}

		start += size
	}

	heads := make([]int32, parts)
	valid := make([]bool, parts)

	for k, s := range stores {
		v, ok, err := s.next()

		if err != nil {
			return 0, 0, err
		}

		heads[k] = v
		valid[k] = ok
	}

	for i := 0; i < n; i++ {
		best := -1

		for k := 0; k < parts; k++ {
			if !valid[k] {
				continue
			}

			if best == -1 || lessThan(src, n, int(heads[k]), int(heads[best])) {
				best = k
			}
		}

		v := heads[best]
		pos := int(v) - 1

		if pos < 0 {
			pos += n
		}

		dst[i] = src[pos]

		nv, ok, err := stores[best].next()

		if err != nil {
			return 0, 0, err
		}

		heads[best] = nv
		valid[best] = ok
	}

	count := 0

	for i := 1; i < n; i++ {
		if lessThan(src, n, i, 0) {
			count++
		}
	}

	this.primaryIndex = uint(count)
	return uint(n), uint(n), nil
}
