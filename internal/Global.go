/*
Copyright 2011-2025 Frederic Langlet
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

// Package internal holds small numeric helpers shared by the entropy and
// transform packages: the fixed-point logistic table (squash/stretch) and
// a byte histogram helper used by the inverse BWT's cumulative counts.
package internal

// _SQUASH_T is the 33-entry anchor table for Squash, reproduced verbatim
// (spec ss4.B/ss9: "exactly as encoded in the source" - bit-for-bit
// normative, not re-derived from a logistic formula at a different scale).
var _SQUASH_T = [33]int{
	1, 2, 3, 6, 10, 16, 27, 45, 73, 120, 194, 310, 488, 747, 1101,
	1546, 2047, 2549, 2994, 3348, 3607, 3785, 3901, 3975, 4022,
	4050, 4068, 4079, 4085, 4089, 4092, 4093, 4094,
}

// STRETCH is the inverse of Squash: d = ln(p/(1-p)), d scaled by 8
// bits, p by 12 bits. d has range -2047 to 2047. p in [0..4095].
var STRETCH [4096]int

func init() {
	pi := 0

	for x := -2047; x <= 2047; x++ {
		i := Squash(x)

		for pi <= i {
			STRETCH[pi] = x
			pi++
		}
	}

	STRETCH[4095] = 2047
}

// Squash returns p = 1/(1 + exp(-d)), d scaled by 8 bits, p scaled by 12
// bits, clamped to {0, 4095} outside [-2047, 2047] (spec ss4.B).
func Squash(d int) int {
	if d > 2047 {
		return 4095
	}

	if d < -2047 {
		return 0
	}

	w := d & 127
	d = (d >> 7) + 16
	return (_SQUASH_T[d]*(128-w) + _SQUASH_T[d+1]*w + 64) >> 7
}

// ComputeHistogram computes the order-0 byte histogram of block, adding one
// extra slot (index 256) holding len(block) when withTotal is true. freqs
// must have length >= 256 (257 if withTotal).
func ComputeHistogram(block []byte, freqs []int, withTotal bool) {
	if withTotal {
		freqs[256] = len(block)
	}

	for _, b := range block {
		freqs[b]++
	}
}
