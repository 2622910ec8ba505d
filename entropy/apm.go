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

// apm is an Adaptive Probability Map (component D): a piecewise-linear,
// 33-bin-per-context refinement of an input probability, interpolated in
// the stretch domain. Six instances with distinct contexts and rates are
// chained by the predictor (spec ss4.E).
type apm struct {
	t    []int // 33*n entries, 16-bit probabilities
	prev int   // index of the low bin from the previous call
}

// newAPM allocates an APM with n contexts. Context 0's row is the squashed
// identity function; every other context's row starts as a copy of it
// (spec ss3 "APM table").
func newAPM(n int) *apm {
	a := &apm{t: make([]int, 33*n)}

	for i := 0; i < 33; i++ {
		a.t[i] = squash((i-16)*128) << 4
	}

	for cx := 1; cx < n; cx++ {
		copy(a.t[cx*33:cx*33+33], a.t[0:33])
	}

	return a
}

// p implements spec ss4.D: refine pr using context cx, learning at the
// given rate (smaller rate adapts faster).
func (a *apm) p(y byte, pr int, cx int, rate uint) int {
	g := (int(y) << 16) + (int(y) << rate) - 2*int(y)
	a.t[a.prev] += (g - a.t[a.prev]) >> rate
	a.t[a.prev+1] += (g - a.t[a.prev+1]) >> rate

	st := stretch(pr) + 2048
	bin := st >> 7
	w := st & 127

	a.prev = cx*33 + bin
	return (a.t[a.prev]*(128-w) + a.t[a.prev+1]*w) >> 11
}
