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

// stateMap is an adaptive mapping from an 8-bit bit-history state to a
// 12-bit probability (component C). Each of the 256 cells is initialised
// from the state table's (n0, n1) pair and refined by an exponential
// moving average on every call that revisits it.
type stateMap struct {
	t   [256]uint32 // 16-bit probability per state, held in the high bits
	cxt int         // cell recorded by the previous call
}

// newStateMap creates a state map with every cell seeded from the state
// table's (n0, n1) counts, per spec ss3 "State map table".
func newStateMap() *stateMap {
	sm := &stateMap{}

	for s := 0; s < 256; s++ {
		n0, n1 := stateCounts(uint8(s))

		// Scale the count that is zero's opposite by 128 before taking the
		// ratio, so a state with no history on one side gets pushed toward
		// the corresponding extreme instead of sitting at a timid 50/50.
		if n0 == 0 {
			n1 *= 128
		}

		if n1 == 0 {
			n0 *= 128
		}

		p := (65536 * (n1 + 1)) / (n0 + n1 + 2)
		sm.t[s] = uint32(p)
	}

	return sm
}

// p implements spec ss4.C: update the previously recorded cell toward the
// observed bit y, record cx as the new cell, and return its probability
// scaled from 16 to 12 bits.
func (sm *stateMap) p(y byte, cx int) int {
	cxt := sm.cxt
	n := sm.t[cxt]
	update := ((int(y) << 16) - int(n) + 128) >> 8
	sm.t[cxt] = uint32(int(n) + update)
	sm.cxt = cx
	return int(sm.t[cx] >> 4)
}
