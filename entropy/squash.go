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

import "github.com/kvark/bwtdark/internal"

// squash returns p = 1/(1 + exp(-d)), d scaled by 8 bits, p scaled by 12
// bits (component B, spec ss4.B). Delegates to the shared fixed-point
// logistic table.
func squash(d int) int {
	return internal.Squash(d)
}

// stretch is the monotone inverse of squash, precomputed once at package
// init by table inversion.
func stretch(p int) int {
	return internal.STRETCH[p]
}
