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

package bwtdark

// Predictor predicts the probability of the next bit being 1.
type Predictor interface {
	// Update updates the internal probability model based on the observed bit
	Update(bit byte)

	// Get returns the value representing the probability of the next bit
	// being 1, in the [0..4095] range.
	Get() int
}

// ByteTransform transforms an input byte slice and writes the result into an
// output byte slice. The result may have a different size than the input.
type ByteTransform interface {
	// Forward applies the function to src and writes the result to dst.
	// Returns the number of bytes read, the number of bytes written and
	// possibly an error.
	Forward(src, dst []byte) (uint, uint, error)

	// Inverse applies the reverse function to src and writes the result to
	// dst. Returns the number of bytes read, the number of bytes written
	// and possibly an error.
	Inverse(src, dst []byte) (uint, uint, error)

	// MaxEncodedLen returns the max size required for the encoding output
	// buffer given a source length.
	MaxEncodedLen(srcLen int) int
}
