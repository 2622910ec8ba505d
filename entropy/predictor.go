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

// Predictor combines the bit-history state table (A), the state map (C)
// and a cascade of six APMs (D) over several byte-level contexts into a
// single next-bit probability (component E). A Predictor value is owned
// exclusively by one Encoder or Decoder; it carries no process-wide state.
type Predictor struct {
	t1 [256]uint8 // per-context bit-history state cells

	c0     int    // partial current byte, leading 1, range [1, 255]
	c4     uint32 // low 32 bits of the last four whole bytes
	bpos   uint   // bit position within the current byte, [0, 7]
	run    int    // length of the current run of identical bytes
	runcxt int    // run bucket: 0, 256, 512 or 768
	cpIdx  int    // t1 index set up by the previous predict step

	sm       *stateMap
	a11, a12 *apm // order-0 byte context, two learning rates
	a2       *apm // byte context plus previous byte
	a3       *apm // previous byte plus run bucket
	a4       *apm // byte context plus part of c4
	a5       *apm // byte context xor hashed c4

	pr int // last published probability, [0, 4095]
}

// NewPredictor creates a Predictor with all tables at their initial,
// history-free state.
func NewPredictor() *Predictor {
	return &Predictor{
		c0:    1,
		cpIdx: 1,
		sm:    newStateMap(),
		a11:   newAPM(256),
		a12:   newAPM(256),
		a2:    newAPM(65536),
		a3:    newAPM(1024),
		a4:    newAPM(8192),
		a5:    newAPM(16384),
		pr:    2048,
	}
}

// avg2 rounds (a+b)/2 to the nearest integer.
func avg2(a, b int) int {
	return (a + b + 1) >> 1
}

// blend weights a 3:1 against b, per spec ss4.E.
func blend(a, b int) int {
	return (3*a + b + 2) >> 2
}

// Get returns the probability of the next bit being 1, in [0, 4095].
func (p *Predictor) Get() int {
	return p.pr
}

// Update advances the predictor's state after observing bit y, and
// computes the probability published for the next call to Get (spec
// ss4.E, steps 1-5).
func (p *Predictor) Update(y byte) {
	// 1. Advance the t1 cell set up by the previous predict step.
	p.t1[p.cpIdx] = nextState(p.t1[p.cpIdx], y)

	// 2. Shift y into c0; on byte boundary fold it into c4 and the run.
	p.c0 = (p.c0 << 1) | int(y)
	p.bpos = (p.bpos + 1) & 7

	if p.c0 >= 256 {
		b := uint32(p.c0 & 0xff)
		p.c4 = (p.c4 << 8) | b

		if (p.c4^(p.c4>>8))&0xff == 0 {
			if p.run < 65535 {
				p.run++
			}

			switch p.run {
			case 1:
				p.runcxt = 256
			case 2:
				p.runcxt = 512
			case 4:
				p.runcxt = 768
			}
		} else {
			p.run = 0
			p.runcxt = 0
		}

		p.c0 = 1
	}

	// 3. Rebase cp to the new context.
	p.cpIdx = p.c0

	// 4. Chain the state map and the six APMs.
	pr := p.sm.p(y, int(p.t1[p.cpIdx]))
	pr = avg2(p.a11.p(y, pr, p.c0, 5), p.a12.p(y, pr, p.c0, 9))
	pr = p.a2.p(y, pr, p.c0|int((p.c4&0xff)<<8), 7)
	pr = p.a3.p(y, pr, int(p.c4&0xff)|p.runcxt, 8)

	pr4 := p.a4.p(y, pr, p.c0|int(p.c4&0x1f00), 7)
	pr = blend(pr4, pr)

	hash := (p.c4 & 0xffffff) * 123456791
	pr5 := p.a5.p(y, pr, p.c0^int(hash>>18), 7)
	pr = avg2(pr5, pr)

	// 5. Publish.
	p.pr = pr
}
