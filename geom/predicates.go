/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// Shape predicates classify small point configurations. They are heuristic
// signals for the path fitter (corner versus smooth join decisions), not
// correctness-critical invariants, so all comparisons are epsilon-relative.

// predicateEps is the relative tolerance used by the classification
// predicates below.
const predicateEps = 1e-3

// Collinear reports whether a, b, c lie on one line, relative to the
// overall scale of the triangle.
func Collinear(a, b, c Point) bool {
	area2 := math.Abs(b.Sub(a).Cross(c.Sub(a)))
	scale := math.Max(a.Distance(b), math.Max(b.Distance(c), a.Distance(c)))
	if scale == 0 {
		return true
	}
	return area2 <= predicateEps*scale*scale
}

// IsIsosceles reports whether the triangle abc has two pairwise distances
// equal within relative epsilon. Degenerate triangles are not classified.
func IsIsosceles(a, b, c Point) bool {
	if Collinear(a, b, c) {
		return false
	}
	ab := a.Distance(b)
	bc := b.Distance(c)
	ca := c.Distance(a)
	return nearEqual(ab, bc) || nearEqual(bc, ca) || nearEqual(ca, ab)
}

// IsRight reports whether the triangle abc has a right angle within
// epsilon, tested via the Pythagorean relation on the sorted side lengths.
func IsRight(a, b, c Point) bool {
	if Collinear(a, b, c) {
		return false
	}
	s := []float64{a.Distance(b), b.Distance(c), c.Distance(a)}
	if s[0] > s[2] {
		s[0], s[2] = s[2], s[0]
	}
	if s[0] > s[1] {
		s[0], s[1] = s[1], s[0]
	}
	if s[1] > s[2] {
		s[1], s[2] = s[2], s[1]
	}
	return nearEqual(s[0]*s[0]+s[1]*s[1], s[2]*s[2])
}

func nearEqual(x, y float64) bool {
	scale := math.Max(math.Abs(x), math.Abs(y))
	if scale == 0 {
		return true
	}
	return math.Abs(x-y) <= predicateEps*scale
}
