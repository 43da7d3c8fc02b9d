/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vpath

import "rastervec/geom"

// CompoundPath is an ordered run of segments approximating one
// boundary ring. A closed path additionally connects the last
// segment's end back to the first segment's start.
type CompoundPath struct {
	Segments []Segment
	Closed   bool
	Hole     bool
}

// Clone returns an independent structural copy. Segments are value
// types except for spline control slices, which are copied so the
// clone can be transformed without aliasing.
func (p CompoundPath) Clone() CompoundPath {
	out := CompoundPath{Closed: p.Closed, Hole: p.Hole}
	out.Segments = make([]Segment, len(p.Segments))
	for i, s := range p.Segments {
		if sp, ok := s.(Spline); ok {
			cp := Spline{Controls: make([]geom.Point, len(sp.Controls))}
			copy(cp.Controls, sp.Controls)
			s = cp
		}
		out.Segments[i] = s
	}
	return out
}

// Transform returns a copy of the path mapped through an affine
// matrix.
func (p CompoundPath) Transform(m geom.Matrix) CompoundPath {
	out := CompoundPath{Closed: p.Closed, Hole: p.Hole}
	out.Segments = make([]Segment, len(p.Segments))
	for i, s := range p.Segments {
		out.Segments[i] = s.transform(m)
	}
	return out
}

// Sample returns points along the path, n per segment, in order. It is
// the basis for deviation checks and crude rasterization.
func (p CompoundPath) Sample(n int) []geom.Point {
	if n < 2 {
		n = 2
	}
	var out []geom.Point
	for _, s := range p.Segments {
		for i := 0; i < n; i++ {
			out = append(out, s.PointAt(float64(i)/float64(n-1)))
		}
	}
	if p.Closed && len(out) > 0 {
		out = append(out, out[0])
	}
	return out
}

// Distance returns the distance from q to the nearest point of the
// sampled path.
func (p CompoundPath) Distance(q geom.Point) float64 {
	samples := p.Sample(32)
	if len(samples) == 0 {
		return 0
	}
	best := q.Distance(samples[0])
	for i := 1; i < len(samples); i++ {
		if d := geom.SegmentDistance(q, samples[i-1], samples[i]); d < best {
			best = d
		}
	}
	return best
}
