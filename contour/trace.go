/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package contour turns cluster pixel masks into closed boundary rings.
// Rings live in geometry space, where pixel centers sit at integer
// coordinates and pixel corners at half-integers. Outer rings carry
// positive signed area, hole rings negative.
package contour

import (
	"errors"

	"rastervec/cluster"
	"rastervec/geom"
)

// ErrEmptyCluster is returned when a cluster has too few boundary
// pixels to enclose any area.
var ErrEmptyCluster = errors.New("contour: cluster too small to trace")

// Ring is one closed boundary loop. Points holds the corners in walk
// order; the ring closes implicitly from the last point back to the
// first.
type Ring struct {
	Points []geom.Point
	Hole   bool
}

// SignedArea computes the shoelace area of the ring. Positive means
// the ring is an outer boundary, negative a hole.
func (r Ring) SignedArea() float64 {
	pts := r.Points
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// reverse flips the ring's orientation in place.
func (r *Ring) reverse() {
	pts := r.Points
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// Trace extracts the boundary rings of one cluster: a single outer
// ring followed by one ring per enclosed hole. Clusters with fewer
// than three boundary pixels cannot enclose area and return
// ErrEmptyCluster.
func Trace(ix *cluster.Index, id cluster.ID) ([]Ring, error) {
	info, ok := ix.Info(id)
	if !ok {
		return nil, ErrEmptyCluster
	}
	rect := info.Rect
	mask := ix.Mask(info.ID)

	g := newGrid(rect.Width(), rect.Height())
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			if mask[y*ix.Width()+x] {
				g.set(x-rect.Left, y-rect.Top, true)
			}
		}
	}
	return traceGrid(g, geom.Pt(float64(rect.Left), float64(rect.Top)))
}

// TraceMask traces the boundary rings of a binary mask given as a
// row-major bool slice. The offset is added to every emitted point,
// on top of the half-pixel shift from corner lattice to geometry
// space.
func TraceMask(mask []bool, w, h int, offset geom.Point) ([]Ring, error) {
	g := newGrid(w, h)
	copy(g.pix, mask)
	return traceGrid(g, offset)
}

func traceGrid(g *grid, offset geom.Point) ([]Ring, error) {
	start, count := g.boundary()
	if count < 3 {
		return nil, ErrEmptyCluster
	}

	holes := g.holes()

	// The outer walk must not wander into enclosed holes, so it runs
	// on a filled copy of the mask.
	filled := g
	if len(holes) > 0 {
		filled = g.clone()
		for _, hole := range holes {
			for _, p := range hole.cells {
				filled.set(p.x, p.y, true)
			}
		}
	}

	outer, err := walk(filled, start, true)
	if err != nil {
		return nil, err
	}
	rings := []Ring{toRing(outer, offset, false)}

	for _, hole := range holes {
		hg := newGrid(hole.rect.Width(), hole.rect.Height())
		for _, p := range hole.cells {
			hg.set(p.x-hole.rect.Left, p.y-hole.rect.Top, true)
		}
		hstart, _ := hg.boundary()
		corners, err := walk(hg, hstart, false)
		if err != nil {
			return nil, err
		}
		ho := offset.Add(geom.Pt(float64(hole.rect.Left), float64(hole.rect.Top)))
		rings = append(rings, toRing(corners, ho, true))
	}

	// Winding is enforced by signed area rather than trusted from the
	// walk direction.
	for i := range rings {
		area := rings[i].SignedArea()
		if (rings[i].Hole && area > 0) || (!rings[i].Hole && area < 0) {
			rings[i].reverse()
		}
	}
	return rings, nil
}

// toRing converts corner lattice points to geometry space. Pixel
// centers are at integers, so the corner at lattice (x, y) lands at
// (x-0.5, y-0.5) before the offset.
func toRing(corners []pointI, offset geom.Point, hole bool) Ring {
	pts := make([]geom.Point, len(corners))
	for i, c := range corners {
		pts[i] = geom.Pt(float64(c.x)-0.5+offset.X, float64(c.y)-0.5+offset.Y)
	}
	return Ring{Points: pts, Hole: hole}
}
