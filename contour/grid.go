/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package contour

import "rastervec/geom"

// grid is a binary pixel mask local to one cluster's bounding rect.
// Reads outside the grid are empty, which lets the walker probe the
// four pixels around any lattice corner without bounds juggling.
type grid struct {
	w, h int
	pix  []bool
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, pix: make([]bool, w*h)}
}

func (g *grid) at(x, y int) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return false
	}
	return g.pix[y*g.w+x]
}

func (g *grid) set(x, y int, v bool) { g.pix[y*g.w+x] = v }

func (g *grid) clone() *grid {
	c := &grid{w: g.w, h: g.h, pix: make([]bool, len(g.pix))}
	copy(c.pix, g.pix)
	return c
}

// boundary returns the raster-order first boundary pixel and the number
// of boundary pixels. A pixel is on the boundary when any of its four
// neighbors is empty.
func (g *grid) boundary() (first pointI, count int) {
	first = pointI{-1, -1}
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if !g.at(x, y) {
				continue
			}
			if g.at(x-1, y) && g.at(x+1, y) && g.at(x, y-1) && g.at(x, y+1) {
				continue
			}
			if first.x < 0 {
				first = pointI{x, y}
			}
			count++
		}
	}
	return first, count
}

// component is one 4-connected region of empty pixels inside a grid.
type component struct {
	cells []pointI
	rect  geom.Rect
}

// holes returns the empty regions fully enclosed by the mask. Empty
// regions touching the grid border are open to the outside and are not
// holes.
func (g *grid) holes() []component {
	seen := make([]bool, len(g.pix))
	var out []component
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			if g.pix[i] || seen[i] {
				continue
			}
			var c component
			queue := []pointI{{x, y}}
			seen[i] = true
			for len(queue) > 0 {
				p := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				c.cells = append(c.cells, p)
				c.rect.AddPoint(p.x, p.y)
				for _, n := range [4]pointI{{p.x - 1, p.y}, {p.x + 1, p.y}, {p.x, p.y - 1}, {p.x, p.y + 1}} {
					if n.x < 0 || n.y < 0 || n.x >= g.w || n.y >= g.h {
						continue
					}
					j := n.y*g.w + n.x
					if !g.pix[j] && !seen[j] {
						seen[j] = true
						queue = append(queue, n)
					}
				}
			}
			if c.rect.Left > 0 && c.rect.Top > 0 && c.rect.Right < g.w && c.rect.Bottom < g.h {
				out = append(out, c)
			}
		}
	}
	return out
}
