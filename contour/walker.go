/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package contour

import "fmt"

type pointI struct{ x, y int }

// Walk positions are lattice corners: corner (x, y) is the top-left
// corner of pixel (x, y), so the four pixels around it are at
// (x-1, y-1), (x, y-1), (x-1, y) and (x, y). The walk follows edges
// between a filled and an empty pixel and emits a corner whenever the
// direction changes, so straight runs collapse to their endpoints.

// dirVec maps the four cardinal walk directions to corner steps.
// Directions are numbered 0 up, 2 right, 4 down, 6 left.
func dirVec(dir int) pointI {
	switch dir {
	case 0:
		return pointI{0, -1}
	case 2:
		return pointI{1, 0}
	case 4:
		return pointI{0, 1}
	default:
		return pointI{-1, 0}
	}
}

// sideVecs gives the two pixels flanking a step in direction dir,
// relative to the current corner. The step is walkable when exactly
// one of the two is filled.
func sideVecs(dir int) (pointI, pointI) {
	switch dir {
	case 0:
		return pointI{-1, -1}, pointI{0, -1}
	case 2:
		return pointI{0, 0}, pointI{0, -1}
	case 4:
		return pointI{-1, 0}, pointI{0, 0}
	default:
		return pointI{-1, 0}, pointI{-1, -1}
	}
}

// walk traces the closed boundary ring of g starting at the top-left
// corner of the given boundary pixel. The clockwise flag picks the
// direction preference so holes can be walked opposite to outer rings.
// The returned corners form a closed ring without a duplicated
// endpoint.
func walk(g *grid, start pointI, clockwise bool) ([]pointI, error) {
	order := [4]int{0, 2, 4, 6}
	if !clockwise {
		order = [4]int{6, 4, 2, 0}
	}

	var ring []pointI
	ring = append(ring, start)

	curr, prev, prevPrev := start, start, start
	length := 0
	limit := 4*len(g.pix) + 8
	for {
		dir := -1
		for {
			pick := -1
			for _, k := range order {
				v := dirVec(k)
				ahead := pointI{curr.x + v.x, curr.y + v.y}
				if ahead == prev || ahead == prevPrev {
					continue
				}
				a, b := sideVecs(k)
				if g.at(curr.x+a.x, curr.y+a.y) != g.at(curr.x+b.x, curr.y+b.y) {
					pick = k
					break
				}
			}
			if pick == -1 {
				return nil, fmt.Errorf("contour: walker stuck at corner (%d,%d)", curr.x, curr.y)
			}
			if dir != -1 && dir != pick {
				break
			}
			dir = pick
			v := dirVec(pick)
			prevPrev = prev
			prev = curr
			curr = pointI{curr.x + v.x, curr.y + v.y}
			length++
			if length > limit {
				return nil, fmt.Errorf("contour: walker exceeded %d steps", limit)
			}
			if curr == start {
				return ring, nil
			}
		}
		ring = append(ring, curr)
	}
}
