/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Rect is an integer bounding box over pixel coordinates. Left/Top are
// inclusive, Right/Bottom exclusive. The zero Rect is empty and grows to
// enclose the points added to it.
type Rect struct {
	Left, Top, Right, Bottom int
}

// IsEmpty reports whether the rect encloses no pixels.
func (r Rect) IsEmpty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// AddPoint grows the rect to include the pixel at (x, y).
func (r *Rect) AddPoint(x, y int) {
	if r.IsEmpty() {
		r.Left, r.Top, r.Right, r.Bottom = x, y, x+1, y+1
		return
	}
	if x < r.Left {
		r.Left = x
	}
	if x+1 > r.Right {
		r.Right = x + 1
	}
	if y < r.Top {
		r.Top = y
	}
	if y+1 > r.Bottom {
		r.Bottom = y + 1
	}
}

// Merge grows the rect to include o.
func (r *Rect) Merge(o Rect) {
	if o.IsEmpty() {
		return
	}
	if r.IsEmpty() {
		*r = o
		return
	}
	if o.Left < r.Left {
		r.Left = o.Left
	}
	if o.Top < r.Top {
		r.Top = o.Top
	}
	if o.Right > r.Right {
		r.Right = o.Right
	}
	if o.Bottom > r.Bottom {
		r.Bottom = o.Bottom
	}
}

// Contains reports whether pixel (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Translate returns the rect shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}
