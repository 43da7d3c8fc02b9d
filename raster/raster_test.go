/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestImageFieldOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	img.Set(10, 20, color.RGBA{R: 1, A: 255})
	img.Set(12, 21, color.RGBA{G: 2, A: 255})

	f := FromImage(img)
	w, h := f.Bounds()
	if w != 3 || h != 2 {
		t.Fatalf("bounds: got %dx%d", w, h)
	}
	if !Equal(f.ColorAt(0, 0), color.RGBA{R: 1, A: 255}) {
		t.Fatalf("origin pixel not remapped to image min")
	}
	if !Equal(f.ColorAt(2, 1), color.RGBA{G: 2, A: 255}) {
		t.Fatalf("max pixel not remapped")
	}
}

func TestMemFieldSetGet(t *testing.T) {
	f := NewMemField(2, 2)
	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	f.Set(1, 0, c)
	if !Equal(f.ColorAt(1, 0), c) {
		t.Fatalf("readback mismatch: %v", f.ColorAt(1, 0))
	}
	// untouched pixels are opaque black
	if !Equal(f.ColorAt(0, 1), color.RGBA{A: 255}) {
		t.Fatalf("default pixel not black")
	}
}

func TestSimilarity(t *testing.T) {
	a := color.RGBA{R: 100, G: 100, B: 100, A: 255}
	b := color.RGBA{R: 104, G: 98, B: 100, A: 255}
	c := color.RGBA{R: 200, G: 0, B: 0, A: 255}

	if !Equal(a, a) || Equal(a, b) {
		t.Fatalf("Equal misbehaves")
	}
	loose := SimilarRGB(3, 1)
	if !loose(a, b) {
		t.Fatalf("nearby colors should match under loose similarity")
	}
	if loose(a, c) {
		t.Fatalf("distant colors should not match")
	}
	if d := DiffRGB(a, b); d != 6 {
		t.Fatalf("DiffRGB: got %d, want 6", d)
	}
}

func TestDownsample(t *testing.T) {
	// 4x4 solid red shrinks to 2x2 solid red
	src := NewMemField(4, 4)
	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, red)
		}
	}
	dst, err := Downsample(src, 2, 2)
	if err != nil {
		t.Fatalf("Downsample error: %v", err)
	}
	if w, h := dst.Bounds(); w != 2 || h != 2 {
		t.Fatalf("bad size %dx%d", w, h)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if !Equal(dst.ColorAt(x, y), red) {
				t.Fatalf("pixel (%d,%d) = %v, want red", x, y, dst.ColorAt(x, y))
			}
		}
	}

	if _, err := Downsample(src, 0, 2); err == nil {
		t.Fatalf("expected error for zero target size")
	}
}
