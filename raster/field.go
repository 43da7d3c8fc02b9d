/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package raster provides the read-only pixel field consumed by the
// clustering stage. Decoding image files is the caller's concern; any
// decoded image.Image can be wrapped into a Field.
package raster

import (
	"image"
	"image/color"
)

// Field is a read-only view over a raster: dimensions plus a color lookup
// per coordinate. Implementations must be safe for concurrent reads.
type Field interface {
	// Bounds returns the width and height of the field.
	Bounds() (w, h int)
	// ColorAt returns the color of the pixel at (x, y). Coordinates are
	// zero-based; callers stay within bounds.
	ColorAt(x, y int) color.Color
}

// ImageField adapts a decoded image.Image to a Field. The image is read
// through, never copied.
type ImageField struct {
	img image.Image
}

// FromImage wraps img. The field's (0, 0) maps to the minimum point of the
// image bounds.
func FromImage(img image.Image) *ImageField { return &ImageField{img: img} }

func (f *ImageField) Bounds() (int, int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

func (f *ImageField) ColorAt(x, y int) color.Color {
	b := f.img.Bounds()
	return f.img.At(b.Min.X+x, b.Min.Y+y)
}

// MemField is a compact in-memory RGBA field.
type MemField struct {
	Pix  []uint8 // 4 bytes per pixel, row-major
	W, H int
}

// NewMemField allocates an opaque black field of the given size.
func NewMemField(w, h int) *MemField {
	f := &MemField{Pix: make([]uint8, 4*w*h), W: w, H: h}
	for i := 3; i < len(f.Pix); i += 4 {
		f.Pix[i] = 0xff
	}
	return f
}

func (f *MemField) Bounds() (int, int) { return f.W, f.H }

func (f *MemField) ColorAt(x, y int) color.Color {
	i := 4 * (y*f.W + x)
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// Set stores c at (x, y), converting to 8-bit RGBA.
func (f *MemField) Set(x, y int, c color.Color) {
	r, g, b, a := c.RGBA()
	i := 4 * (y*f.W + x)
	f.Pix[i] = uint8(r >> 8)
	f.Pix[i+1] = uint8(g >> 8)
	f.Pix[i+2] = uint8(b >> 8)
	f.Pix[i+3] = uint8(a >> 8)
}
