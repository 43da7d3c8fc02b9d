/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Downsample resamples a field to w x h before clustering. Shrinking a busy
// raster first is the usual way to keep cluster counts manageable on large
// inputs. Bilinear interpolation; the result is a new caller-owned field.
func Downsample(f Field, w, h int) (*MemField, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid target size %dx%d", w, h)
	}
	sw, sh := f.Bounds()
	if sw == 0 || sh == 0 {
		return nil, fmt.Errorf("raster: cannot downsample empty field")
	}

	src := image.NewRGBA(image.Rect(0, 0, sw, sh))
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			src.Set(x, y, f.ColorAt(x, y))
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out := NewMemField(w, h)
	copy(out.Pix, dst.Pix)
	return out, nil
}
