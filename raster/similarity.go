/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import "image/color"

// Similarity decides whether two colors belong to the same region. It must
// be pure and symmetric.
type Similarity func(a, b color.Color) bool

// rgb8 converts to 8-bit channels, which is the precision the comparison
// helpers below work at.
func rgb8(c color.Color) (r, g, b uint8) {
	cr, cg, cb, _ := c.RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)
}

// Equal reports exact equality of the 8-bit RGB channels.
func Equal(a, b color.Color) bool {
	ar, ag, ab := rgb8(a)
	br, bg, bb := rgb8(b)
	return ar == br && ag == bg && ab == bb
}

// SimilarRGB returns a Similarity that drops the low shift bits of each
// channel and then allows a per-channel difference up to threshold. With
// shift 0 and threshold 0 it degenerates to exact matching.
func SimilarRGB(shift uint, threshold int) Similarity {
	return func(a, b color.Color) bool {
		ar, ag, ab := rgb8(a)
		br, bg, bb := rgb8(b)
		return absDiff(ar>>shift, br>>shift) <= threshold &&
			absDiff(ag>>shift, bg>>shift) <= threshold &&
			absDiff(ab>>shift, bb>>shift) <= threshold
	}
}

// DiffRGB is the absolute channel-difference metric used by keying policies
// to pick the closest neighboring cluster.
func DiffRGB(a, b color.Color) int {
	ar, ag, ab := rgb8(a)
	br, bg, bb := rgb8(b)
	return absDiff(ar, br) + absDiff(ag, bg) + absDiff(ab, bb)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
