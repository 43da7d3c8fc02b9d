/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cluster

import (
	"image/color"

	"rastervec/raster"
)

// Build scans the field once in raster order, joins 4-connected pixels
// that the similarity accepts, and applies the keying policy to the
// resulting clusters. A nil similarity means exact color equality; a
// nil policy keeps everything. The only error is ErrEmptyField.
func Build(field raster.Field, similar raster.Similarity, policy KeyingPolicy) (*Index, error) {
	w, h := field.Bounds()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyField
	}
	if similar == nil {
		similar = raster.Equal
	}

	// Snapshot the field at 8 bits per channel so similarity checks and
	// color sums read a flat buffer instead of going through the Field
	// on every comparison.
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := field.ColorAt(x, y).RGBA()
			i := (y*w + x) * 4
			pix[i+0] = uint8(r >> 8)
			pix[i+1] = uint8(g >> 8)
			pix[i+2] = uint8(b >> 8)
			pix[i+3] = uint8(a >> 8)
		}
	}
	at := func(i int) color.RGBA {
		p := i * 4
		return color.RGBA{R: pix[p], G: pix[p+1], B: pix[p+2], A: pix[p+3]}
	}

	ds := newDisjointSet(w * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x > 0 && similar(at(i-1), at(i)) {
				ds.union(int32(i-1), int32(i))
			}
			if y > 0 && similar(at(i-w), at(i)) {
				ds.union(int32(i-w), int32(i))
			}
		}
	}

	// Dense ids follow the raster order of each cluster's first pixel,
	// so identical inputs always number clusters identically.
	ix := &Index{width: w, height: h, base: make([]ID, w*h)}
	idOf := make(map[int32]ID)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			root := ds.find(int32(i))
			id, ok := idOf[root]
			if !ok {
				id = ID(len(ix.clusters))
				idOf[root] = id
				ix.clusters = append(ix.clusters, data{})
			}
			ix.base[i] = id
			p := i * 4
			ix.clusters[id].addPixel(x, y, pix[p], pix[p+1], pix[p+2], pix[p+3])
		}
	}

	ix.adjacency = make([]map[ID]int, len(ix.clusters))
	touch := func(a, b ID) {
		if a == b {
			return
		}
		if ix.adjacency[a] == nil {
			ix.adjacency[a] = make(map[ID]int)
		}
		if ix.adjacency[b] == nil {
			ix.adjacency[b] = make(map[ID]int)
		}
		ix.adjacency[a][b]++
		ix.adjacency[b][a]++
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x+1 < w {
				touch(ix.base[i], ix.base[i+1])
			}
			if y+1 < h {
				touch(ix.base[i], ix.base[i+w])
			}
		}
	}

	ix.ReKey(policy)
	return ix, nil
}
