/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cluster groups the pixels of a raster field into connected
// regions of similar color and lets a keying policy merge or discard
// regions afterwards. Every pixel of the field always maps to exactly
// one cluster id; discarding a cluster removes it from the live set but
// never leaves a pixel unassigned.
package cluster

import (
	"errors"
	"image/color"
	"sort"

	"rastervec/geom"
)

// ID identifies a cluster within one Index. Ids are dense, start at 0
// and are assigned in raster order of each cluster's first pixel, so
// the same field and similarity always produce the same ids.
type ID int32

// ErrEmptyField is returned by Build when the field has no pixels.
var ErrEmptyField = errors.New("cluster: empty field")

// data is the per-cluster accumulator kept for the lifetime of an Index
// so that ReKey can recompute attributes of merged clusters without
// touching pixels again.
type data struct {
	sumR, sumG, sumB, sumA uint64
	count                  int
	rect                   geom.Rect
}

func (d *data) addPixel(x, y int, r, g, b, a uint8) {
	d.sumR += uint64(r)
	d.sumG += uint64(g)
	d.sumB += uint64(b)
	d.sumA += uint64(a)
	d.count++
	d.rect.AddPoint(x, y)
}

func (d *data) merge(o *data) {
	d.sumR += o.sumR
	d.sumG += o.sumG
	d.sumB += o.sumB
	d.sumA += o.sumA
	d.count += o.count
	d.rect.Merge(o.rect)
}

func (d *data) color() color.Color {
	if d.count == 0 {
		return color.RGBA{}
	}
	n := uint64(d.count)
	return color.RGBA{
		R: uint8(d.sumR / n),
		G: uint8(d.sumG / n),
		B: uint8(d.sumB / n),
		A: uint8(d.sumA / n),
	}
}

// Index is the result of clustering one field. It owns the total
// pixel-to-cluster mapping and the per-cluster attributes, both before
// and after keying.
type Index struct {
	width, height int

	// base holds the cluster id of every pixel as assigned by the
	// connectivity pass, before any keying. It never changes after
	// Build, which is what makes ReKey cheap.
	base []ID

	clusters []data // indexed by base id

	// adjacency[id] maps neighbor id to shared border length, both in
	// base ids.
	adjacency []map[ID]int

	// resolve maps a base id to its final id after keying merges.
	// IDAt(x, y) is resolve[base[...]].
	resolve []ID

	// merged holds the post-keying attributes per final id; entries for
	// ids that were merged away alias their target's entry via resolve.
	merged []data

	live []bool // indexed by final id
}

// Width returns the field width the index was built from.
func (ix *Index) Width() int { return ix.width }

// Height returns the field height the index was built from.
func (ix *Index) Height() int { return ix.height }

// Len returns the number of clusters found by the connectivity pass,
// which is also the upper bound (exclusive) on valid ids.
func (ix *Index) Len() int { return len(ix.clusters) }

// IDAt returns the cluster id of the pixel at (x, y) after keying.
// Pixels of merged clusters report the merge target's id; pixels of
// discarded clusters still report their id. Coordinates outside the
// field return -1.
func (ix *Index) IDAt(x, y int) ID {
	if x < 0 || y < 0 || x >= ix.width || y >= ix.height {
		return -1
	}
	return ix.resolve[ix.base[y*ix.width+x]]
}

// Live returns the ids of all live clusters in ascending order. A
// cluster is live when its keying action resolved to keep; merged-away
// clusters follow their target's fate and discarded ones are absent.
func (ix *Index) Live() []ID {
	out := make([]ID, 0, len(ix.clusters))
	for id := range ix.clusters {
		if ix.resolve[id] == ID(id) && ix.live[id] {
			out = append(out, ID(id))
		}
	}
	return out
}

// Info returns the post-keying attributes of a cluster. For a
// merged-away id it reports the merge target's attributes under the
// target's id. ok is false for out-of-range ids.
func (ix *Index) Info(id ID) (Info, bool) {
	if id < 0 || int(id) >= len(ix.clusters) {
		return Info{}, false
	}
	fin := ix.resolve[id]
	d := &ix.merged[fin]
	return Info{ID: fin, Color: d.color(), Count: d.count, Rect: d.rect}, true
}

// Mask writes the pixel membership of the cluster with final id into a
// fresh boolean grid in row-major field order. Membership follows the
// post-keying mapping, so a merge target's mask covers the merged
// pixels too.
func (ix *Index) Mask(id ID) []bool {
	m := make([]bool, len(ix.base))
	for i, b := range ix.base {
		if ix.resolve[b] == id {
			m[i] = true
		}
	}
	return m
}

// baseInfo reports the pre-keying attributes of a base cluster.
func (ix *Index) baseInfo(id ID) Info {
	d := &ix.clusters[id]
	return Info{ID: id, Color: d.color(), Count: d.count, Rect: d.rect}
}

// baseNeighbors lists the pre-keying neighbors of a base cluster in
// ascending id order.
func (ix *Index) baseNeighbors(id ID) []Neighbor {
	adj := ix.adjacency[id]
	if len(adj) == 0 {
		return nil
	}
	out := make([]Neighbor, 0, len(adj))
	for nid, border := range adj {
		d := &ix.clusters[nid]
		out = append(out, Neighbor{ID: nid, Color: d.color(), Count: d.count, Border: border})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReKey re-applies a keying policy from the preserved connectivity
// state. The per-pixel base mapping is untouched, so ReKey never
// re-scans the field. A nil policy keeps every cluster.
func (ix *Index) ReKey(policy KeyingPolicy) {
	n := len(ix.clusters)
	if policy == nil {
		policy = KeepAll
	}

	actions := make([]Action, n)
	for id := 0; id < n; id++ {
		actions[id] = policy(ix.baseInfo(ID(id)), ix.baseNeighbors(ID(id)))
	}

	// Merge targets fold through a second disjoint set where the target
	// root always survives, so chains like a->b->c resolve to c.
	ds := newDisjointSet(n)
	for id := 0; id < n; id++ {
		act := actions[id]
		if act.Kind != KindMerge {
			continue
		}
		t := act.Target
		if t < 0 || int(t) >= n || t == ID(id) {
			continue // invalid target, treated as keep
		}
		ds.unionInto(int32(id), int32(t))
	}

	resolve := make([]ID, n)
	for id := 0; id < n; id++ {
		resolve[id] = ID(ds.find(int32(id)))
	}

	merged := make([]data, n)
	copy(merged, ix.clusters)
	for id := 0; id < n; id++ {
		fin := resolve[id]
		if fin != ID(id) {
			merged[fin].merge(&ix.clusters[id])
		}
	}

	// A merged-away cluster follows its final root's action.
	live := make([]bool, n)
	for id := 0; id < n; id++ {
		if resolve[id] == ID(id) {
			live[id] = actions[id].Kind != KindDiscard
		}
	}

	ix.resolve = resolve
	ix.merged = merged
	ix.live = live
}
