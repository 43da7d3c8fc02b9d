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

	"rastervec/geom"
)

// ActionKind enumerates the per-cluster keying decisions.
type ActionKind uint8

const (
	// KindKeep keeps the cluster as its own region.
	KindKeep ActionKind = iota
	// KindMerge folds the cluster into a neighboring target cluster.
	KindMerge
	// KindDiscard removes the cluster from the live set; its pixels stay
	// assigned so a later ReKey can revive them without re-scanning.
	KindDiscard
)

// Action is the decision a KeyingPolicy takes for one cluster.
type Action struct {
	Kind   ActionKind
	Target ID // merge target; meaningful only for KindMerge
}

func Keep() Action          { return Action{Kind: KindKeep} }
func Discard() Action       { return Action{Kind: KindDiscard} }
func MergeInto(t ID) Action { return Action{Kind: KindMerge, Target: t} }

// Info describes one cluster to a keying policy or a downstream consumer.
type Info struct {
	ID    ID
	Color color.Color // representative (average) color
	Count int         // number of pixels
	Rect  geom.Rect
}

// Neighbor describes one adjacent cluster from the perspective of the
// cluster being keyed. Border is the number of adjacent pixel pairs shared
// between the two clusters.
type Neighbor struct {
	ID     ID
	Color  color.Color
	Count  int
	Border int
}

// KeyingPolicy decides, per cluster, whether to keep, merge or discard it.
// It is called once per cluster in ascending id order, with neighbors
// sorted by ascending id. The policy must be pure: same inputs, same
// decision.
type KeyingPolicy func(c Info, neighbors []Neighbor) Action

// KeepAll keeps every cluster. Useful as a baseline policy and in tests.
func KeepAll(Info, []Neighbor) Action { return Keep() }
