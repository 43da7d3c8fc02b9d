/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pipeline wires clustering, boundary tracing and path fitting
// into one run over a pixel field. Clustering is sequential; tracing
// and fitting fan out over a worker pool and the results are reordered
// by cluster id, so output never depends on scheduling.
package pipeline

import (
	"errors"
	"image/color"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"rastervec/cluster"
	"rastervec/contour"
	"rastervec/internal/log"
	"rastervec/raster"
	"rastervec/vpath"
)

// Options controls one pipeline run.
type Options struct {
	// SimilarityShift and SimilarityThreshold parameterize the color
	// comparison joining neighboring pixels: channels are compared
	// after dropping Shift low bits, allowing Threshold difference.
	SimilarityShift     uint
	SimilarityThreshold int

	// MinArea is the pixel count below which a cluster is merged into
	// its closest-colored neighbor.
	MinArea int

	// MergeDiff, when positive, merges a cluster into its closest
	// neighbor whenever their average colors differ by no more than
	// this channel sum.
	MergeDiff int

	// Tolerance is the maximum deviation of fitted paths from traced
	// boundary points.
	Tolerance float64

	// CornerThreshold is the fitter's hard-corner angle in radians.
	CornerThreshold float64

	// Keying overrides the policy derived from MinArea and MergeDiff.
	Keying cluster.KeyingPolicy

	// Workers caps the trace and fit parallelism. Zero means one
	// worker per CPU.
	Workers int
}

// DefaultOptions returns the standard tracing parameters.
func DefaultOptions() Options {
	return Options{
		SimilarityShift:     4,
		SimilarityThreshold: 1,
		MinArea:             16,
		MergeDiff:           0,
		Tolerance:           0.5,
		CornerThreshold:     vpath.DefaultCornerThreshold,
	}
}

// Traced is one output path: the cluster it came from, the cluster's
// representative color, and whether the path is a hole in that
// cluster's fill.
type Traced struct {
	ID    cluster.ID
	Color color.Color
	Path  vpath.CompoundPath
	Hole  bool
}

// StandardKeying derives the keying policy from the area and color
// thresholds: undersized clusters merge into the neighbor with the
// closest average color, everything else keeps. Ties go to the lowest
// neighbor id, keeping runs deterministic.
func StandardKeying(opts Options) cluster.KeyingPolicy {
	return func(c cluster.Info, nbs []cluster.Neighbor) cluster.Action {
		if len(nbs) == 0 {
			return cluster.Keep()
		}
		best := nbs[0]
		bestDiff := raster.DiffRGB(c.Color, best.Color)
		for _, nb := range nbs[1:] {
			if d := raster.DiffRGB(c.Color, nb.Color); d < bestDiff {
				best, bestDiff = nb, d
			}
		}
		if c.Count < opts.MinArea {
			return cluster.MergeInto(best.ID)
		}
		if opts.MergeDiff > 0 && bestDiff <= opts.MergeDiff {
			return cluster.MergeInto(best.ID)
		}
		return cluster.Keep()
	}
}

// Run vectorizes a field: every live cluster yields its outer path,
// plus one hole path per enclosed hole, in ascending cluster-id order.
// Clusters too small to trace are skipped; fit degradation never
// fails the run. The only error is cluster.ErrEmptyField.
func Run(field raster.Field, opts Options) ([]Traced, error) {
	logger := log.WithComponent("pipeline")

	similar := raster.SimilarRGB(opts.SimilarityShift, opts.SimilarityThreshold)
	keying := opts.Keying
	if keying == nil {
		keying = StandardKeying(opts)
	}

	buildStart := time.Now()
	ix, err := cluster.Build(field, similar, keying)
	if err != nil {
		return nil, err
	}
	live := ix.Live()
	logger.Debug("clusters built",
		"clusters", ix.Len(), "live", len(live),
		"elapsed", time.Since(buildStart))

	fitter := vpath.Fitter{Tolerance: opts.Tolerance, CornerThreshold: opts.CornerThreshold}
	if fitter.Tolerance <= 0 {
		fitter.Tolerance = DefaultOptions().Tolerance
	}
	if fitter.CornerThreshold <= 0 {
		fitter.CornerThreshold = vpath.DefaultCornerThreshold
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(live) {
		workers = len(live)
	}

	traceStart := time.Now()
	results := make([][]Traced, len(live))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j] = traceOne(ix, live[j], fitter, logger)
			}
		}()
	}
	for j := range live {
		jobs <- j
	}
	close(jobs)
	wg.Wait()

	var out []Traced
	for _, r := range results {
		out = append(out, r...)
	}
	logger.Debug("paths fitted",
		"paths", len(out), "workers", workers,
		"elapsed", time.Since(traceStart))
	return out, nil
}

// traceOne handles a single cluster. Failures degrade: an untraceable
// cluster produces no output and the run moves on. A panic while
// tracing or fitting is contained the same way.
func traceOne(ix *cluster.Index, id cluster.ID, fitter vpath.Fitter, logger *slog.Logger) (out []Traced) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("cluster panic recovered",
				"cluster", int(id), "panic", r, "stack", string(debug.Stack()))
			out = nil
		}
	}()
	info, ok := ix.Info(id)
	if !ok {
		return nil
	}
	rings, err := contour.Trace(ix, id)
	if err != nil {
		if errors.Is(err, contour.ErrEmptyCluster) {
			logger.Debug("cluster skipped", "cluster", int(id), "reason", "too small")
		} else {
			logger.Warn("cluster trace failed", "cluster", int(id), "error", err)
		}
		return nil
	}
	out = make([]Traced, 0, len(rings))
	for _, ring := range rings {
		out = append(out, Traced{
			ID:    id,
			Color: info.Color,
			Path:  fitter.Fit(ring),
			Hole:  ring.Hole,
		})
	}
	return out
}
