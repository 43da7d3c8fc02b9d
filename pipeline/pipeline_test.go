/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pipeline

import (
	"errors"
	"image/color"
	"testing"

	"rastervec/cluster"
	"rastervec/raster"
	"rastervec/vpath"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

func squareField() *raster.MemField {
	f := raster.NewMemField(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			f.Set(x, y, white)
		}
	}
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			f.Set(x, y, black)
		}
	}
	return f
}

func TestRunSquareScenario(t *testing.T) {
	opts := DefaultOptions()
	opts.MinArea = 0
	out, err := Run(squareField(), opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Background outer ring, background hole around the square, and
	// the square itself.
	if len(out) != 3 {
		t.Fatalf("got %d paths, want 3: %+v", len(out), out)
	}
	for i := 1; i < len(out); i++ {
		if out[i].ID < out[i-1].ID {
			t.Fatalf("output not ordered by cluster id")
		}
	}
	if !out[1].Hole || out[0].Hole || out[2].Hole {
		t.Fatalf("hole flags wrong: %v %v %v", out[0].Hole, out[1].Hole, out[2].Hole)
	}
	square := out[2]
	if len(square.Path.Segments) != 4 {
		t.Fatalf("square path has %d segments, want 4", len(square.Path.Segments))
	}
	for i, s := range square.Path.Segments {
		if _, ok := s.(vpath.Line); !ok {
			t.Fatalf("square segment %d is %T, want Line", i, s)
		}
	}
	r, g, b, _ := square.Color.RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("square color = %v", square.Color)
	}
}

func TestRunSkipsIsolatedPixel(t *testing.T) {
	f := raster.NewMemField(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			f.Set(x, y, white)
		}
	}
	f.Set(2, 2, black)

	opts := DefaultOptions()
	opts.MinArea = 0
	out, err := Run(f, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// The single pixel cannot be traced; only the background and its
	// one-pixel hole come out.
	for _, tr := range out {
		if tr.ID != 0 {
			t.Fatalf("unexpected path for cluster %d", tr.ID)
		}
	}
	if len(out) != 2 || !out[1].Hole {
		t.Fatalf("background paths = %+v", out)
	}
}

func TestRunEmptyField(t *testing.T) {
	if _, err := Run(raster.NewMemField(0, 0), DefaultOptions()); !errors.Is(err, cluster.ErrEmptyField) {
		t.Fatalf("expected ErrEmptyField, got %v", err)
	}
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	f := raster.NewMemField(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := white
			switch {
			case (x/4+y/4)%2 == 0:
				c = black
			case x > 8 && y > 8:
				c = color.RGBA{R: 200, G: 30, B: 30, A: 255}
			}
			f.Set(x, y, c)
		}
	}
	opts := DefaultOptions()
	opts.MinArea = 0

	opts.Workers = 1
	serial, err := Run(f, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	opts.Workers = 8
	parallel, err := Run(f, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(serial) != len(parallel) {
		t.Fatalf("path counts differ: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i].ID != parallel[i].ID || serial[i].Hole != parallel[i].Hole {
			t.Fatalf("output %d differs across worker counts", i)
		}
		if len(serial[i].Path.Segments) != len(parallel[i].Path.Segments) {
			t.Fatalf("segment counts differ at %d", i)
		}
	}
}

func TestStandardKeyingMergesSmallClusters(t *testing.T) {
	opts := DefaultOptions()
	opts.MinArea = 4
	policy := StandardKeying(opts)

	c := cluster.Info{ID: 2, Color: black, Count: 2}
	nbs := []cluster.Neighbor{
		{ID: 0, Color: white, Count: 50, Border: 3},
		{ID: 1, Color: color.RGBA{R: 10, G: 10, B: 10, A: 255}, Count: 40, Border: 2},
	}
	act := policy(c, nbs)
	if act.Kind != cluster.KindMerge || act.Target != 1 {
		t.Fatalf("small dark cluster should merge into the dark neighbor, got %+v", act)
	}

	c.Count = 100
	if act := policy(c, nbs); act.Kind != cluster.KindKeep {
		t.Fatalf("large cluster should keep, got %+v", act)
	}
}
