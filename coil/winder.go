// Copyright 2026 coilwind Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package coil

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/kestrelworks/coilwind/internal/constraint"
	"github.com/kestrelworks/coilwind/internal/eligibility"
	"github.com/kestrelworks/coilwind/internal/geom"
	"github.com/kestrelworks/coilwind/internal/knapsack"
)

// WindOptions configures WindReel. The zero value is valid and selects
// the width-only objective.
type WindOptions struct {
	// Value is the knapsack tie-break objective. Defaults to
	// knapsack.WidthOnly when nil.
	Value knapsack.ValueFunc

	// Log receives per-layer trace output. Defaults to a no-op logger
	// (logrus.New() with output discarded) when nil, so callers that
	// don't care about tracing pay nothing.
	Log *logrus.Entry
}

// WindReel fills reel with as much of cables' required length as its
// geometry and capacity allow, one radial layer at a time. It never
// mutates the Cable values themselves; residual bookkeeping is kept
// internally, keyed by CableHandle, and the cables whose residual length
// remains positive are returned.
//
// WindReel never panics and never returns an error: every termination
// condition is a normal outcome, reported through the returned slice and
// through reel's accumulators (spec §4.6, §7).
func WindReel(reel *Reel, cables []*Cable, opts WindOptions) []*Cable {
	residual := make(map[CableHandle]float64, len(cables))
	for _, c := range cables {
		residual[c.Handle] = c.LReq
	}
	windReel(reel, cables, residual, opts)

	var unallocated []*Cable
	for _, c := range cables {
		if residual[c.Handle] > geom.Epsilon {
			unallocated = append(unallocated, c)
		}
	}
	return unallocated
}

// windReel is the shared single-reel core used by both WindReel and
// FillReels. residual is keyed by CableHandle and mutated in place so a
// caller filling several reels in sequence can carry leftover length
// from one reel into the next without ever mutating a Cable value.
func windReel(reel *Reel, cables []*Cable, residual map[CableHandle]float64, opts WindOptions) {
	value := opts.Value
	if value == nil {
		value = knapsack.WidthOnly
	}
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(discardLogger)
	}

	ev := constraint.Evaluator{}

	ordered := make([]*Cable, len(cables))
	copy(ordered, cables)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.DiamMM != b.DiamMM {
			return a.DiamMM > b.DiamMM
		}
		if a.RMin != b.RMin {
			return a.RMin < b.RMin
		}
		return a.massTon > b.massTon
	})

	rBase := reel.DI / 2.0
	side := SideLeft

	for {
		if allExhausted(ordered, residual) {
			break
		}
		if 2*rBase >= reel.DE-geom.Epsilon {
			break
		}
		if reel.W <= geom.Epsilon {
			break
		}

		var items []eligibility.Item[CableHandle, *Cable]
		for _, c := range ordered {
			rem := residual[c.Handle]
			if rem <= geom.Epsilon {
				continue
			}
			it, ok := eligibility.Evaluate(ev, c.Handle, c, eligibility.Inputs{
				RBase:   rBase,
				DMeters: c.DiamM(),
				DE:      reel.DE,
				RMin:    c.RMin,
				LRem:    rem,
				MMax:    reel.MMax,
				MCur:    reel.MCur,
				Mu:      c.Mu,
				VCap:    reel.CapVolume(),
				VUsed:   reel.VUsed,
			})
			if ok {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			break
		}

		selection := knapsack.Select(items, reel.W, value)
		if len(selection) == 0 {
			break
		}

		layer := &Layer{DBase: 2 * rBase}
		thickness := registerLayer(layer, selection, items, side)
		if thickness <= 0 {
			break
		}

		for _, p := range layer.Placements {
			residual[p.Cable.Handle] -= p.Length
		}

		if err := reel.AddLayer(layer); err != nil {
			log.WithError(err).WithField("reel", reel.ID).Warn("invariant check failed after registering layer")
		}
		log.WithFields(logrus.Fields{
			"reel":       reel.ID,
			"layer":      len(reel.Layers),
			"base_m":     layer.DBase,
			"thickness":  thickness,
			"placements": len(layer.Placements),
		}).Trace("registered layer")

		rBase += thickness
		if side == SideLeft {
			side = SideRight
		} else {
			side = SideLeft
		}

		if 2*rBase > reel.DE+geom.Epsilon {
			break
		}
	}
}

func allExhausted(cables []*Cable, residual map[CableHandle]float64) bool {
	for _, c := range cables {
		if residual[c.Handle] > geom.Epsilon {
			return false
		}
	}
	return true
}

var discardLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
