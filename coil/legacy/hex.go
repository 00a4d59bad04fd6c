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

// Package legacy implements the hexagonal (honeycomb) single-cable
// placement allocator kept for input compatibility with historical
// outputs. It is not the authoritative allocator — coil.WindReel's radial
// bounded-knapsack winder is — but it is retained and fully functional,
// selectable by callers that need parity with the source system's older
// placement strategy (spec §4.6, "Legacy hexagonal placement").
//
// The model here is intentionally separate from coil.Layer/coil.Placement:
// a hexagonal layer holds (x, y) circle centres, one per cable, not
// width-wise tracks, so it does not fit the radial core's Placement
// shape. It shares only the Reel and Cable entities with coil.
package legacy

import (
	"math"
	"sort"

	"github.com/kestrelworks/coilwind/coil"
	"github.com/kestrelworks/coilwind/internal/constraint"
	"github.com/kestrelworks/coilwind/internal/geom"
)

// Side mirrors coil.Side for the hexagonal placer's own left/right
// scanning direction.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// HexPlacement is one cable placed as a single circle within a HexLayer.
type HexPlacement struct {
	Cable *coil.Cable
	X, Y  float64
}

// HexLayer is one row of the honeycomb pattern.
type HexLayer struct {
	DBase      float64
	Placements []HexPlacement
}

// Options configures PlaceHexagonal. The zero value is valid.
type Options struct {
	// Lookahead bounds how many pending cables the side-selection
	// simulation considers, mirroring the source's k_lookahead=10.
	Lookahead int
}

// PlaceHexagonal places cables one at a time, largest diameter first, as
// single circles in a honeycomb (odd rows aligned, even rows offset by
// d/2) pattern across reel's flange width, opening a new row whenever the
// current one rejects a cable. It returns the rows actually used and the
// cables that could not be placed at all (this allocator places a cable
// whole or not at all — it has no notion of partial allocation across
// tracks, unlike the radial core).
func PlaceHexagonal(reel *coil.Reel, cables []*coil.Cable, opts Options) ([]*HexLayer, []*coil.Cable) {
	lookahead := opts.Lookahead
	if lookahead <= 0 {
		lookahead = 10
	}
	ev := constraint.Evaluator{}

	ordered := make([]*coil.Cable, len(cables))
	copy(ordered, cables)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.DiamMM != b.DiamMM {
			return a.DiamMM > b.DiamMM
		}
		if a.RMin != b.RMin {
			return a.RMin < b.RMin
		}
		return a.MassTon() > b.MassTon()
	})

	var rows []*HexLayer
	var rejected []*coil.Cable

	for i, c := range ordered {
		if !fitsCapacity(ev, reel, c) {
			rejected = append(rejected, c)
			continue
		}
		if placeInExistingRow(ev, reel, rows, c) {
			continue
		}
		pending := ordered[i:]
		if row, ok := openNewRow(ev, reel, rows, c, pending, lookahead); ok {
			rows = append(rows, row)
			continue
		}
		rejected = append(rejected, c)
	}

	return rows, rejected
}

// fitsCapacity is the source's "validar_volume" global guard: this
// allocator places a cable whole or not at all, so its full required
// length must fit within the reel's remaining volume budget before any
// position is even attempted. The source never applies a mass guard here
// (validador.py defines validar_peso but never calls it), so none is
// applied here either.
func fitsCapacity(ev constraint.Evaluator, reel *coil.Reel, c *coil.Cable) bool {
	maxByVolume := ev.MaxLengthByVolume(reel.CapVolume(), reel.VUsed, c.DiamM())
	return c.LReq <= maxByVolume+geom.Epsilon
}

func pitch(dMeters float64) float64 {
	return geom.HexPitchFactor * dMeters
}

func honeycombOffset(rowIndex int, dRef float64) float64 {
	// 1-based row index: odd rows aligned (offset 0), even rows shifted
	// by half a diameter to sit in the gaps of the row below.
	if rowIndex%2 == 1 {
		return 0.0
	}
	return dRef / 2.0
}

// horizontalPositions walks candidate x centres from the chosen side
// inward across the flange, spaced by step, stopping once a candidate
// would cross the opposite edge.
func horizontalPositions(side Side, xStart, width, step float64) []float64 {
	half := width / 2.0
	var xs []float64
	x := xStart
	if side == SideLeft {
		for x+step/2.0 <= half+geom.Epsilon {
			xs = append(xs, x)
			x += step
		}
	} else {
		for x-step/2.0 >= -half-geom.Epsilon {
			xs = append(xs, x)
			x -= step
		}
	}
	return xs
}

// collides reports whether a candidate circle of diameter d at (x, y)
// overlaps any placement already registered in rows. When prune is true
// the scan skips rows farther than ±3d from rowBase (the AABB-style
// distance prune the source applies when checking against a specific
// target row); when false every row is checked regardless of distance,
// matching the source's camada_atual=None case used during side
// simulation.
func collides(rows []*HexLayer, rowBase, x, y, dMeters float64, prune bool) bool {
	safety := dMeters * 0.05
	rLine := dMeters/2.0 + safety

	for _, row := range rows {
		if prune && math.Abs(row.DBase-rowBase) > 3*dMeters {
			continue
		}
		for _, p := range row.Placements {
			dx := x - p.X
			dy := y - p.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			existingD := p.Cable.EffectiveDiamM()
			rExisting := existingD/2.0 + safety
			if dist < rLine+rExisting {
				return true
			}
		}
	}
	return false
}

// simulateSide estimates, without committing, how many of the leading
// pending cables (up to lookahead of them) would fit starting from side
// on a fresh row at rowIndex, and how much flange width would remain
// unused. It is used only to choose which side to start a new row from.
//
// Collision checks during simulation run against every placement in rows
// with the distance prune disabled, mirroring the source's behaviour of
// passing camada_atual=None: that skips only the per-row distance-based
// skip, not the collision check itself.
func simulateSide(ev constraint.Evaluator, reel *coil.Reel, rows []*HexLayer, rowIndex int, pending []*coil.Cable, lookahead int, side Side) (placed int, leftover float64) {
	if len(pending) == 0 {
		return 0, reel.W
	}

	dRef := pending[0].EffectiveDiamM()
	rowBase := float64(rowIndex-1) * pitch(dRef)
	offset := honeycombOffset(rowIndex, dRef)

	half := reel.W / 2.0
	var x float64
	if side == SideLeft {
		x = -half + offset + dRef/2.0
	} else {
		x = half - offset - dRef/2.0
	}

	n := lookahead
	if n > len(pending) {
		n = len(pending)
	}

	var lastD float64
	used := 0
	for used < n {
		c := pending[used]
		d := c.EffectiveDiamM()
		step := geom.StepMeters(d)

		if !ev.WidthOK(x, d, reel.W) {
			break
		}
		if collides(rows, rowBase, x, rowBase, d, false) {
			break
		}
		rEff := math.Hypot(x, rowBase)
		if !ev.RadiusOK(rEff, c.RMin) {
			break
		}

		lastD = d
		used++
		if side == SideLeft {
			x += step
		} else {
			x -= step
		}
	}

	placed = used
	if placed == 0 {
		return 0, reel.W
	}
	if side == SideLeft {
		leftover = half - (x - lastD/2.0)
	} else {
		leftover = (x + lastD/2.0) - (-half)
	}
	if leftover < 0 {
		leftover = 0
	}
	return placed, leftover
}

func chooseSide(ev constraint.Evaluator, reel *coil.Reel, rows []*HexLayer, rowIndex int, pending []*coil.Cable, lookahead int) Side {
	cLeft, sLeft := simulateSide(ev, reel, rows, rowIndex, pending, lookahead, SideLeft)
	cRight, sRight := simulateSide(ev, reel, rows, rowIndex, pending, lookahead, SideRight)
	if cLeft > cRight {
		return SideLeft
	}
	if cRight > cLeft {
		return SideRight
	}
	if sLeft <= sRight {
		return SideLeft
	}
	return SideRight
}

func placeInExistingRow(ev constraint.Evaluator, reel *coil.Reel, rows []*HexLayer, c *coil.Cable) bool {
	d := c.EffectiveDiamM()

	for _, row := range rows {
		rowIndex := rowIndexOf(rows, row)
		side := chooseSide(ev, reel, rows, rowIndex, []*coil.Cable{c}, 1)

		half := reel.W / 2.0
		offset := honeycombOffset(rowIndex, d)
		var xStart float64
		if side == SideLeft {
			xStart = -half + offset + d/2.0
		} else {
			xStart = half - offset - d/2.0
		}
		step := geom.StepMeters(d)

		for _, x := range horizontalPositions(side, xStart, reel.W, step) {
			if !ev.WidthOK(x, d, reel.W) {
				continue
			}
			if collides(rows, row.DBase, x, row.DBase, d, true) {
				continue
			}
			rEff := math.Hypot(x, row.DBase)
			if !ev.RadiusOK(rEff, c.RMin) {
				continue
			}

			row.Placements = append(row.Placements, HexPlacement{Cable: c, X: x, Y: row.DBase})
			_ = reel.AccumulateLegacy(c.Mu, c.DiamM(), c.LReq)
			return true
		}
	}
	return false
}

func openNewRow(ev constraint.Evaluator, reel *coil.Reel, rows []*HexLayer, c *coil.Cable, pending []*coil.Cable, lookahead int) (*HexLayer, bool) {
	d := c.EffectiveDiamM()
	rowIndex := len(rows) + 1
	rowBase := float64(rowIndex-1) * pitch(d)

	if reel.DI+2.0*(rowBase+c.DiamM()/2.0) > reel.DE+geom.Epsilon {
		return nil, false
	}

	side := chooseSide(ev, reel, rows, rowIndex, pending, lookahead)
	offset := honeycombOffset(rowIndex, d)

	half := reel.W / 2.0
	var xStart float64
	if side == SideLeft {
		xStart = -half + offset + d/2.0
	} else {
		xStart = half - offset - d/2.0
	}
	step := geom.StepMeters(d)

	row := &HexLayer{DBase: rowBase}
	for _, x := range horizontalPositions(side, xStart, reel.W, step) {
		if !ev.WidthOK(x, d, reel.W) {
			continue
		}
		if collides(rows, rowBase, x, rowBase, d, true) {
			continue
		}
		rEff := math.Hypot(x, rowBase)
		if !ev.RadiusOK(rEff, c.RMin) {
			continue
		}

		row.Placements = append(row.Placements, HexPlacement{Cable: c, X: x, Y: rowBase})
		_ = reel.AccumulateLegacy(c.Mu, c.DiamM(), c.LReq)
		return row, true
	}
	return nil, false
}

func rowIndexOf(rows []*HexLayer, target *HexLayer) int {
	for i, r := range rows {
		if r == target {
			return i + 1
		}
	}
	return len(rows)
}
