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

// Package eligibility computes, per cable and per layer, whether a cable
// may contribute tracks to the layer currently being built and, if so,
// how many. It is generic over the caller's handle and reference types so
// it can be reused by both the radial winder (coil) and any future
// allocator without importing coil's entity types back — that would form
// an import cycle, since coil imports eligibility.
package eligibility

import (
	"math"

	"github.com/kestrelworks/coilwind/internal/constraint"
	"github.com/kestrelworks/coilwind/internal/geom"
)

// Item is one cable's eligible contribution to the current layer.
//
// H is the caller's stable handle type (coil.CableHandle); Ref is the
// caller's reference type (typically a pointer back to its own cable
// record) threaded through unmodified for use after selection.
type Item[H comparable, Ref any] struct {
	Handle  H
	Ref     Ref
	Step    float64 // p, metres
	Circum  float64 // C = 2π·r_mid, metres
	QMax    int     // maximum tracks this cable may take in this layer
	RMid    float64 // metres
	DMeters float64
	LRem    float64 // cable's remaining required length, metres
}

// Inputs bundles the scalar state Evaluate needs about the cable and the
// reel's remaining capacity. All lengths are metres, masses are tons,
// volumes are cubic metres.
type Inputs struct {
	RBase   float64 // current layer's base radius
	DMeters float64 // cable's physical diameter
	DE      float64 // reel outer diameter
	RMin    float64 // cable's minimum bend radius
	LRem    float64 // cable's remaining required length

	MMax float64
	MCur float64
	Mu   float64

	VCap  float64
	VUsed float64
}

// Evaluate applies the eligibility rules from the spec, in order:
//  1. reject if the layer's outer edge would exceed DE
//  2. reject if the layer's mid-radius is below the cable's minimum bend radius
//  3. reject if the resulting circumference or step is degenerate
//  4. bound the track count by remaining length, mass budget and volume budget
//  5. reject if that bound is zero
func Evaluate[H comparable, Ref any](ev constraint.Evaluator, handle H, ref Ref, in Inputs) (Item[H, Ref], bool) {
	var zero Item[H, Ref]

	if !ev.FitsOuter(in.RBase, in.DMeters, in.DE) {
		return zero, false
	}

	rMid := in.RBase + in.DMeters/2.0
	if !ev.RadiusOK(rMid, in.RMin) {
		return zero, false
	}

	circum := geom.Circumference(rMid)
	step := geom.StepMeters(in.DMeters)
	if circum <= geom.Epsilon || step <= geom.Epsilon {
		return zero, false
	}

	byRemaining := int(math.Floor(in.LRem / circum))
	byMass := int(math.Floor(ev.MaxLengthByMass(in.MMax, in.MCur, in.Mu) / circum))
	byVolume := int(math.Floor(ev.MaxLengthByVolume(in.VCap, in.VUsed, in.DMeters) / circum))

	qMax := min3(byRemaining, byMass, byVolume)
	if qMax <= 0 {
		return zero, false
	}

	return Item[H, Ref]{
		Handle:  handle,
		Ref:     ref,
		Step:    step,
		Circum:  circum,
		QMax:    qMax,
		RMid:    rMid,
		DMeters: in.DMeters,
		LRem:    in.LRem,
	}, true
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
