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

// Package geom holds the unit conversions and pure geometric helpers shared
// by every layer of the allocation engine. Nothing here carries state.
package geom

import "math"

const (
	// MarginFrac is the lateral clearance applied per side of a wound
	// track, as a fraction of the cable's physical diameter.
	MarginFrac = 0.05

	// HexPitchFactor is the vertical pitch factor (√3/2) between rows of
	// the legacy honeycomb placement. Unused by the radial core.
	HexPitchFactor = 0.8660254037844386 // math.Sqrt(3) / 2

	// Epsilon is the tolerance used for metre-scale comparisons.
	Epsilon = 1e-9

	// EpsilonDiameter is the tolerance for diameter-equality comparisons.
	// No allocator in this module currently reads it.
	EpsilonDiameter = 1e-6
)

// StepMeters returns the width-wise pitch between adjacent tracks of the
// same cable: d·(1 + 2·MarginFrac).
func StepMeters(dMeters float64) float64 {
	return dMeters * (1.0 + 2.0*MarginFrac)
}

// Circumference returns 2πr.
func Circumference(r float64) float64 {
	return 2.0 * math.Pi * r
}

// RingVolume returns the annular volume (π/4)(DE²−DI²)·W of a reel's
// cavity, in cubic metres.
func RingVolume(di, de, w float64) float64 {
	return (math.Pi / 4.0) * (de*de - di*di) * w
}

// CableVolume returns the volume of length ℓ of a cable of diameter d
// (metres) treated as a solid cylinder.
func CableVolume(dMeters, length float64) float64 {
	r := dMeters / 2.0
	return math.Pi * r * r * length
}

// MMToM converts millimetres to metres.
func MMToM(mm float64) float64 { return mm / 1000.0 }

// MToMM converts metres to millimetres.
func MToMM(m float64) float64 { return m * 1000.0 }

// RoundMM rounds a metre quantity to the nearest integer millimetre, the
// scale at which the knapsack's capacity and weights are expressed to keep
// the DP's comparisons exact.
func RoundMM(m float64) int64 {
	return int64(math.Round(MToMM(m)))
}
