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

// Package constraint holds the stateless capacity and feasibility
// predicates shared by the eligibility filter and the legacy hexagonal
// placer. Evaluator carries no mutable state; it operates entirely on the
// scalar quantities passed to it, never on entity pointers, so it has no
// dependency on the coil package and cannot form an import cycle with it.
package constraint

import (
	"math"

	"github.com/kestrelworks/coilwind/internal/geom"
)

// Evaluator is a zero-size stateless value type. Construct a fresh one
// wherever needed (it carries nothing to share or reuse) rather than
// holding it as a package-level singleton.
type Evaluator struct{}

// MaxLengthByMass returns the maximum additional cable length (metres)
// that may be added before the reel's mass cap mMax is exceeded, given
// its current mass mCur and the cable's linear mass mu (kg/m).
func (Evaluator) MaxLengthByMass(mMax, mCur, mu float64) float64 {
	if mu <= 0 {
		return 0
	}
	rem := (mMax - mCur) * 1000.0 / mu
	if rem < 0 {
		return 0
	}
	return rem
}

// MaxLengthByVolume returns the maximum additional cable length (metres)
// that may be added before the reel's effective volume cap vCap is
// exceeded, given its current used volume vUsed and the cable's physical
// diameter dMeters.
func (Evaluator) MaxLengthByVolume(vCap, vUsed, dMeters float64) float64 {
	r := dMeters / 2.0
	area := math.Pi * r * r
	if area <= 0 {
		return 0
	}
	rem := (vCap - vUsed) / area
	if rem < 0 {
		return 0
	}
	return rem
}

// RadiusOK reports whether the mid-radius of a track satisfies the
// cable's minimum bend radius, within tolerance.
func (Evaluator) RadiusOK(rMid, rMin float64) bool {
	return rMid >= rMin-geom.Epsilon
}

// FitsOuter reports whether placing a layer of thickness d starting at
// base radius rBase keeps the reel within its outer diameter de.
func (Evaluator) FitsOuter(rBase, d, de float64) bool {
	return 2.0*(rBase+d) <= de+geom.Epsilon
}

// WidthOK is the legacy hexagonal placer's width predicate: a circle of
// diameter d centred at lateral offset x fits within the reel's flange
// width w, leaving a 5%-of-diameter safety margin.
func (Evaluator) WidthOK(x, d, w float64) bool {
	usable := w - 0.05*d
	if usable < 0 {
		usable = 0
	}
	return abs(x)+d/2.0 <= usable/2.0+geom.Epsilon
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
