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
	"fmt"

	"github.com/kestrelworks/coilwind/internal/geom"
)

// Side records which flange a placement started from. It is purely
// informational: it never affects feasibility or optimality.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Reel represents one winding spool. DI, DE and W are in metres, MMax is
// in tons, Phi is the packing factor. Layers/MCur/VUsed are accumulators
// mutated by AddLayer during winding, and MCur/VUsed also by
// AccumulateLegacy for the legacy hexagonal placer.
type Reel struct {
	ID string

	DI   float64
	DE   float64
	W    float64
	MMax float64
	Phi  float64

	Layers []*Layer
	MCur   float64
	VUsed  float64
}

// NewReel validates inputs and constructs a Reel. Phi defaults to 0.85 when
// zero is passed, matching the loader-level optional-field default in
// spec §6.
func NewReel(id string, de, di, w, mMax, phi float64) (*Reel, error) {
	if !(de > di && di > 0) {
		return nil, fmt.Errorf("reel %q: require DE > DI > 0, got DE=%g DI=%g", id, de, di)
	}
	if w <= 0 {
		return nil, fmt.Errorf("reel %q: flange width must be > 0, got %g", id, w)
	}
	if mMax <= 0 {
		return nil, fmt.Errorf("reel %q: maximum mass must be > 0, got %g", id, mMax)
	}
	if phi == 0 {
		phi = 0.85
	}
	if !(phi > 0 && phi <= 1) {
		return nil, fmt.Errorf("reel %q: packing factor must be in (0,1], got %g", id, phi)
	}
	return &Reel{ID: id, DE: de, DI: di, W: w, MMax: mMax, Phi: phi}, nil
}

// RingVolume is the geometric annular volume of the reel's cavity.
func (r *Reel) RingVolume() float64 {
	return geom.RingVolume(r.DI, r.DE, r.W)
}

// CapVolume is the effective usable volume after the packing factor.
func (r *Reel) CapVolume() float64 {
	return r.RingVolume() * r.Phi
}

// AvailableMass is the remaining mass budget before MMax is reached.
func (r *Reel) AvailableMass() float64 {
	return r.MMax - r.MCur
}

// Occupancy is VUsed/CapVolume, or 0 if the cap is degenerate.
func (r *Reel) Occupancy() float64 {
	cap := r.CapVolume()
	if cap <= 0 {
		return 0
	}
	return r.VUsed / cap
}

// RadialExtent sums the thickness of every registered layer.
func (r *Reel) RadialExtent() float64 {
	var sum float64
	for _, l := range r.Layers {
		sum += l.Thickness
	}
	return sum
}

// AddLayer appends layer to the reel and folds its placements' mass and
// volume into the reel's accumulators. It is the only mutator of Layers;
// MCur/VUsed are otherwise changed only by AccumulateLegacy. Both check
// the reel's invariants after updating the accumulators.
func (r *Reel) AddLayer(layer *Layer) error {
	r.Layers = append(r.Layers, layer)
	for _, p := range layer.Placements {
		r.MCur += p.Cable.Mu * p.Length / 1000.0
		r.VUsed += geom.CableVolume(p.Cable.DiamM(), p.Length)
	}
	return r.checkInvariants()
}

// AccumulateLegacy folds the mass and volume contribution of a length of
// cable (linear mass mu, diameter dMeters) into the reel's accumulators.
// It exists for coil/legacy, whose hexagonal placements are not
// radial-track Placements and so never go through AddLayer.
func (r *Reel) AccumulateLegacy(mu, dMeters, length float64) error {
	r.MCur += mu * length / 1000.0
	r.VUsed += geom.CableVolume(dMeters, length)
	return r.checkInvariants()
}

// checkInvariants verifies the reel-level invariants from spec §3. It
// never panics; callers that care (tests, debug logging) inspect the
// returned error. The winder is constructed so this never fires in normal
// operation.
func (r *Reel) checkInvariants() error {
	if r.MCur > r.MMax+geom.Epsilon {
		return fmt.Errorf("reel %q: mass invariant violated: MCur=%g > MMax=%g", r.ID, r.MCur, r.MMax)
	}
	if r.VUsed > r.CapVolume()+geom.Epsilon {
		return fmt.Errorf("reel %q: volume invariant violated: VUsed=%g > CapVolume=%g", r.ID, r.VUsed, r.CapVolume())
	}
	if r.RadialExtent() > (r.DE-r.DI)/2.0+geom.Epsilon {
		return fmt.Errorf("reel %q: radial extent invariant violated: extent=%g > max=%g", r.ID, r.RadialExtent(), (r.DE-r.DI)/2.0)
	}
	return nil
}

// Layer is one radial shell wound on a reel.
type Layer struct {
	DBase      float64 // base diameter, metres
	Placements []*Placement
	Thickness  float64 // metres, = largest physical diameter among placements
}

// Placement is one cable's contribution to a layer.
type Placement struct {
	Cable  *Cable
	Tracks int     // n
	Circum float64 // C = 2π·r_mid, per-track circumference
	Step   float64 // p
	RMid   float64
	Length float64 // ℓ = n·C
	Side   Side
	Order  int // sequence index within the layer, for reporting
}

// MassContribution returns μ·ℓ/1000, this placement's mass in tons.
func (p *Placement) MassContribution() float64 {
	return p.Cable.Mu * p.Length / 1000.0
}
