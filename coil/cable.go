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

// Package coil implements the radial-layer winding model: the reel and
// cable entity types, the layer registrar, and the outer winding loop.
package coil

import (
	"fmt"

	"github.com/kestrelworks/coilwind/internal/geom"
)

// CableHandle is a stable integer handle assigned to a Cable at
// construction time. Residual-length bookkeeping during a WindReel
// invocation is keyed by handle, not by pointer identity, so that the
// allocation engine never relies on hashing by reference.
type CableHandle int

var nextCableHandle CableHandle

// Cable represents one continuous piece of flexible product. Cable values
// are immutable once constructed; residual length is tracked externally
// during allocation, in a map keyed by CableHandle inside WindReel and
// FillReels.
type Cable struct {
	Handle CableHandle

	ID      string
	DiamMM  float64 // physical diameter d, millimetres
	LReq    float64 // required length, metres
	Mu      float64 // linear mass, kg/m
	RMin    float64 // minimum bend radius, metres

	massTon          float64
	flexibilityClass int
	effectiveDiamMM  float64
}

var flexibilityFactor = map[int]float64{
	1: 1.0, 2: 0.9, 3: 0.75, 4: 0.6, 5: 0.45, 6: 0.3, 7: 0.15,
}

// NewCable validates inputs and constructs a Cable, computing its derived
// attributes (mass, flexibility class, effective diameter) once.
//
// diamM is the cable diameter in metres, converted to millimetres for
// internal storage, per the external-interface contract (spec §6).
func NewCable(id string, diamM, lReq, mu, rMin float64) (*Cable, error) {
	if diamM <= 0 {
		return nil, fmt.Errorf("cable %q: diameter must be > 0, got %g", id, diamM)
	}
	if lReq <= 0 {
		return nil, fmt.Errorf("cable %q: required length must be > 0, got %g", id, lReq)
	}
	if mu <= 0 {
		return nil, fmt.Errorf("cable %q: linear mass must be > 0, got %g", id, mu)
	}
	if rMin <= 0 {
		return nil, fmt.Errorf("cable %q: minimum bend radius must be > 0, got %g", id, rMin)
	}

	nextCableHandle++
	c := &Cable{
		Handle: nextCableHandle,
		ID:     id,
		DiamMM: geom.MToMM(diamM),
		LReq:   lReq,
		Mu:     mu,
		RMin:   rMin,
	}
	c.massTon = mu * lReq / 1000.0
	c.flexibilityClass = classifyFlexibility(rMin / diamM)
	c.effectiveDiamMM = c.DiamMM * flexibilityFactor[c.flexibilityClass]
	return c, nil
}

// classifyFlexibility maps r_min/d to a flexibility class in {1..7} by the
// fixed thresholds in spec §3. Higher class means more flexible.
func classifyFlexibility(ratio float64) int {
	switch {
	case ratio <= 1.5:
		return 7
	case ratio <= 2.5:
		return 6
	case ratio <= 4:
		return 5
	case ratio <= 6:
		return 4
	case ratio <= 8:
		return 3
	case ratio <= 12:
		return 2
	default:
		return 1
	}
}

// DiamM returns the cable's physical diameter in metres.
func (c *Cable) DiamM() float64 { return geom.MMToM(c.DiamMM) }

// MassTon returns the cable's total mass at full required length, in tons.
func (c *Cable) MassTon() float64 { return c.massTon }

// FlexibilityClass returns the derived flexibility class in {1..7}.
func (c *Cable) FlexibilityClass() int { return c.flexibilityClass }

// EffectiveDiamM returns the flexibility-adjusted diameter, in metres. This
// is legacy: only coil/legacy's hexagonal placement reads it. The radial
// core uses DiamM exclusively.
func (c *Cable) EffectiveDiamM() float64 { return geom.MMToM(c.effectiveDiamMM) }
