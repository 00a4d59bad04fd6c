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

// Package report turns a coil.Result into the report surface named in
// spec §6 and renders it as an aligned text table or as JSON. It holds no
// allocation logic of its own — it only shapes data coil.WindReel/
// coil.FillReels already produced.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/kestrelworks/coilwind/coil"
)

// PlacementRow is one placement's contribution to the report, per spec §6.
type PlacementRow struct {
	CableID         string  `json:"cable_id"`
	DiamMM          float64 `json:"diameter_mm"`
	Length          float64 `json:"length_m"`
	RMid            float64 `json:"r_mid_m"`
	Tracks          int     `json:"tracks"`
	Step            float64 `json:"step_m"`
	Side            string  `json:"side"`
	MassContrib     float64 `json:"mass_contribution_ton"`
}

// LayerRow is one layer's contribution, per spec §6.
type LayerRow struct {
	BaseDiam   float64        `json:"base_diameter_m"`
	Thickness  float64        `json:"thickness_m"`
	UsedWidth  float64        `json:"used_width_m"`
	PctUsed    float64        `json:"pct_used"`
	Placements []PlacementRow `json:"placements"`
}

// ReelRow is one used reel's contribution, per spec §6.
type ReelRow struct {
	ID         string     `json:"id"`
	DI         float64    `json:"di_m"`
	DE         float64    `json:"de_m"`
	W          float64    `json:"w_m"`
	MMax       float64    `json:"m_max_ton"`
	MCur       float64    `json:"m_cur_ton"`
	VRing      float64    `json:"v_ring_m3"`
	VCap       float64    `json:"v_cap_m3"`
	VUsed      float64    `json:"v_used_m3"`
	Occupancy  float64    `json:"occupancy"`
	Layers     []LayerRow `json:"layers"`
}

// UnallocatedCable describes a cable left with residual length, per spec §6
// plus the supplemented flexibility-class column (emitted only when
// Verbose is set on the Render call).
type UnallocatedCable struct {
	ID               string  `json:"id"`
	ResidualLength   float64 `json:"residual_length_m"`
	FlexibilityClass int     `json:"flexibility_class,omitempty"`
}

// Report is the fully shaped report surface for one coil.Result.
type Report struct {
	Reels        []ReelRow          `json:"reels"`
	Unallocated  []UnallocatedCable `json:"unallocated_cables"`
}

// Build shapes result into the report surface. Each unallocated cable's
// ResidualLength is its required length minus the length of every
// placement of that cable on the layers of result.ReelsUsed.
func Build(result coil.Result) Report {
	reels := lo.Map(result.ReelsUsed, func(reel *coil.Reel, _ int) ReelRow {
		return buildReelRow(reel)
	})

	placed := make(map[coil.CableHandle]float64)
	for _, reel := range result.ReelsUsed {
		for _, layer := range reel.Layers {
			for _, p := range layer.Placements {
				placed[p.Cable.Handle] += p.Length
			}
		}
	}

	unallocated := lo.Map(result.CablesUnallocated, func(c *coil.Cable, _ int) UnallocatedCable {
		return UnallocatedCable{
			ID:               c.ID,
			ResidualLength:   c.LReq - placed[c.Handle],
			FlexibilityClass: c.FlexibilityClass(),
		}
	})

	return Report{Reels: reels, Unallocated: unallocated}
}

func buildReelRow(reel *coil.Reel) ReelRow {
	layers := lo.Map(reel.Layers, func(layer *coil.Layer, _ int) LayerRow {
		return buildLayerRow(reel, layer)
	})
	return ReelRow{
		ID:        reel.ID,
		DI:        reel.DI,
		DE:        reel.DE,
		W:         reel.W,
		MMax:      reel.MMax,
		MCur:      reel.MCur,
		VRing:     reel.RingVolume(),
		VCap:      reel.CapVolume(),
		VUsed:     reel.VUsed,
		Occupancy: reel.Occupancy(),
		Layers:    layers,
	}
}

func buildLayerRow(reel *coil.Reel, layer *coil.Layer) LayerRow {
	placements := lo.Map(layer.Placements, func(p *coil.Placement, _ int) PlacementRow {
		return PlacementRow{
			CableID:     p.Cable.ID,
			DiamMM:      p.Cable.DiamMM,
			Length:      p.Length,
			RMid:        p.RMid,
			Tracks:      p.Tracks,
			Step:        p.Step,
			Side:        p.Side.String(),
			MassContrib: p.MassContribution(),
		}
	})

	var usedWidth float64
	for _, p := range layer.Placements {
		maxTracks := int(reel.W / p.Step)
		n := p.Tracks
		if n > maxTracks {
			n = maxTracks
		}
		usedWidth += float64(n) * p.Step
	}
	pctUsed := 0.0
	if reel.W > 0 {
		pctUsed = usedWidth / reel.W
	}

	return LayerRow{
		BaseDiam:   layer.DBase,
		Thickness:  layer.Thickness,
		UsedWidth:  usedWidth,
		PctUsed:    pctUsed,
		Placements: placements,
	}
}

// Options controls Render's output.
type Options struct {
	// JSON selects machine-readable JSON output instead of the aligned
	// text table.
	JSON bool
	// Verbose includes the flexibility-class column for unallocated
	// cables. Off by default so golden-path JSON stays minimal (spec §6
	// supplemented features).
	Verbose bool
}

// Render writes r to w in either text or JSON form per opts.
func Render(w io.Writer, r Report, opts Options) error {
	if !opts.Verbose {
		for i := range r.Unallocated {
			r.Unallocated[i].FlexibilityClass = 0
		}
	}
	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return renderText(w, r, opts)
}

func renderText(w io.Writer, r Report, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if len(r.Reels) == 0 {
		fmt.Fprintln(tw, "No reels were used.")
	}
	for _, reel := range r.Reels {
		fmt.Fprintf(tw, "Reel %s\tDE=%.3fm\tDI=%.3fm\tW=%.3fm\n", reel.ID, reel.DE, reel.DI, reel.W)
		fmt.Fprintf(tw, "  mass\t%.3f / %.3f ton\tvolume\t%.3f / %.3f m3\toccupancy\t%.1f%%\n",
			reel.MCur, reel.MMax, reel.VUsed, reel.VCap, reel.Occupancy*100)
		for li, layer := range reel.Layers {
			fmt.Fprintf(tw, "  layer %d\tbase=%.3fm\tthickness=%.3fm\tused=%.1f%%\n", li+1, layer.BaseDiam, layer.Thickness, layer.PctUsed*100)
			for _, p := range layer.Placements {
				fmt.Fprintf(tw, "    %s\td=%.1fmm\tn=%d\tlen=%.3fm\tr_mid=%.3fm\tside=%s\tmass=%.3fton\n",
					p.CableID, p.DiamMM, p.Tracks, p.Length, p.RMid, p.Side, p.MassContrib)
			}
		}
	}

	if len(r.Unallocated) == 0 {
		fmt.Fprintln(tw, "All cables were allocated.")
	} else {
		fmt.Fprintf(tw, "Unallocated cables: %d\n", len(r.Unallocated))
		for _, c := range r.Unallocated {
			if opts.Verbose {
				fmt.Fprintf(tw, "  %s\tresidual=%.3fm\tflexibility=%d\n", c.ID, c.ResidualLength, c.FlexibilityClass)
			} else {
				fmt.Fprintf(tw, "  %s\tresidual=%.3fm\n", c.ID, c.ResidualLength)
			}
		}
	}

	return tw.Flush()
}
