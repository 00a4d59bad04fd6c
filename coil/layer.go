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

	"github.com/kestrelworks/coilwind/internal/eligibility"
)

// registerLayer records the selection's chosen tracks as Placements on
// layer, in ascending handle order so that placement listing order is
// deterministic regardless of map iteration order. It returns the
// layer's thickness (the largest cable diameter used), or 0 if nothing
// was placed.
//
// side alternates per placement for reporting only; it never affects
// feasibility or optimality (spec §4.5, §9).
func registerLayer(layer *Layer, selection map[CableHandle]int, items []eligibility.Item[CableHandle, *Cable], startSide Side) float64 {
	byHandle := make(map[CableHandle]eligibility.Item[CableHandle, *Cable], len(items))
	for _, it := range items {
		byHandle[it.Handle] = it
	}

	handles := make([]CableHandle, 0, len(selection))
	for h, n := range selection {
		if n > 0 {
			handles = append(handles, h)
		}
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	side := startSide
	var thickness float64
	order := 0
	for _, h := range handles {
		n := selection[h]
		it := byHandle[h]

		p := &Placement{
			Cable:  it.Ref,
			Tracks: n,
			Circum: it.Circum,
			Step:   it.Step,
			RMid:   it.RMid,
			Length: float64(n) * it.Circum,
			Side:   side,
			Order:  order,
		}
		layer.Placements = append(layer.Placements, p)

		if it.DMeters > thickness {
			thickness = it.DMeters
		}

		order++
		if side == SideLeft {
			side = SideRight
		} else {
			side = SideLeft
		}
	}

	layer.Thickness = thickness
	return thickness
}
