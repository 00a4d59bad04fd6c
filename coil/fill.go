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

import "github.com/kestrelworks/coilwind/internal/geom"

// Result is the external-interface output structure: the reels that
// received at least one layer, and the cables left with residual length
// above tolerance once every reel has had its turn.
type Result struct {
	ReelsUsed         []*Reel
	CablesUnallocated []*Cable
}

// FillReels winds reels in the order given, one at a time — there is no
// multi-reel global optimization (spec §1 Non-goals): a cable's leftover
// length after one reel is simply offered to the next. Reels with no
// layers registered are omitted from Result.ReelsUsed.
func FillReels(reels []*Reel, cables []*Cable, opts WindOptions) Result {
	residual := make(map[CableHandle]float64, len(cables))
	for _, c := range cables {
		residual[c.Handle] = c.LReq
	}

	var used []*Reel
	for _, reel := range reels {
		before := len(reel.Layers)
		windReel(reel, cables, residual, opts)
		if len(reel.Layers) > before {
			used = append(used, reel)
		}
	}

	var unallocated []*Cable
	for _, c := range cables {
		if residual[c.Handle] > geom.Epsilon {
			unallocated = append(unallocated, c)
		}
	}
	return Result{ReelsUsed: used, CablesUnallocated: unallocated}
}
