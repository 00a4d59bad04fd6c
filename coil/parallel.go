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

import "github.com/kestrelworks/coilwind/internal/pool"

// Batch is one independent reel-winding job: a reel and the cable subset
// the caller has dedicated to it. WindBatches never checks for cables
// shared across batches — the caller is responsible for partitioning, per
// spec §5, since no cable may be wound by two reels concurrently.
type Batch struct {
	Reel   *Reel
	Cables []*Cable
}

// WindBatches winds every batch's reel against its own cable subset,
// fanning out across at most workers goroutines. Each batch is wholly
// independent: no residual map, reel, or cable crosses batch boundaries.
// This is for unrelated reel+cable-subset jobs a caller has already split
// up, not for filling one ordered sequence of reels from a shared cable
// pool — that is FillReels, which is inherently sequential (spec §5,
// Non-goals: no multi-reel global optimization).
func WindBatches(batches []Batch, workers int, opts WindOptions) [][]*Cable {
	unallocated := make([][]*Cable, len(batches))
	pool.Run(len(batches), workers, func(i int) {
		b := batches[i]
		unallocated[i] = WindReel(b.Reel, b.Cables, opts)
	})
	return unallocated
}
