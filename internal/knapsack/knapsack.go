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

// Package knapsack solves the per-layer track selection problem: given a
// flange width budget (millimetres) and a set of eligible cables each
// capped at some maximum track count, choose how many tracks of each
// cable to lay down so that the occupied width is maximized.
//
// It is a classical bounded 0/1 knapsack. Because a cable's QMax can run
// into the thousands on a wide flange, each cable's bound is decomposed
// into O(log QMax) binary-grouped unit items rather than QMax individual
// copies, bounding the DP's item count without changing the optimum.
package knapsack

import (
	"github.com/kestrelworks/coilwind/internal/eligibility"
	"github.com/kestrelworks/coilwind/internal/geom"
)

// ValueFunc computes the DP value of one track of a cable, given its step
// (width consumed, metres), its per-track circumference (metres), and the
// cable's remaining required length (metres). The primary objective
// (occupied width) must always dominate; ValueFunc only breaks ties.
type ValueFunc func(stepM, circumM, lRemM float64) int64

// WidthOnly maximizes occupied width alone; all ties are left unbroken.
func WidthOnly(stepM, _, _ float64) int64 {
	return geom.RoundMM(stepM) * 1_000_000
}

// WidthThenLength breaks width ties in favor of the cable with the larger
// per-track circumference (outer layers first, all else equal).
func WidthThenLength(stepM, circumM, _ float64) int64 {
	w := geom.RoundMM(stepM)
	return w*1_000_000 + geom.RoundMM(circumM)
}

// WidthThenBalance breaks width ties in favor of reducing the largest
// outstanding residual length.
func WidthThenBalance(stepM, circumM, lRemM float64) int64 {
	w := geom.RoundMM(stepM)
	bonus := geom.RoundMM(circumM)
	if lRemM < circumM {
		bonus = geom.RoundMM(lRemM)
	}
	return w*1_000_000 + bonus
}

type unit struct {
	weightMM int64
	value    int64
	itemIdx  int
	count    int64 // how many unit tracks this synthetic item represents
}

// Select runs the bounded knapsack over items and returns, for each
// cable handle with a positive track count, how many tracks to lay.
// flangeWidthM is the layer's capacity in metres; value scores each unit
// track. An empty or all-zero result means no layer can be built from
// these items.
func Select[H comparable, Ref any](items []eligibility.Item[H, Ref], flangeWidthM float64, value ValueFunc) map[H]int {
	capMM := geom.RoundMM(flangeWidthM)
	if capMM <= 0 || len(items) == 0 {
		return nil
	}

	units := expandBinary(items, value)
	if len(units) == 0 {
		return nil
	}

	dp := make([]int64, capMM+1)
	keep := make([]int32, capMM+1) // unit index + 1, 0 means "no predecessor recorded"
	from := make([]int64, capMM+1)
	for w := range dp {
		dp[w] = -1
	}
	dp[0] = 0

	for k, u := range units {
		wmm := u.weightMM
		if wmm <= 0 || wmm > capMM {
			continue
		}
		for w := capMM; w >= wmm; w-- {
			if dp[w-wmm] == -1 {
				continue
			}
			cand := dp[w-wmm] + u.value
			if cand > dp[w] {
				dp[w] = cand
				keep[w] = int32(k + 1)
				from[w] = w - wmm
			}
		}
	}

	best := int64(-1)
	bestW := int64(0)
	for w := int64(0); w <= capMM; w++ {
		if dp[w] > best {
			best = dp[w]
			bestW = w
		}
	}
	if best <= 0 {
		return nil
	}

	result := make(map[H]int)
	w := bestW
	for w > 0 && keep[w] != 0 {
		k := keep[w] - 1
		u := units[k]
		item := items[u.itemIdx]
		result[item.Handle] += int(u.count)
		w = from[w]
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// expandBinary decomposes each item's QMax unit copies into O(log QMax)
// synthetic groups of sizes 1, 2, 4, ..., remainder, each treated as one
// DP unit whose weight and value scale with the group size. This is the
// standard bounded->0/1 binary-grouping reduction; it preserves the
// optimum because any achievable total from the ungrouped unit expansion
// can be built from a subset of these power-of-two groups.
func expandBinary[H comparable, Ref any](items []eligibility.Item[H, Ref], value ValueFunc) []unit {
	var units []unit
	for idx, it := range items {
		wmm := geom.RoundMM(it.Step)
		if wmm <= 0 || it.QMax <= 0 {
			continue
		}
		v := value(it.Step, it.Circum, it.LRem)

		remaining := int64(it.QMax)
		for k := int64(1); remaining > 0; k *= 2 {
			take := k
			if take > remaining {
				take = remaining
			}
			units = append(units, unit{
				weightMM: wmm * take,
				value:    v * take,
				itemIdx:  idx,
				count:    take,
			})
			remaining -= take
		}
	}
	return units
}
