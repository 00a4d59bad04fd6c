package coil_test

import (
	"math"
	"testing"

	"github.com/kestrelworks/coilwind/coil"
)

// seededCables builds a small deterministic fixture (no math/rand without
// a fixed seed, per the teacher's own discipline around reproducible
// tests): a handful of cables spanning a range of diameters, lengths and
// bend radii so every invariant in spec.md §8 gets genuinely exercised.
func seededCables(t *testing.T) []*coil.Cable {
	t.Helper()
	specs := []struct {
		id                     string
		diamM, lReq, mu, rMin float64
	}{
		{"c1", 0.020, 40, 0.30, 0.20},
		{"c2", 0.015, 60, 0.20, 0.15},
		{"c3", 0.025, 25, 0.45, 0.30},
		{"c4", 0.010, 100, 0.10, 0.10},
		{"c5", 0.030, 15, 0.60, 0.35},
		{"c6", 0.018, 50, 0.25, 0.18},
	}
	cables := make([]*coil.Cable, 0, len(specs))
	for _, s := range specs {
		cables = append(cables, mustCable(t, s.id, s.diamM, s.lReq, s.mu, s.rMin))
	}
	return cables
}

func TestInvariants_AfterWindReel(t *testing.T) {
	reel := mustReel(t, "r1", 2.0, 0.5, 1.0, 50, 0.85)
	cables := seededCables(t)

	coil.WindReel(reel, cables, coil.WindOptions{})

	const eps = 1e-9
	if reel.MCur > reel.MMax+eps {
		t.Fatalf("MCur=%g exceeds MMax=%g", reel.MCur, reel.MMax)
	}
	if reel.VUsed > reel.CapVolume()+eps {
		t.Fatalf("VUsed=%g exceeds CapVolume=%g", reel.VUsed, reel.CapVolume())
	}
	if reel.RadialExtent() > (reel.DE-reel.DI)/2.0+eps {
		t.Fatalf("RadialExtent=%g exceeds max=%g", reel.RadialExtent(), (reel.DE-reel.DI)/2.0)
	}

	for li, layer := range reel.Layers {
		var maxDiam float64
		for _, p := range layer.Placements {
			if p.RMid < p.Cable.RMin-eps {
				t.Fatalf("layer %d: placement %s r_mid=%g below r_min=%g", li, p.Cable.ID, p.RMid, p.Cable.RMin)
			}
			if p.Cable.DiamM() > maxDiam {
				maxDiam = p.Cable.DiamM()
			}
		}
		if math.Abs(layer.Thickness-maxDiam) > eps {
			t.Fatalf("layer %d: thickness=%g want max placed diameter=%g", li, layer.Thickness, maxDiam)
		}

		var usedWidth float64
		for _, p := range layer.Placements {
			maxTracks := int(reel.W / p.Step)
			n := p.Tracks
			if n > maxTracks {
				n = maxTracks
			}
			usedWidth += float64(n) * p.Step
		}
		if usedWidth > reel.W+eps {
			t.Fatalf("layer %d: used width=%g exceeds flange width=%g", li, usedWidth, reel.W)
		}
	}

	totalByCable := make(map[coil.CableHandle]float64)
	for _, layer := range reel.Layers {
		for _, p := range layer.Placements {
			totalByCable[p.Cable.Handle] += p.Length
		}
	}
	for _, c := range cables {
		if totalByCable[c.Handle] > c.LReq+eps {
			t.Fatalf("cable %s: total placed length=%g exceeds L_req=%g", c.ID, totalByCable[c.Handle], c.LReq)
		}
	}
}

func TestInvariants_DeterminismAcrossRuns(t *testing.T) {
	run := func() (layerCount int, placementCounts []int) {
		reel := mustReel(t, "r1", 2.0, 0.5, 1.0, 50, 0.85)
		cables := seededCables(t)
		coil.WindReel(reel, cables, coil.WindOptions{})
		for _, l := range reel.Layers {
			placementCounts = append(placementCounts, len(l.Placements))
		}
		return len(reel.Layers), placementCounts
	}

	n1, p1 := run()
	n2, p2 := run()

	if n1 != n2 {
		t.Fatalf("layer count differs across runs: %d vs %d", n1, n2)
	}
	if len(p1) != len(p2) {
		t.Fatalf("placement-count slices differ in length: %v vs %v", p1, p2)
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("layer %d placement count differs: %d vs %d", i, p1[i], p2[i])
		}
	}
}

func TestInvariants_MonotonicityInMassCap(t *testing.T) {
	totalLength := func(mMax float64) float64 {
		reel := mustReel(t, "r1", 2.0, 0.5, 1.0, mMax, 0.85)
		fresh := seededCables(t)
		coil.WindReel(reel, fresh, coil.WindOptions{})
		var total float64
		for _, l := range reel.Layers {
			for _, p := range l.Placements {
				total += p.Length
			}
		}
		return total
	}

	low := totalLength(5)
	high := totalLength(50)
	if high < low-1e-9 {
		t.Fatalf("increasing MMax decreased total allocated length: %g (MMax=5) -> %g (MMax=50)", low, high)
	}
}
