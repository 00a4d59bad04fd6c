package coil_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/kestrelworks/coilwind/coil"
)

// snapshot captures everything about a wound reel that must be
// byte-identical across two runs on the same input (spec.md §8
// determinism property), without pulling in the Cable pointers
// themselves (two independent NewCable calls never compare equal by
// go-cmp's default pointer semantics).
type snapshot struct {
	Layers []layerSnapshot
}

type layerSnapshot struct {
	DBase, Thickness float64
	Placements       []placementSnapshot
}

type placementSnapshot struct {
	CableID           string
	Tracks            int
	Circum, Step, RMid, Length float64
	Side              string
}

func snapshotReel(reel *coil.Reel) snapshot {
	s := snapshot{}
	for _, l := range reel.Layers {
		ls := layerSnapshot{DBase: l.DBase, Thickness: l.Thickness}
		for _, p := range l.Placements {
			ls.Placements = append(ls.Placements, placementSnapshot{
				CableID: p.Cable.ID,
				Tracks:  p.Tracks,
				Circum:  p.Circum,
				Step:    p.Step,
				RMid:    p.RMid,
				Length:  p.Length,
				Side:    p.Side.String(),
			})
		}
		s.Layers = append(s.Layers, ls)
	}
	return s
}

func TestWindReel_DeterministicAcrossIdenticalRuns(t *testing.T) {
	build := func() *coil.Reel {
		reel := mustReel(t, "r1", 2.0, 0.5, 1.0, 50, 0.85)
		cables := seededCables(t)
		coil.WindReel(reel, cables, coil.WindOptions{})
		return reel
	}

	snap1 := snapshotReel(build())
	snap2 := snapshotReel(build())

	if diff := cmp.Diff(snap1, snap2, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("two runs over identical input produced different layouts (-first +second):\n%s", diff)
	}
}
