package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/coilwind/internal/config"
)

func TestValidate_AcceptsWellFormedDocument(t *testing.T) {
	doc := &config.Document{
		Reels: []config.ReelRecord{
			{ID: "r1", OuterDiamM: 2, InnerDiamM: 0.5, FlangeWidthM: 1, MassMaxKg: 5000, PackingFactor: 0.85},
		},
		Cables: []config.CableRecord{
			{ID: "c1", DiamM: 0.02, RequiredLen: 40, LinearMass: 0.3, MinBendRad: 0.2},
		},
	}

	require.NoError(t, config.Validate(doc))
}

func TestValidate_ReportsEveryFailureTogether(t *testing.T) {
	doc := &config.Document{
		Reels: []config.ReelRecord{
			{ID: "", OuterDiamM: 0.5, InnerDiamM: 0.5, FlangeWidthM: 0, MassMaxKg: -1},
		},
		Cables: []config.CableRecord{
			{ID: "c1", DiamM: 0, RequiredLen: -5, LinearMass: 0, MinBendRad: 0},
		},
	}

	err := config.Validate(doc)
	require.Error(t, err)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)

	// Every independently broken field must be reported in the same pass,
	// not just the first one encountered.
	require.GreaterOrEqual(t, len(verr.Failures), 6, "want every invalid field reported, got %v", verr.Failures)
}

func TestValidate_DuplicateIDs(t *testing.T) {
	doc := &config.Document{
		Reels: []config.ReelRecord{
			{ID: "r1", OuterDiamM: 2, InnerDiamM: 0.5, FlangeWidthM: 1, MassMaxKg: 5000},
			{ID: "r1", OuterDiamM: 2, InnerDiamM: 0.5, FlangeWidthM: 1, MassMaxKg: 5000},
		},
	}

	err := config.Validate(doc)
	require.Error(t, err)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	found := false
	for _, f := range verr.Failures {
		if f != "" && (f == "reels[1] (id=\"r1\"): duplicate reel id") {
			found = true
		}
	}
	require.True(t, found, "want a duplicate-id failure, got %v", verr.Failures)
}

func TestValidate_DiameterOrdering(t *testing.T) {
	doc := &config.Document{
		Reels: []config.ReelRecord{
			{ID: "r1", OuterDiamM: 0.4, InnerDiamM: 0.5, FlangeWidthM: 1, MassMaxKg: 5000},
		},
	}

	require.Error(t, config.Validate(doc))
}

func TestLoad_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	body := `{
		"reels": [{"id": "r1", "outer_diameter_m": 2, "inner_diameter_m": 0.5, "flange_width_m": 1, "mass_max_kg": 5000}],
		"cables": [{"id": "c1", "diameter_m": 0.02, "required_length_m": 40, "linear_mass_kg_per_m": 0.3, "min_bend_radius_m": 0.2}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	doc, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Reels, 1)
	require.Len(t, doc.Cables, 1)
	require.Equal(t, "r1", doc.Reels[0].ID)
}

func TestLoad_YAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.yaml")
	body := "reels:\n  - id: r1\n    outer_diameter_m: 2\n    inner_diameter_m: 0.5\n    flange_width_m: 1\n    mass_max_kg: 5000\ncables:\n  - id: c1\n    diameter_m: 0.02\n    required_length_m: 40\n    linear_mass_kg_per_m: 0.3\n    min_bend_radius_m: 0.2\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	doc, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Reels, 1)
	require.Equal(t, "c1", doc.Cables[0].ID)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	body := `{"reels": [{"id": "r1", "outer_diameter_m": 2, "inner_diameter_m": 0.5, "flange_width_m": 1, "mass_max_kg": 5000, "bogus_field": 1}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoad_RejectsInvalidDocumentAfterDecode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	body := `{"reels": [{"id": "", "outer_diameter_m": 0.2, "inner_diameter_m": 0.5, "flange_width_m": 1, "mass_max_kg": 5000}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.toml")
	require.NoError(t, os.WriteFile(path, []byte("reels = []"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestBuildReelsAndCables(t *testing.T) {
	records := []config.ReelRecord{
		{ID: "r1", OuterDiamM: 2, InnerDiamM: 0.5, FlangeWidthM: 1, MassMaxKg: 5000, PackingFactor: 0.85},
	}
	reels, err := config.BuildReels(records)
	require.NoError(t, err)
	require.Len(t, reels, 1)
	require.Equal(t, "r1", reels[0].ID)
	require.InDelta(t, 5.0, reels[0].MMax, 1e-9)

	cableRecords := []config.CableRecord{
		{ID: "c1", DiamM: 0.02, RequiredLen: 40, LinearMass: 0.3, MinBendRad: 0.2},
	}
	cables, err := config.BuildCables(cableRecords)
	require.NoError(t, err)
	require.Len(t, cables, 1)
	require.Equal(t, "c1", cables[0].ID)
	require.InDelta(t, 40.0, cables[0].LReq, 1e-9)
}
