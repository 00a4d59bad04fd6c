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

// Package config holds the typed input records for reels and cables, and
// strict decode/validate logic for JSON, YAML and CSV sources. Every field
// is read explicitly — there is no duck-typed "attribute, or default"
// fallback inside the core; absent optional fields are zero-valued on the
// typed record and defaulted once, at the loader boundary.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kestrelworks/coilwind/coil"
)

// ReelRecord is the input schema for one reel (spec §6). MassMaxKg is in
// kilograms on the wire and converted to tons by the caller.
type ReelRecord struct {
	ID            string  `json:"id" yaml:"id"`
	OuterDiamM    float64 `json:"outer_diameter_m" yaml:"outer_diameter_m"`
	InnerDiamM    float64 `json:"inner_diameter_m" yaml:"inner_diameter_m"`
	FlangeWidthM  float64 `json:"flange_width_m" yaml:"flange_width_m"`
	MassMaxKg     float64 `json:"mass_max_kg" yaml:"mass_max_kg"`
	PackingFactor float64 `json:"packing_factor,omitempty" yaml:"packing_factor,omitempty"`
}

// CableRecord is the input schema for one cable (spec §6).
type CableRecord struct {
	ID          string  `json:"id" yaml:"id"`
	DiamM       float64 `json:"diameter_m" yaml:"diameter_m"`
	RequiredLen float64 `json:"required_length_m" yaml:"required_length_m"`
	LinearMass  float64 `json:"linear_mass_kg_per_m" yaml:"linear_mass_kg_per_m"`
	MinBendRad  float64 `json:"min_bend_radius_m" yaml:"min_bend_radius_m"`
}

// Document is the top-level decoded input file.
type Document struct {
	Reels  []ReelRecord  `json:"reels" yaml:"reels"`
	Cables []CableRecord `json:"cables" yaml:"cables"`
}

// ValidationError aggregates every field failure found across a Document,
// rather than stopping at the first, since the loader is a user-facing
// batch boundary (spec §6, replacing the source's one-field-at-a-time
// interactive retry loop).
type ValidationError struct {
	Failures []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input (%d issue(s)): %s", len(e.Failures), strings.Join(e.Failures, "; "))
}

// Load reads and strictly decodes a Document from path, selecting JSON or
// YAML by file extension, and validates it. CSV inputs use LoadReelsCSV
// and LoadCablesCSV instead
// (reel and cable tables live in separate files, matching the source's
// separate-sheet layout).
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc Document
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported input extension %q (want .json, .yaml or .yml)", ext)
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks every invariant in spec §6 and returns a *ValidationError
// listing every failure found, or nil if doc is fully valid.
func Validate(doc *Document) error {
	var failures []string

	seenReel := make(map[string]bool, len(doc.Reels))
	for i, r := range doc.Reels {
		tag := fmt.Sprintf("reels[%d] (id=%q)", i, r.ID)
		if r.ID == "" {
			failures = append(failures, tag+": id must not be empty")
		} else if seenReel[r.ID] {
			failures = append(failures, tag+": duplicate reel id")
		}
		seenReel[r.ID] = true

		if !(r.OuterDiamM > r.InnerDiamM && r.InnerDiamM > 0) {
			failures = append(failures, fmt.Sprintf("%s: require outer_diameter_m > inner_diameter_m > 0, got DE=%g DI=%g", tag, r.OuterDiamM, r.InnerDiamM))
		}
		if r.FlangeWidthM <= 0 {
			failures = append(failures, fmt.Sprintf("%s: flange_width_m must be > 0, got %g", tag, r.FlangeWidthM))
		}
		if r.MassMaxKg <= 0 {
			failures = append(failures, fmt.Sprintf("%s: mass_max_kg must be > 0, got %g", tag, r.MassMaxKg))
		}
		if r.PackingFactor != 0 && !(r.PackingFactor > 0 && r.PackingFactor <= 1) {
			failures = append(failures, fmt.Sprintf("%s: packing_factor must be in (0,1] when set, got %g", tag, r.PackingFactor))
		}
	}

	seenCable := make(map[string]bool, len(doc.Cables))
	for i, c := range doc.Cables {
		tag := fmt.Sprintf("cables[%d] (id=%q)", i, c.ID)
		if c.ID == "" {
			failures = append(failures, tag+": id must not be empty")
		} else if seenCable[c.ID] {
			failures = append(failures, tag+": duplicate cable id")
		}
		seenCable[c.ID] = true

		if c.DiamM <= 0 {
			failures = append(failures, fmt.Sprintf("%s: diameter_m must be > 0, got %g", tag, c.DiamM))
		}
		if c.RequiredLen <= 0 {
			failures = append(failures, fmt.Sprintf("%s: required_length_m must be > 0, got %g", tag, c.RequiredLen))
		}
		if c.LinearMass <= 0 {
			failures = append(failures, fmt.Sprintf("%s: linear_mass_kg_per_m must be > 0, got %g", tag, c.LinearMass))
		}
		if c.MinBendRad <= 0 {
			failures = append(failures, fmt.Sprintf("%s: min_bend_radius_m must be > 0, got %g", tag, c.MinBendRad))
		}
	}

	if len(failures) > 0 {
		return &ValidationError{Failures: failures}
	}
	return nil
}

// BuildReels converts validated ReelRecords into coil.Reel values.
// BuildReels assumes doc already passed Validate.
func BuildReels(records []ReelRecord) ([]*coil.Reel, error) {
	reels := make([]*coil.Reel, 0, len(records))
	for _, r := range records {
		reel, err := coil.NewReel(r.ID, r.OuterDiamM, r.InnerDiamM, r.FlangeWidthM, r.MassMaxKg/1000.0, r.PackingFactor)
		if err != nil {
			return nil, fmt.Errorf("build reel %q: %w", r.ID, err)
		}
		reels = append(reels, reel)
	}
	return reels, nil
}

// BuildCables converts validated CableRecords into coil.Cable values.
// BuildCables assumes doc already passed Validate.
func BuildCables(records []CableRecord) ([]*coil.Cable, error) {
	cables := make([]*coil.Cable, 0, len(records))
	for _, c := range records {
		cable, err := coil.NewCable(c.ID, c.DiamM, c.RequiredLen, c.LinearMass, c.MinBendRad)
		if err != nil {
			return nil, fmt.Errorf("build cable %q: %w", c.ID, err)
		}
		cables = append(cables, cable)
	}
	return cables, nil
}
