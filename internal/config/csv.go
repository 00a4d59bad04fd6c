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

package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// reelColumnAliases and cableColumnAliases map a canonical column name to
// every header spelling that
// should be accepted for it, carried over from the source's header
// remapping (services/leitor_excel.py) so spreadsheets exported under the
// older column names still load.
var reelColumnAliases = map[string][]string{
	"id":                {"ID", "Código", "Codigo"},
	"outer_diameter_m":  {"Diâmetro Externo (m)", "Diametro Externo (m)", "DE"},
	"inner_diameter_m":  {"Diâmetro Interno (m)", "Diametro Interno (m)", "DI"},
	"flange_width_m":    {"Comprimento (m)", "Largura (m)", "Comp"},
	"mass_max_kg":       {"Peso Máximo (kg)", "Peso Maximo (kg)", "Peso Max"},
	"packing_factor":    {"Fator de Empacotamento", "Phi"},
}

var cableColumnAliases = map[string][]string{
	"id":                   {"ID", "Código", "Codigo"},
	"diameter_m":           {"Diâmetro (m)", "Diametro (m)", "Diametro"},
	"required_length_m":    {"Comprimento Necessário (m)", "Comprimento Necessario (m)", "Comp Necessario"},
	"linear_mass_kg_per_m": {"Peso por Metro (kg/m)", "Peso Unitario"},
	"min_bend_radius_m":    {"Raio Mínimo (m)", "Raio Minimo (m)", "Raio Min"},
}

// LoadReelsCSV reads a reel table from a CSV file, resolving header
// aliases per reelColumnAliases. Optional columns (packing_factor) may be
// absent from the header entirely.
func LoadReelsCSV(path string) ([]ReelRecord, error) {
	rows, header, err := readCSVRows(path)
	if err != nil {
		return nil, err
	}
	idx, err := resolveColumns(header, reelColumnAliases, []string{"id", "outer_diameter_m", "inner_diameter_m", "flange_width_m", "mass_max_kg"})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	records := make([]ReelRecord, 0, len(rows))
	for i, row := range rows {
		r := ReelRecord{ID: field(row, idx, "id")}
		r.OuterDiamM, err = parseFloatField(row, idx, "outer_diameter_m")
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		r.InnerDiamM, err = parseFloatField(row, idx, "inner_diameter_m")
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		r.FlangeWidthM, err = parseFloatField(row, idx, "flange_width_m")
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		r.MassMaxKg, err = parseFloatField(row, idx, "mass_max_kg")
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		if j, ok := idx["packing_factor"]; ok && j < len(row) && row[j] != "" {
			r.PackingFactor, err = strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, rowErr(path, i, fmt.Errorf("packing_factor: %w", err))
			}
		}
		records = append(records, r)
	}
	return records, nil
}

// LoadCablesCSV reads a cable table from a CSV file, resolving header
// aliases per cableColumnAliases.
func LoadCablesCSV(path string) ([]CableRecord, error) {
	rows, header, err := readCSVRows(path)
	if err != nil {
		return nil, err
	}
	required := []string{"id", "diameter_m", "required_length_m", "linear_mass_kg_per_m", "min_bend_radius_m"}
	idx, err := resolveColumns(header, cableColumnAliases, required)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	records := make([]CableRecord, 0, len(rows))
	for i, row := range rows {
		c := CableRecord{ID: field(row, idx, "id")}
		c.DiamM, err = parseFloatField(row, idx, "diameter_m")
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		c.RequiredLen, err = parseFloatField(row, idx, "required_length_m")
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		c.LinearMass, err = parseFloatField(row, idx, "linear_mass_kg_per_m")
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		c.MinBendRad, err = parseFloatField(row, idx, "min_bend_radius_m")
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		records = append(records, c)
	}
	return records, nil
}

func readCSVRows(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err = r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

// resolveColumns maps each canonical field name to its column index in
// header, accepting any alias listed in aliases. required names that are
// absent under every alias are reported together.
func resolveColumns(header []string, aliases map[string][]string, required []string) (map[string]int, error) {
	byHeader := make(map[string]int, len(header))
	for i, h := range header {
		byHeader[h] = i
	}

	idx := make(map[string]int)
	for canonical, alts := range aliases {
		for _, alt := range alts {
			if i, ok := byHeader[alt]; ok {
				idx[canonical] = i
				break
			}
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %v", missing)
	}
	return idx, nil
}

func field(row []string, idx map[string]int, name string) string {
	if j, ok := idx[name]; ok && j < len(row) {
		return row[j]
	}
	return ""
}

func parseFloatField(row []string, idx map[string]int, name string) (float64, error) {
	v, err := strconv.ParseFloat(field(row, idx, name), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func rowErr(path string, i int, err error) error {
	return fmt.Errorf("%s: row %d: %w", path, i+1, err)
}
