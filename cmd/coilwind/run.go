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

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kestrelworks/coilwind/coil"
	"github.com/kestrelworks/coilwind/coil/legacy"
	"github.com/kestrelworks/coilwind/internal/config"
	"github.com/kestrelworks/coilwind/internal/knapsack"
	"github.com/kestrelworks/coilwind/internal/report"
)

type runOptions struct {
	reelsPath  string
	cablesPath string
	csv        bool
	objective  string
	allocator  string
	jsonOut    bool
	verbose    bool
}

func newRunCmd(log *logrus.Logger) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load inputs, wind reels, and print the resulting layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.OutOrStdout(), log, opts)
		},
	}
	cmd.SilenceUsage = true
	cmd.Flags().StringVarP(&opts.cablesPath, "cables", "i", "", "path to the cable input (required)")
	cmd.Flags().StringVarP(&opts.reelsPath, "reels", "r", "", "path to the reel input (required)")
	cmd.Flags().BoolVar(&opts.csv, "csv", false, "treat --cables/--reels as CSV tables instead of JSON/YAML")
	cmd.Flags().StringVar(&opts.objective, "objective", "width-only", "knapsack objective: width-only, width-then-length, width-then-balance")
	cmd.Flags().StringVar(&opts.allocator, "allocator", "radial", "allocator: radial (default) or hex (legacy)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit JSON instead of a text table")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "include the flexibility-class column for unallocated cables")
	cmd.MarkFlagRequired("cables")
	cmd.MarkFlagRequired("reels")
	return cmd
}

func runRun(stdout io.Writer, log *logrus.Logger, opts runOptions) error {
	reelRecords, cableRecords, err := loadInputs(opts.reelsPath, opts.cablesPath, opts.csv)
	if err != nil {
		return err
	}
	if err := config.Validate(&config.Document{Reels: reelRecords, Cables: cableRecords}); err != nil {
		return err
	}

	reels, err := config.BuildReels(reelRecords)
	if err != nil {
		return err
	}
	cables, err := config.BuildCables(cableRecords)
	if err != nil {
		return err
	}

	value, err := resolveObjective(opts.objective)
	if err != nil {
		return err
	}

	var result coil.Result
	switch opts.allocator {
	case "radial", "":
		result = coil.FillReels(reels, cables, coil.WindOptions{
			Value: value,
			Log:   logrus.NewEntry(log),
		})
	case "hex":
		result = runHexAllocator(reels, cables)
	default:
		return fmt.Errorf("unknown --allocator %q (want radial or hex)", opts.allocator)
	}

	rep := report.Build(result)
	if err := report.Render(stdout, rep, report.Options{JSON: opts.jsonOut, Verbose: opts.verbose}); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if len(result.CablesUnallocated) > 0 {
		return errUnallocated
	}
	return nil
}

// errUnallocated signals a non-zero exit when cables remain unallocated,
// per spec §7's CLI exit-code policy note. It is returned after the report
// has been written, and is printed to stderr like any other error.
var errUnallocated = errors.New("one or more cables were not fully allocated")

func runHexAllocator(reels []*coil.Reel, cables []*coil.Cable) coil.Result {
	var used []*coil.Reel
	remaining := cables
	for _, reel := range reels {
		if len(remaining) == 0 {
			break
		}
		_, rejected := legacy.PlaceHexagonal(reel, remaining, legacy.Options{})
		if len(rejected) < len(remaining) {
			used = append(used, reel)
		}
		remaining = rejected
	}
	return coil.Result{ReelsUsed: used, CablesUnallocated: remaining}
}

func resolveObjective(name string) (knapsack.ValueFunc, error) {
	switch strings.ToLower(name) {
	case "width-only", "":
		return knapsack.WidthOnly, nil
	case "width-then-length":
		return knapsack.WidthThenLength, nil
	case "width-then-balance":
		return knapsack.WidthThenBalance, nil
	default:
		return nil, fmt.Errorf("unknown --objective %q", name)
	}
}

func loadInputs(reelsPath, cablesPath string, csv bool) ([]config.ReelRecord, []config.CableRecord, error) {
	if csv {
		reels, err := config.LoadReelsCSV(reelsPath)
		if err != nil {
			return nil, nil, err
		}
		cables, err := config.LoadCablesCSV(cablesPath)
		if err != nil {
			return nil, nil, err
		}
		return reels, cables, nil
	}

	reelDoc, err := config.Load(reelsPath)
	if err != nil {
		return nil, nil, err
	}
	cableDoc, err := config.Load(cablesPath)
	if err != nil {
		return nil, nil, err
	}
	return reelDoc.Reels, cableDoc.Cables, nil
}
