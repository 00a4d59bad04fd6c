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
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kestrelworks/coilwind/internal/config"
)

func newValidateCmd(log *logrus.Logger) *cobra.Command {
	var reelsPath, cablesPath string
	var csv bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate inputs without winding any reel",
		RunE: func(cmd *cobra.Command, args []string) error {
			reelRecords, cableRecords, err := loadInputs(reelsPath, cablesPath, csv)
			if err != nil {
				return err
			}
			if err := config.Validate(&config.Document{Reels: reelRecords, Cables: cableRecords}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d reel(s), %d cable(s)\n", len(reelRecords), len(cableRecords))
			return nil
		},
	}
	cmd.SilenceUsage = true
	cmd.Flags().StringVarP(&cablesPath, "cables", "i", "", "path to the cable input (required)")
	cmd.Flags().StringVarP(&reelsPath, "reels", "r", "", "path to the reel input (required)")
	cmd.Flags().BoolVar(&csv, "csv", false, "treat --cables/--reels as CSV tables instead of JSON/YAML")
	cmd.MarkFlagRequired("cables")
	cmd.MarkFlagRequired("reels")
	return cmd
}
