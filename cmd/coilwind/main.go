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

// Command coilwind loads reel and cable definitions, winds the reels, and
// reports the resulting layout.
//
// Usage:
//
//	coilwind run -i cables.json -r reels.json
//	coilwind validate -i cables.json -r reels.json
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity string
	log := logrus.New()

	root := &cobra.Command{
		Use:   "coilwind",
		Short: "Wind cables onto reels using the radial bounded-knapsack allocator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(verbosity)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", verbosity, err)
			}
			log.SetLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&verbosity, "log-level", "warn", "log level: trace, debug, info, warn, error")

	root.AddCommand(newRunCmd(log))
	root.AddCommand(newValidateCmd(log))
	return root
}
