// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/markkurossi/tabulate"
	"github.com/p4tools/go-restrict/pkg/errs"
	"github.com/p4tools/go-restrict/pkg/interpreter"
	"github.com/p4tools/go-restrict/pkg/loader"
	"github.com/p4tools/go-restrict/pkg/schema"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// checkCmd validates a batch of table entries against the restrictions of a
// pipeline.
var checkCmd = &cobra.Command{
	Use:   "check [flags] entries_file",
	Short: "Check table entries against their entry restrictions.",
	Long: `Check every table entry in the given batch against the entry
restriction of its table and the action restriction of its action (when
present), reporting an explanation for each violation.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(2)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		info := readPipelineFile(GetString(cmd, "pipeline"))
		entries := readEntriesFile(args[0])
		//
		verdicts, err := checkEntries(entries, info)
		if err != nil {
			fmt.Println(err)
			// Distinguish caller mistakes from checker bugs.
			if errs.IsInternal(err) {
				os.Exit(3)
			}
			//
			os.Exit(2)
		}
		//
		violations := reportVerdicts(entries, verdicts, info, GetFlag(cmd, "quiet"))
		//
		if violations > 0 {
			os.Exit(1)
		}
	},
}

// checkEntries validates every entry concurrently.  Each goroutine carries
// its own caches, so entries never contend on shared state.
func checkEntries(entries []*interpreter.TableEntry, info *schema.ConstraintInfo) ([]string, error) {
	verdicts := make([]string, len(entries))
	//
	var group errgroup.Group
	//
	for i := range entries {
		i := i
		group.Go(func() error {
			reason, err := interpreter.ReasonEntryViolatesConstraint(entries[i], info)
			if err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			//
			verdicts[i] = reason
			//
			return nil
		})
	}
	//
	if err := group.Wait(); err != nil {
		return nil, err
	}
	//
	return verdicts, nil
}

// reportVerdicts prints a per-entry verdict table followed by the
// explanation for each violated restriction, returning the violation count.
func reportVerdicts(entries []*interpreter.TableEntry, verdicts []string, info *schema.ConstraintInfo, quiet bool) int {
	violations := 0
	//
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("#").SetAlign(tabulate.MR)
	tab.Header("Table").SetAlign(tabulate.ML)
	tab.Header("Verdict").SetAlign(tabulate.ML)
	//
	for i, verdict := range verdicts {
		row := tab.Row()
		row.Column(fmt.Sprintf("%d", i))
		row.Column(info.Table(entries[i].TableID).Name)
		//
		if verdict == "" {
			row.Column("ok")
		} else {
			row.Column("violation")
			violations++
		}
	}
	//
	tab.Print(os.Stdout)
	//
	if !quiet {
		for i, verdict := range verdicts {
			if verdict != "" {
				fmt.Printf("\nentry %d:\n%s", i, verdict)
			}
		}
	}
	//
	return violations
}

// readPipelineFile loads a pipeline description, or exits on failure.
func readPipelineFile(filename string) *schema.ConstraintInfo {
	if filename == "" {
		fmt.Println("a pipeline description is required (--pipeline)")
		os.Exit(2)
	}
	//
	info, err := loader.LoadPipelineFile(filename)
	if err != nil {
		fmt.Printf("%s: %v\n", filename, err)
		os.Exit(2)
	}
	//
	return info
}

// readEntriesFile loads a batch of table entries, or exits on failure.
func readEntriesFile(filename string) []*interpreter.TableEntry {
	entries, err := loader.LoadEntriesFile(filename)
	if err != nil {
		fmt.Printf("%s: %v\n", filename, err)
		os.Exit(2)
	}
	//
	return entries
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("pipeline", "p", "", "pipeline description to check against")
	checkCmd.Flags().BoolP("quiet", "q", false, "suppress per-violation explanations")
}
