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
	"sort"
	"strings"

	"github.com/markkurossi/tabulate"
	"github.com/p4tools/go-restrict/pkg/schema"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// describeCmd prints the tables and actions of a pipeline description
// together with their restrictions.
var describeCmd = &cobra.Command{
	Use:   "describe [flags] pipeline_file",
	Short: "Print the tables and actions of a pipeline description.",
	Long: `Print every table and action of a pipeline description, including
match keys, action parameters and any attached restriction.`,
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
		textWidth := GetUint(cmd, "textwidth")
		if textWidth == 0 {
			textWidth = terminalWidth()
		}
		//
		info := readPipelineFile(args[0])
		//
		printTables(info, textWidth)
		printActions(info, textWidth)
	},
}

func printTables(info *schema.ConstraintInfo, textWidth uint) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Table").SetAlign(tabulate.ML)
	tab.Header("Keys").SetAlign(tabulate.ML)
	tab.Header("Restricted").SetAlign(tabulate.ML)
	//
	for _, table := range sortedTables(info) {
		row := tab.Row()
		row.Column(fmt.Sprintf("%s (%d)", table.Name, table.ID))
		row.Column(describeKeys(table))
		//
		if table.Constraint != nil {
			row.Column("yes")
		} else {
			row.Column("no")
		}
	}
	//
	tab.Print(os.Stdout)
	//
	for _, table := range sortedTables(info) {
		if table.Source != nil {
			fmt.Printf("\nentry restriction of table %q:\n%s\n", table.Name, clipText(table.Source.Text, textWidth))
		}
	}
}

func printActions(info *schema.ConstraintInfo, textWidth uint) {
	if len(info.ActionsByID) == 0 {
		return
	}
	//
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Action").SetAlign(tabulate.ML)
	tab.Header("Params").SetAlign(tabulate.ML)
	tab.Header("Restricted").SetAlign(tabulate.ML)
	//
	for _, action := range sortedActions(info) {
		row := tab.Row()
		row.Column(fmt.Sprintf("%s (%d)", action.Name, action.ID))
		row.Column(describeParams(action))
		//
		if action.Constraint != nil {
			row.Column("yes")
		} else {
			row.Column("no")
		}
	}
	//
	fmt.Println()
	tab.Print(os.Stdout)
	//
	for _, action := range sortedActions(info) {
		if action.Source != nil {
			fmt.Printf("\naction restriction of action %q:\n%s\n", action.Name, clipText(action.Source.Text, textWidth))
		}
	}
}

func sortedTables(info *schema.ConstraintInfo) []*schema.TableInfo {
	tables := make([]*schema.TableInfo, 0, len(info.TablesByID))
	for _, table := range info.TablesByID {
		tables = append(tables, table)
	}
	//
	sort.Slice(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
	//
	return tables
}

func sortedActions(info *schema.ConstraintInfo) []*schema.ActionInfo {
	actions := make([]*schema.ActionInfo, 0, len(info.ActionsByID))
	for _, action := range info.ActionsByID {
		actions = append(actions, action)
	}
	//
	sort.Slice(actions, func(i, j int) bool { return actions[i].ID < actions[j].ID })
	//
	return actions
}

func describeKeys(table *schema.TableInfo) string {
	keys := make([]*schema.KeyInfo, 0, len(table.KeysByID))
	for _, key := range table.KeysByID {
		keys = append(keys, key)
	}
	//
	sort.Slice(keys, func(i, j int) bool { return keys[i].ID < keys[j].ID })
	//
	lines := make([]string, len(keys))
	for i, key := range keys {
		lines[i] = fmt.Sprintf("%s : %s", key.Name, key.Type.String())
	}
	//
	return strings.Join(lines, "\n")
}

func describeParams(action *schema.ActionInfo) string {
	params := make([]*schema.ParamInfo, 0, len(action.ParamsByID))
	for _, param := range action.ParamsByID {
		params = append(params, param)
	}
	//
	sort.Slice(params, func(i, j int) bool { return params[i].ID < params[j].ID })
	//
	lines := make([]string, len(params))
	for i, param := range params {
		lines[i] = fmt.Sprintf("%s : %s", param.Name, param.Type.String())
	}
	//
	return strings.Join(lines, "\n")
}

// clipText truncates each line of a restriction to the available width.
func clipText(text string, width uint) string {
	width = max(width, 4)
	lines := strings.Split(text, "\n")
	//
	for i, line := range lines {
		if uint(len(line)) > width {
			lines[i] = line[:width-3] + "..."
		}
	}
	//
	return strings.Join(lines, "\n")
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Uint("textwidth", 0, "maximum width of printed restrictions (0 means terminal width)")
}
