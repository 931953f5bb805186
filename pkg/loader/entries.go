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
package loader

import (
	"fmt"
	"math/big"
	"os"

	"github.com/p4tools/go-restrict/pkg/interpreter"
	"gopkg.in/yaml.v3"
)

type entriesDoc struct {
	Entries []entryDoc `yaml:"entries"`
}

type entryDoc struct {
	TableID  uint32         `yaml:"table_id"`
	Priority int64          `yaml:"priority"`
	Matches  []matchDoc     `yaml:"matches"`
	Action   *invocationDoc `yaml:"action,omitempty"`
}

// matchDoc is one match field; exactly one of the four payloads must be set.
// Integers are written as decimal or 0x-prefixed strings and converted to
// their canonical big-endian byte encoding.
type matchDoc struct {
	FieldID uint32      `yaml:"field_id"`
	Exact   *exactDoc   `yaml:"exact,omitempty"`
	Ternary *ternaryDoc `yaml:"ternary,omitempty"`
	Lpm     *lpmDoc     `yaml:"lpm,omitempty"`
	Range   *rangeDoc   `yaml:"range,omitempty"`
}

type exactDoc struct {
	Value string `yaml:"value"`
}

type ternaryDoc struct {
	Value string `yaml:"value"`
	Mask  string `yaml:"mask"`
}

type lpmDoc struct {
	Value        string `yaml:"value"`
	PrefixLength int32  `yaml:"prefix_length"`
}

type rangeDoc struct {
	Low  string `yaml:"low"`
	High string `yaml:"high"`
}

type invocationDoc struct {
	ID     uint32     `yaml:"id"`
	Params []paramDoc `yaml:"params"`
}

type paramDoc struct {
	ID    uint32 `yaml:"id"`
	Value string `yaml:"value"`
}

// LoadEntriesFile reads and parses a batch of table entries from a file.
func LoadEntriesFile(path string) ([]*interpreter.TableEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	return LoadEntries(data)
}

// LoadEntries parses a batch of table entries from a YAML document.
func LoadEntries(data []byte) ([]*interpreter.TableEntry, error) {
	var doc entriesDoc
	//
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed entries document: %w", err)
	}
	//
	entries := make([]*interpreter.TableEntry, len(doc.Entries))
	//
	for i := range doc.Entries {
		entry, err := loadEntry(&doc.Entries[i])
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		//
		entries[i] = entry
	}
	//
	return entries, nil
}

func loadEntry(doc *entryDoc) (*interpreter.TableEntry, error) {
	entry := &interpreter.TableEntry{
		TableID:  doc.TableID,
		Priority: doc.Priority,
		Matches:  make([]interpreter.FieldMatch, len(doc.Matches)),
	}
	//
	for i := range doc.Matches {
		match, err := loadMatch(&doc.Matches[i])
		if err != nil {
			return nil, err
		}
		//
		entry.Matches[i] = match
	}
	//
	if doc.Action != nil {
		action := &interpreter.Action{
			ActionID: doc.Action.ID,
			Params:   make([]interpreter.ActionParam, len(doc.Action.Params)),
		}
		//
		for i, param := range doc.Action.Params {
			value, err := wireBytes(param.Value)
			if err != nil {
				return nil, fmt.Errorf("param %d: %w", param.ID, err)
			}
			//
			action.Params[i] = interpreter.ActionParam{ParamID: param.ID, Value: value}
		}
		//
		entry.Action = action
	}
	//
	return entry, nil
}

func loadMatch(doc *matchDoc) (interpreter.FieldMatch, error) {
	match := interpreter.FieldMatch{FieldID: doc.FieldID}
	//
	switch {
	case doc.Exact != nil:
		value, err := wireBytes(doc.Exact.Value)
		if err != nil {
			return match, fmt.Errorf("field %d: %w", doc.FieldID, err)
		}
		//
		match.Exact = &interpreter.ExactMatch{Value: value}
	case doc.Ternary != nil:
		value, err := wireBytes(doc.Ternary.Value)
		if err != nil {
			return match, fmt.Errorf("field %d: %w", doc.FieldID, err)
		}
		//
		mask, err := wireBytes(doc.Ternary.Mask)
		if err != nil {
			return match, fmt.Errorf("field %d: %w", doc.FieldID, err)
		}
		//
		match.Ternary = &interpreter.TernaryMatch{Value: value, Mask: mask}
	case doc.Lpm != nil:
		value, err := wireBytes(doc.Lpm.Value)
		if err != nil {
			return match, fmt.Errorf("field %d: %w", doc.FieldID, err)
		}
		//
		match.Lpm = &interpreter.LpmMatch{Value: value, PrefixLength: doc.Lpm.PrefixLength}
	case doc.Range != nil:
		low, err := wireBytes(doc.Range.Low)
		if err != nil {
			return match, fmt.Errorf("field %d: %w", doc.FieldID, err)
		}
		//
		high, err := wireBytes(doc.Range.High)
		if err != nil {
			return match, fmt.Errorf("field %d: %w", doc.FieldID, err)
		}
		//
		match.Range = &interpreter.RangeMatch{Low: low, High: high}
	default:
		return match, fmt.Errorf("field %d carries no match payload", doc.FieldID)
	}
	//
	return match, nil
}

// wireBytes converts a decimal or 0x-prefixed integer literal into its
// canonical big-endian byte encoding.
func wireBytes(text string) ([]byte, error) {
	value, ok := new(big.Int).SetString(text, 0)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("malformed wire integer %q", text)
	}
	//
	return value.Bytes(), nil
}
