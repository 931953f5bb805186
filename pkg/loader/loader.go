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

// Package loader reads pipeline descriptions and entry batches from YAML
// documents.  A pipeline description is the output of an external frontend
// which has already parsed and type-checked any constraint annotations; the
// loader therefore deserialises compiled ASTs rather than parsing constraint
// text itself, and preserves constraint source text verbatim for quoting.
package loader

import (
	"fmt"
	"os"

	"github.com/p4tools/go-restrict/pkg/ast"
	"github.com/p4tools/go-restrict/pkg/schema"
	"github.com/p4tools/go-restrict/pkg/source"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type pipelineDoc struct {
	Tables  []tableDoc  `yaml:"tables"`
	Actions []actionDoc `yaml:"actions"`
}

type tableDoc struct {
	ID         uint32         `yaml:"id"`
	Name       string         `yaml:"name"`
	Keys       []keyDoc       `yaml:"keys"`
	Constraint *constraintDoc `yaml:"constraint,omitempty"`
}

type actionDoc struct {
	ID         uint32         `yaml:"id"`
	Name       string         `yaml:"name"`
	Params     []keyDoc       `yaml:"params"`
	Constraint *constraintDoc `yaml:"constraint,omitempty"`
}

// keyDoc describes one match key or action parameter.
type keyDoc struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// constraintDoc carries a compiled constraint: its verbatim source text, the
// position of that text within its file, and the compiled AST.
type constraintDoc struct {
	File string   `yaml:"file"`
	Line int      `yaml:"line"`
	Text string   `yaml:"text"`
	AST  *nodeDoc `yaml:"ast"`
}

// LoadPipelineFile reads and parses a pipeline description from a file.
func LoadPipelineFile(path string) (*schema.ConstraintInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	return LoadPipeline(data)
}

// LoadPipeline parses a pipeline description from a YAML document, rebuilds
// the id- and name-keyed indices, and validates the result.
func LoadPipeline(data []byte) (*schema.ConstraintInfo, error) {
	var doc pipelineDoc
	//
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed pipeline description: %w", err)
	}
	//
	info := &schema.ConstraintInfo{
		TablesByID:  make(map[uint32]*schema.TableInfo, len(doc.Tables)),
		ActionsByID: make(map[uint32]*schema.ActionInfo, len(doc.Actions)),
	}
	//
	for i := range doc.Tables {
		table, err := loadTable(&doc.Tables[i])
		if err != nil {
			return nil, err
		}
		//
		if _, dup := info.TablesByID[table.ID]; dup {
			return nil, fmt.Errorf("duplicate table id %d", table.ID)
		}
		//
		info.TablesByID[table.ID] = table
	}
	//
	for i := range doc.Actions {
		action, err := loadAction(&doc.Actions[i])
		if err != nil {
			return nil, err
		}
		//
		if _, dup := info.ActionsByID[action.ID]; dup {
			return nil, fmt.Errorf("duplicate action id %d", action.ID)
		}
		//
		info.ActionsByID[action.ID] = action
	}
	//
	if err := info.Validate(); err != nil {
		return nil, err
	}
	//
	log.Debugf("loaded pipeline with %d table(s) and %d action(s)", len(info.TablesByID), len(info.ActionsByID))
	//
	return info, nil
}

func loadTable(doc *tableDoc) (*schema.TableInfo, error) {
	table := &schema.TableInfo{
		ID:         doc.ID,
		Name:       doc.Name,
		KeysByID:   make(map[uint32]*schema.KeyInfo, len(doc.Keys)),
		KeysByName: make(map[string]*schema.KeyInfo, len(doc.Keys)),
	}
	//
	for i := range doc.Keys {
		key, err := loadKey(&doc.Keys[i])
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", doc.Name, err)
		}
		//
		if _, dup := table.KeysByID[key.ID]; dup {
			return nil, fmt.Errorf("table %q: duplicate key id %d", doc.Name, key.ID)
		}
		//
		if _, dup := table.KeysByName[key.Name]; dup {
			return nil, fmt.Errorf("table %q: duplicate key name %q", doc.Name, key.Name)
		}
		//
		table.KeysByID[key.ID] = key
		table.KeysByName[key.Name] = key
	}
	//
	if doc.Constraint != nil {
		constraint, src, err := loadConstraint(doc.Constraint)
		if err != nil {
			return nil, fmt.Errorf("entry restriction of table %q: %w", doc.Name, err)
		}
		//
		table.Constraint, table.Source = constraint, src
		//
		log.Debugf("table %q carries an entry restriction of %d line(s)", doc.Name, 1+countNewlines(src.Text))
	}
	//
	return table, nil
}

func loadAction(doc *actionDoc) (*schema.ActionInfo, error) {
	action := &schema.ActionInfo{
		ID:           doc.ID,
		Name:         doc.Name,
		ParamsByID:   make(map[uint32]*schema.ParamInfo, len(doc.Params)),
		ParamsByName: make(map[string]*schema.ParamInfo, len(doc.Params)),
	}
	//
	for i := range doc.Params {
		param, err := loadParam(&doc.Params[i])
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", doc.Name, err)
		}
		//
		if _, dup := action.ParamsByID[param.ID]; dup {
			return nil, fmt.Errorf("action %q: duplicate param id %d", doc.Name, param.ID)
		}
		//
		if _, dup := action.ParamsByName[param.Name]; dup {
			return nil, fmt.Errorf("action %q: duplicate param name %q", doc.Name, param.Name)
		}
		//
		action.ParamsByID[param.ID] = param
		action.ParamsByName[param.Name] = param
	}
	//
	if doc.Constraint != nil {
		constraint, src, err := loadConstraint(doc.Constraint)
		if err != nil {
			return nil, fmt.Errorf("action restriction of action %q: %w", doc.Name, err)
		}
		//
		action.Constraint, action.Source = constraint, src
	}
	//
	return action, nil
}

func loadKey(doc *keyDoc) (*schema.KeyInfo, error) {
	typ, err := decodeType(doc.Type)
	if err != nil {
		return nil, err
	}
	//
	return &schema.KeyInfo{ID: doc.ID, Name: doc.Name, Type: typ}, nil
}

func loadParam(doc *keyDoc) (*schema.ParamInfo, error) {
	typ, err := decodeType(doc.Type)
	if err != nil {
		return nil, err
	}
	//
	return &schema.ParamInfo{ID: doc.ID, Name: doc.Name, Type: typ}, nil
}

func loadConstraint(doc *constraintDoc) (expr ast.Expression, src *source.ConstraintSource, err error) {
	if doc.Text == "" || doc.AST == nil {
		return nil, nil, fmt.Errorf("constraint requires both source text and a compiled AST")
	}
	//
	if expr, err = decodeExpression(doc.AST); err != nil {
		return nil, nil, err
	}
	//
	line := doc.Line
	if line == 0 {
		line = 1
	}
	//
	return expr, source.NewConstraintSource(doc.Text, doc.File, line), nil
}

func countNewlines(text string) int {
	count := 0
	//
	for _, c := range text {
		if c == '\n' {
			count++
		}
	}
	//
	return count
}
