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

// Package schema provides the in-memory representation of a pipeline
// description as consumed by the constraint checker: tables with their match
// keys, actions with their parameters, and, for constrained elements, the
// compiled constraint expression together with its original source text.  A
// ConstraintInfo is built once by a loader and is immutable thereafter;
// checkers borrow it freely from multiple goroutines.
package schema

import (
	"fmt"

	"github.com/p4tools/go-restrict/pkg/ast"
	"github.com/p4tools/go-restrict/pkg/source"
)

// KeyInfo describes one match key of a table.
type KeyInfo struct {
	// ID of the match field within its table.
	ID uint32
	// Name of the match field within its table.
	Name string
	// Type of the key, always one of the four match-key kinds.
	Type ast.Type
}

// String renders this key for diagnostics.
func (p *KeyInfo) String() string {
	return fmt.Sprintf("KeyInfo{id: %d, name: %q, type: %s}", p.ID, p.Name, p.Type.String())
}

// ParamInfo describes one parameter of an action.
type ParamInfo struct {
	// ID of the parameter within its action.
	ID uint32
	// Name of the parameter within its action.
	Name string
	// Type of the parameter, always a fixed-width integer kind.
	Type ast.Type
}

// String renders this parameter for diagnostics.
func (p *ParamInfo) String() string {
	return fmt.Sprintf("ParamInfo{id: %d, name: %q, type: %s}", p.ID, p.Name, p.Type.String())
}

// TableInfo describes one table of the pipeline, including its optional
// entry restriction.
type TableInfo struct {
	// ID of the table within the pipeline.
	ID uint32
	// Name of the table within the pipeline.
	Name string
	// Constraint holds the compiled entry restriction, or nil if the table
	// is unconstrained.
	Constraint ast.Expression
	// Source of the entry restriction; arbitrary when Constraint is nil.
	Source *source.ConstraintSource
	// KeysByID indexes the table's match keys by field id.
	KeysByID map[uint32]*KeyInfo
	// KeysByName indexes the table's match keys by field name.
	KeysByName map[string]*KeyInfo
}

// ActionInfo describes one action of the pipeline, including its optional
// action restriction.
type ActionInfo struct {
	// ID of the action within the pipeline.
	ID uint32
	// Name of the action within the pipeline.
	Name string
	// Constraint holds the compiled action restriction, or nil if the
	// action is unconstrained.
	Constraint ast.Expression
	// Source of the action restriction; arbitrary when Constraint is nil.
	Source *source.ConstraintSource
	// ParamsByID indexes the action's parameters by id.
	ParamsByID map[uint32]*ParamInfo
	// ParamsByName indexes the action's parameters by name.
	ParamsByName map[string]*ParamInfo
}

// ConstraintInfo holds everything required for checking entries against a
// given pipeline.
type ConstraintInfo struct {
	// TablesByID indexes all tables of the pipeline by id.
	TablesByID map[uint32]*TableInfo
	// ActionsByID indexes all actions of the pipeline by id.
	ActionsByID map[uint32]*ActionInfo
}

// Table returns the metadata of a given table, or nil if the id is unknown.
func (p *ConstraintInfo) Table(id uint32) *TableInfo {
	return p.TablesByID[id]
}

// Action returns the metadata of a given action, or nil if the id is
// unknown.
func (p *ConstraintInfo) Action(id uint32) *ActionInfo {
	return p.ActionsByID[id]
}

// Validate checks the structural invariants of this pipeline description:
// id- and name-keyed indices must agree exactly, key types must be match-key
// kinds, parameter types must be fixed-width integers, and names within one
// element must be unambiguous.
func (p *ConstraintInfo) Validate() error {
	for id, table := range p.TablesByID {
		if id != table.ID {
			return fmt.Errorf("table %q indexed under id %d but declares id %d", table.Name, id, table.ID)
		}
		//
		if err := validateIndices(table.Name, "key", table.KeysByID, table.KeysByName); err != nil {
			return err
		}
		//
		for _, key := range table.KeysByID {
			if !key.Type.IsMatchKey() || !key.Type.IsWellFormed() {
				return fmt.Errorf("key %q of table %q has non-key type %s", key.Name, table.Name, key.Type.String())
			}
		}
	}
	//
	for id, action := range p.ActionsByID {
		if id != action.ID {
			return fmt.Errorf("action %q indexed under id %d but declares id %d", action.Name, id, action.ID)
		}
		//
		if err := validateIndices(action.Name, "param", action.ParamsByID, action.ParamsByName); err != nil {
			return err
		}
		//
		for _, param := range action.ParamsByID {
			if !param.Type.IsFixedWidthInt() || !param.Type.IsWellFormed() {
				return fmt.Errorf("param %q of action %q has non-integer type %s", param.Name, action.Name, param.Type.String())
			}
		}
	}
	//
	return nil
}

// validateIndices checks that an id-keyed and a name-keyed index describe
// exactly the same set of declarations.
func validateIndices[T interface {
	comparable
	fmt.Stringer
}](owner string, what string, byID map[uint32]T, byName map[string]T,
) error {
	if len(byID) != len(byName) {
		return fmt.Errorf("%s indices of %q disagree: %d by id versus %d by name", what, owner, len(byID), len(byName))
	}
	//
	for _, item := range byID {
		if named, ok := byName[nameOf(item)]; !ok || named != item {
			return fmt.Errorf("%s %s of %q missing from name index", what, item.String(), owner)
		}
	}
	//
	return nil
}

// nameOf extracts the declared name of a key or parameter.
func nameOf(item any) string {
	switch info := item.(type) {
	case *KeyInfo:
		return info.Name
	case *ParamInfo:
		return info.Name
	}
	//
	return ""
}
