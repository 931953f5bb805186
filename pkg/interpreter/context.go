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
package interpreter

import (
	"math/big"

	"github.com/p4tools/go-restrict/pkg/source"
)

// TableEntryBinding is the parsed form of a table entry.  In contrast to the
// wire-level TableEntry, the key map is total: every key declared by the
// table is bound, omitted non-exact keys having been replaced by their
// canonical wildcard.
type TableEntryBinding struct {
	// TableName of the entry's table.
	TableName string
	// Priority of the entry.
	Priority *big.Int
	// Keys binds every declared key name to its runtime value.
	Keys map[string]Value
}

// ActionBinding is the parsed form of an action invocation, binding every
// declared parameter name to its (sign-corrected) integer value.
type ActionBinding struct {
	// ActionName of the invoked action.
	ActionName string
	// Params binds every declared parameter name to its value.
	Params map[string]*big.Int
}

// EvaluationContext carries everything an evaluation needs: the binding
// environment built from the instance under check, and the source of the
// constraint being evaluated (for quoting).  Exactly one of Entry and
// Invocation is set, matching whether a table or an action constraint is
// being evaluated.  A context is built per call and never outlives it; the
// constraint source is borrowed from the immutable pipeline metadata.
type EvaluationContext struct {
	// Entry binding, set when evaluating a table constraint.
	Entry *TableEntryBinding
	// Invocation binding, set when evaluating an action constraint.
	Invocation *ActionBinding
	// Source of the constraint under evaluation.
	Source *source.ConstraintSource
}
