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

// The wire-level instance types below mirror the runtime protocol's table
// entry and action messages.  Integers travel as big-endian byte strings
// which may be shorter than their declared width; leading zero bytes are
// allowed but not required.

// TableEntry is a wire-level table entry awaiting validation.  Matches may
// be sparse: a non-exact key omitted from the list matches everything.
type TableEntry struct {
	// TableID identifies the table this entry belongs to.
	TableID uint32
	// Matches carries the entry's match fields, each identified by key id.
	Matches []FieldMatch
	// Priority of the entry.
	Priority int64
	// Action optionally identifies the action invoked by this entry.
	Action *Action
}

// FieldMatch is one match field of a table entry.  Exactly one of the four
// payload members must be set, and it must agree with the declared match
// kind of the field.
type FieldMatch struct {
	// FieldID identifies the match key within the table.
	FieldID uint32
	// Exact payload, if this is an exact match.
	Exact *ExactMatch
	// Ternary payload, if this is a ternary match.
	Ternary *TernaryMatch
	// Lpm payload, if this is a longest-prefix match.
	Lpm *LpmMatch
	// Range payload, if this is a range match.
	Range *RangeMatch
}

// ExactMatch carries the value of an exact match field.
type ExactMatch struct {
	Value []byte
}

// TernaryMatch carries the value and mask of a ternary match field.
type TernaryMatch struct {
	Value []byte
	Mask  []byte
}

// LpmMatch carries the value and prefix length of a longest-prefix match
// field.
type LpmMatch struct {
	Value        []byte
	PrefixLength int32
}

// RangeMatch carries the endpoints of a range match field.
type RangeMatch struct {
	Low  []byte
	High []byte
}

// Action is a wire-level action invocation.
type Action struct {
	// ActionID identifies the action being invoked.
	ActionID uint32
	// Params carries the invocation's arguments, each identified by
	// parameter id.
	Params []ActionParam
}

// ActionParam is one argument of an action invocation.  Signed parameters
// are transmitted as the unsigned two's-complement bit pattern of their
// declared width.
type ActionParam struct {
	ParamID uint32
	Value   []byte
}
