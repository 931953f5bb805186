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

// Package interpreter evaluates compiled entry and action restrictions
// against concrete table entries, and explains violations by quoting a
// minimal offending subexpression.
package interpreter

import (
	"fmt"
	"math/big"

	"github.com/p4tools/go-restrict/pkg/ast"
)

// Value is the runtime result of evaluating an expression: a truth value, an
// unbounded integer, or one of the four composite match-key forms.  Values
// form a closed sum; dispatch is by case analysis on the concrete type.
// Fixed-width integer types exist only statically and are carried as Int at
// runtime.
type Value interface {
	fmt.Stringer
	// isValue restricts implementations to this package.
	isValue()
}

// Bool is a runtime truth value.
type Bool bool

// Int is a runtime integer of arbitrary precision.
type Int struct {
	Value *big.Int
}

// Exact is the runtime form of an exact match key.
type Exact struct {
	Value *big.Int
}

// Ternary is the runtime form of a ternary match key.  Optional keys are
// also represented this way, their mask being all zeros or all ones.
type Ternary struct {
	Value *big.Int
	Mask  *big.Int
}

// Lpm is the runtime form of a longest-prefix match key.
type Lpm struct {
	Value        *big.Int
	PrefixLength *big.Int
}

// Range is the runtime form of a range match key.
type Range struct {
	Low  *big.Int
	High *big.Int
}

func (v Bool) isValue()    {}
func (v Int) isValue()     {}
func (v Exact) isValue()   {}
func (v Ternary) isValue() {}
func (v Lpm) isValue()     {}
func (v Range) isValue()   {}

// String renders this value for diagnostics.
func (v Bool) String() string {
	return fmt.Sprintf("%t", bool(v))
}

// String renders this value for diagnostics.
func (v Int) String() string {
	return v.Value.String()
}

// String renders this value for diagnostics.
func (v Exact) String() string {
	return fmt.Sprintf("Exact{value: %s}", v.Value.String())
}

// String renders this value for diagnostics.
func (v Ternary) String() string {
	return fmt.Sprintf("Ternary{value: %s, mask: %s}", v.Value.String(), v.Mask.String())
}

// String renders this value for diagnostics.
func (v Lpm) String() string {
	return fmt.Sprintf("Lpm{value: %s, prefix_length: %s}", v.Value.String(), v.PrefixLength.String())
}

// String renders this value for diagnostics.
func (v Range) String() string {
	return fmt.Sprintf("Range{low: %s, high: %s}", v.Low.String(), v.High.String())
}

// valuesEqual compares two values structurally.  The ok result is false when
// the two values have different runtime shapes, which a well-typed
// expression can never produce.
func valuesEqual(left Value, right Value) (equal bool, ok bool) {
	switch l := left.(type) {
	case Bool:
		if r, match := right.(Bool); match {
			return l == r, true
		}
	case Int:
		if r, match := right.(Int); match {
			return l.Value.Cmp(r.Value) == 0, true
		}
	case Exact:
		if r, match := right.(Exact); match {
			return l.Value.Cmp(r.Value) == 0, true
		}
	case Ternary:
		if r, match := right.(Ternary); match {
			return l.Value.Cmp(r.Value) == 0 && l.Mask.Cmp(r.Mask) == 0, true
		}
	case Lpm:
		if r, match := right.(Lpm); match {
			return l.Value.Cmp(r.Value) == 0 && l.PrefixLength.Cmp(r.PrefixLength) == 0, true
		}
	case Range:
		if r, match := right.(Range); match {
			return l.Low.Cmp(r.Low) == 0 && l.High.Cmp(r.High) == 0, true
		}
	}
	//
	return false, false
}

// conformsTo checks that the runtime shape of a value matches a static type.
// This is the dynamic type check guarding against frontend bugs; a well-typed
// AST never fails it.
func conformsTo(value Value, typ ast.Type) bool {
	switch value.(type) {
	case Bool:
		return typ.Kind == ast.KindBoolean
	case Int:
		return typ.Kind == ast.KindArbitraryInt || typ.IsFixedWidthInt()
	case Exact:
		return typ.Kind == ast.KindExact
	case Ternary:
		return typ.Kind == ast.KindTernary
	case Lpm:
		return typ.Kind == ast.KindLpm
	case Range:
		return typ.Kind == ast.KindRange
	}
	//
	return false
}
