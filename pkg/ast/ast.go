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
package ast

import (
	"fmt"
	"math/big"

	"github.com/p4tools/go-restrict/pkg/source"
)

// Expression represents all of the different expression forms of the
// constraint language.  Every node is annotated with the result type assigned
// by the frontend's type checker and with the region of constraint source it
// was parsed from.  Expressions are immutable once built; node identity
// (pointer equality) is used as the key of evaluation and size caches.
type Expression interface {
	// Type returns the result type assigned to this node.
	Type() Type
	// Location returns the region of constraint source covered by this
	// node.
	Location() source.Location
	// sealed restricts implementations to this package.
	sealed()
}

// Node holds the annotations common to every expression form, and is
// embedded by each of them.
type Node struct {
	// Typ is the result type assigned by the type checker.
	Typ Type
	// Loc is the source region this node was parsed from.
	Loc source.Location
}

// Type returns the result type assigned to this node.
func (n *Node) Type() Type {
	return n.Typ
}

// Location returns the source region covered by this node.
func (n *Node) Location() source.Location {
	return n.Loc
}

func (n *Node) sealed() {}

// ============================================================================
// Constants
// ============================================================================

// BooleanConstant is a literal truth value.
type BooleanConstant struct {
	Node
	Value bool
}

// IntegerConstant is a literal integer of arbitrary precision.
type IntegerConstant struct {
	Node
	Value *big.Int
}

// ============================================================================
// Variables & projections
// ============================================================================

// Variable refers to a match key (in a table constraint) or an action
// parameter (in an action constraint) by name.
type Variable struct {
	Node
	Name string
}

// AttributeAccess reads a reserved entry attribute, such as priority, which
// is bound from the entry instance rather than from the pipeline metadata.
type AttributeAccess struct {
	Node
	Name string
}

// FieldAccess projects a named field out of a composite match-key value, for
// example the mask of a ternary key.
type FieldAccess struct {
	Node
	Base  Expression
	Field string
}

// ============================================================================
// Operators
// ============================================================================

// UnaryOp enumerates the unary operators.
type UnaryOp uint8

const (
	// Not is logical negation.
	Not UnaryOp = iota
	// Negate is arithmetic negation.
	Negate
)

// String returns the surface syntax of this operator.
func (op UnaryOp) String() string {
	if op == Not {
		return "!"
	}
	//
	return "-"
}

// UnaryExpression applies a unary operator to a single argument.
type UnaryExpression struct {
	Node
	Op  UnaryOp
	Arg Expression
}

// BinaryOp enumerates the binary operators.
type BinaryOp uint8

const (
	// Eq is equality.
	Eq BinaryOp = iota
	// Ne is inequality.
	Ne
	// Gt is strictly-greater comparison of integers.
	Gt
	// Ge is greater-or-equal comparison of integers.
	Ge
	// Lt is strictly-less comparison of integers.
	Lt
	// Le is less-or-equal comparison of integers.
	Le
	// And is short-circuit conjunction.
	And
	// Or is short-circuit disjunction.
	Or
	// Implies is short-circuit implication.
	Implies
	// Add is integer addition.
	Add
	// Sub is integer subtraction.
	Sub
	// Mul is integer multiplication.
	Mul
	// Concat is bit-concatenation of fixed-width integers.
	Concat
)

// String returns the surface syntax of this operator.
func (op BinaryOp) String() string {
	switch op {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	case And:
		return "&&"
	case Or:
		return "||"
	case Implies:
		return "->"
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Concat:
		return "::"
	}
	//
	return "?"
}

// IsConnective checks whether this operator is one of the short-circuit
// logical connectives.
func (op BinaryOp) IsConnective() bool {
	return op == And || op == Or || op == Implies
}

// BinaryExpression applies a binary operator to two arguments.
type BinaryExpression struct {
	Node
	Op    BinaryOp
	Left  Expression
	Right Expression
}

// TypeCast converts its argument to the type of the cast node itself, either
// between members of the integer family or from an integer to a match-key
// value.
type TypeCast struct {
	Node
	Arg Expression
}

// ============================================================================
// Debug printing
// ============================================================================

// String renders an expression in (roughly) the surface syntax, for debug
// output.  Diagnostics quote the original source text instead.
func String(expr Expression) string {
	switch e := expr.(type) {
	case *BooleanConstant:
		return fmt.Sprintf("%t", e.Value)
	case *IntegerConstant:
		return e.Value.String()
	case *Variable:
		return e.Name
	case *AttributeAccess:
		return fmt.Sprintf("::%s", e.Name)
	case *FieldAccess:
		return fmt.Sprintf("%s.%s", String(e.Base), e.Field)
	case *UnaryExpression:
		return fmt.Sprintf("%s(%s)", e.Op.String(), String(e.Arg))
	case *BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", String(e.Left), e.Op.String(), String(e.Right))
	case *TypeCast:
		return fmt.Sprintf("%s(%s)", e.Typ.String(), String(e.Arg))
	}
	//
	return "<nil>"
}
