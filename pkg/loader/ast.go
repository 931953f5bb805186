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
	"strconv"
	"strings"

	"github.com/p4tools/go-restrict/pkg/ast"
	"github.com/p4tools/go-restrict/pkg/source"
)

// nodeDoc is the serialised form of one AST node, as emitted by the external
// frontend that compiles constraint text.  Which members are meaningful
// depends on the kind.
type nodeDoc struct {
	Kind  string   `yaml:"kind"`
	Type  string   `yaml:"type"`
	Loc   locDoc   `yaml:"loc"`
	Value string   `yaml:"value,omitempty"`
	Name  string   `yaml:"name,omitempty"`
	Field string   `yaml:"field,omitempty"`
	Op    string   `yaml:"op,omitempty"`
	Arg   *nodeDoc `yaml:"arg,omitempty"`
	Left  *nodeDoc `yaml:"left,omitempty"`
	Right *nodeDoc `yaml:"right,omitempty"`
}

// locDoc is the serialised form of a source location.
type locDoc struct {
	Line    int `yaml:"line"`
	Col     int `yaml:"col"`
	EndLine int `yaml:"end_line"`
	EndCol  int `yaml:"end_col"`
}

// decodeLocation converts a serialised location, defaulting the end line to
// the start line for single-line regions.
func decodeLocation(doc locDoc) (source.Location, error) {
	loc := source.Location{Line: doc.Line, Column: doc.Col, EndLine: doc.EndLine, EndColumn: doc.EndCol}
	//
	if loc.EndLine == 0 {
		loc.EndLine = loc.Line
	}
	//
	if !loc.IsValid() {
		return loc, fmt.Errorf("malformed source location %s", loc.String())
	}
	//
	return loc, nil
}

// decodeType parses the surface syntax of a type: bool, int, or one of the
// parameterised forms bit<W>, signed<W>, exact<W>, ternary<W>, lpm<W> and
// range<W>.
func decodeType(text string) (ast.Type, error) {
	switch text {
	case "bool":
		return ast.Boolean(), nil
	case "int":
		return ast.ArbitraryInt(), nil
	}
	//
	open := strings.IndexByte(text, '<')
	//
	if open < 0 || !strings.HasSuffix(text, ">") {
		return ast.Type{}, fmt.Errorf("malformed type %q", text)
	}
	//
	width, err := strconv.ParseUint(text[open+1:len(text)-1], 10, 32)
	if err != nil || width == 0 {
		return ast.Type{}, fmt.Errorf("malformed width in type %q", text)
	}
	//
	switch text[:open] {
	case "bit":
		return ast.FixedUnsigned(uint(width)), nil
	case "signed":
		return ast.FixedSigned(uint(width)), nil
	case "exact":
		return ast.Exact(uint(width)), nil
	case "ternary":
		return ast.Ternary(uint(width)), nil
	case "lpm":
		return ast.Lpm(uint(width)), nil
	case "range":
		return ast.Range(uint(width)), nil
	}
	//
	return ast.Type{}, fmt.Errorf("unknown type %q", text)
}

var binaryOps = map[string]ast.BinaryOp{
	"==": ast.Eq, "!=": ast.Ne, ">": ast.Gt, ">=": ast.Ge, "<": ast.Lt, "<=": ast.Le,
	"&&": ast.And, "||": ast.Or, "->": ast.Implies,
	"+": ast.Add, "-": ast.Sub, "*": ast.Mul, "::": ast.Concat,
}

// decodeExpression rebuilds an expression tree from its serialised form.
func decodeExpression(doc *nodeDoc) (ast.Expression, error) {
	if doc == nil {
		return nil, fmt.Errorf("missing AST node")
	}
	//
	typ, err := decodeType(doc.Type)
	if err != nil {
		return nil, err
	}
	//
	loc, err := decodeLocation(doc.Loc)
	if err != nil {
		return nil, err
	}
	//
	node := ast.Node{Typ: typ, Loc: loc}
	//
	switch doc.Kind {
	case "bool":
		value, err := strconv.ParseBool(doc.Value)
		if err != nil {
			return nil, fmt.Errorf("malformed boolean constant %q", doc.Value)
		}
		//
		return &ast.BooleanConstant{Node: node, Value: value}, nil
	case "int":
		value, ok := new(big.Int).SetString(doc.Value, 0)
		if !ok {
			return nil, fmt.Errorf("malformed integer constant %q", doc.Value)
		}
		//
		return &ast.IntegerConstant{Node: node, Value: value}, nil
	case "var":
		if doc.Name == "" {
			return nil, fmt.Errorf("variable node without a name")
		}
		//
		return &ast.Variable{Node: node, Name: doc.Name}, nil
	case "attribute":
		if doc.Name == "" {
			return nil, fmt.Errorf("attribute node without a name")
		}
		//
		return &ast.AttributeAccess{Node: node, Name: doc.Name}, nil
	case "field":
		base, err := decodeExpression(doc.Arg)
		if err != nil {
			return nil, err
		}
		//
		return &ast.FieldAccess{Node: node, Base: base, Field: doc.Field}, nil
	case "unary":
		arg, err := decodeExpression(doc.Arg)
		if err != nil {
			return nil, err
		}
		//
		var op ast.UnaryOp
		//
		switch doc.Op {
		case "!":
			op = ast.Not
		case "-":
			op = ast.Negate
		default:
			return nil, fmt.Errorf("unknown unary operator %q", doc.Op)
		}
		//
		return &ast.UnaryExpression{Node: node, Op: op, Arg: arg}, nil
	case "binary":
		op, ok := binaryOps[doc.Op]
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", doc.Op)
		}
		//
		left, err := decodeExpression(doc.Left)
		if err != nil {
			return nil, err
		}
		//
		right, err := decodeExpression(doc.Right)
		if err != nil {
			return nil, err
		}
		//
		return &ast.BinaryExpression{Node: node, Op: op, Left: left, Right: right}, nil
	case "cast":
		arg, err := decodeExpression(doc.Arg)
		if err != nil {
			return nil, err
		}
		//
		return &ast.TypeCast{Node: node, Arg: arg}, nil
	}
	//
	return nil, fmt.Errorf("unknown AST node kind %q", doc.Kind)
}
