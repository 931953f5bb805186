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
	"fmt"
	"math/big"

	"github.com/p4tools/go-restrict/pkg/ast"
	"github.com/p4tools/go-restrict/pkg/errs"
	"github.com/p4tools/go-restrict/pkg/schema"
)

// EvaluationCache memoises the results of boolean subexpressions by node
// identity.  Sharing one cache between evaluation and explanation keeps the
// explanation search linear.  A nil cache disables memoisation without
// changing any produced value.
type EvaluationCache map[ast.Expression]bool

// Eval evaluates an expression under the given context to a runtime value.
// Every production is followed by a dynamic type check against the node's
// declared type; a mismatch means the frontend mis-typed the constraint and
// is reported as an internal error quoting the offending source region.
func Eval(expr ast.Expression, ctx *EvaluationContext, cache EvaluationCache) (Value, error) {
	boolean := expr.Type().Kind == ast.KindBoolean
	//
	if cache != nil && boolean {
		if cached, ok := cache[expr]; ok {
			return Bool(cached), nil
		}
	}
	//
	result, err := evalExpression(expr, ctx, cache)
	if err != nil {
		return nil, err
	}
	//
	if !conformsTo(result, expr.Type()) {
		return nil, internalErrorAt(ctx, expr, "expression of type %s evaluated to %s", expr.Type().String(), result.String())
	}
	//
	if cache != nil && boolean {
		cache[expr] = bool(result.(Bool))
	}
	//
	return result, nil
}

// EvalToBool evaluates an expression and forces a boolean result.
func EvalToBool(expr ast.Expression, ctx *EvaluationContext, cache EvaluationCache) (bool, error) {
	result, err := Eval(expr, ctx, cache)
	if err != nil {
		return false, err
	}
	//
	if b, ok := result.(Bool); ok {
		return bool(b), nil
	}
	//
	return false, internalErrorAt(ctx, expr, "expected boolean, got %s", result.String())
}

// evalExpression dispatches on the expression form.  Dynamic type assertions
// on intermediate results live here; the final check against the node's own
// type happens in Eval.
func evalExpression(expr ast.Expression, ctx *EvaluationContext, cache EvaluationCache) (Value, error) {
	switch e := expr.(type) {
	case *ast.BooleanConstant:
		return Bool(e.Value), nil
	case *ast.IntegerConstant:
		return Int{Value: e.Value}, nil
	case *ast.Variable:
		return evalVariable(e, ctx)
	case *ast.AttributeAccess:
		return evalAttribute(e.Name, e, ctx)
	case *ast.FieldAccess:
		return evalFieldAccess(e, ctx, cache)
	case *ast.UnaryExpression:
		return evalUnary(e, ctx, cache)
	case *ast.BinaryExpression:
		return evalBinary(e, ctx, cache)
	case *ast.TypeCast:
		return evalTypeCast(e, ctx, cache)
	}
	//
	return nil, internalErrorAt(ctx, expr, "unexpected AST node %T", expr)
}

// evalVariable resolves a name against the binding environment.  In a table
// context the name denotes a match key, falling back to the reserved
// attributes; in an action context it denotes a parameter.  A missing name
// means the frontend let an unbound variable through.
func evalVariable(e *ast.Variable, ctx *EvaluationContext) (Value, error) {
	switch {
	case ctx.Entry != nil:
		if value, ok := ctx.Entry.Keys[e.Name]; ok {
			return value, nil
		}
		//
		if _, ok := schema.LookupAttribute(e.Name); ok {
			return evalAttribute(e.Name, e, ctx)
		}
	case ctx.Invocation != nil:
		if value, ok := ctx.Invocation.Params[e.Name]; ok {
			return Int{Value: value}, nil
		}
	}
	//
	return nil, internalErrorAt(ctx, e, "unbound variable %q", e.Name)
}

// evalAttribute reads a reserved entry attribute.  Attributes only exist for
// table entries.
func evalAttribute(name string, expr ast.Expression, ctx *EvaluationContext) (Value, error) {
	if _, ok := schema.LookupAttribute(name); !ok {
		return nil, internalErrorAt(ctx, expr, "unknown attribute %q", name)
	}
	//
	if ctx.Entry == nil {
		return nil, internalErrorAt(ctx, expr, "attribute %q read outside a table constraint", name)
	}
	// Only priority exists today.
	return Int{Value: ctx.Entry.Priority}, nil
}

// evalFieldAccess projects a field out of a composite match-key value.
func evalFieldAccess(e *ast.FieldAccess, ctx *EvaluationContext, cache EvaluationCache) (Value, error) {
	base, err := Eval(e.Base, ctx, cache)
	if err != nil {
		return nil, err
	}
	//
	switch v := base.(type) {
	case Exact:
		if e.Field == "value" {
			return Int{Value: v.Value}, nil
		}
	case Ternary:
		switch e.Field {
		case "value":
			return Int{Value: v.Value}, nil
		case "mask":
			return Int{Value: v.Mask}, nil
		}
	case Lpm:
		switch e.Field {
		case "value":
			return Int{Value: v.Value}, nil
		case "prefix_length":
			return Int{Value: v.PrefixLength}, nil
		}
	case Range:
		switch e.Field {
		case "low":
			return Int{Value: v.Low}, nil
		case "high":
			return Int{Value: v.High}, nil
		}
	}
	//
	return nil, internalErrorAt(ctx, e, "value %s has no field %q", base.String(), e.Field)
}

// evalUnary applies a unary operator.  Arithmetic negation is permitted even
// when the argument's type is fixed-width unsigned: the result is the
// mathematical negation, narrowed (if at all) by a later cast.
func evalUnary(e *ast.UnaryExpression, ctx *EvaluationContext, cache EvaluationCache) (Value, error) {
	arg, err := Eval(e.Arg, ctx, cache)
	if err != nil {
		return nil, err
	}
	//
	switch e.Op {
	case ast.Not:
		if b, ok := arg.(Bool); ok {
			return !b, nil
		}
	case ast.Negate:
		if i, ok := arg.(Int); ok {
			return Int{Value: new(big.Int).Neg(i.Value)}, nil
		}
	}
	//
	return nil, internalErrorAt(ctx, e, "operator %s inapplicable to %s", e.Op.String(), arg.String())
}

// evalBinary applies a binary operator.  The logical connectives short
// circuit: their right operand is only evaluated when the left operand does
// not already decide the result.
func evalBinary(e *ast.BinaryExpression, ctx *EvaluationContext, cache EvaluationCache) (Value, error) {
	if e.Op.IsConnective() {
		return evalConnective(e, ctx, cache)
	}
	//
	left, err := Eval(e.Left, ctx, cache)
	if err != nil {
		return nil, err
	}
	//
	right, err := Eval(e.Right, ctx, cache)
	if err != nil {
		return nil, err
	}
	//
	switch e.Op {
	case ast.Eq, ast.Ne:
		equal, ok := valuesEqual(left, right)
		if !ok {
			return nil, internalErrorAt(ctx, e, "cannot compare %s with %s", left.String(), right.String())
		}
		//
		return Bool(equal == (e.Op == ast.Eq)), nil
	case ast.Gt, ast.Ge, ast.Lt, ast.Le:
		return evalComparison(e, left, right, ctx)
	case ast.Add, ast.Sub, ast.Mul:
		return evalArithmetic(e, left, right, ctx)
	case ast.Concat:
		return evalConcat(e, left, right, ctx)
	}
	//
	return nil, internalErrorAt(ctx, e, "unexpected binary operator %s", e.Op.String())
}

func evalConnective(e *ast.BinaryExpression, ctx *EvaluationContext, cache EvaluationCache) (Value, error) {
	left, err := EvalToBool(e.Left, ctx, cache)
	if err != nil {
		return nil, err
	}
	// Short-circuit where the left operand decides.
	switch e.Op {
	case ast.And:
		if !left {
			return Bool(false), nil
		}
	case ast.Or:
		if left {
			return Bool(true), nil
		}
	case ast.Implies:
		if !left {
			return Bool(true), nil
		}
	}
	//
	right, err := EvalToBool(e.Right, ctx, cache)
	if err != nil {
		return nil, err
	}
	//
	return Bool(right), nil
}

// evalComparison orders two integers.  Ordering is undefined for composite
// match-key values, which the frontend must have rejected.
func evalComparison(e *ast.BinaryExpression, left Value, right Value, ctx *EvaluationContext) (Value, error) {
	l, lok := left.(Int)
	r, rok := right.(Int)
	//
	if !lok || !rok {
		return nil, internalErrorAt(ctx, e, "operator %s inapplicable to %s and %s", e.Op.String(), left.String(), right.String())
	}
	//
	cmp := l.Value.Cmp(r.Value)
	//
	switch e.Op {
	case ast.Gt:
		return Bool(cmp > 0), nil
	case ast.Ge:
		return Bool(cmp >= 0), nil
	case ast.Lt:
		return Bool(cmp < 0), nil
	default:
		return Bool(cmp <= 0), nil
	}
}

// evalArithmetic performs integer arithmetic in arbitrary precision; any
// narrowing to a fixed width happens later via an explicit cast.
func evalArithmetic(e *ast.BinaryExpression, left Value, right Value, ctx *EvaluationContext) (Value, error) {
	l, lok := left.(Int)
	r, rok := right.(Int)
	//
	if !lok || !rok {
		return nil, internalErrorAt(ctx, e, "operator %s inapplicable to %s and %s", e.Op.String(), left.String(), right.String())
	}
	//
	result := new(big.Int)
	//
	switch e.Op {
	case ast.Add:
		result.Add(l.Value, r.Value)
	case ast.Sub:
		result.Sub(l.Value, r.Value)
	default:
		result.Mul(l.Value, r.Value)
	}
	//
	return Int{Value: result}, nil
}

// evalConcat concatenates two fixed-width integers, the left operand ending
// up in the high bits.
func evalConcat(e *ast.BinaryExpression, left Value, right Value, ctx *EvaluationContext) (Value, error) {
	l, lok := left.(Int)
	r, rok := right.(Int)
	//
	if !lok || !rok || !e.Left.Type().IsFixedWidthInt() || !e.Right.Type().IsFixedWidthInt() {
		return nil, internalErrorAt(ctx, e, "operator %s requires fixed-width integer operands", e.Op.String())
	}
	//
	result := new(big.Int).Lsh(l.Value, e.Right.Type().BitWidth)
	result.Or(result, r.Value)
	//
	return Int{Value: result}, nil
}

// evalTypeCast converts an integer to the type of the cast node: a checked
// narrowing within the integer family, or construction of a match-key value.
// Out-of-range casts mean the frontend failed to prove a bound and are
// internal errors.
func evalTypeCast(e *ast.TypeCast, ctx *EvaluationContext, cache EvaluationCache) (Value, error) {
	arg, err := Eval(e.Arg, ctx, cache)
	if err != nil {
		return nil, err
	}
	//
	i, ok := arg.(Int)
	if !ok {
		return nil, internalErrorAt(ctx, e, "cannot cast %s to %s", arg.String(), e.Typ.String())
	}
	//
	value := i.Value
	target := e.Typ
	//
	switch target.Kind {
	case ast.KindFixedUnsigned:
		if err := checkUnsignedRange(value, target, e, ctx); err != nil {
			return nil, err
		}
		//
		return Int{Value: value}, nil
	case ast.KindFixedSigned:
		bound := maxForWidth(target.BitWidth - 1)
		low := new(big.Int).Neg(bound)
		//
		if value.Cmp(low) < 0 || value.Cmp(bound) >= 0 {
			return nil, internalErrorAt(ctx, e, "value %s outside range of %s", value.String(), target.String())
		}
		//
		return Int{Value: value}, nil
	case ast.KindExact:
		if err := checkUnsignedRange(value, target, e, ctx); err != nil {
			return nil, err
		}
		//
		return Exact{Value: value}, nil
	case ast.KindTernary:
		if err := checkUnsignedRange(value, target, e, ctx); err != nil {
			return nil, err
		}
		//
		mask := maxForWidth(target.BitWidth)
		mask.Sub(mask, one)
		//
		return Ternary{Value: value, Mask: mask}, nil
	}
	//
	return nil, internalErrorAt(ctx, e, "illegal cast to %s", target.String())
}

func checkUnsignedRange(value *big.Int, target ast.Type, expr ast.Expression, ctx *EvaluationContext) error {
	if value.Sign() < 0 || uint(value.BitLen()) > target.BitWidth {
		return internalErrorAt(ctx, expr, "value %s outside range of %s", value.String(), target.String())
	}
	//
	return nil
}

// internalErrorAt constructs an internal error underlining the source region
// of the offending expression, when a source is available.
func internalErrorAt(ctx *EvaluationContext, expr ast.Expression, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	//
	if ctx != nil && ctx.Source != nil {
		loc := expr.Location()
		//
		if underline, err := ctx.Source.Underline(loc); err == nil {
			return errs.Internalf("%s: %s\n%s", ctx.Source.Describe(loc), msg, underline)
		}
	}
	//
	return errs.Internalf("%s", msg)
}
