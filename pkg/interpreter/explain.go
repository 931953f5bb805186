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
	"github.com/p4tools/go-restrict/pkg/ast"
)

// MinimalSubexpressionLeadingToEvalResult finds a smallest subexpression of
// a boolean expression whose value, under the short-circuit structure of the
// connectives, fully determines the expression's value in the given context.
// Formally, it is a smallest subexpression s of e such that
//
//	eval(s, env') == eval(s, env)  implies  eval(e, env') == eval(e, env)
//
// for every environment env'.  The returned pointer aliases the input AST,
// so its lifetime is that of the pipeline metadata.  Both caches must be
// supplied; sharing evalCache with a preceding Eval call makes the search
// run in linear time.  The search only descends through boolean nodes, and
// reaching any other node is an internal error.
func MinimalSubexpressionLeadingToEvalResult(
	expr ast.Expression,
	ctx *EvaluationContext,
	evalCache EvaluationCache,
	sizeCache ast.SizeCache,
) (ast.Expression, error) {
	if expr.Type().Kind != ast.KindBoolean {
		return nil, internalErrorAt(ctx, expr, "explanation requires a boolean expression, got %s", expr.Type().String())
	}
	//
	switch e := expr.(type) {
	case *ast.UnaryExpression:
		if e.Op == ast.Not {
			return MinimalSubexpressionLeadingToEvalResult(e.Arg, ctx, evalCache, sizeCache)
		}
	case *ast.BinaryExpression:
		if e.Op.IsConnective() {
			return minimalOfConnective(e, ctx, evalCache, sizeCache)
		}
	}
	// Any other boolean node is its own smallest witness.
	return expr, nil
}

// minimalOfConnective handles the three short-circuit connectives.  An
// implication is treated as (!lhs || rhs).  When one operand decides the
// result on its own, the witness comes from that operand; when both operands
// are needed, the larger of the two witnesses is preferred so that the user
// sees a substantive quote rather than a trivially-true leaf, with ties
// going to the left operand.
func minimalOfConnective(
	e *ast.BinaryExpression,
	ctx *EvaluationContext,
	evalCache EvaluationCache,
	sizeCache ast.SizeCache,
) (ast.Expression, error) {
	left, err := EvalToBool(e.Left, ctx, evalCache)
	if err != nil {
		return nil, err
	}
	// Check whether the left operand already decides the result.
	decides := false
	//
	switch e.Op {
	case ast.And:
		decides = !left
	case ast.Or:
		decides = left
	case ast.Implies:
		decides = !left
	}
	//
	if decides {
		return MinimalSubexpressionLeadingToEvalResult(e.Left, ctx, evalCache, sizeCache)
	}
	//
	right, err := EvalToBool(e.Right, ctx, evalCache)
	if err != nil {
		return nil, err
	}
	// With the left operand neutral, the right operand decides alone
	// whenever its value differs from the left's contribution.
	rightDecides := false
	//
	switch e.Op {
	case ast.And:
		rightDecides = !right
	case ast.Or, ast.Implies:
		rightDecides = right
	}
	//
	if rightDecides {
		return MinimalSubexpressionLeadingToEvalResult(e.Right, ctx, evalCache, sizeCache)
	}
	// Neither operand decides alone, so both witnesses hold and either
	// would do; prefer the larger.
	leftWitness, err := MinimalSubexpressionLeadingToEvalResult(e.Left, ctx, evalCache, sizeCache)
	if err != nil {
		return nil, err
	}
	//
	rightWitness, err := MinimalSubexpressionLeadingToEvalResult(e.Right, ctx, evalCache, sizeCache)
	if err != nil {
		return nil, err
	}
	//
	if ast.Size(leftWitness, sizeCache) >= ast.Size(rightWitness, sizeCache) {
		return leftWitness, nil
	}
	//
	return rightWitness, nil
}
