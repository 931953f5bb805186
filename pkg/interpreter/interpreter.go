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
	"strings"

	"github.com/p4tools/go-restrict/pkg/ast"
	"github.com/p4tools/go-restrict/pkg/errs"
	"github.com/p4tools/go-restrict/pkg/schema"
)

// ReasonEntryViolatesConstraint checks a table entry against the constraints
// attached to its table and, when present, its action.  It returns the empty
// string when every applicable constraint is satisfied (or none exists), and
// otherwise a human-readable explanation quoting, for each violated
// constraint, a minimal subexpression responsible for the violation.  An
// error of kind invalid argument is returned when the entry is inconsistent
// with the pipeline metadata.
func ReasonEntryViolatesConstraint(entry *TableEntry, info *schema.ConstraintInfo) (string, error) {
	table := info.Table(entry.TableID)
	if table == nil {
		return "", errs.InvalidArgumentf("unknown table id %d", entry.TableID)
	}
	//
	var reasons []string
	//
	if table.Constraint != nil {
		ctx, err := ParseTableEntry(entry, table)
		if err != nil {
			return "", err
		}
		//
		reason, err := explainViolation(table.Constraint, ctx, "All entries must satisfy", "But your entry does not.")
		if err != nil {
			return "", err
		}
		//
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}
	//
	if entry.Action != nil {
		action := info.Action(entry.Action.ActionID)
		if action == nil {
			return "", errs.InvalidArgumentf("unknown action id %d", entry.Action.ActionID)
		}
		//
		if action.Constraint != nil {
			ctx, err := ParseAction(entry.Action, action)
			if err != nil {
				return "", err
			}
			//
			reason, err := explainViolation(action.Constraint, ctx, "All actions must satisfy", "But your action does not.")
			if err != nil {
				return "", err
			}
			//
			if reason != "" {
				reasons = append(reasons, reason)
			}
		}
	}
	//
	return strings.Join(reasons, "\n"), nil
}

// explainViolation evaluates a constraint and, when it does not hold,
// renders an explanation built around a minimal offending subexpression.
func explainViolation(constraint ast.Expression, ctx *EvaluationContext, header string, footer string) (string, error) {
	evalCache := make(EvaluationCache)
	//
	satisfied, err := EvalToBool(constraint, ctx, evalCache)
	if err != nil {
		return "", err
	}
	//
	if satisfied {
		return "", nil
	}
	//
	sizeCache := make(ast.SizeCache)
	//
	witness, err := MinimalSubexpressionLeadingToEvalResult(constraint, ctx, evalCache, sizeCache)
	if err != nil {
		return "", err
	}
	//
	quote, err := quoteWitness(ctx, witness)
	if err != nil {
		return "", err
	}
	//
	return fmt.Sprintf("%s:\n\n%s\n\n%s\n", header, quote, footer), nil
}

// quoteWitness renders the source region of a witness subexpression,
// prefixed by its position within the enclosing file.
func quoteWitness(ctx *EvaluationContext, witness ast.Expression) (string, error) {
	loc := witness.Location()
	//
	if ctx.Source == nil {
		return ast.String(witness), nil
	}
	//
	quote, err := ctx.Source.Quote(loc)
	if err != nil {
		return "", errs.Internalf("constraint source does not cover %s: %v", loc.String(), err)
	}
	//
	return fmt.Sprintf("%s:\n%s", ctx.Source.Describe(loc), quote), nil
}
