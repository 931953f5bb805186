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

// SizeCache memoises node counts by node identity, allowing repeated size
// queries over shared subtrees to run in linear time overall.
type SizeCache map[Expression]int

// Size returns the number of nodes in the given expression tree.  Passing a
// nil cache disables memoisation.
func Size(expr Expression, cache SizeCache) int {
	if cache != nil {
		if size, ok := cache[expr]; ok {
			return size
		}
	}
	//
	var size int
	//
	switch e := expr.(type) {
	case *FieldAccess:
		size = 1 + Size(e.Base, cache)
	case *UnaryExpression:
		size = 1 + Size(e.Arg, cache)
	case *BinaryExpression:
		size = 1 + Size(e.Left, cache) + Size(e.Right, cache)
	case *TypeCast:
		size = 1 + Size(e.Arg, cache)
	default:
		size = 1
	}
	//
	if cache != nil {
		cache[expr] = size
	}
	//
	return size
}
