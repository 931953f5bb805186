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
package schema

import (
	"github.com/p4tools/go-restrict/pkg/ast"
)

// AttributeInfo describes a reserved entry attribute accessible inside table
// constraints, such as priority.  Attributes are bound from the entry
// instance itself rather than extracted from pipeline metadata.
type AttributeInfo struct {
	// Name of the attribute.
	Name string
	// Type of the attribute.
	Type ast.Type
}

// Priority is compared as an unbounded integer; whether the underlying
// protocol treats it as signed is left to the transport, and any sign is
// propagated as-is.
var attributes = map[string]AttributeInfo{
	"priority": {Name: "priority", Type: ast.ArbitraryInt()},
}

// LookupAttribute returns information for a given reserved attribute name,
// with ok false for unknown attributes.
func LookupAttribute(name string) (AttributeInfo, bool) {
	info, ok := attributes[name]
	return info, ok
}
