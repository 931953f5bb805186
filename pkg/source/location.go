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
package source

import (
	"fmt"
)

// Location identifies a contiguous region of constraint source text.  Lines
// and columns count from 1, and are relative to the start of the constraint
// text itself (not the enclosing file).  The end column is exclusive.
type Location struct {
	// Line on which the region begins.
	Line int
	// Column at which the region begins.
	Column int
	// Line on which the region ends.
	EndLine int
	// One past the final column of the region.
	EndColumn int
}

// NewLocation constructs a location covering a single-line region.
func NewLocation(line int, column int, endColumn int) Location {
	return Location{line, column, line, endColumn}
}

// IsValid checks the internal invariants of this location: positive lines and
// columns, with the end point not preceding the start point.
func (p *Location) IsValid() bool {
	if p.Line < 1 || p.Column < 1 || p.EndLine < p.Line || p.EndColumn < 1 {
		return false
	}
	//
	return p.EndLine != p.Line || p.Column <= p.EndColumn
}

// String returns a compact rendering of this location, as found at the head
// of compiler diagnostics.
func (p Location) String() string {
	if p.Line == p.EndLine {
		return fmt.Sprintf("%d:%d-%d", p.Line, p.Column, p.EndColumn)
	}
	//
	return fmt.Sprintf("%d:%d-%d:%d", p.Line, p.Column, p.EndLine, p.EndColumn)
}
