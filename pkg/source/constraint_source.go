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
	"strings"
)

// ConstraintSource captures the verbatim text of a constraint together with
// the position at which that text begins inside its enclosing file.  The text
// is stored exactly as written, including original indentation, so that
// subexpressions can be quoted back to the user faithfully.
type ConstraintSource struct {
	// Verbatim constraint text.
	Text string
	// Name of the file the constraint was extracted from.
	FileName string
	// Line within the enclosing file on which the text begins (counting
	// from 1).  Purely cosmetic: locations inside the text are relative to
	// the text itself.
	StartLine int
}

// NewConstraintSource constructs a source for a constraint beginning at the
// given line of the named file.
func NewConstraintSource(text string, filename string, startLine int) *ConstraintSource {
	return &ConstraintSource{text, filename, startLine}
}

// Quote extracts the exact substring of the constraint text covered by a
// given location, preserving indentation on interior lines.  An error is
// returned if the location does not fit within the text.
func (p *ConstraintSource) Quote(loc Location) (string, error) {
	if !loc.IsValid() {
		return "", fmt.Errorf("malformed source location %s", loc.String())
	}
	//
	lines := strings.Split(p.Text, "\n")
	//
	if loc.EndLine > len(lines) {
		return "", fmt.Errorf("source location %s exceeds constraint of %d line(s)", loc.String(), len(lines))
	}
	// Single-line quotes are the common case.
	if loc.Line == loc.EndLine {
		line := lines[loc.Line-1]
		//
		if loc.EndColumn-1 > len(line) {
			return "", fmt.Errorf("source location %s exceeds line of %d character(s)", loc.String(), len(line))
		}
		//
		return line[loc.Column-1 : loc.EndColumn-1], nil
	}
	// Multi-line quote: trim the first and last lines to their columns,
	// keeping interior lines whole.
	first := lines[loc.Line-1]
	last := lines[loc.EndLine-1]
	//
	if loc.Column-1 > len(first) || loc.EndColumn-1 > len(last) {
		return "", fmt.Errorf("source location %s exceeds enclosing lines", loc.String())
	}
	//
	quoted := []string{first[loc.Column-1:]}
	quoted = append(quoted, lines[loc.Line:loc.EndLine-1]...)
	quoted = append(quoted, last[:loc.EndColumn-1])
	//
	return strings.Join(quoted, "\n"), nil
}

// Describe renders a location of this constraint as "file:line:column".  The
// line is mapped into the enclosing file; the column counts within the
// constraint text's own line, since no starting column is recorded.
func (p *ConstraintSource) Describe(loc Location) string {
	return fmt.Sprintf("%s:%d:%d", p.FileName, p.StartLine+loc.Line-1, loc.Column)
}

// Underline renders the first line of the region covered by a location,
// followed by a caret line highlighting the region itself.  Useful for
// command-line diagnostics.
func (p *ConstraintSource) Underline(loc Location) (string, error) {
	if !loc.IsValid() {
		return "", fmt.Errorf("malformed source location %s", loc.String())
	}
	//
	lines := strings.Split(p.Text, "\n")
	//
	if loc.Line > len(lines) {
		return "", fmt.Errorf("source location %s exceeds constraint of %d line(s)", loc.String(), len(lines))
	}
	//
	line := lines[loc.Line-1]
	end := loc.EndColumn
	// Regions spanning multiple lines are underlined to the end of their
	// first line only.
	if loc.EndLine != loc.Line || end > len(line)+1 {
		end = len(line) + 1
	}
	//
	width := max(end-loc.Column, 1)
	carets := strings.Repeat(" ", loc.Column-1) + strings.Repeat("^", width)
	//
	return line + "\n" + carets, nil
}
