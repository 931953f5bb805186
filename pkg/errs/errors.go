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
package errs

import (
	"errors"
	"fmt"
)

// Kind distinguishes the two failure classes of the checker.  Invalid
// argument means the caller supplied data inconsistent with the pipeline
// metadata; internal means well-typedness was violated at runtime and
// indicates a bug in the frontend that produced the AST.
type Kind uint8

const (
	// InvalidArgument indicates caller-provided data was inconsistent with
	// the pipeline metadata (e.g. unknown table id, missing exact key).
	InvalidArgument Kind = iota
	// Internal indicates a well-typed expression produced a mis-typed
	// intermediate result, or the AST had an unexpected shape.
	Internal
)

// String returns a human-readable name for this kind.
func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case Internal:
		return "internal error"
	}
	//
	return "unknown"
}

// Error is a failure of a given kind.  Failures are never partial: a caller
// receives either a full answer or exactly one Error.
type Error struct {
	kind Kind
	msg  string
}

// Kind returns the failure class of this error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.kind.String(), e.msg)
}

// InvalidArgumentf constructs an invalid-argument failure.
func InvalidArgumentf(format string, args ...any) error {
	return &Error{InvalidArgument, fmt.Sprintf(format, args...)}
}

// Internalf constructs an internal failure.
func Internalf(format string, args ...any) error {
	return &Error{Internal, fmt.Sprintf(format, args...)}
}

// IsInvalidArgument checks whether an error is an invalid-argument failure.
func IsInvalidArgument(err error) bool {
	return isKind(err, InvalidArgument)
}

// IsInternal checks whether an error is an internal failure.
func IsInternal(err error) bool {
	return isKind(err, Internal)
}

func isKind(err error, kind Kind) bool {
	var e *Error
	//
	return errors.As(err, &e) && e.kind == kind
}
