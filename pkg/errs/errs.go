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

// Package errs defines the fatal, programmer-contract error kinds shared
// across the scheduling core. Every kind here is a batch compile-time
// failure: there is no retry policy, the caller fixes the schedule and
// re-runs.
package errs

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind enumerates the fatal error categories a caller of this module may
// need to distinguish programmatically.
type Kind uint8

const (
	// DuplicateName is raised when AddComputation is called with a name
	// already present in the function.
	DuplicateName Kind = iota
	// UnknownComputation is raised when SetSchedule cannot locate the
	// computation even after let-statement prefix repair.
	UnknownComputation
	// InvalidDimension is raised when a dimension index is negative, out
	// of range, or violates an adjacency precondition (tile, GPU pair).
	InvalidDimension
	// InvalidTileSize is raised when a split or tile size is not strictly
	// positive.
	InvalidTileSize
	// GpuLevelMismatch is raised when GetGPUIterator is asked for a level
	// not among the tagged GPU pair.
	GpuLevelMismatch
	// UnsupportedTypeMapping is raised when a type or operator has no
	// representation in the downstream lowering.
	UnsupportedTypeMapping
	// InvalidPolyhedral is raised when the polyhedral adapter reports a
	// malformed textual presentation or other internal inconsistency.
	InvalidPolyhedral
)

// String renders the kind the way a log line or error message should name
// it.
func (k Kind) String() string {
	switch k {
	case DuplicateName:
		return "DuplicateName"
	case UnknownComputation:
		return "UnknownComputation"
	case InvalidDimension:
		return "InvalidDimension"
	case InvalidTileSize:
		return "InvalidTileSize"
	case GpuLevelMismatch:
		return "GpuLevelMismatch"
	case UnsupportedTypeMapping:
		return "UnsupportedTypeMapping"
	case InvalidPolyhedral:
		return "InvalidPolyhedral"
	default:
		return "UnknownErrorKind"
	}
}

// Error is the concrete error type returned at every fatal boundary listed
// in spec §7. Op names the failing operation (e.g. "Computation.Split") so
// a caller chaining several transformer calls can tell which one failed.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// New constructs a stack-traced error of the given kind.
func New(kind Kind, op, msg string) error {
	return pkgerrors.WithStack(&Error{Kind: kind, Op: op, Msg: msg})
}

// Newf is New with a formatted message.
func Newf(kind Kind, op, format string, args ...any) error {
	return New(kind, op, fmt.Sprintf(format, args...))
}

// Wrap attaches kind/op context to a lower-level cause (typically an
// InvalidPolyhedral failure bubbling up from pkg/poly). The result carries
// the cause's message text and a fresh stack trace taken at the Wrap call;
// the cause itself, its kind and its stack trace are not kept.
func Wrap(kind Kind, op string, cause error) error {
	if cause == nil {
		return nil
	}

	return pkgerrors.WithStack(&Error{Kind: kind, Op: op, Msg: cause.Error()})
}

// Is reports whether err is an *Error of the given kind, looking through
// any github.com/pkg/errors stack-trace wrapping.
func Is(err error, kind Kind) bool {
	var serr *Error
	if !errors.As(err, &serr) {
		return false
	}

	return serr.Kind == kind
}
