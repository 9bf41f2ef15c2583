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
package ir

// ArgumentRole classifies how a Buffer participates in its owning
// function's call signature (spec §3 "Buffer").
type ArgumentRole uint8

const (
	// Input buffers are read by the function and passed in by the caller.
	Input ArgumentRole = iota
	// Output buffers are written by the function and passed in by the
	// caller.
	Output
	// Temporary buffers are scratch space private to the function; they
	// are never emitted as a function argument (spec §3 invariant).
	Temporary
)

// String renders the role the way str_from_coli_type_argument did
// (coli_core.cpp lines ~1128-1142).
func (r ArgumentRole) String() string {
	switch r {
	case Input:
		return "input"
	case Output:
		return "output"
	case Temporary:
		return "temporary"
	default:
		return "unknown argument role"
	}
}

// Buffer is a named, typed, multi-dimensional storage location a
// computation's body reads or writes (spec §3 "Buffer").
type Buffer struct {
	Name     string
	Type     PrimitiveType
	DimSizes []Expr
	Role     ArgumentRole

	// Data is the buffer's backing storage handle, when one has already
	// been allocated by the caller (e.g. bound to a caller-provided
	// pointer or slice). It is opaque to this core, which only tracks
	// whether it is present — mirrors coli::buffer's "data" field, dumped
	// in dump() as present/NULL (coli_core.cpp str_from_is_null).
	Data any

	// OwningFunction is the weak back-reference to the Function this
	// buffer was registered on, by name rather than by pointer (Design
	// Notes §9's arena-ownership fix for the original's raw back-pointer).
	// Empty until the buffer is added to a function's registry.
	OwningFunction string
}

// NumDims returns the number of dimensions of b.
func (b Buffer) NumDims() int { return len(b.DimSizes) }
