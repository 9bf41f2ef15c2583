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

// Package ir holds the scalar type/expression vocabulary a computation's
// body is written in: primitive types, the tagged expression kinds, and
// the buffers and per-function constants those expressions reference. It
// has no dependency on the schedule algebra (pkg/sched) or the polyhedral
// adapter (pkg/poly) — a computation's body is opaque data to both of
// those, carried along but never interpreted.
package ir

// PrimitiveType enumerates the scalar element types a Buffer or Expr can
// carry (spec §3 "Primitive type").
type PrimitiveType uint8

const (
	U8 PrimitiveType = iota
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
	Bool
)

// String renders the primitive type the way the original's
// str_from_coli_type_primitive did (coli_core.cpp lines ~1144-1174).
func (t PrimitiveType) String() string {
	switch t {
	case U8:
		return "uint8"
	case I8:
		return "int8"
	case U16:
		return "uint16"
	case I16:
		return "int16"
	case U32:
		return "uint32"
	case I32:
		return "int32"
	case U64:
		return "uint64"
	case I64:
		return "int64"
	case F32:
		return "float32"
	case F64:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "unknown primitive"
	}
}
