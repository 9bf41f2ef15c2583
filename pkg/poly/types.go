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

// Package poly is a thin façade over an integer-set/relation ("polyhedral")
// library: sets, maps, union sets and union maps, plus the handful of
// mutations the scheduling core needs (insert dimensions, add constraints,
// pin an output dimension to a constant). The real library this facade
// wraps is an external collaborator (spec §1); Backend is the narrow trait
// a production binding implements, and pkg/poly/native is a pure-Go
// reference model used both as the default backend and as the mock a
// caller tests schedule transformations against.
package poly

import "fmt"

// ConstraintKind distinguishes an affine equality from an affine
// inequality within a Set or Map.
type ConstraintKind uint8

const (
	// Equality marks a constraint of the form <affine expr> = 0.
	Equality ConstraintKind = iota
	// Inequality marks a constraint of the form <affine expr> >= 0.
	Inequality
)

// Constraint is an affine constraint over the dimensions of the Set or Map
// it belongs to. Expr carries the textual presentation (e.g. "i >= 0" or
// "j = i + 1"); this facade never evaluates it numerically — legality and
// dependence analysis are out of scope (spec §1 Non-goals), so Constraint
// values are structural, not solved.
type Constraint struct {
	Kind ConstraintKind
	Expr string
}

func (c Constraint) String() string {
	return c.Expr
}

// Dim is one named output dimension of a Map. Const, when non-nil, marks
// this as a static-ordering slot pinned to a single integer (spec R3);
// otherwise it is a dynamic slot whose value ranges over the input
// iterators.
type Dim struct {
	Name  string
	Const *int64
}

// IsStatic reports whether this dimension carries a pinned constant.
func (d Dim) IsStatic() bool { return d.Const != nil }

func (d Dim) String() string {
	if d.Const != nil {
		return fmt.Sprintf("%d", *d.Const)
	}

	return d.Name
}

// Set is an integer set over a single named tuple of dimensions: the
// iteration domain of one computation, or the context set of symbolic
// parameters.
type Set struct {
	Tuple       string
	Dims        []string
	Constraints []Constraint
}

// Clone returns a deep, independent copy of s.
func (s Set) Clone() Set {
	return Set{
		Tuple:       s.Tuple,
		Dims:        append([]string(nil), s.Dims...),
		Constraints: append([]Constraint(nil), s.Constraints...),
	}
}

// Rank returns the number of dimensions in s.
func (s Set) Rank() int { return len(s.Dims) }

// Map is an integer relation from an input tuple (the iteration space) to
// an output tuple (the time space). OutDims is ordered lexicographically;
// that order defines execution order once a Map is used as a schedule.
type Map struct {
	InTuple     string
	InDims      []string
	OutTuple    string
	OutDims     []Dim
	Constraints []Constraint
}

// Clone returns a deep, independent copy of m.
func (m Map) Clone() Map {
	return Map{
		InTuple:     m.InTuple,
		InDims:      append([]string(nil), m.InDims...),
		OutTuple:    m.OutTuple,
		OutDims:     append([]Dim(nil), m.OutDims...),
		Constraints: append([]Constraint(nil), m.Constraints...),
	}
}

// OutputRank returns the number of output (range) dimensions — D in spec
// R2.
func (m Map) OutputRank() int { return len(m.OutDims) }

// OutputDimNames returns the names of every output dimension, in order.
func (m Map) OutputDimNames() []string {
	names := make([]string, len(m.OutDims))
	for i, d := range m.OutDims {
		names[i] = d.Name
	}

	return names
}

// UnionSet is a union of Sets keyed by tuple name, one per computation.
type UnionSet struct {
	Sets map[string]Set
}

// NewUnionSet constructs an empty union set.
func NewUnionSet() UnionSet {
	return UnionSet{Sets: make(map[string]Set)}
}

// Add inserts (or replaces) s within the union, keyed by its tuple name.
func (u UnionSet) Add(s Set) {
	u.Sets[s.Tuple] = s
}

// UnionMap is a union of Maps keyed by input tuple name, one per
// computation's schedule.
type UnionMap struct {
	Maps map[string]Map
}

// NewUnionMap constructs an empty union map.
func NewUnionMap() UnionMap {
	return UnionMap{Maps: make(map[string]Map)}
}

// Add inserts (or replaces) m within the union, keyed by its input tuple
// name.
func (u UnionMap) Add(m Map) {
	u.Maps[m.InTuple] = m
}
