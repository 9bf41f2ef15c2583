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
package poly

// Backend is the capability set the scheduling core consumes from the
// underlying polyhedral library (spec §4.1, §6). Every method is total: it
// fails only on malformed input or an internal inconsistency, reported as
// an InvalidPolyhedral error by the caller (pkg/errs wraps the raw error
// returned here with that kind).
//
// A production binding forwards these calls to the native library and
// manages its handle lifetimes; pkg/poly/native is a pure-Go reference
// model that doubles as that binding's test double (Design Notes §9,
// "Polyhedral adapter trait").
type Backend interface {
	// ParseSet reads a textual set presentation, e.g.
	// "{ S[i,j] : 0 <= i < N and 0 <= j < M }".
	ParseSet(text string) (Set, error)
	// ParseMap reads a textual relation presentation, e.g.
	// "{ S[i,j] -> [i,j] }". The input tuple name becomes m.InTuple.
	ParseMap(text string) (Map, error)
	// SerializeSet renders s back to its textual presentation.
	SerializeSet(s Set) string
	// SerializeMap renders m back to its textual presentation.
	SerializeMap(m Map) string

	// Universe constructs the universal set over the given tuple/dims: no
	// constraints beyond structure.
	Universe(tuple string, dims []string) Set
	// Identity constructs the identity map from tuple/dims to itself: one
	// output dimension per input dimension, dynamic, same names.
	Identity(tuple string, dims []string) Map

	// InsertOutputDim inserts a new output dimension at position pos,
	// shifting subsequent dimensions right. If val is non-nil the new
	// dimension is a static slot pinned to *val; otherwise it is a
	// dynamic slot equal to the corresponding input dimension added by
	// the caller separately.
	InsertOutputDim(m Map, pos int, name string, val *int64) Map
	// SetOutputConstant rewrites the output dimension at pos to the
	// single constant v, replacing any prior equality at that position
	// (the "set-constant primitive" of spec §4.3).
	SetOutputConstant(m Map, pos int, v int64) (Map, error)
	// RenameInputTuple renames m's input tuple (spec R1 repair / set_schedule).
	RenameInputTuple(m Map, tuple string) Map
	// ApplyRange composes base with transform: the result maps base's
	// input tuple through transform's range. transform's input tuple must
	// structurally match base's output rank.
	ApplyRange(base, transform Map) (Map, error)

	// AddSetConstraint returns a copy of s with c appended.
	AddSetConstraint(s Set, c Constraint) Set
	// AddMapConstraint returns a copy of m with c appended (c is
	// expressed over m's combined input/output dimension names).
	AddMapConstraint(m Map, c Constraint) Map

	// UnionSets folds zero or more sets into a UnionSet keyed by tuple
	// name (last writer per tuple wins, matching isl_union_set_add_set
	// semantics for a single-instance-per-name schedule model).
	UnionSets(sets ...Set) UnionSet
	// UnionMaps folds zero or more maps into a UnionMap.
	UnionMaps(maps ...Map) UnionMap
	// IntersectDomain restricts every map in u to the corresponding set
	// in s (matched by tuple name); maps with no matching set are
	// dropped.
	IntersectDomain(u UnionMap, s UnionSet) UnionMap

	// Apply returns the image of s under m: the time-processor domain for
	// one computation.
	Apply(m Map, s Set) (Set, error)

	// BuildAST walks a domain-restricted schedule (already the result of
	// IntersectDomain) and produces an AST, invoking build's leaf and
	// post-for callbacks as it goes (spec §4.5 step 6).
	BuildAST(build *ASTBuild, schedule UnionMap) (*AST, error)
}
