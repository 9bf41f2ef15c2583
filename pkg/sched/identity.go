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

// Package sched is the schedule algebra: Computation, Function, and the
// transformations (split, interchange, tile, before, after, first,
// align_schedules) that manipulate a Computation's schedule while
// preserving R1-R3.
//
// Computation and Function live in one package rather than two. Design
// Notes' arena-ownership fix for the original's cyclic Function/
// Computation pointers ("Computations hold ... a non-owning reference
// back to the Function") makes the two types mutually recursive — a
// Computation calls back into its Function for peer ordering, the
// dimension-name counter, and context-set lookups, and a Function holds
// its Computations directly. Two Go packages cannot import each other, so
// both are declared here.
package sched

import (
	"fmt"

	"github.com/polysched/schedcore/pkg/poly"
)

// RootDimension is the sentinel nesting level ordering calls use to mean
// "before any loop" (coli::computation::root_dimension).
const RootDimension = -1

// LoopLevel maps a 0-indexed loop nesting level to its raw output
// position in a schedule built from NewIdentitySchedule: level l sits at
// position 2l+1, with a static ordering slot at every even position
// (spec R3; see DESIGN.md for why this layout, rather than the narrative
// example numbers in spec.md, was chosen as canonical).
func LoopLevel(l int) int { return 2*l + 1 }

// NewIdentitySchedule builds the initial schedule for a computation whose
// iteration domain has the given dynamic dimension names: a leading
// static slot (pinned to 0, the root-level ordering coordinate), then one
// (dynamic, static) pair per domain dimension.
func NewIdentitySchedule(name string, domainDims []string) poly.Map {
	out := make([]poly.Dim, 0, 2*len(domainDims)+1)
	out = append(out, staticDim(fmt.Sprintf("s%d", 0)))

	for i, d := range domainDims {
		out = append(out, poly.Dim{Name: d})
		out = append(out, staticDim(fmt.Sprintf("s%d", i+1)))
	}

	return poly.Map{
		InTuple: name,
		InDims:  append([]string(nil), domainDims...),
		OutDims: out,
	}
}

func staticDim(name string) poly.Dim {
	zero := int64(0)
	return poly.Dim{Name: name, Const: &zero}
}
