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
package sched

import (
	"fmt"
	"sort"

	"github.com/polysched/schedcore/pkg/errs"
	"github.com/polysched/schedcore/pkg/poly"
)

// Split strip-mines output dimension d into (outer, static-zero, inner),
// regenerating dimension identifiers for every output position from the
// owning function's counter to guarantee uniqueness (spec §4.3;
// coli_core.cpp computation::split, lines 592-687).
//
// d must be one of the schedule's existing output positions; by
// construction (R3, see DESIGN.md) that is the dynamic loop position
// LoopLevel(l) for whichever loop level l is being strip-mined.
func (c *Computation) Split(d int, k int64) error {
	const op = "Computation.Split"

	if k < 1 {
		return errs.Newf(errs.InvalidTileSize, op, "split size %d must be >= 1", k)
	}

	fn := c.requireFunction(op)
	n := c.schedule.OutputRank()

	if d < 0 || d >= n {
		return errs.Newf(errs.InvalidDimension, op, "dimension %d out of range [0,%d)", d, n)
	}

	inNames := make([]string, n)
	for i := range inNames {
		inNames[i] = fn.NextDimName()
	}

	outerName := fn.NextDimName()
	innerName := fn.NextDimName()
	zero := int64(0)

	outDims := make([]poly.Dim, 0, n+2)

	for i := 0; i < n; i++ {
		if i != d {
			outDims = append(outDims, poly.Dim{Name: inNames[i], Const: c.schedule.OutDims[i].Const})
			continue
		}

		outDims = append(outDims,
			poly.Dim{Name: outerName},
			poly.Dim{Name: fn.NextDimName(), Const: &zero},
			poly.Dim{Name: innerName})
	}

	transform := poly.Map{
		InDims:  inNames,
		OutDims: outDims,
		Constraints: []poly.Constraint{
			{Kind: poly.Equality, Expr: fmt.Sprintf("%s = floor(%s / %d)", outerName, inNames[d], k)},
			{Kind: poly.Equality, Expr: fmt.Sprintf("%s = %s mod %d", innerName, inNames[d], k)},
		},
	}

	applied, err := fn.Backend().ApplyRange(c.schedule, transform)
	if err != nil {
		return errs.Wrap(errs.InvalidPolyhedral, op, err)
	}

	return c.SetSchedule(applied)
}

// Interchange swaps output dimensions d0 and d1, preserving every
// dimension's name and static/dynamic nature by reading it off the
// current schedule and writing it at its new position (spec §4.3;
// coli_core.cpp computation::interchange, lines 505-585).
func (c *Computation) Interchange(d0, d1 int) error {
	const op = "Computation.Interchange"

	fn := c.requireFunction(op)
	n := c.schedule.OutputRank()

	if d0 < 0 || d0 >= n || d1 < 0 || d1 >= n {
		return errs.Newf(errs.InvalidDimension, op, "dimensions (%d, %d) out of range [0,%d)", d0, d1, n)
	}

	inNames := make([]string, n)
	for i := range inNames {
		inNames[i] = fn.NextDimName()
	}

	orig := c.schedule.OutDims
	outDims := make([]poly.Dim, n)
	copy(outDims, orig)
	outDims[d0], outDims[d1] = orig[d1], orig[d0]

	transform := poly.Map{InDims: inNames, OutDims: outDims}

	applied, err := fn.Backend().ApplyRange(c.schedule, transform)
	if err != nil {
		return errs.Wrap(errs.InvalidPolyhedral, op, err)
	}

	return c.SetSchedule(applied)
}

// Tile is equivalent to split(d0, x); split(d1+2, y); interchange(d0+2,
// d1+2), requiring d0 and d1 to be exactly two positions apart — they
// are already the two innermost loop positions of a band once the
// interleaved static slot between them (R3) is accounted for (spec §4.3,
// Open Question (a); see DESIGN.md for the raw-position convention this
// implementation settles on: loop level l lives at output position
// LoopLevel(l) = 2l+1, so two adjacent loop levels are exactly 2 apart,
// matching this precondition directly).
func (c *Computation) Tile(d0, d1 int, x, y int64) error {
	const op = "Computation.Tile"

	if diff := d0 - d1; diff != 2 && diff != -2 {
		return errs.Newf(errs.InvalidDimension, op, "tile requires |d0 - d1| == 2, got d0=%d d1=%d", d0, d1)
	}

	if x <= 0 || y <= 0 {
		return errs.Newf(errs.InvalidTileSize, op, "tile sizes must be positive, got (%d, %d)", x, y)
	}

	newD1 := d1 + 2

	if err := c.Split(d0, x); err != nil {
		return err
	}

	if err := c.Split(newD1, y); err != nil {
		return err
	}

	return c.Interchange(d0+2, newD1)
}

// After sets this computation's schedule so that it, and every peer not
// equal to other, runs strictly after other at nesting level d (spec
// §4.3; coli_core.cpp computation::after, lines 346-411).
func (c *Computation) After(other *Computation, d int) error {
	const op = "Computation.After"

	return c.requireFunction(op).orderPeers(op, d, func(peer *Computation) {
		peer.relativeOrder *= 10
		if peer != other {
			peer.relativeOrder++
		}
	})
}

// First makes this computation run before every other peer at nesting
// level d (spec §4.3; coli_core.cpp computation::first, lines 414-464).
//
// The relative_order update matches the original exactly (every peer but
// the caller gains +1); the final constant assignment generalizes the
// original's hardcoded 0-for-caller/1-for-everyone-else to the same
// sort-and-assign-monotonic-integers step After uses, per spec §4.3
// steps 3-4 — see DESIGN.md for why (the original's version loses
// relative order among three or more peers at the same level; this
// implementation's unified step preserves it).
func (c *Computation) First(d int) error {
	const op = "Computation.First"

	return c.requireFunction(op).orderPeers(op, d, func(peer *Computation) {
		if peer != c {
			peer.relativeOrder++
		}
	})
}

// Before places this computation before other at nesting level d, by
// delegating to other.After(this, d) (spec §4.2, Open Question (b);
// coli_core.cpp computation::before, lines 467-475).
func (c *Computation) Before(other *Computation, d int) error {
	return other.After(c, d)
}

// orderPeers implements spec §4.3 steps 1-4: align schedules, update
// every peer's relative_order via update, stable-sort by relative_order,
// then write 0, 1, 2, ... into the static slot at output position d+1 of
// each peer's schedule.
func (f *Function) orderPeers(op string, d int, update func(*Computation)) error {
	if d < RootDimension {
		return errs.Newf(errs.InvalidDimension, op, "nesting level %d is below root level %d", d, RootDimension)
	}

	if err := f.AlignSchedules(); err != nil {
		return err
	}

	for _, peer := range f.body {
		if d+1 >= peer.schedule.OutputRank() {
			return errs.Newf(errs.InvalidDimension, op,
				"nesting level %d out of range for computation %q (output rank %d)",
				d, peer.name, peer.schedule.OutputRank())
		}

		update(peer)
	}

	ordered := append([]*Computation(nil), f.body...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].relativeOrder < ordered[j].relativeOrder })

	order := int64(0)

	for _, peer := range ordered {
		m, err := f.backend.SetOutputConstant(peer.schedule, d+1, order)
		if err != nil {
			return errs.Wrap(errs.InvalidPolyhedral, op, err)
		}

		if err := peer.SetSchedule(m); err != nil {
			return err
		}

		order++
	}

	return nil
}
