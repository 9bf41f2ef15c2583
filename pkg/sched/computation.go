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
	"github.com/polysched/schedcore/pkg/diag"
	"github.com/polysched/schedcore/pkg/errs"
	"github.com/polysched/schedcore/pkg/ir"
	"github.com/polysched/schedcore/pkg/poly"
)

// LetStmtPrefix marks synthesized let-statement computations, so that
// SetSchedule can auto-repair an input-tuple name that omits it (spec §3
// "Reserved identifiers").
const LetStmtPrefix = "_let_"

// Computation is a named statement: an iteration domain, a schedule, a
// body expression, and the bookkeeping the transformers need (spec §3
// "Computation").
type Computation struct {
	name                    string
	iterationDomain         poly.Set
	schedule                poly.Map
	hasSchedule             bool
	body                    ir.Expr
	relativeOrder           int64
	scheduleThisComputation bool
	indexExpr               []ir.Expr

	fn *Function
}

// NewComputation constructs a detached computation with an identity
// schedule over its iteration domain's dimensions. It has no owning
// Function until AddComputation registers it.
func NewComputation(name string, domain poly.Set, body ir.Expr, scheduleThis bool) *Computation {
	domain = domain.Clone()
	domain.Tuple = name

	return &Computation{
		name:                    name,
		iterationDomain:         domain,
		schedule:                NewIdentitySchedule(name, domain.Dims),
		hasSchedule:             true,
		body:                    body,
		scheduleThisComputation: scheduleThis,
	}
}

// Name returns the computation's name.
func (c *Computation) Name() string { return c.name }

// Function returns the owning function, or nil if this computation has
// not been registered with one yet.
func (c *Computation) Function() *Function { return c.fn }

// IterationDomain returns the computation's iteration domain.
func (c *Computation) IterationDomain() poly.Set { return c.iterationDomain }

// Schedule returns the computation's current schedule.
func (c *Computation) Schedule() poly.Map { return c.schedule }

// ShouldScheduleThisComputation reports the schedule_this_computation
// flag (spec §3).
func (c *Computation) ShouldScheduleThisComputation() bool { return c.scheduleThisComputation }

// Body returns the computation's body expression.
func (c *Computation) Body() ir.Expr { return c.body }

// IndexExpr returns the access expressions captured by the AST-leaf
// callback during the most recent generate_ast, if any.
func (c *Computation) IndexExpr() []ir.Expr { return c.indexExpr }

// AppendIndexExpr records one access expression, called from the
// AST-leaf callback (pkg/astbridge).
func (c *Computation) AppendIndexExpr(e ir.Expr) {
	c.indexExpr = append(c.indexExpr, e)
}

// RelativeOrder returns the computation's current relative_order value
// (spec §4.3).
func (c *Computation) RelativeOrder() int64 { return c.relativeOrder }

// SetSchedule adopts m as the computation's schedule, validating R1: m's
// input tuple must name this computation, either directly or after
// prefixing with LetStmtPrefix (spec §4.2, §3 "Reserved identifiers").
// Fails with errs.UnknownComputation if neither name resolves. The output
// rank of m is not checked against the function's other schedules.
func (c *Computation) SetSchedule(m poly.Map) error {
	const op = "Computation.SetSchedule"

	switch {
	case m.InTuple == c.name:
		// Already satisfies R1.
	case LetStmtPrefix+m.InTuple == c.name:
		m = m.Clone()
		m.InTuple = LetStmtPrefix + m.InTuple
	default:
		return errs.Newf(errs.UnknownComputation, op,
			"schedule input tuple %q does not name computation %q, even after %s repair",
			m.InTuple, c.name, LetStmtPrefix)
	}

	diag.Printf("setting schedule of %q to %v", c.name, m)

	c.schedule = m
	c.hasSchedule = true

	return nil
}

// HasSchedule reports whether a schedule has ever been set.
func (c *Computation) HasSchedule() bool { return c.hasSchedule }

// TagParallelDimension records dimension d of this computation as
// parallel on the owning function's tag table (spec §4.2).
func (c *Computation) TagParallelDimension(d int) error {
	return c.requireFunction("Computation.TagParallelDimension").tagParallel(c.name, d)
}

// TagVectorDimension records dimension d as vectorizable.
func (c *Computation) TagVectorDimension(d int) error {
	return c.requireFunction("Computation.TagVectorDimension").tagVector(c.name, d)
}

// TagGPUDimensions records the adjacent pair (d0, d0+1) as GPU-mapped.
func (c *Computation) TagGPUDimensions(d0, d1 int) error {
	return c.requireFunction("Computation.TagGPUDimensions").tagGPU(c.name, d0, d1)
}

func (c *Computation) requireFunction(op string) *Function {
	if c.fn == nil {
		panic(op + ": computation " + c.name + " is not registered with a Function")
	}

	return c.fn
}

// DumpSchedule logs the computation's schedule when diag.Enabled.
func (c *Computation) DumpSchedule() {
	diag.Printf("schedule of %q: %v", c.name, c.schedule)
}

// DumpIterationDomain logs the computation's iteration domain when
// diag.Enabled.
func (c *Computation) DumpIterationDomain() {
	diag.Printf("iteration domain of %q: %v", c.name, c.iterationDomain)
}

// Dump logs the full computation state when diag.Enabled (spec §4.2;
// coli_core.cpp computation::dump, lines 221-251).
func (c *Computation) Dump() {
	c.DumpIterationDomain()
	c.DumpSchedule()
	diag.Printf("computation %q scheduled? %v, relative_order=%d", c.name, c.scheduleThisComputation, c.relativeOrder)

	for _, e := range c.indexExpr {
		diag.Printf("access expression: %s", e)
	}
}
