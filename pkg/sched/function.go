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

	"github.com/samber/lo"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/polysched/schedcore/pkg/config"
	"github.com/polysched/schedcore/pkg/errs"
	"github.com/polysched/schedcore/pkg/ir"
	"github.com/polysched/schedcore/pkg/poly"
)

type gpuPair struct{ d0, d1 int }

// Function is the collection of computations, buffers and tag tables a
// schedule is built within (spec §3 "Function").
type Function struct {
	name       string
	backend    poly.Backend
	cfg        config.Config
	body       []*Computation
	invariants []ir.Const
	arguments  []ir.Buffer
	buffers    map[string]ir.Buffer
	contextSet *poly.Set

	parallelDims map[string]int
	vectorDims   map[string]int
	gpuDims      map[string]gpuPair

	ast *poly.AST

	idCounter atomic.Uint64
}

// NewFunction constructs an empty function over the given polyhedral
// backend and configuration.
func NewFunction(name string, backend poly.Backend, cfg config.Config) *Function {
	return &Function{
		name:         name,
		backend:      backend,
		cfg:          cfg,
		buffers:      make(map[string]ir.Buffer),
		parallelDims: make(map[string]int),
		vectorDims:   make(map[string]int),
		gpuDims:      make(map[string]gpuPair),
	}
}

// Name returns the function's name.
func (f *Function) Name() string { return f.name }

// Backend returns the polyhedral adapter this function was built with.
func (f *Function) Backend() poly.Backend { return f.backend }

// Config returns the function's configuration record.
func (f *Function) Config() config.Config { return f.cfg }

// SetContextSet records the integer set of symbolic parameters the
// function's schedules and domains are defined over.
func (f *Function) SetContextSet(s poly.Set) { f.contextSet = &s }

// ContextSet returns the function's context set, or nil if none was set.
func (f *Function) ContextSet() *poly.Set { return f.contextSet }

// Computations returns the function's body, in insertion order.
func (f *Function) Computations() []*Computation {
	return append([]*Computation(nil), f.body...)
}

// GetComputationByName returns the computation with the given name, or
// nil if none is registered.
func (f *Function) GetComputationByName(name string) *Computation {
	for _, c := range f.body {
		if c.name == name {
			return c
		}
	}

	return nil
}

// AddComputation appends c to the function's body, after assigning its
// back-reference. Fails with errs.DuplicateName if a peer already shares
// c's name (spec §4.4).
func (f *Function) AddComputation(c *Computation) error {
	if f.GetComputationByName(c.name) != nil {
		return errs.Newf(errs.DuplicateName, "Function.AddComputation",
			"a computation named %q is already registered with function %q", c.name, f.name)
	}

	c.fn = f
	f.body = append(f.body, c)

	return nil
}

// AddInvariant appends a function-scoped constant.
func (f *Function) AddInvariant(k ir.Const) { f.invariants = append(f.invariants, k) }

// Invariants returns the function's invariants.
func (f *Function) Invariants() []ir.Const { return append([]ir.Const(nil), f.invariants...) }

// SetArguments records the function's buffer argument list.
func (f *Function) SetArguments(bufs []ir.Buffer) { f.arguments = append([]ir.Buffer(nil), bufs...) }

// Arguments returns the function's buffer argument list.
func (f *Function) Arguments() []ir.Buffer { return append([]ir.Buffer(nil), f.arguments...) }

// AddBuffer registers b in the function's name→buffer registry, stamping
// its weak back-reference.
func (f *Function) AddBuffer(b ir.Buffer) {
	b.OwningFunction = f.name
	f.buffers[b.Name] = b
}

// GetBuffer looks up a buffer by name.
func (f *Function) GetBuffer(name string) (ir.Buffer, bool) {
	b, ok := f.buffers[name]
	return b, ok
}

// NextDimName returns a fresh, function-unique dimension identifier, the
// Go replacement for the original's process-global generate_new_variable_name
// counter (Design Notes §9).
func (f *Function) NextDimName() string {
	return fmt.Sprintf("_d%d", f.idCounter.Inc())
}

func (f *Function) tagParallel(name string, d int) error {
	if d < 0 {
		return errs.Newf(errs.InvalidDimension, "Computation.TagParallelDimension", "dimension %d is negative", d)
	}

	f.parallelDims[name] = d

	return nil
}

func (f *Function) tagVector(name string, d int) error {
	if d < 0 {
		return errs.Newf(errs.InvalidDimension, "Computation.TagVectorDimension", "dimension %d is negative", d)
	}

	f.vectorDims[name] = d

	return nil
}

func (f *Function) tagGPU(name string, d0, d1 int) error {
	const op = "Computation.TagGPUDimensions"

	if d0 < 0 || d1 < 0 {
		return errs.Newf(errs.InvalidDimension, op, "GPU dimensions must be non-negative, got (%d, %d)", d0, d1)
	}

	if d1 != d0+1 {
		return errs.Newf(errs.InvalidDimension, op, "GPU dimensions must be adjacent, got (%d, %d)", d0, d1)
	}

	f.gpuDims[name] = gpuPair{d0: d0, d1: d1}

	return nil
}

// GetGPUIterator returns the fixed iterator name ("__thread_id_x" or
// "__thread_id_y") for the tagged GPU dimension pair of name, matching
// level, or fails with errs.GpuLevelMismatch (spec §4.4;
// coli_core.cpp get_gpu_iterator, lines 691-719).
func (f *Function) GetGPUIterator(name string, level int) (string, error) {
	const op = "Function.GetGPUIterator"

	pair, ok := f.gpuDims[name]
	if !ok {
		return "", errs.Newf(errs.GpuLevelMismatch, op, "computation %q has no tagged GPU dimensions", name)
	}

	switch level {
	case pair.d0:
		return "__thread_id_x", nil
	case pair.d1:
		return "__thread_id_y", nil
	default:
		return "", errs.Newf(errs.GpuLevelMismatch, op,
			"level %d not among the tagged GPU pair (%d, %d) for %q", level, pair.d0, pair.d1, name)
	}
}

// ShouldMapToGPU is the predicate form of GetGPUIterator (spec §4.4).
func (f *Function) ShouldMapToGPU(name string, level int) bool {
	pair, ok := f.gpuDims[name]
	return ok && (level == pair.d0 || level == pair.d1)
}

// GetMaxScheduleRangeDim returns the widest output rank among the
// function's computations (coli_core.cpp get_max_schedules_range_dim).
func (f *Function) GetMaxScheduleRangeDim() int {
	max := 0
	for _, c := range f.body {
		if r := c.schedule.OutputRank(); r > max {
			max = r
		}
	}

	return max
}

// AlignSchedules pads every schedule in the function to the widest
// output rank D among them, constraining each new dimension to zero
// (spec R2, §4.4; coli_core.cpp isl_map_align_range_dims, lines
// 759-806). Idempotent once every schedule already has rank D.
func (f *Function) AlignSchedules() error {
	maxDim := f.GetMaxScheduleRangeDim()

	for _, c := range f.body {
		m := c.schedule

		for m.OutputRank() < maxDim {
			m = f.backend.InsertOutputDim(m, m.OutputRank(), f.NextDimName(), lo.ToPtr(int64(0)))
		}

		if err := c.SetSchedule(m); err != nil {
			return errs.Wrap(errs.InvalidDimension, "Function.AlignSchedules", err)
		}
	}

	return nil
}

// GetIterationDomain unions the iteration sets of every computation whose
// ShouldScheduleThisComputation is true (spec §4.4).
func (f *Function) GetIterationDomain() poly.UnionSet {
	sets := make([]poly.Set, 0, len(f.body))

	for _, c := range f.body {
		if c.ShouldScheduleThisComputation() {
			sets = append(sets, c.iterationDomain)
		}
	}

	return f.backend.UnionSets(sets...)
}

// GetSchedule returns the union of every computation's schedule,
// intersected with the function's iteration-domain union (spec §4.4).
func (f *Function) GetSchedule() poly.UnionMap {
	maps := lo.Map(f.body, func(c *Computation, _ int) poly.Map { return c.schedule })
	return f.backend.IntersectDomain(f.backend.UnionMaps(maps...), f.GetIterationDomain())
}

// GetTimeProcessorDomain returns the union of each computation's schedule
// applied to its iteration set (spec §4.4).
func (f *Function) GetTimeProcessorDomain() (poly.UnionSet, error) {
	out := poly.NewUnionSet()

	for _, c := range f.body {
		s, err := f.backend.Apply(c.schedule, c.iterationDomain)
		if err != nil {
			return poly.UnionSet{}, errs.Wrap(errs.InvalidPolyhedral, "Function.GetTimeProcessorDomain", err)
		}

		out.Add(s)
	}

	return out, nil
}

// AST returns the AST handle cached by the most recent GenerateAST call
// (pkg/astbridge), or nil if none has run yet.
func (f *Function) AST() *poly.AST { return f.ast }

// SetAST stores the AST handle, replacing any prior one (spec §3
// Lifecycles).
func (f *Function) SetAST(ast *poly.AST) { f.ast = ast }

// Validate aggregates every computation's R1 invariant and the function's
// own structural invariants into a single combined error, modeled on
// go-corset's Schema.Consistent.
func (f *Function) Validate() error {
	var err error

	for _, c := range f.body {
		if !c.HasSchedule() {
			err = multierr.Append(err, errs.Newf(errs.UnknownComputation, "Function.Validate",
				"computation %q has no schedule", c.name))
			continue
		}

		if c.schedule.InTuple != c.name && c.schedule.InTuple != LetStmtPrefix+c.name {
			err = multierr.Append(err, errs.Newf(errs.UnknownComputation, "Function.Validate",
				"computation %q schedule input tuple %q violates R1", c.name, c.schedule.InTuple))
		}

		if !poly.ValidateR3Alternation(c.schedule) {
			err = multierr.Append(err, errs.Newf(errs.InvalidDimension, "Function.Validate",
				"computation %q schedule does not alternate static/dynamic output positions (R3)", c.name))
		}
	}

	return err
}
