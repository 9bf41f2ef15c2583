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
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polysched/schedcore/pkg/config"
	"github.com/polysched/schedcore/pkg/ir"
	"github.com/polysched/schedcore/pkg/poly"
	"github.com/polysched/schedcore/pkg/poly/native"
)

func newTestFunction(t *testing.T, name string, domainDims []string) (*Function, *Computation) {
	t.Helper()

	fn := NewFunction("f", native.New(), config.Default())
	domain := poly.Set{Tuple: name, Dims: domainDims}
	c := NewComputation(name, domain, ir.Lit("0"), true)

	require.NoError(t, fn.AddComputation(c))

	return fn, c
}

func TestIdentityScheduleLayout(t *testing.T) {
	_, c := newTestFunction(t, "S", []string{"i", "j"})

	sched := c.Schedule()
	require.Len(t, sched.OutDims, 5)

	// positions 0, 2, 4 are static; 1, 3 are dynamic (R3).
	assert.True(t, sched.OutDims[0].IsStatic())
	assert.False(t, sched.OutDims[1].IsStatic())
	assert.True(t, sched.OutDims[2].IsStatic())
	assert.False(t, sched.OutDims[3].IsStatic())
	assert.True(t, sched.OutDims[4].IsStatic())

	assert.Equal(t, LoopLevel(0), 1)
	assert.Equal(t, LoopLevel(1), 3)
}

func TestAddComputationRejectsDuplicateName(t *testing.T) {
	fn, _ := newTestFunction(t, "S", []string{"i"})

	dup := NewComputation("S", poly.Set{Tuple: "S", Dims: []string{"i"}}, ir.Lit("0"), true)
	err := fn.AddComputation(dup)
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	_, c := newTestFunction(t, "S", []string{"i", "j"})

	require.NoError(t, c.Split(LoopLevel(0), 4))

	sched := c.Schedule()
	// original 5 positions + 2 for the strip-mined pair.
	assert.Len(t, sched.OutDims, 7)

	// the split only inserts a (outer, static-zero, inner) triple at the
	// strip-mined position; every other copied position must keep its
	// original static/dynamic nature (R3, P3, P7) instead of losing its
	// Const and turning dynamic.
	assert.True(t, poly.ValidateR3Alternation(sched), "schedule must still alternate static/dynamic output positions after Split")
	assert.True(t, sched.OutDims[0].IsStatic())
	assert.False(t, sched.OutDims[1].IsStatic())
	assert.True(t, sched.OutDims[2].IsStatic())
	assert.False(t, sched.OutDims[3].IsStatic())
	assert.True(t, sched.OutDims[4].IsStatic())
	assert.False(t, sched.OutDims[5].IsStatic())
	assert.True(t, sched.OutDims[6].IsStatic())
}

func TestSplitRejectsNonPositiveSize(t *testing.T) {
	_, c := newTestFunction(t, "S", []string{"i"})
	assert.Error(t, c.Split(LoopLevel(0), 0))
}

func TestSplitRejectsOutOfRangeDimension(t *testing.T) {
	_, c := newTestFunction(t, "S", []string{"i"})
	assert.Error(t, c.Split(99, 4))
}

func TestInterchange(t *testing.T) {
	_, c := newTestFunction(t, "S", []string{"i", "j"})

	before := c.Schedule().Clone()
	require.NoError(t, c.Interchange(LoopLevel(0), LoopLevel(1)))

	after := c.Schedule()
	assert.Equal(t, before.OutDims[LoopLevel(0)].Name, after.OutDims[LoopLevel(1)].Name)
	assert.Equal(t, before.OutDims[LoopLevel(1)].Name, after.OutDims[LoopLevel(0)].Name)
}

func TestTileRequiresAdjacentLoopLevels(t *testing.T) {
	_, c := newTestFunction(t, "S", []string{"i", "j"})
	assert.Error(t, c.Tile(LoopLevel(0), LoopLevel(0), 32, 32))
}

func TestTile(t *testing.T) {
	_, c := newTestFunction(t, "S", []string{"i", "j"})

	require.NoError(t, c.Tile(LoopLevel(0), LoopLevel(1), 32, 32))

	sched := c.Schedule()
	// two splits add 2 dims each = 4 extra positions over the original 5.
	assert.Len(t, sched.OutDims, 9)

	// Tile is split+split+interchange; every copied position (not part of
	// either strip-mined triple) must keep its original static/dynamic
	// nature end to end (R3, P3, P7).
	assert.True(t, poly.ValidateR3Alternation(sched), "schedule must still alternate static/dynamic output positions after Tile")
	for i := 0; i < 9; i += 2 {
		assert.True(t, sched.OutDims[i].IsStatic(), "position %d must be static", i)
	}
	for i := 1; i < 9; i += 2 {
		assert.False(t, sched.OutDims[i].IsStatic(), "position %d must be dynamic", i)
	}
}

func TestAfterOrdersPeers(t *testing.T) {
	fn := NewFunction("f", native.New(), config.Default())

	a := NewComputation("A", poly.Set{Tuple: "A", Dims: []string{"i"}}, ir.Lit("0"), true)
	b := NewComputation("B", poly.Set{Tuple: "B", Dims: []string{"i"}}, ir.Lit("0"), true)

	require.NoError(t, fn.AddComputation(a))
	require.NoError(t, fn.AddComputation(b))

	require.NoError(t, b.After(a, RootDimension))

	aOrder := *a.Schedule().OutDims[0].Const
	bOrder := *b.Schedule().OutDims[0].Const
	assert.Less(t, aOrder, bOrder)
}

func TestFirstOrdersCallerBeforeEveryPeer(t *testing.T) {
	fn := NewFunction("f", native.New(), config.Default())

	a := NewComputation("A", poly.Set{Tuple: "A", Dims: []string{"i"}}, ir.Lit("0"), true)
	b := NewComputation("B", poly.Set{Tuple: "B", Dims: []string{"i"}}, ir.Lit("0"), true)
	c := NewComputation("C", poly.Set{Tuple: "C", Dims: []string{"i"}}, ir.Lit("0"), true)

	require.NoError(t, fn.AddComputation(a))
	require.NoError(t, fn.AddComputation(b))
	require.NoError(t, fn.AddComputation(c))

	require.NoError(t, a.First(RootDimension))

	aOrder := *a.Schedule().OutDims[0].Const
	bOrder := *b.Schedule().OutDims[0].Const
	cOrder := *c.Schedule().OutDims[0].Const

	assert.Less(t, aOrder, bOrder)
	assert.Less(t, aOrder, cOrder)
	assert.NotEqual(t, bOrder, cOrder)
}

func TestBeforeDelegatesToAfter(t *testing.T) {
	fn := NewFunction("f", native.New(), config.Default())

	a := NewComputation("A", poly.Set{Tuple: "A", Dims: []string{"i"}}, ir.Lit("0"), true)
	b := NewComputation("B", poly.Set{Tuple: "B", Dims: []string{"i"}}, ir.Lit("0"), true)

	require.NoError(t, fn.AddComputation(a))
	require.NoError(t, fn.AddComputation(b))

	require.NoError(t, a.Before(b, RootDimension))

	aOrder := *a.Schedule().OutDims[0].Const
	bOrder := *b.Schedule().OutDims[0].Const
	assert.Less(t, aOrder, bOrder)
}

func TestAlignSchedulesPadsToMaxRank(t *testing.T) {
	fn := NewFunction("f", native.New(), config.Default())

	a := NewComputation("A", poly.Set{Tuple: "A", Dims: []string{"i", "j"}}, ir.Lit("0"), true)
	b := NewComputation("B", poly.Set{Tuple: "B", Dims: []string{"i"}}, ir.Lit("0"), true)

	require.NoError(t, fn.AddComputation(a))
	require.NoError(t, fn.AddComputation(b))

	require.NoError(t, fn.AlignSchedules())

	assert.Equal(t, a.Schedule().OutputRank(), b.Schedule().OutputRank())
}

func TestTagGPUDimensionsRequiresAdjacency(t *testing.T) {
	_, c := newTestFunction(t, "S", []string{"i", "j"})
	assert.Error(t, c.TagGPUDimensions(0, 5))
	require.NoError(t, c.TagGPUDimensions(0, 1))

	iter, err := c.Function().GetGPUIterator("S", 0)
	require.NoError(t, err)
	assert.Equal(t, "__thread_id_x", iter)
}

// TestScheduleOverTextualDomain builds a computation from a parsed
// textual iteration domain rather than a struct literal, the way a
// caller loading domains from a source file would. The literal below is
// fixed and known-good, so a parse failure can only be a mistake in this
// test fixture, not bad input — must.M1 is the right fit.
func TestScheduleOverTextualDomain(t *testing.T) {
	backend := native.New()
	domain := must.M1(backend.ParseSet("{ S[i, j] : 0 <= i < 128 and 0 <= j < 128 }"))

	fn := NewFunction("f", backend, config.Default())
	c := NewComputation("S", domain, ir.Lit("0"), true)
	require.NoError(t, fn.AddComputation(c))

	require.NoError(t, c.Tile(LoopLevel(0), LoopLevel(1), 32, 32))
	assert.Len(t, c.Schedule().OutDims, 9)
}

func TestValidateFlagsMissingSchedule(t *testing.T) {
	fn := NewFunction("f", native.New(), config.Default())
	a := NewComputation("A", poly.Set{Tuple: "A", Dims: []string{"i"}}, ir.Lit("0"), true)
	a.hasSchedule = false

	require.NoError(t, fn.AddComputation(a))

	assert.Error(t, fn.Validate())
}
