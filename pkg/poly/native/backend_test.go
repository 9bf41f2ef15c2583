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
package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polysched/schedcore/pkg/poly"
)

func TestIdentity(t *testing.T) {
	b := New()
	m := b.Identity("S", []string{"i", "j"})

	assert.Equal(t, "S", m.InTuple)
	require.Len(t, m.OutDims, 2)
	assert.False(t, m.OutDims[0].IsStatic())
	assert.Equal(t, "i", m.OutDims[0].Name)
}

func TestInsertOutputDim(t *testing.T) {
	b := New()
	m := b.Identity("S", []string{"i", "j"})

	zero := int64(0)
	m = b.InsertOutputDim(m, 0, "s0", &zero)

	require.Len(t, m.OutDims, 3)
	assert.True(t, m.OutDims[0].IsStatic())
	assert.Equal(t, "i", m.OutDims[1].Name)
	assert.Equal(t, "j", m.OutDims[2].Name)
}

func TestSetOutputConstant(t *testing.T) {
	b := New()
	m := b.Identity("S", []string{"i"})

	out, err := b.SetOutputConstant(m, 0, 7)
	require.NoError(t, err)
	assert.True(t, out.OutDims[0].IsStatic())
	assert.Equal(t, int64(7), *out.OutDims[0].Const)

	_, err = b.SetOutputConstant(m, 5, 7)
	assert.Error(t, err)
}

func TestApplyRangeRejectsRankMismatch(t *testing.T) {
	b := New()
	base := b.Identity("S", []string{"i", "j"})
	transform := poly.Map{InDims: []string{"x"}, OutDims: []poly.Dim{{Name: "x"}}}

	_, err := b.ApplyRange(base, transform)
	assert.Error(t, err)
}

func TestApplyRangeComposesOutputShape(t *testing.T) {
	b := New()
	base := b.Identity("S", []string{"i", "j"})

	transform := poly.Map{
		InDims: []string{"a", "b"},
		OutDims: []poly.Dim{
			{Name: "b"},
			{Name: "a"},
		},
	}

	out, err := b.ApplyRange(base, transform)
	require.NoError(t, err)
	assert.Equal(t, "S", out.InTuple)
	assert.Equal(t, []string{"i", "j"}, out.InDims)
	assert.Equal(t, "b", out.OutDims[0].Name)
	assert.Equal(t, "a", out.OutDims[1].Name)
}

func TestIntersectDomainDropsUnmatchedTuples(t *testing.T) {
	b := New()
	m1 := b.Identity("S", []string{"i"})
	m2 := b.Identity("T", []string{"i"})
	u := b.UnionMaps(m1, m2)

	domain := b.UnionSets(poly.Set{Tuple: "S", Dims: []string{"i"}})

	restricted := b.IntersectDomain(u, domain)

	assert.Len(t, restricted.Maps, 1)
	_, ok := restricted.Maps["S"]
	assert.True(t, ok)
}

func TestApply(t *testing.T) {
	b := New()
	m := b.Identity("S", []string{"i"})
	s := poly.Set{Tuple: "S", Dims: []string{"i"}}

	out, err := b.Apply(m, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"i"}, out.Dims)

	_, err = b.Apply(m, poly.Set{Tuple: "T"})
	assert.Error(t, err)
}
