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
)

func TestParseSet(t *testing.T) {
	s, err := ParseSet("{ S[i, j] : 0 <= i < N and 0 <= j < M }")
	require.NoError(t, err)

	assert.Equal(t, "S", s.Tuple)
	assert.Equal(t, []string{"i", "j"}, s.Dims)
	require.Len(t, s.Constraints, 2)
	assert.Equal(t, "0 <= i < N", s.Constraints[0].Expr)
	assert.Equal(t, "0 <= j < M", s.Constraints[1].Expr)
}

func TestParseSetNoConstraints(t *testing.T) {
	s, err := ParseSet("{ S[i, j] }")
	require.NoError(t, err)

	assert.Empty(t, s.Constraints)
}

func TestParseSetRejectsUnbraced(t *testing.T) {
	_, err := ParseSet("S[i, j]")
	assert.Error(t, err)
}

func TestParseMap(t *testing.T) {
	m, err := ParseMap("{ S[i, j] -> [0, i, 1, j] }")
	require.NoError(t, err)

	assert.Equal(t, "S", m.InTuple)
	assert.Equal(t, []string{"i", "j"}, m.InDims)
	require.Len(t, m.OutDims, 4)

	assert.True(t, m.OutDims[0].IsStatic())
	assert.Equal(t, int64(0), *m.OutDims[0].Const)
	assert.False(t, m.OutDims[1].IsStatic())
	assert.Equal(t, "i", m.OutDims[1].Name)
	assert.True(t, m.OutDims[2].IsStatic())
	assert.Equal(t, int64(1), *m.OutDims[2].Const)
	assert.False(t, m.OutDims[3].IsStatic())
	assert.Equal(t, "j", m.OutDims[3].Name)
}

func TestParseMapMissingArrow(t *testing.T) {
	_, err := ParseMap("{ S[i, j] }")
	assert.Error(t, err)
}

func TestSerializeRoundTripsStructure(t *testing.T) {
	m, err := ParseMap("{ S[i, j] -> [0, i, 1, j] : i < j }")
	require.NoError(t, err)

	text := SerializeMap(m)

	again, err := ParseMap(text)
	require.NoError(t, err)

	assert.Equal(t, m.InTuple, again.InTuple)
	assert.Equal(t, m.InDims, again.InDims)
	assert.Equal(t, len(m.OutDims), len(again.OutDims))
}
