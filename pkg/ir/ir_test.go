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
package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExprString(t *testing.T) {
	e := OpExpr(Add, Ident("i"), Lit("1"))
	assert.Equal(t, "(add i 1)", e.String())
}

func TestExprStringNested(t *testing.T) {
	access := OpExpr(Access, Ident("buf"), Ident("i"), Ident("j"))
	e := OpExpr(Eq, access, Lit("0"))
	assert.Equal(t, "(eq (access buf i j) 0)", e.String())
}

func TestPrimitiveTypeString(t *testing.T) {
	assert.Equal(t, "int32", I32.String())
	assert.Equal(t, "float64", F64.String())
}

func TestBufferNumDims(t *testing.T) {
	b := Buffer{
		Name:     "A",
		Type:     F32,
		DimSizes: []Expr{Lit("10"), Lit("20")},
		Role:     Input,
	}
	assert.Equal(t, 2, b.NumDims())
}
