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
package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewfIsDetectedByKind(t *testing.T) {
	err := Newf(InvalidDimension, "Computation.Split", "dimension %d out of range", 9)

	assert.True(t, Is(err, InvalidDimension))
	assert.False(t, Is(err, DuplicateName))
}

func TestWrapPreservesKindAndNilPassthrough(t *testing.T) {
	assert.NoError(t, Wrap(InvalidPolyhedral, "op", nil))

	cause := Newf(InvalidTileSize, "inner", "bad size")
	wrapped := Wrap(InvalidPolyhedral, "outer", cause)

	assert.True(t, Is(wrapped, InvalidPolyhedral))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "InvalidDimension", InvalidDimension.String())
	assert.Equal(t, "UnknownErrorKind", Kind(255).String())
}
