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

import "github.com/bits-and-blooms/bitset"

// StaticPositions returns the set of m's output positions that carry a
// pinned constant (spec R3), as a bitset rather than a re-scan of OutDims
// every time a caller needs to ask "is position p static".
func StaticPositions(m Map) *bitset.BitSet {
	bs := bitset.New(uint(len(m.OutDims)))

	for i, d := range m.OutDims {
		if d.IsStatic() {
			bs.Set(uint(i))
		}
	}

	return bs
}

// ValidateR3Alternation reports whether m's output positions alternate
// static/dynamic starting with a static slot at position 0 — the
// interleaving spec R3 requires every schedule to preserve, checked here
// against the bitset StaticPositions computes rather than by re-deriving
// parity from OutDims directly.
func ValidateR3Alternation(m Map) bool {
	bs := StaticPositions(m)

	for i := 0; i < len(m.OutDims); i++ {
		wantStatic := i%2 == 0
		if bs.Test(uint(i)) != wantStatic {
			return false
		}
	}

	return true
}
