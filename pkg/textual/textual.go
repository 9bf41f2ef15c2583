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

// Package textual holds the small string-splitting helpers that support
// textual schedule/set entry (spec §4.6). They are boundary I/O: none of
// them participate in the schedule invariants (R1-R3), and none of them
// evaluate the expressions they split apart.
package textual

import "strings"

// SplitString performs an exclusive left-split of s on every occurrence of
// delim, always producing at least one token (the whole of s, if delim
// never occurs).
func SplitString(s, delim string) []string {
	var tokens []string

	for {
		pos := strings.Index(s, delim)
		if pos < 0 {
			break
		}

		tokens = append(tokens, s[:pos])
		s = s[pos+len(delim):]
	}

	return append(tokens, s)
}

// ParseConstraint splits a constraint-set presentation on "and", e.g.
// "0 <= i and i < N" -> ["0 <= i ", " i < N"]; surrounding spaces are kept.
func ParseConstraint(s string) []string {
	return SplitString(s, "and")
}

// ParseSpace splits a dimension-list presentation on ",", stripping any
// leading "name=" assignment prefix from each token; tokens are not
// trimmed (so "i=0, j" yields ["0", " j"]), matching coli's space parser which is used to recover plain
// dimension/value tokens from an assignment-annotated ISL tuple).
func ParseSpace(s string) []string {
	tokens := strings.Split(s, ",")
	for i, t := range tokens {
		if eq := strings.Index(t, "="); eq >= 0 {
			tokens[i] = t[eq+1:]
		}
	}

	return tokens
}
