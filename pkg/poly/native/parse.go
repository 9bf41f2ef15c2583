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
	"fmt"
	"strconv"
	"strings"

	"github.com/polysched/schedcore/pkg/poly"
	"github.com/polysched/schedcore/pkg/textual"
)

// parseTuple splits "name[d1,d2,...]" into the tuple name and its
// dimension tokens. An empty or missing tuple name is allowed (isl's
// anonymous range tuples, e.g. the "[...]" on the right of "->").
func parseTuple(s string) (name string, dims []string, err error) {
	s = strings.TrimSpace(s)

	open := strings.Index(s, "[")
	last := strings.LastIndex(s, "]")

	if open < 0 || last < 0 || last < open {
		return "", nil, fmt.Errorf("malformed tuple presentation %q", s)
	}

	name = strings.TrimSpace(s[:open])
	inner := strings.TrimSpace(s[open+1 : last])

	if inner == "" {
		return name, nil, nil
	}

	for _, tok := range textual.ParseSpace(inner) {
		dims = append(dims, strings.TrimSpace(tok))
	}

	return name, dims, nil
}

// classifyConstraint guesses equality vs inequality from the operator it
// contains. Per spec, legality is never evaluated — this only decides
// which ConstraintKind to label the (otherwise opaque) expression with.
func classifyConstraint(expr string) poly.ConstraintKind {
	for _, op := range []string{"<=", ">=", "<", ">"} {
		if strings.Contains(expr, op) {
			return poly.Inequality
		}
	}

	return poly.Equality
}

func parseConstraints(s string) []poly.Constraint {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var out []poly.Constraint

	for _, raw := range textual.ParseConstraint(s) {
		expr := strings.TrimSpace(raw)
		if expr == "" {
			continue
		}

		out = append(out, poly.Constraint{Kind: classifyConstraint(expr), Expr: expr})
	}

	return out
}

// splitOutsideBrackets finds the first occurrence of sep that is not
// nested within a '[' ... ']' pair, so that e.g. the "->" separating a
// map's domain from its range is found even if a bound expression
// happened to contain similar punctuation.
func splitOutsideBrackets(s, sep string) int {
	depth := 0

	for i := 0; i+len(sep) <= len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		}

		if depth == 0 && s[i:i+len(sep)] == sep {
			return i
		}
	}

	return -1
}

// ParseSet reads "{ Tuple[d1,d2,...] : constraints }".
func ParseSet(text string) (poly.Set, error) {
	body, err := braceBody(text)
	if err != nil {
		return poly.Set{}, err
	}

	tuplePart, constraintPart := splitOnColon(body)

	tuple, dims, err := parseTuple(tuplePart)
	if err != nil {
		return poly.Set{}, err
	}

	return poly.Set{
		Tuple:       tuple,
		Dims:        dims,
		Constraints: parseConstraints(constraintPart),
	}, nil
}

// ParseMap reads "{ Tuple[d1,...] -> [e1,...] : constraints }".
func ParseMap(text string) (poly.Map, error) {
	body, err := braceBody(text)
	if err != nil {
		return poly.Map{}, err
	}

	arrow := splitOutsideBrackets(body, "->")
	if arrow < 0 {
		return poly.Map{}, fmt.Errorf("map presentation missing '->': %q", text)
	}

	lhs := body[:arrow]
	rhs := body[arrow+2:]

	inTuple, inDims, err := parseTuple(lhs)
	if err != nil {
		return poly.Map{}, err
	}

	rangePart, constraintPart := splitOnColon(rhs)

	outTuple, outTokens, err := parseTuple(rangePart)
	if err != nil {
		return poly.Map{}, err
	}

	outDims := make([]poly.Dim, len(outTokens))

	for i, tok := range outTokens {
		tok = strings.TrimSpace(tok)
		if v, convErr := strconv.ParseInt(tok, 10, 64); convErr == nil {
			val := v
			outDims[i] = poly.Dim{Name: fmt.Sprintf("c%d", i), Const: &val}
		} else {
			outDims[i] = poly.Dim{Name: tok}
		}
	}

	return poly.Map{
		InTuple:     inTuple,
		InDims:      inDims,
		OutTuple:    outTuple,
		OutDims:     outDims,
		Constraints: parseConstraints(constraintPart),
	}, nil
}

func braceBody(text string) (string, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return "", fmt.Errorf("presentation must be wrapped in braces: %q", text)
	}

	return strings.TrimSpace(text[1 : len(text)-1]), nil
}

func splitOnColon(s string) (head, tail string) {
	idx := splitOutsideBrackets(s, ":")
	if idx < 0 {
		return s, ""
	}

	return s[:idx], s[idx+1:]
}

// SerializeSet renders s back to its textual presentation.
func SerializeSet(s poly.Set) string {
	var b strings.Builder

	b.WriteString("{ ")
	b.WriteString(s.Tuple)
	b.WriteString("[")
	b.WriteString(strings.Join(s.Dims, ", "))
	b.WriteString("]")
	writeConstraints(&b, s.Constraints)
	b.WriteString(" }")

	return b.String()
}

// SerializeMap renders m back to its textual presentation.
func SerializeMap(m poly.Map) string {
	var b strings.Builder

	b.WriteString("{ ")
	b.WriteString(m.InTuple)
	b.WriteString("[")
	b.WriteString(strings.Join(m.InDims, ", "))
	b.WriteString("] -> ")
	b.WriteString(m.OutTuple)
	b.WriteString("[")

	tokens := make([]string, len(m.OutDims))
	for i, d := range m.OutDims {
		tokens[i] = d.String()
	}

	b.WriteString(strings.Join(tokens, ", "))
	b.WriteString("]")
	writeConstraints(&b, m.Constraints)
	b.WriteString(" }")

	return b.String()
}

func writeConstraints(b *strings.Builder, cs []poly.Constraint) {
	if len(cs) == 0 {
		return
	}

	b.WriteString(" : ")

	for i, c := range cs {
		if i > 0 {
			b.WriteString(" and ")
		}

		b.WriteString(c.Expr)
	}
}
