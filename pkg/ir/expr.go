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

import "strings"

// ExprKind tags the three shapes an Expr can take (spec §3 "Operator /
// expression kind").
type ExprKind uint8

const (
	// Identifier names a scalar variable (a loop iterator, a constant).
	Identifier ExprKind = iota
	// Literal carries a fixed value, kept as its textual presentation —
	// this core never evaluates expressions, only threads them through.
	Literal
	// Operation applies an Op to one or more sub-expressions.
	Operation
)

// OpKind enumerates the operation tags an Operation expression can carry
// (spec §3: "arithmetic, comparison, logical, conditional, call, access,
// min/max, mod, not"). Names and grouping follow coli::op_t
// (coli_core.cpp lines ~1064-1110).
type OpKind uint8

const (
	Add OpKind = iota
	Sub
	Mul
	Div
	Mod
	Minus
	Max
	Min
	LogicalAnd
	LogicalOr
	Not
	Eq
	Ne
	Le
	Lt
	Ge
	Gt
	Cond
	Call
	Access
)

// String renders the op the way str_coli_type_op did (coli_core.cpp
// lines ~1064-1110).
func (o OpKind) String() string {
	switch o {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Mod:
		return "mod"
	case Minus:
		return "minus"
	case Max:
		return "max"
	case Min:
		return "min"
	case LogicalAnd:
		return "and"
	case LogicalOr:
		return "or"
	case Not:
		return "not"
	case Eq:
		return "eq"
	case Ne:
		return "ne"
	case Le:
		return "le"
	case Lt:
		return "lt"
	case Ge:
		return "ge"
	case Gt:
		return "gt"
	case Cond:
		return "cond"
	case Call:
		return "call"
	case Access:
		return "access"
	default:
		return "unknown op"
	}
}

// Expr is a scalar expression: an identifier, a literal, or an operation
// over sub-expressions. Only one of Name, Value, or (Op, Args) is
// meaningful, selected by Kind.
type Expr struct {
	Kind ExprKind

	// Identifier.
	Name string

	// Literal. Kept as text (e.g. "4", "3.5") — arithmetic on literals is
	// a downstream concern, not this core's.
	Value string

	// Operation.
	Op   OpKind
	Args []Expr
}

// Ident constructs an identifier expression.
func Ident(name string) Expr { return Expr{Kind: Identifier, Name: name} }

// Lit constructs a literal expression from its textual value.
func Lit(value string) Expr { return Expr{Kind: Literal, Value: value} }

// OpExpr constructs an operation expression.
func OpExpr(op OpKind, args ...Expr) Expr {
	return Expr{Kind: Operation, Op: op, Args: args}
}

// String renders e as an s-expression-ish form, sufficient for dumps and
// test assertions; it is not a parser round-trip format (pkg/textual owns
// the schedule/set textual grammar, not expressions).
func (e Expr) String() string {
	switch e.Kind {
	case Identifier:
		return e.Name
	case Literal:
		return e.Value
	case Operation:
		parts := make([]string, 0, len(e.Args)+1)
		parts = append(parts, e.Op.String())

		for _, a := range e.Args {
			parts = append(parts, a.String())
		}

		return "(" + strings.Join(parts, " ") + ")"
	default:
		return "<invalid expr>"
	}
}
