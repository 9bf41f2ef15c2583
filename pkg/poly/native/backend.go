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

// Package native is a pure-Go reference implementation of poly.Backend. It
// has no C dependency and performs no Presburger solving — per spec §1,
// legality and dependence analysis are explicitly out of scope, so this
// backend only needs to track structure (tuple names, dimension names and
// ids, which output positions hold a literal constant) faithfully enough
// to support every operation poly.Backend declares. It is used both as the
// module's default backend and, per Design Notes §9, as the mock a caller
// tests schedule transformations against.
package native

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/polysched/schedcore/pkg/poly"
)

// Backend is the zero-value-usable native implementation of poly.Backend.
type Backend struct{}

// New constructs a native backend. It carries no state of its own; every
// method is a pure function of its arguments.
func New() Backend { return Backend{} }

var _ poly.Backend = Backend{}

// ParseSet implements poly.Backend.
func (Backend) ParseSet(text string) (poly.Set, error) {
	s, err := ParseSet(text)
	if err != nil {
		return poly.Set{}, errors.Wrap(err, "native.ParseSet")
	}

	return s, nil
}

// ParseMap implements poly.Backend.
func (Backend) ParseMap(text string) (poly.Map, error) {
	m, err := ParseMap(text)
	if err != nil {
		return poly.Map{}, errors.Wrap(err, "native.ParseMap")
	}

	return m, nil
}

// SerializeSet implements poly.Backend.
func (Backend) SerializeSet(s poly.Set) string { return SerializeSet(s) }

// SerializeMap implements poly.Backend.
func (Backend) SerializeMap(m poly.Map) string { return SerializeMap(m) }

// Universe implements poly.Backend.
func (Backend) Universe(tuple string, dims []string) poly.Set {
	return poly.Set{Tuple: tuple, Dims: append([]string(nil), dims...)}
}

// Identity implements poly.Backend: one dynamic output dimension per input
// dimension, same names, no constraints.
func (Backend) Identity(tuple string, dims []string) poly.Map {
	out := make([]poly.Dim, len(dims))
	for i, d := range dims {
		out[i] = poly.Dim{Name: d}
	}

	return poly.Map{InTuple: tuple, InDims: append([]string(nil), dims...), OutDims: out}
}

// InsertOutputDim implements poly.Backend.
func (Backend) InsertOutputDim(m poly.Map, pos int, name string, val *int64) poly.Map {
	out := m.Clone()

	if pos < 0 {
		pos = 0
	}

	if pos > len(out.OutDims) {
		pos = len(out.OutDims)
	}

	nd := poly.Dim{Name: name, Const: val}
	dims := make([]poly.Dim, 0, len(out.OutDims)+1)
	dims = append(dims, out.OutDims[:pos]...)
	dims = append(dims, nd)
	dims = append(dims, out.OutDims[pos:]...)
	out.OutDims = dims

	return out
}

// SetOutputConstant implements poly.Backend: the "set constant of one
// output dimension" primitive of spec §4.3, translated from
// isl_map_set_const_dim (coli_core.cpp lines ~265-315).
func (Backend) SetOutputConstant(m poly.Map, pos int, v int64) (poly.Map, error) {
	if pos < 0 || pos >= len(m.OutDims) {
		return poly.Map{}, errors.Errorf(
			"SetOutputConstant: position %d out of range [0,%d)", pos, len(m.OutDims))
	}

	out := m.Clone()
	val := v
	out.OutDims[pos] = poly.Dim{Name: out.OutDims[pos].Name, Const: &val}

	return out, nil
}

// RenameInputTuple implements poly.Backend.
func (Backend) RenameInputTuple(m poly.Map, tuple string) poly.Map {
	out := m.Clone()
	out.InTuple = tuple

	return out
}

// ApplyRange implements poly.Backend: overlays transform's output shape
// onto base, the schedule-composition step every transformer (split,
// interchange, tile, set-constant) performs via isl_map_apply_range in the
// source.
func (Backend) ApplyRange(base, transform poly.Map) (poly.Map, error) {
	if len(transform.InDims) != base.OutputRank() {
		return poly.Map{}, errors.Errorf(
			"ApplyRange: transform expects %d input dims, base has output rank %d",
			len(transform.InDims), base.OutputRank())
	}

	out := poly.Map{
		InTuple:  base.InTuple,
		InDims:   append([]string(nil), base.InDims...),
		OutTuple: transform.OutTuple,
		OutDims:  append([]poly.Dim(nil), transform.OutDims...),
	}

	out.Constraints = append(out.Constraints, base.Constraints...)
	out.Constraints = append(out.Constraints, transform.Constraints...)

	return out, nil
}

// AddSetConstraint implements poly.Backend.
func (Backend) AddSetConstraint(s poly.Set, c poly.Constraint) poly.Set {
	out := s.Clone()
	out.Constraints = append(out.Constraints, c)

	return out
}

// AddMapConstraint implements poly.Backend.
func (Backend) AddMapConstraint(m poly.Map, c poly.Constraint) poly.Map {
	out := m.Clone()
	out.Constraints = append(out.Constraints, c)

	return out
}

// UnionSets implements poly.Backend.
func (Backend) UnionSets(sets ...poly.Set) poly.UnionSet {
	u := poly.NewUnionSet()
	for _, s := range sets {
		u.Add(s)
	}

	return u
}

// UnionMaps implements poly.Backend.
func (Backend) UnionMaps(maps ...poly.Map) poly.UnionMap {
	u := poly.NewUnionMap()
	for _, m := range maps {
		u.Add(m)
	}

	return u
}

// IntersectDomain implements poly.Backend: maps lacking a same-tuple
// counterpart in s are dropped, matching isl_union_map_intersect_domain
// restricted to a known set of tuples.
func (Backend) IntersectDomain(u poly.UnionMap, s poly.UnionSet) poly.UnionMap {
	out := poly.NewUnionMap()

	for tuple, m := range u.Maps {
		dom, ok := s.Sets[tuple]
		if !ok {
			continue
		}

		restricted := m.Clone()
		restricted.Constraints = append(restricted.Constraints, dom.Constraints...)
		out.Add(restricted)
	}

	return out
}

// Apply implements poly.Backend: the image of s under m (the
// time-processor domain for one computation).
func (Backend) Apply(m poly.Map, s poly.Set) (poly.Set, error) {
	if m.InTuple != s.Tuple {
		return poly.Set{}, errors.Errorf(
			"Apply: map input tuple %q does not match set tuple %q", m.InTuple, s.Tuple)
	}

	out := poly.Set{
		Tuple: fmt.Sprintf("%s_time", m.InTuple),
		Dims:  m.OutputDimNames(),
	}
	out.Constraints = append(out.Constraints, s.Constraints...)
	out.Constraints = append(out.Constraints, m.Constraints...)

	return out, nil
}
