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
	"sort"

	"github.com/pkg/errors"

	"github.com/polysched/schedcore/pkg/poly"
)

// BuildAST implements poly.Backend. It walks the schedule's interleaved
// output positions left to right: a static position groups the statements
// it still holds by their pinned constant and recurses per group in
// ascending order (isl's lexicographic walk over the static-ordering
// coordinate); a dynamic position folds every statement still in the
// current group under one shared for-loop, since by construction (R3) they
// all agree on every static coordinate up to this point. Position d, the
// schedule's output rank, is the leaf level: one ASTLeaf per remaining
// statement, wrapped in an ASTBlock when more than one survives to that
// depth (two statements sharing a complete schedule prefix).
func (Backend) BuildAST(build *poly.ASTBuild, schedule poly.UnionMap) (*poly.AST, error) {
	names := make([]string, 0, len(schedule.Maps))
	for name := range schedule.Maps {
		names = append(names, name)
	}

	sort.Strings(names)

	if len(names) == 0 {
		return &poly.AST{Root: &poly.ASTNode{Kind: poly.ASTBlock}}, nil
	}

	rank := -1

	for _, name := range names {
		r := schedule.Maps[name].OutputRank()
		if rank == -1 {
			rank = r
		} else if r != rank {
			return nil, errors.Errorf(
				"BuildAST: schedule rank mismatch: %q has rank %d, expected %d", name, r, rank)
		}
	}

	root, err := buildLevel(build, schedule.Maps, names, 0, rank)
	if err != nil {
		return nil, err
	}

	if root.Kind != poly.ASTBlock {
		root = &poly.ASTNode{Kind: poly.ASTBlock, Children: []*poly.ASTNode{root}}
	}

	return &poly.AST{Root: root}, nil
}

func buildLevel(build *poly.ASTBuild, maps map[string]poly.Map, names []string, pos, rank int) (*poly.ASTNode, error) {
	if pos == rank {
		return buildLeaves(build, names), nil
	}

	first := maps[names[0]].OutDims[pos]

	if first.IsStatic() {
		return buildStaticLevel(build, maps, names, pos, rank)
	}

	return buildDynamicLevel(build, maps, names, pos, rank)
}

func buildLeaves(build *poly.ASTBuild, names []string) *poly.ASTNode {
	leaves := make([]*poly.ASTNode, 0, len(names))

	for _, name := range names {
		leaf := &poly.ASTNode{Kind: poly.ASTLeaf, Statement: name}
		if build.Leaf != nil {
			leaf = build.Leaf(build, leaf)
		}

		leaves = append(leaves, leaf)
	}

	if len(leaves) == 1 {
		return leaves[0]
	}

	return &poly.ASTNode{Kind: poly.ASTBlock, Children: leaves}
}

func buildStaticLevel(build *poly.ASTBuild, maps map[string]poly.Map, names []string, pos, rank int) (*poly.ASTNode, error) {
	groups := map[int64][]string{}

	for _, name := range names {
		dim := maps[name].OutDims[pos]
		if dim.Const == nil {
			return nil, errors.Errorf(
				"BuildAST: statement %q has a dynamic dimension at static position %d", name, pos)
		}

		groups[*dim.Const] = append(groups[*dim.Const], name)
	}

	keys := make([]int64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	children := make([]*poly.ASTNode, 0, len(keys))

	for _, k := range keys {
		group := groups[k]
		sort.Strings(group)

		child, err := buildLevel(build, maps, group, pos+1, rank)
		if err != nil {
			return nil, err
		}

		children = append(children, child)
	}

	if len(children) == 1 {
		return children[0], nil
	}

	return &poly.ASTNode{Kind: poly.ASTBlock, Children: children}, nil
}

func buildDynamicLevel(build *poly.ASTBuild, maps map[string]poly.Map, names []string, pos, rank int) (*poly.ASTNode, error) {
	body, err := buildLevel(build, maps, names, pos+1, rank)
	if err != nil {
		return nil, err
	}

	node := &poly.ASTNode{
		Kind:       poly.ASTFor,
		Iterator:   fmt.Sprintf("c%d", pos),
		LowerBound: "0",
		UpperBound: "N",
		Body:       body,
	}

	if build.PostFor != nil {
		node = build.PostFor(build, node)
	}

	return node, nil
}
