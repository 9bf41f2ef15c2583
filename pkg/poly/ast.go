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

// ASTNodeKind tags the three shapes an AST node can take.
type ASTNodeKind uint8

const (
	// ASTFor is a single nested loop over one dynamic schedule dimension.
	ASTFor ASTNodeKind = iota
	// ASTBlock is a sequence of sibling nodes sharing a static ordering
	// coordinate (peer statements at the same nesting level).
	ASTBlock
	// ASTLeaf is one computation instance — a statement call.
	ASTLeaf
)

// ASTNode is one node of the AST handed back to the downstream code
// generator (spec §4.5/§6). The shape mirrors isl_ast_node: a for-loop
// carries an iterator name, bounds and a body; a block carries an ordered
// list of children; a leaf carries the statement name and its captured
// access expressions.
type ASTNode struct {
	Kind ASTNodeKind

	// ASTFor fields.
	Iterator    string
	LowerBound  string
	UpperBound  string
	Body        *ASTNode

	// ASTBlock fields.
	Children []*ASTNode

	// ASTLeaf fields.
	Statement string
	Accesses  []string
}

// LeafFunc is the "per-leaf-domain" callback (spec §4.5 step 4): invoked
// once per statement instance the AST walk reaches, with the freshly built
// leaf node. It returns the (possibly wrapped) node to splice into the
// tree, the same contract isl_ast_build_set_at_each_domain documents.
type LeafFunc func(build *ASTBuild, node *ASTNode) *ASTNode

// PostForFunc is the "post-for" callback: invoked after a for-loop node is
// fully built, allowing a GPU/parallel/vector tag to annotate or rewrite
// it before it is attached to its parent.
type PostForFunc func(build *ASTBuild, node *ASTNode) *ASTNode

// ASTBuild bundles the options and callbacks an AST build is configured
// with (spec §4.5 steps 2-4): the optional context set, the two isl
// options this core always sets, and the leaf/post-for hooks.
type ASTBuild struct {
	Context             *Set
	AtomicUpperBound    bool
	ExploitNestedBounds bool
	Leaf                LeafFunc
	PostFor             PostForFunc
}

// NewASTBuild constructs a build object from a context set, or an empty
// build when ctx is nil (spec §4.5 step 2).
func NewASTBuild(ctx *Set) *ASTBuild {
	return &ASTBuild{Context: ctx}
}

// SetAtEachDomain registers the per-leaf-domain callback and returns the
// receiver for chaining, mirroring isl_ast_build_set_at_each_domain.
func (b *ASTBuild) SetAtEachDomain(fn LeafFunc) *ASTBuild {
	b.Leaf = fn
	return b
}

// SetAfterEachFor registers the post-for callback and returns the
// receiver for chaining, mirroring isl_ast_build_set_after_each_for.
func (b *ASTBuild) SetAfterEachFor(fn PostForFunc) *ASTBuild {
	b.PostFor = fn
	return b
}

// AST is the finished, immutable result of a build: one root node (always
// an ASTBlock, even when it has a single child). The build options it was
// generated under are not kept.
type AST struct {
	Root *ASTNode
}
