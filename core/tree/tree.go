// Copyright (c) 2026 The Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

// Span is a half-open byte range (start, end) into the source buffer.
type Span struct {
	Start, End uint32
}

// Range is a half-open child index range (start, end) into a Tree's node
// array.
type Range struct {
	Start, End uint32
}

func (r Range) Len() int { return int(r.End) - int(r.Start) }

// node is one entry in the flat arena. Token nodes never populate
// children. A nonterminal's span covers the source text of its whole
// production, which can include tokens that are not kept as children
// (a block's braces, a for or if keyword).
type node struct {
	tag      Tag
	span     Span
	children Range
	parent   int32 // -1 for the root
}

// Tree is a flat indexed forest: nodes are referenced by a stable 32-bit
// index, children are contiguous and in source order, and a parent index
// to child range lookup is total on non-token nodes. This is the
// "external collaborator" data structure spec.md assumes is handed to the
// semantic analysis layers; core/tree's Parse builds one for the
// shading-language grammar.
type Tree struct {
	source []byte
	nodes  []node
}

// NodeCount returns the number of nodes in the arena, including the root.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Source returns the underlying source buffer.
func (t *Tree) Source() []byte { return t.source }

// Root returns the index of the file-level root node.
func (t *Tree) Root() uint32 { return 0 }

// Tag returns the tag of the node at index.
func (t *Tree) Tag(index uint32) Tag { return t.nodes[index].tag }

// Span returns the byte span of the node at index.
func (t *Tree) Span(index uint32) Span { return t.nodes[index].span }

// Token returns the byte span of a token node; it is equivalent to Span
// but documents intent at call sites per spec.md §6.
func (t *Tree) Token(index uint32) Span { return t.nodes[index].span }

// Text returns the source text spanned by the node at index.
func (t *Tree) Text(index uint32) string {
	s := t.nodes[index].span
	return string(t.source[s.Start:s.End])
}

// Children returns the half-open child range of the node at index. It is
// total on non-token nodes (returns an empty range for token nodes and
// for childless nonterminals alike).
func (t *Tree) Children(index uint32) Range { return t.nodes[index].children }

// Parent returns the parent index of the node at index, or false if index
// is the root.
func (t *Tree) Parent(index uint32) (uint32, bool) {
	p := t.nodes[index].parent
	if p < 0 {
		return 0, false
	}
	return uint32(p), true
}
