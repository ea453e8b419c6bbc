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

// flatten linearizes a nested draft tree into a Tree's flat arena via a
// level-order (BFS) traversal. A single preorder or postorder pass cannot
// give every node's *immediate* children a contiguous index range once
// those children themselves have descendants; level-order assigns each
// node's children as one contiguous batch at the moment the node is
// dequeued, which is exactly the invariant spec.md §3 requires (children
// are contiguous and appear in source order), even though the resulting
// array is ordered by depth rather than strictly by source position.
func flatten(root *draft, source []byte) *Tree {
	t := &Tree{source: source}
	t.nodes = append(t.nodes, node{tag: root.tag, span: root.span, parent: -1})

	type queued struct {
		d   *draft
		idx uint32
	}
	queue := []queued{{root, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.d.children) == 0 {
			continue
		}
		start := uint32(len(t.nodes))
		for _, c := range cur.d.children {
			t.nodes = append(t.nodes, node{tag: c.tag, span: c.span, parent: int32(cur.idx)})
		}
		end := uint32(len(t.nodes))
		t.nodes[cur.idx].children = Range{start, end}
		for i, c := range cur.d.children {
			queue = append(queue, queued{c, start + uint32(i)})
		}
	}
	return t
}
