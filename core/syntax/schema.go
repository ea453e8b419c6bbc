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

// Package syntax is the typed syntax view: a declarative schema system
// describing how to recognize and project grammar productions onto
// strongly typed records, independent of the underlying flat tree. It
// generalizes the one-hand-written-function-per-production style into
// reusable combinators so new productions are declared, not hand-coded.
package syntax

import "github.com/shaderlang/glsl-sema/core/tree"

// Matcher answers whether a node matches a schema, without producing a
// projection. Token, Extractor, ListExtractor, Union, and Lazy all
// implement it so they can nest inside one another's fields.
type Matcher interface {
	Match(t *tree.Tree, index uint32) bool
}

// Token matches any node with the given token tag. Its projection is
// just the node's source text.
type Token struct {
	Tag tree.Tag
}

func (s Token) Match(t *tree.Tree, index uint32) bool { return t.Tag(index) == s.Tag }

// Text returns the source text of a node this schema matched.
func (s Token) Text(t *tree.Tree, index uint32) string { return t.Text(index) }

// isSkippable reports whether a child is a parser recovery node that
// must be skipped during positional matching, per spec's tag-set note.
func isSkippable(tag tree.Tag) bool { return tag == tree.Invalid || tag == tree.Unknown }

// Field is one named, ordered, optional positional slot of an Extractor.
type Field struct {
	Name   string
	Schema Matcher
}

// Extractor matches a nonterminal tag and positionally assigns its
// children to named fields. Matching is positional and forgiving: fields
// are scanned left to right against children left to right, skipping
// invalid/unknown children, and an unmatched field is simply left unset
// rather than failing the whole extraction.
type Extractor struct {
	Tag    tree.Tag
	Fields []Field
}

func (s Extractor) Match(t *tree.Tree, index uint32) bool { return t.Tag(index) == s.Tag }

// Match is the projection an Extractor or ListExtractor produces: the
// matched node, plus which fields landed on which child index.
type Match struct {
	Node    uint32
	present map[string]uint32
}

// Get returns the child index matched to a named field, if present.
func (m Match) Get(name string) (uint32, bool) {
	idx, ok := m.present[name]
	return idx, ok
}

// TryExtract matches index against the extractor's tag and, on success,
// positionally fills in its fields.
func (s Extractor) TryExtract(t *tree.Tree, index uint32) (Match, bool) {
	if t.Tag(index) != s.Tag {
		return Match{}, false
	}
	children := t.Children(index)
	m := Match{Node: index, present: make(map[string]uint32, len(s.Fields))}
	pos := children.Start
	for _, f := range s.Fields {
		for pos < children.End && isSkippable(t.Tag(pos)) {
			pos++
		}
		if pos < children.End && f.Schema.Match(t, pos) {
			m.present[f.Name] = pos
			pos++
		}
	}
	return m, true
}

// ListExtractor matches a node with tag Tag and splits its child range
// into an optional Prefix, an optional Suffix, and an interior range
// iterated against Item. A nil Prefix/Suffix schema means that slot does
// not exist for this production.
type ListExtractor struct {
	Tag    tree.Tag
	Prefix Matcher
	Item   Matcher
	Suffix Matcher
}

func (s ListExtractor) Match(t *tree.Tree, index uint32) bool { return t.Tag(index) == s.Tag }

// ListMatch is the projection a ListExtractor produces.
type ListMatch struct {
	Node        uint32
	PrefixNode  uint32
	HasPrefix   bool
	SuffixNode  uint32
	HasSuffix   bool
	Items       []uint32
}

// TryExtract matches index against the list extractor's tag and splits
// its children into prefix/items/suffix.
func (s ListExtractor) TryExtract(t *tree.Tree, index uint32) (ListMatch, bool) {
	if t.Tag(index) != s.Tag {
		return ListMatch{}, false
	}
	children := t.Children(index)
	start, end := children.Start, children.End
	var m ListMatch
	m.Node = index

	if s.Prefix != nil {
		for start < end && isSkippable(t.Tag(start)) {
			start++
		}
		if start < end && s.Prefix.Match(t, start) {
			m.PrefixNode, m.HasPrefix = start, true
			start++
		}
	}
	if s.Suffix != nil {
		last := end
		for last > start && isSkippable(t.Tag(last-1)) {
			last--
		}
		if last > start && s.Suffix.Match(t, last-1) {
			m.SuffixNode, m.HasSuffix = last-1, true
			end = last - 1
		}
	}
	for i := start; i < end; i++ {
		if isSkippable(t.Tag(i)) {
			continue
		}
		if s.Item.Match(t, i) {
			m.Items = append(m.Items, i)
		}
	}
	return m, true
}

// UnionVariant is one alternative of a Union schema.
type UnionVariant struct {
	Name    string
	Matcher Matcher
}

// Union matches a node if any variant's schema matches, carrying a tag
// discriminating which variant hit. Single-variant unions are permitted
// and simply yield the inner node under that one variant's name.
type Union struct {
	Variants []UnionVariant
}

func (s Union) Match(t *tree.Tree, index uint32) bool {
	_, ok := s.TryExtract(t, index)
	return ok
}

// UnionMatch names which variant matched a node.
type UnionMatch struct {
	Variant string
	node    uint32
}

// GetNode returns the node index the union matched.
func (m UnionMatch) GetNode() uint32 { return m.node }

// TryExtract returns the first variant (in declaration order) whose
// schema matches index.
func (s Union) TryExtract(t *tree.Tree, index uint32) (UnionMatch, bool) {
	for _, v := range s.Variants {
		if v.Matcher.Match(t, index) {
			return UnionMatch{Variant: v.Name, node: index}, true
		}
	}
	return UnionMatch{}, false
}

// Lazy wraps a schema factory so mutually recursive productions (an
// expression containing a call containing an expression; a struct
// containing fields containing declarations containing structs) can
// reference one another without a Go initialization cycle. The factory
// is invoked once per Match call rather than cached at package init,
// which is the "re-run the match at dereference time" policy spec's
// design notes call for; callers that need the matched node index only
// (the common case) can skip calling the factory at all by checking the
// node's tag directly before dereferencing.
type Lazy struct {
	Resolve func() Matcher
}

func (s Lazy) Match(t *tree.Tree, index uint32) bool { return s.Resolve().Match(t, index) }
