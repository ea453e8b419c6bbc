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

// Package scope implements the lexical scope resolver: given a document
// and an identifier occurrence, it enumerates the declarations visible
// at that point in declaration order (innermost-first) and filters them
// by name to yield candidate definitions.
package scope

import (
	"github.com/shaderlang/glsl-sema/core/syntax"
	"github.com/shaderlang/glsl-sema/core/tree"
	"github.com/shaderlang/glsl-sema/diagnostics"
)

// Document is the minimal view of a parsed file the resolver needs. It
// is satisfied directly by *tree.Tree in tests, and by the workspace
// package's Document in the rest of the module.
type Document interface {
	Tree() *tree.Tree
}

// Reference is an occurrence of a declared name in source, paired with
// the enclosing declaration node so the type reconstructor can recover
// its declared type. A Reference is produced on demand and borrows from
// its owning Document's parse tree and source buffer; it must not
// outlive them.
type Reference struct {
	Document          Document
	Node              uint32
	ParentDeclaration uint32
}

// declaringTags is the set of nonterminal tags whose direct children are
// scanned for declared variable names, per spec §4.2.2. The literal spec
// text lists only function_declaration, struct_specifier, and
// variable_declaration; taken alone that set can never emit a Reference
// for a lone parameter node, which would make parameter-visibility
// examples impossible and contradicts the data model's statement that a
// parent_declaration points at "function, variable, block, parameter, or
// struct." This set is extended to include parameter accordingly (see
// DESIGN.md's Open Question ledger).
//
// block_declaration is deliberately NOT in this set: unlike the other
// four, its own recursion needs to re-enable check_children (see the
// generic branch below) so an interface block's fields stay visible at
// file scope. Folding it into this branch would freeze check_children at
// whatever it already was, pruning field_declaration_list right back out.
var declaringTags = map[tree.Tag]bool{
	tree.FunctionDeclaration: true,
	tree.StructSpecifier:     true,
	tree.VariableDeclaration: true,
	tree.Parameter:           true,
}

// parentDeclarationTags is the set of tags that become the new
// parent_declaration when descending into them, per spec §4.2.2's
// propagation rule. declaration wraps a variable_declaration_list or a
// bare struct_specifier; typeOf unwraps it back to the reference's own
// immediate tree parent (see core/types), since declaration itself is
// not one of AnyDeclaration's variants.
//
// block_declaration is deliberately absent: its interface-block fields
// are themselves variable_declaration nodes that should keep their own
// node as parent_declaration (the field's own type, e.g. vec4), the same
// way a struct's fields do — not the enclosing block's type_name. The
// block's own instance name, when present, is emitted directly in the
// generic branch below with parent_declaration set to the block itself.
var parentDeclarationTags = map[tree.Tag]bool{
	tree.Declaration:         true,
	tree.Parameter:           true,
	tree.FunctionDeclaration: true,
	tree.StructSpecifier:     true,
}

// VisibleSymbols produces the symbols visible at node, innermost-first,
// in reverse source order within each scope. It implements spec §4.2.1's
// ascend-then-descend walk: ascend collects ancestors, and for each
// ancestor's children strictly before the current node (or, if the
// ancestor is the file root, all of its children, since file scope is
// whole-file) it recurses with findVisibleSymbols.
func VisibleSymbols(doc Document, node uint32) []Reference {
	return VisibleSymbolsDiag(doc, node, nil)
}

// VisibleSymbolsDiag is VisibleSymbols with an optional diagnostics.Bag:
// when non-nil, every parser recovery node (invalid/unknown tag) skipped
// among the direct children of a function, struct, variable or parameter
// node during the walk is recorded against it; recovery nodes elsewhere
// in the tree are not recorded. This follows SPEC_FULL.md's supplemental
// diagnostics-collection feature. A nil bag disables collection entirely,
// at no extra cost over plain VisibleSymbols.
func VisibleSymbolsDiag(doc Document, node uint32, diag *diagnostics.Bag) []Reference {
	t := doc.Tree()
	var out []Reference
	current := node
	for {
		parent, ok := t.Parent(current)
		if !ok {
			break
		}
		children := t.Children(parent)
		if t.Tag(parent) == tree.File {
			for i := children.End; i > children.Start; i-- {
				findVisibleSymbols(doc, t, i-1, &out, walkOpts{checkChildren: false}, diag)
			}
		} else {
			// current+1 is the first sibling strictly before current
			// in the downward walk: the loop decrements before use.
			for i := current + 1; i > children.Start; i-- {
				sibling := i - 1
				if sibling == current {
					continue
				}
				findVisibleSymbols(doc, t, sibling, &out, walkOpts{checkChildren: t.Tag(parent) != tree.File}, diag)
			}
		}
		current = parent
	}
	return out
}

// FileScopeSymbols returns every top-level declaration in doc's file
// node, in reverse source order, the same set VisibleSymbols would
// collect for any non-descendant position once the ascend walk reaches
// the file root. It is exposed directly for callers — like
// cross-document global lookup — that want the whole file's globals
// without owning a specific node inside that file.
func FileScopeSymbols(doc Document) []Reference {
	t := doc.Tree()
	if t.NodeCount() == 0 {
		return nil
	}
	root := t.Root()
	if t.Tag(root) != tree.File {
		return nil
	}
	var out []Reference
	children := t.Children(root)
	for i := children.End; i > children.Start; i-- {
		findVisibleSymbols(doc, t, i-1, &out, walkOpts{checkChildren: false}, nil)
	}
	return out
}

type walkOpts struct {
	checkChildren     bool
	hasParentDecl     bool
	parentDeclaration uint32
}

func (o walkOpts) withParentDeclaration(index uint32) walkOpts {
	o.hasParentDecl = true
	o.parentDeclaration = index
	return o
}

// findVisibleSymbols implements spec §4.2.2's per-node recursion with
// scope-pruning rules. diag may be nil; when non-nil, every recovery node
// skipped during the positional scan is recorded against it.
func findVisibleSymbols(doc Document, t *tree.Tree, index uint32, out *[]Reference, opts walkOpts, diag *diagnostics.Bag) {
	tag := t.Tag(index)

	if declaringTags[tag] {
		nameNode, hasName := declaredNameChild(t, tag, index)
		children := t.Children(index)
		for i := children.End; i > children.Start; i-- {
			child := i - 1
			if isSkippable(t.Tag(child)) {
				if diag != nil {
					diag.Skip(t, child, "recovery node skipped while scanning declaration children")
				}
				continue
			}
			if hasName && child == nameNode {
				parentDecl := index
				if opts.hasParentDecl {
					parentDecl = opts.parentDeclaration
				}
				*out = append(*out, Reference{Document: doc, Node: child, ParentDeclaration: parentDecl})
				continue
			}
			findVisibleSymbols(doc, t, child, out, opts, diag)
		}
		return
	}

	if tag == tree.Block || tag == tree.Statement {
		// Inner scopes: declarations inside are not visible from
		// outside. Reaching an outer scope's contents happens via the
		// ascend loop in VisibleSymbols, not by descending here.
		return
	}

	if tag.IsToken() {
		return
	}

	if !opts.checkChildren && (tag == tree.ParameterList || tag == tree.FieldDeclarationList) {
		// Parameters and struct fields are scoped inside their owning
		// declaration, not at the file scope collecting them here.
		return
	}

	nextOpts := opts
	if tag == tree.BlockDeclaration {
		// Interface-block fields are globally visible names in this
		// language: re-enable descent into nested parameter/field lists so
		// field_declaration_list is not pruned below. The block's own
		// instance name (e.g. "my_block" in "uniform Fog { ... } my_block;")
		// is emitted directly here rather than via the declaringTags branch,
		// since block_declaration's own children must NOT set
		// parent_declaration to the block for its fields to keep their own
		// node (see parentDeclarationTags above).
		nextOpts.checkChildren = true
		if bm, ok := syntax.BlockDeclaration.TryExtract(t, index); ok {
			if instance, ok := bm.Get("instance"); ok {
				parentDecl := index
				if opts.hasParentDecl {
					parentDecl = opts.parentDeclaration
				}
				*out = append(*out, Reference{Document: doc, Node: instance, ParentDeclaration: parentDecl})
			}
		}
	}
	if parentDeclarationTags[tag] {
		nextOpts = nextOpts.withParentDeclaration(index)
	}

	children := t.Children(index)
	for i := children.End; i > children.Start; i-- {
		findVisibleSymbols(doc, t, i-1, out, nextOpts, diag)
	}
}

func isSkippable(tag tree.Tag) bool { return tag == tree.Invalid || tag == tree.Unknown }

// declaredNameChild returns the direct child of a declaringTags node that
// holds its declared name, using the production's own "name" field
// rather than a blind scan for an identifier-tagged child: function,
// variable, and parameter nodes all carry a "specifier" identifier
// (their type) immediately before their "name" identifier, and a
// tag-only scan cannot tell the two apart.
func declaredNameChild(t *tree.Tree, tag tree.Tag, index uint32) (uint32, bool) {
	switch tag {
	case tree.FunctionDeclaration:
		m, ok := syntax.FunctionDeclaration.TryExtract(t, index)
		if !ok {
			return 0, false
		}
		return m.Get("name")
	case tree.StructSpecifier:
		m, ok := syntax.StructSpecifier.TryExtract(t, index)
		if !ok {
			return 0, false
		}
		return m.Get("name")
	case tree.VariableDeclaration:
		m, ok := syntax.VariableDeclaration.TryExtract(t, index)
		if !ok {
			return 0, false
		}
		return m.Get("name")
	case tree.Parameter:
		m, ok := syntax.Parameter.TryExtract(t, index)
		if !ok {
			return 0, false
		}
		return m.Get("name")
	}
	return 0, false
}

// FindDefinition resolves identifierNode to the set of declarations
// visible at its position whose spelling matches, innermost-first.
// Spec §4.2.3: returns an empty slice (never an error) when
// identifierNode is not an identifier token or no declaration is
// visible.
func FindDefinition(doc Document, identifierNode uint32) []Reference {
	return FindDefinitionDiag(doc, identifierNode, nil)
}

// FindDefinitionDiag is FindDefinition with an optional diagnostics.Bag,
// forwarded to VisibleSymbolsDiag.
func FindDefinitionDiag(doc Document, identifierNode uint32, diag *diagnostics.Bag) []Reference {
	t := doc.Tree()
	if t.Tag(identifierNode) != tree.Identifier {
		return nil
	}
	name := t.Text(identifierNode)
	symbols := VisibleSymbolsDiag(doc, identifierNode, diag)
	var out []Reference
	for _, s := range symbols {
		if t.Tag(s.Node) == tree.Identifier && t.Text(s.Node) == name {
			out = append(out, s)
		}
	}
	return out
}
