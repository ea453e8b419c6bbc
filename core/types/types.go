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

// Package types is the type reconstructor: given a resolved reference,
// it synthesizes a Type value describing qualifiers, base specifier,
// array suffixes, and (for functions) a parameter list, and renders it
// to a canonical single-line string.
package types

import (
	"strings"

	"github.com/shaderlang/glsl-sema/core/scope"
	"github.com/shaderlang/glsl-sema/core/syntax"
	"github.com/shaderlang/glsl-sema/core/tree"
)

// Type is a record with four optional fields, matching spec §3's
// invariants: a function reference sets Qualifiers, Specifier,
// Parameters; a struct reference sets only Specifier; any other
// declaration sets Qualifiers, Specifier, and optionally Arrays.
type Type struct {
	HasQualifiers bool
	Qualifiers    uint32

	HasSpecifier bool
	Specifier    uint32
	// StructSpecifier marks that Specifier is itself a struct_specifier
	// node rather than a plain identifier specifier.
	StructSpecifier bool

	Arrays []uint32

	HasParameters bool
	Parameters    uint32
}

// TypeOf synthesizes a Type from a resolved reference, dispatching on
// what ref.ParentDeclaration extracts as (spec §4.3). It returns false
// when the parent declaration does not extract as any declaration
// variant.
func TypeOf(t *tree.Tree, ref scope.Reference) (Type, bool) {
	parentDecl := ref.ParentDeclaration
	if t.Tag(parentDecl) == tree.Declaration {
		// declaration is a thin wrapper around a variable_declaration_list
		// (or, for a struct declaration, a struct_specifier): the scope
		// resolver sets it as parent_declaration per spec §4.2.2's
		// propagation rule, but it is not itself a declaration variant
		// AnyDeclaration recognizes. The node that actually describes
		// ref's type is ref's own direct parent in the tree.
		actual, ok := t.Parent(ref.Node)
		if !ok {
			return Type{}, false
		}
		parentDecl = actual
	}

	m, ok := syntax.AnyDeclaration.TryExtract(t, parentDecl)
	if !ok {
		return Type{}, false
	}
	switch m.Variant {
	case "function":
		fn, _ := syntax.FunctionDeclaration.TryExtract(t, parentDecl)
		var result Type
		if q, ok := fn.Get("qualifiers"); ok {
			result.HasQualifiers, result.Qualifiers = true, q
		}
		if s, ok := fn.Get("specifier"); ok {
			result.HasSpecifier, result.Specifier = true, s
		}
		if p, ok := fn.Get("parameters"); ok {
			result.HasParameters, result.Parameters = true, p
		}
		return result, true
	case "struct_specifier":
		return Type{HasSpecifier: true, Specifier: parentDecl, StructSpecifier: true}, true
	default:
		// variable, parameter, or a block_declaration (reached through a
		// block's instance name): qualifiers and specifier from whichever
		// extractor matched, arrays from the declared name's trailing
		// array siblings.
		var result Type
		switch m.Variant {
		case "parameter":
			pm, _ := syntax.Parameter.TryExtract(t, parentDecl)
			if q, ok := pm.Get("qualifiers"); ok {
				result.HasQualifiers, result.Qualifiers = true, q
			}
			if s, ok := pm.Get("specifier"); ok {
				result.HasSpecifier, result.Specifier = true, s
			}
		case "variable":
			vm, _ := syntax.VariableDeclaration.TryExtract(t, parentDecl)
			if q, ok := vm.Get("qualifiers"); ok {
				result.HasQualifiers, result.Qualifiers = true, q
			}
			if s, ok := vm.Get("specifier"); ok {
				result.HasSpecifier, result.Specifier = true, s
			}
		case "block_declaration":
			bm, _ := syntax.BlockDeclaration.TryExtract(t, parentDecl)
			if q, ok := bm.Get("qualifiers"); ok {
				result.HasQualifiers, result.Qualifiers = true, q
			}
			if s, ok := bm.Get("type_name"); ok {
				result.HasSpecifier, result.Specifier = true, s
			}
		}
		result.Arrays = arrayIterator(t, ref.Node)
		return result, true
	}
}

// ParameterType reconstructs the type of a single parameter node:
// qualifiers and specifier from the parameter extractor, arrays from
// the parameter's variable name if present, no parameters field.
func ParameterType(t *tree.Tree, parameter uint32) Type {
	m, ok := syntax.Parameter.TryExtract(t, parameter)
	if !ok {
		return Type{}
	}
	var result Type
	if q, ok := m.Get("qualifiers"); ok {
		result.HasQualifiers, result.Qualifiers = true, q
	}
	if s, ok := m.Get("specifier"); ok {
		result.HasSpecifier, result.Specifier = true, s
	}
	if n, ok := m.Get("name"); ok {
		result.Arrays = arrayIterator(t, n)
	}
	return result
}

// arrayIterator enumerates all array children that follow a variable
// name node, in source order, by scanning the name's parent's children
// for array tags after the name's own position.
func arrayIterator(t *tree.Tree, nameNode uint32) []uint32 {
	parent, ok := t.Parent(nameNode)
	if !ok {
		return nil
	}
	children := t.Children(parent)
	var arrays []uint32
	found := false
	for i := children.Start; i < children.End; i++ {
		if i == nameNode {
			found = true
			continue
		}
		if !found {
			continue
		}
		if t.Tag(i) == tree.Array {
			arrays = append(arrays, i)
		}
	}
	return arrays
}

// Format renders a Type to its canonical single-line string, per spec
// §4.3: qualifiers, then specifier, then array suffixes concatenated
// directly, then (for functions) a parenthesized comma-separated
// parameter type list. Rendering is idempotent: calling Format twice on
// the same Type yields byte-identical strings.
func (ty Type) Format(t *tree.Tree, source []byte) string {
	var b strings.Builder
	if ty.HasQualifiers {
		b.WriteString(formatSingleLine(t, source, ty.Qualifiers))
		b.WriteString(" ")
	}
	if ty.HasSpecifier {
		b.WriteString(formatSingleLine(t, source, ty.Specifier))
		b.WriteString(" ")
	}
	for _, arr := range ty.Arrays {
		b.WriteString(formatArray(t, source, arr))
	}
	if ty.HasParameters {
		b.WriteString("(")
		b.WriteString(formatParameters(t, ty.Parameters))
		b.WriteString(")")
	}
	return b.String()
}

// formatParameters renders the comma-separated reconstructed type of
// each parameter in a parameter_list, recursively via ParameterType.
func formatParameters(t *tree.Tree, parameterList uint32) string {
	m, ok := syntax.ParameterList.TryExtract(t, parameterList)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(m.Items))
	for _, p := range m.Items {
		pt := ParameterType(t, p)
		// Format() always trails its specifier with a space (needed when
		// a Type is rendered on its own); trim that before joining so
		// parameters read "int, int" rather than "int , int ".
		parts = append(parts, strings.TrimRight(pt.Format(t, t.Source()), " "))
	}
	return strings.Join(parts, ", ")
}

// formatSingleLine pretty-prints the subtree rooted at index as a single
// line: source whitespace is ignored and its tokens are joined with a
// single space, except that no space goes before ")", ",", ";" or "]"
// or after "(" or "[". This is a simplified single-line renderer: the only
// presentation spec's formatter needs for canonical Type rendering is a
// single-line mode, so a full general-purpose pretty-printer for
// arbitrary subtrees is out of scope (spec's own Non-goals list a
// general pretty-formatter as an external collaborator's concern).
func formatSingleLine(t *tree.Tree, source []byte, index uint32) string {
	var toks []string
	collectTokenText(t, source, index, &toks)
	return joinTokens(toks)
}

// noSpaceBefore/noSpaceAfter keep punctuation from floating away from
// its neighbor when tokens are rejoined with spaces.
var noSpaceBefore = map[string]bool{")": true, ",": true, ";": true, "]": true}
var noSpaceAfter = map[string]bool{"(": true, "[": true}

func joinTokens(toks []string) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && !noSpaceBefore[tok] && !noSpaceAfter[toks[i-1]] {
			b.WriteString(" ")
		}
		b.WriteString(tok)
	}
	return b.String()
}

func collectTokenText(t *tree.Tree, source []byte, index uint32, out *[]string) {
	if t.Tag(index).IsToken() {
		*out = append(*out, t.Text(index))
		return
	}
	children := t.Children(index)
	for i := children.Start; i < children.End; i++ {
		collectTokenText(t, source, i, out)
	}
}

func formatArray(t *tree.Tree, source []byte, arrayNode uint32) string {
	m, ok := syntax.Array.TryExtract(t, arrayNode)
	if !ok {
		return "[]"
	}
	if expr, ok := m.Get("expression"); ok {
		return "[" + formatSingleLine(t, source, expr) + "]"
	}
	return "[]"
}
