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

package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shaderlang/glsl-sema/core/syntax"
	"github.com/shaderlang/glsl-sema/core/tree"
)

func TestFunctionDeclarationExtractorFieldsAreOptionalSlots(t *testing.T) {
	tr := tree.Parse([]byte("void main() {}"))
	fn := tr.Children(tr.Root()).Start

	m, ok := syntax.FunctionDeclaration.TryExtract(tr, fn)
	require.True(t, ok)

	_, hasQualifiers := m.Get("qualifiers")
	require.False(t, hasQualifiers, "an absent positional slot must leave the field unset, not fail the whole match")

	specifier, ok := m.Get("specifier")
	require.True(t, ok)
	require.Equal(t, "void", tr.Text(specifier))

	_, ok = m.Get("body")
	require.True(t, ok)
}

func TestLayoutQualifierListFeedsQualifierUnion(t *testing.T) {
	tr := tree.Parse([]byte("layout(location = 1) uniform vec4 color;"))
	decl := tr.Children(tr.Root()).Start
	vdeclList := tr.Children(decl).Start
	vdecl := tr.Children(vdeclList).Start
	qlist, ok := syntax.VariableDeclaration.TryExtract(tr, vdecl)
	require.True(t, ok)
	qualsNode, ok := qlist.Get("qualifiers")
	require.True(t, ok)

	lm, ok := syntax.TypeQualifierList.TryExtract(tr, qualsNode)
	require.True(t, ok)
	require.Len(t, lm.Items, 2, "one layout_qualifier plus the uniform keyword")
}

func TestParameterListExtractsEachParameterAsAnItem(t *testing.T) {
	tr := tree.Parse([]byte("int add(int x, int y) {}"))
	fn := tr.Children(tr.Root()).Start
	m, ok := syntax.FunctionDeclaration.TryExtract(tr, fn)
	require.True(t, ok)
	paramsNode, ok := m.Get("parameters")
	require.True(t, ok)

	lm, ok := syntax.ParameterList.TryExtract(tr, paramsNode)
	require.True(t, ok)
	require.Len(t, lm.Items, 2)
}

func TestUnionPicksFirstMatchingVariant(t *testing.T) {
	tr := tree.Parse([]byte("void main() { foo(); }"))
	var callNode uint32
	found := false
	for i := 0; i < tr.NodeCount(); i++ {
		idx := uint32(i)
		if tr.Tag(idx) == tree.Call {
			callNode, found = idx, true
		}
	}
	require.True(t, found)

	um, ok := syntax.AnyExpression.TryExtract(tr, callNode)
	require.True(t, ok)
	require.Equal(t, "call", um.Variant)
	require.Equal(t, callNode, um.GetNode())
}

func TestLazyBreaksCycleWithoutPerFieldDereferenceCost(t *testing.T) {
	// AnyExpression references itself (through Parenthized -> inner ->
	// AnyExpression) via Lazy; constructing the schema graph must not
	// recurse infinitely, and Match must still resolve correctly.
	tr := tree.Parse([]byte("void main() { int x = (1); }"))
	var parenNode uint32
	found := false
	for i := 0; i < tr.NodeCount(); i++ {
		idx := uint32(i)
		if tr.Tag(idx) == tree.Parenthized {
			parenNode, found = idx, true
		}
	}
	require.True(t, found)
	require.True(t, syntax.AnyExpression.Match(tr, parenNode))
}
