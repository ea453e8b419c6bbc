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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFunctionDeclaration(t *testing.T) {
	tr := Parse([]byte("void main() {}"))
	require.Equal(t, File, tr.Tag(tr.Root()))

	children := tr.Children(tr.Root())
	require.Equal(t, 1, children.Len())
	fn := children.Start
	require.Equal(t, FunctionDeclaration, tr.Tag(fn))

	fnChildren := tr.Children(fn)
	var tags []Tag
	for i := fnChildren.Start; i < fnChildren.End; i++ {
		tags = append(tags, tr.Tag(i))
	}
	require.Equal(t, []Tag{Identifier, Identifier, LParen, ParameterList, RParen, Block}, tags)
	require.Equal(t, "main", tr.Text(fnChildren.Start+1))
}

func TestParseVariableDeclarationWithArray(t *testing.T) {
	tr := Parse([]byte("float values[3];"))
	root := tr.Children(tr.Root())
	require.Equal(t, 1, root.Len())
	decl := root.Start
	require.Equal(t, Declaration, tr.Tag(decl))

	declChildren := tr.Children(decl)
	require.Equal(t, VariableDeclarationList, tr.Tag(declChildren.Start))

	list := tr.Children(declChildren.Start)
	require.Equal(t, 1, list.Len())
	vdecl := list.Start
	require.Equal(t, VariableDeclaration, tr.Tag(vdecl))

	var tags []Tag
	vc := tr.Children(vdecl)
	for i := vc.Start; i < vc.End; i++ {
		tags = append(tags, tr.Tag(i))
	}
	require.Equal(t, []Tag{Identifier, Identifier, Array}, tags)
}

func TestParseLayoutQualifiedUniform(t *testing.T) {
	tr := Parse([]byte("layout(location = 1) uniform vec4 color;"))
	root := tr.Children(tr.Root())
	decl := root.Start
	require.Equal(t, Declaration, tr.Tag(decl))

	list := tr.Children(tr.Children(decl).Start)
	vdecl := list.Start
	vc := tr.Children(vdecl)
	require.Equal(t, TypeQualifierList, tr.Tag(vc.Start))

	quals := tr.Children(vc.Start)
	require.Equal(t, 2, quals.Len())
	require.Equal(t, LayoutQualifier, tr.Tag(quals.Start))
	require.Equal(t, KeywordUniform, tr.Tag(quals.Start+1))
}

func TestParentIsTotalOnNonRoot(t *testing.T) {
	tr := Parse([]byte("void main() { int x = 1; }"))
	for i := 1; i < tr.NodeCount(); i++ {
		_, ok := tr.Parent(uint32(i))
		require.True(t, ok, "node %d should have a parent", i)
	}
	_, ok := tr.Parent(tr.Root())
	require.False(t, ok)
}

func TestTokenNodesHaveNoChildren(t *testing.T) {
	tr := Parse([]byte("void main() { int x = 1; }"))
	for i := 0; i < tr.NodeCount(); i++ {
		idx := uint32(i)
		if tr.Tag(idx).IsToken() {
			require.Equal(t, 0, tr.Children(idx).Len())
		}
	}
}
