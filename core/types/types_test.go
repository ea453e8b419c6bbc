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

package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/shaderlang/glsl-sema/core/scope"
	"github.com/shaderlang/glsl-sema/core/tree"
	"github.com/shaderlang/glsl-sema/core/types"
	"github.com/shaderlang/glsl-sema/fixtures"
)

type testDoc struct{ t *tree.Tree }

func (d testDoc) Tree() *tree.Tree { return d.t }

// TestFormatScenarios drives every fixture scenario that declares a
// definition marker through findDefinition -> typeOf -> Format and
// checks the canonical string against the scenario's expectation.
func TestFormatScenarios(t *testing.T) {
	suite := fixtures.DefaultSuite()
	for _, sc := range suite.Scenarios {
		sc := sc
		if sc.Definition == "" {
			continue
		}
		t.Run(sc.Name, func(t *testing.T) {
			tr, markers := fixtures.Parse(sc.Source)
			doc := testDoc{tr}
			offsets := markers[sc.Definition]
			require.NotEmpty(t, offsets)
			usage, ok := fixtures.NodeAt(tr, offsets[len(offsets)-1])
			require.True(t, ok)

			refs := scope.FindDefinition(doc, usage)
			require.NotEmpty(t, refs, "type round-trip requires a resolved reference")

			ty, ok := types.TypeOf(tr, refs[0])
			require.True(t, ok, "type round-trip: typeOf must be Some for any findDefinition result")

			got := ty.Format(tr, tr.Source())
			require.Equal(t, sc.Expect, got)

			// Formatter idempotence: rendering twice yields the same string.
			require.Equal(t, got, ty.Format(tr, tr.Source()))
		})
	}
}

func TestTypeOfStructSpecifierSetsOnlySpecifier(t *testing.T) {
	tr := tree.Parse([]byte("struct Light { vec3 position; };"))
	doc := testDoc{tr}

	var structNode uint32
	for i := 0; i < tr.NodeCount(); i++ {
		idx := uint32(i)
		if tr.Tag(idx) == tree.StructSpecifier {
			structNode = idx
		}
	}
	ref := scope.Reference{Document: doc, Node: structNode, ParentDeclaration: structNode}
	ty, ok := types.TypeOf(tr, ref)
	require.True(t, ok)

	want := types.Type{HasSpecifier: true, Specifier: structNode, StructSpecifier: true}
	if diff := cmp.Diff(want, ty); diff != "" {
		t.Fatalf("struct specifier type mismatch (-want +got):\n%s", diff)
	}
}

func TestParameterTypeArraysComeFromTheParameterName(t *testing.T) {
	tr := tree.Parse([]byte("void main(float values[3]) {}"))

	var paramNode uint32
	for i := 0; i < tr.NodeCount(); i++ {
		idx := uint32(i)
		if tr.Tag(idx) == tree.Parameter {
			paramNode = idx
		}
	}
	pt := types.ParameterType(tr, paramNode)
	require.True(t, pt.HasSpecifier)
	require.Len(t, pt.Arrays, 1)
	require.False(t, pt.HasParameters, "a parameter's own type never carries a nested parameter list")
}
