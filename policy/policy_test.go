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

package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shaderlang/glsl-sema/core/tree"
	"github.com/shaderlang/glsl-sema/policy"
)

func TestSuppressMatchesOnDeclaringTagAndName(t *testing.T) {
	rs, err := policy.Compile("suppress.star", []byte(`
def suppress(subject):
    return subject["declaring_tag"] == "parameter" and subject["name"] == "x"
`))
	require.NoError(t, err)

	require.True(t, rs.Suppress(policy.Subject{DeclaringTag: "parameter", Name: "x"}))
	require.False(t, rs.Suppress(policy.Subject{DeclaringTag: "parameter", Name: "y"}))
	require.False(t, rs.Suppress(policy.Subject{DeclaringTag: "variable_declaration", Name: "x"}))
}

func TestCompileRejectsFileWithoutSuppressFunction(t *testing.T) {
	_, err := policy.Compile("empty.star", []byte(`x = 1`))
	require.Error(t, err)
}

func TestSuppressTreatsEvaluationErrorsAsDoNotSuppress(t *testing.T) {
	rs, err := policy.Compile("broken.star", []byte(`
def suppress(subject):
    return 1 / 0
`))
	require.NoError(t, err)
	require.False(t, rs.Suppress(policy.Subject{DeclaringTag: "parameter", Name: "x"}),
		"a policy convenience must never hide a real result by crashing")
}

func TestTagNameMatchesSpecTagSetSpelling(t *testing.T) {
	require.Equal(t, "function_declaration", policy.TagName(tree.FunctionDeclaration))
	require.Equal(t, "struct_specifier", policy.TagName(tree.StructSpecifier))
	require.Equal(t, "unknown", policy.TagName(tree.Block), "block has no declaring-tag spelling")
}
