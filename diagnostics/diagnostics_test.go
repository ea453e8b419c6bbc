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

package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shaderlang/glsl-sema/core/tree"
	"github.com/shaderlang/glsl-sema/diagnostics"
)

func TestEmptyBagHasNoError(t *testing.T) {
	var b diagnostics.Bag
	require.True(t, b.Empty())
	require.NoError(t, b.Err())
	require.Empty(t, b.Errors())
}

func TestBagAggregatesIndependentProblems(t *testing.T) {
	tr := tree.Parse([]byte("void main() {}"))
	var b diagnostics.Bag
	b.Skip(tr, tr.Root(), "recovery node in positional scan")
	b.Note("stale generation read for %s", "main.glsl")

	require.False(t, b.Empty())
	require.Error(t, b.Err())
	require.Len(t, b.Errors(), 2, "independent problems must not be collapsed into one error")
}
