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

// Package policy lets a workspace suppress specific go-to-definition
// results with a small Starlark rule file, evaluated against
// a Reference's metadata (its declaring tag name and declared
// identifier). This sits above the core, which itself never filters
// results: suppression is a policy concern the LSP layer opts into.
package policy

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/shaderlang/glsl-sema/core/tree"
)

// Subject is the read-only metadata a suppression rule can inspect about
// one Reference: the name of the declaring tag (e.g. "parameter",
// "variable_declaration") and the declared identifier's text.
type Subject struct {
	DeclaringTag string
	Name         string
}

// Ruleset is a compiled suppression policy: a Starlark program exposing
// a top-level `suppress(subject)` function returning a boolean.
type Ruleset struct {
	thread     *starlark.Thread
	suppressFn starlark.Value
}

// Compile parses and executes a Starlark suppression rule file's source.
// The file must define a top-level `suppress(subject)` function.
func Compile(filename string, source []byte) (*Ruleset, error) {
	thread := &starlark.Thread{Name: "policy:" + filename}
	globals, err := starlark.ExecFile(thread, filename, source, nil)
	if err != nil {
		return nil, fmt.Errorf("policy: compiling %s: %w", filename, err)
	}
	fn, ok := globals["suppress"]
	if !ok {
		return nil, fmt.Errorf("policy: %s does not define a top-level suppress(subject) function", filename)
	}
	return &Ruleset{thread: thread, suppressFn: fn}, nil
}

// Suppress reports whether the ruleset's suppress() function returns a
// truthy value for subject. A ruleset that errors during evaluation is
// treated conservatively as "do not suppress" — suppression is a policy
// convenience, never allowed to hide a real result by crashing.
func (r *Ruleset) Suppress(subject Subject) bool {
	args := starlark.Tuple{subjectToStarlark(subject)}
	result, err := starlark.Call(r.thread, r.suppressFn, args, nil)
	if err != nil {
		return false
	}
	return result.Truth() == starlark.True
}

func subjectToStarlark(s Subject) *starlark.Dict {
	d := starlark.NewDict(2)
	_ = d.SetKey(starlark.String("declaring_tag"), starlark.String(s.DeclaringTag))
	_ = d.SetKey(starlark.String("name"), starlark.String(s.Name))
	return d
}

// TagName renders a tree.Tag as the lowercase snake_case spelling
// suppression rules match against (e.g. Tag.VariableDeclaration ->
// "variable_declaration"), matching spec's own tag-set naming.
func TagName(tag tree.Tag) string {
	name, ok := tagNames[tag]
	if !ok {
		return "unknown"
	}
	return name
}

var tagNames = map[tree.Tag]string{
	tree.FunctionDeclaration: "function_declaration",
	tree.StructSpecifier:     "struct_specifier",
	tree.VariableDeclaration: "variable_declaration",
	tree.Parameter:           "parameter",
	tree.BlockDeclaration:    "block_declaration",
	tree.Declaration:         "declaration",
}
