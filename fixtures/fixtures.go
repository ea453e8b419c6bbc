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

// Package fixtures loads the cursor-marker test scenarios used to drive
// the scope resolver and type reconstructor against literal source
// snippets (spec §8). A marker has the form /*N*/ placed immediately
// before an identifier token; N ties a definition occurrence to its
// usages across one scenario.
package fixtures

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/shaderlang/glsl-sema/core/tree"
)

//go:embed testdata/scenarios.yaml
var defaultSuiteYAML []byte

// DefaultSuite loads the module's own set of literal end-to-end
// scenarios (spec §8), embedded at build time so every package's tests
// can load it without depending on their working directory.
func DefaultSuite() Suite {
	s, err := LoadSuite(defaultSuiteYAML)
	if err != nil {
		// The embedded fixture is authored as part of this module; a
		// parse failure here means the fixture itself is malformed.
		panic(err)
	}
	return s
}

// Scenario is one named end-to-end test case: a source snippet plus a
// free-form expectation string a test interprets (e.g. "definition",
// or a canonical Type.Format() string).
type Scenario struct {
	Name       string `yaml:"name"`
	Source     string `yaml:"source"`
	Expect     string `yaml:"expect"`
	Definition string `yaml:"definition"` // marker label naming the defining occurrence, if any
}

// Suite is a named collection of scenarios, the shape scenarios.yaml
// fixture files are unmarshaled into.
type Suite struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadSuite parses a YAML fixture file's bytes into a Suite.
func LoadSuite(data []byte) (Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Suite{}, fmt.Errorf("fixtures: parsing suite: %w", err)
	}
	return s, nil
}

var markerPattern = regexp.MustCompile(`/\*(\w+)\*/`)

// Markers maps each marker label appearing in src to the byte offsets
// immediately following its occurrences, in source order. The markers
// remain in src (the parser's own comment-skipping lexer treats them as
// block comments), so marker discovery and parsing share byte offsets.
func Markers(src []byte) map[string][]uint32 {
	out := map[string][]uint32{}
	for _, m := range markerPattern.FindAllSubmatchIndex(src, -1) {
		label := string(src[m[2]:m[3]])
		out[label] = append(out[label], uint32(m[1]))
	}
	return out
}

// NodeAt returns the smallest (most specific) node whose span starts
// exactly at offset, typically the identifier token a cursor marker
// immediately precedes.
func NodeAt(t *tree.Tree, offset uint32) (uint32, bool) {
	best := uint32(0)
	found := false
	var bestLen uint32 = ^uint32(0)
	for i := 0; i < t.NodeCount(); i++ {
		idx := uint32(i)
		span := t.Span(idx)
		if span.Start != offset {
			continue
		}
		length := span.End - span.Start
		if !found || length < bestLen {
			best, bestLen, found = idx, length, true
		}
	}
	return best, found
}

// Parse parses src and returns both the resulting tree and its marker
// offsets, the standard setup for one scenario.
func Parse(src string) (*tree.Tree, map[string][]uint32) {
	b := []byte(src)
	return tree.Parse(b), Markers(b)
}
