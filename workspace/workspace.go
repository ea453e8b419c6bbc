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

// Package workspace is the document lifecycle collaborator spec.md
// treats as external to the core: it owns source text and cached parse
// trees, and serializes reparse against any resolution in flight for the
// same document. The core's resolver and reconstructor consume its
// Document interface without knowing any of this.
package workspace

import (
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/mod/semver"

	"github.com/shaderlang/glsl-sema/core/scope"
	"github.com/shaderlang/glsl-sema/core/tree"
	"github.com/shaderlang/glsl-sema/policy"
)

// SchemaVersion is the grammar/schema version this workspace's tree
// builder targets. CompatibleSchema checks a client-declared version
// against it, the way a build tool checks a go.mod's module version
// against a toolchain; Open and NewDocument do not perform that check.
const SchemaVersion = "v0.1.0"

// CompatibleSchema reports whether clientVersion (a semver string) is
// compatible with this workspace's SchemaVersion: same major version,
// no newer than what this workspace implements.
func CompatibleSchema(clientVersion string) bool {
	if !semver.IsValid(clientVersion) {
		return false
	}
	if semver.Major(clientVersion) != semver.Major(SchemaVersion) {
		return false
	}
	return semver.Compare(clientVersion, SchemaVersion) <= 0
}

// Config is a bitmask of optional workspace behaviors, mirroring the
// teacher's featureFlags uint32 pattern (analyzer_test.go) rather than a
// config-file framework: a Workspace is parameterized by plain flags a
// caller composes with bitwise OR.
type Config uint32

const (
	// CrossDocumentResolution enables FindGlobalDefinition to search
	// every open document's file scope. Spec §9 leaves cross-document
	// shadowing order unspecified; callers that want single-document
	// semantics only can leave this unset.
	CrossDocumentResolution Config = 1 << iota
)

// Has reports whether cfg includes flag.
func (cfg Config) Has(flag Config) bool { return cfg&flag != 0 }

// Document owns one file's source text and its parse tree. The tree is
// built eagerly: NewDocument parses once and every Update reparses
// immediately; parsing is never deferred to the first Tree call. A read
// lock is expected to be held for the duration of any resolution against
// it (see RLock/RUnlock); reparse takes the write lock.
type Document struct {
	URI    string
	mu     sync.RWMutex
	source []byte
	tree   *tree.Tree
	// generation changes on every reparse, stamped with a ulid so a
	// Reference produced before a reparse can be detected as stale by a
	// caller that captured the generation alongside it.
	generation ulid.ULID
	entropy    *ulid.MonotonicEntropy
}

// NewDocument creates a Document over initial source text and parses it
// once eagerly (subsequent edits go through Update).
func NewDocument(uri string, source []byte, seed uint64) *Document {
	entropy := ulid.Monotonic(newDeterministicReader(seed), 0)
	d := &Document{URI: uri, entropy: entropy}
	d.reparse(source)
	return d
}

// Source returns the document's current source text.
func (d *Document) Source() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.source
}

// Tree returns the document's current parse tree, reparsing lazily is
// not needed here since Update always reparses eagerly; Tree satisfies
// scope.Document so the resolver can consume a *Document directly.
func (d *Document) Tree() *tree.Tree {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tree
}

// Generation returns the document's current generation stamp.
func (d *Document) Generation() ulid.ULID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.generation
}

// RLock/RUnlock let a caller hold a read lock across a whole resolution
// (visibleSymbols ascend + typeOf) so a concurrent Update cannot
// invalidate node indices mid-walk, per spec §5's resource model.
func (d *Document) RLock()   { d.mu.RLock() }
func (d *Document) RUnlock() { d.mu.RUnlock() }

// Update replaces the document's source text and reparses it, bumping
// the generation stamp. Any Reference produced against the prior
// generation must be treated as stale by the caller.
func (d *Document) Update(source []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reparse(source)
}

func (d *Document) reparse(source []byte) {
	d.source = source
	d.tree = tree.Parse(source)
	d.generation = ulid.MustNew(ulid.Now(), d.entropy)
}

// StampedReference pairs a Reference with the generation of the document
// it was produced against, so a caller holding one across an await point
// can detect staleness before dereferencing it.
type StampedReference struct {
	scope.Reference
	Generation ulid.ULID
}

// Stale reports whether r was produced against an earlier generation
// than doc's current one.
func (r StampedReference) Stale(doc *Document) bool {
	return r.Generation.Compare(doc.Generation()) != 0
}

// Workspace holds every open Document, keyed by URI, and extends
// resolution across documents for the one cross-document operation spec
// §9's open question leaves room for: looking up a name in other open
// documents' global scopes.
type Workspace struct {
	mu     sync.RWMutex
	docs   map[string]*Document
	config Config
	rules  *policy.Ruleset
}

// NewWorkspace creates an empty workspace with the given feature flags.
func NewWorkspace(config Config) *Workspace {
	return &Workspace{docs: make(map[string]*Document), config: config}
}

// SetPolicy installs a suppression ruleset: every reference FindDefinition
// or FindGlobalDefinition would otherwise return is dropped if rs.Suppress
// reports true for its (declaring tag, name) metadata. Pass nil to disable
// suppression entirely (the default).
func (w *Workspace) SetPolicy(rs *policy.Ruleset) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rules = rs
}

// FindDefinition resolves identifierNode within doc via the core scope
// resolver, then drops any result this workspace's suppression ruleset
// (see SetPolicy) marks as suppressed. With no ruleset installed, this is
// exactly core/scope.FindDefinition.
func (w *Workspace) FindDefinition(doc *Document, identifierNode uint32) []scope.Reference {
	doc.RLock()
	refs := scope.FindDefinition(doc, identifierNode)
	doc.RUnlock()
	return w.filterSuppressed(doc.Tree(), refs)
}

func (w *Workspace) filterSuppressed(t *tree.Tree, refs []scope.Reference) []scope.Reference {
	w.mu.RLock()
	rs := w.rules
	w.mu.RUnlock()
	if rs == nil {
		return refs
	}
	out := make([]scope.Reference, 0, len(refs))
	for _, r := range refs {
		subject := policy.Subject{
			DeclaringTag: policy.TagName(t.Tag(r.ParentDeclaration)),
			Name:         t.Text(r.Node),
		}
		if rs.Suppress(subject) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Open registers a document, replacing any existing one at the same URI.
func (w *Workspace) Open(doc *Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[doc.URI] = doc
}

// Close removes a document from the workspace.
func (w *Workspace) Close(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, uri)
}

// Get returns the open document at uri, if any.
func (w *Workspace) Get(uri string) (*Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[uri]
	return d, ok
}

// FindGlobalDefinition resolves name against every open document's file
// scope, in URI-sorted order, returning every file-scope declaration
// that matches, grouped by document. This is the cross-document
// resolution spec §9 leaves as an open question beyond the core's single-
// document scope.VisibleSymbols; shadowing order across
// documents is, per that note, left unspecified, so callers get every
// match rather than one chosen winner.
func (w *Workspace) FindGlobalDefinition(name string) []scope.Reference {
	if !w.config.Has(CrossDocumentResolution) {
		return nil
	}
	w.mu.RLock()
	uris := make([]string, 0, len(w.docs))
	for uri := range w.docs {
		uris = append(uris, uri)
	}
	w.mu.RUnlock()
	sort.Strings(uris)

	var out []scope.Reference
	for _, uri := range uris {
		doc, ok := w.Get(uri)
		if !ok {
			continue
		}
		doc.RLock()
		matches := fileScopeMatches(doc, name)
		out = append(out, w.filterSuppressed(doc.Tree(), matches)...)
		doc.RUnlock()
	}
	return out
}

func fileScopeMatches(doc *Document, name string) []scope.Reference {
	t := doc.Tree()
	all := scope.FileScopeSymbols(doc)
	var out []scope.Reference
	for _, s := range all {
		if t.Tag(s.Node) == tree.Identifier && t.Text(s.Node) == name {
			out = append(out, s)
		}
	}
	return out
}

// newDeterministicReader is a minimal io.Reader seeded from a uint64,
// used only so Document generations are reproducible in tests; real
// callers should seed from a real entropy source instead.
func newDeterministicReader(seed uint64) *lcgReader { return &lcgReader{state: seed | 1} }

type lcgReader struct{ state uint64 }

func (r *lcgReader) Read(p []byte) (int, error) {
	for i := range p {
		r.state = r.state*6364136223846793005 + 1442695040888963407
		p[i] = byte(r.state >> 33)
	}
	return len(p), nil
}
