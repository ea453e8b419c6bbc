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

// Package diagnostics aggregates non-fatal problems encountered while
// walking a parse tree (recovery nodes skipped, unresolvable references,
// stale generation reads) without aborting the walk they arose from.
// Resolver and reconstructor failures are never fatal per spec's error
// handling design; this package gives callers a way to collect and
// inspect them anyway.
package diagnostics

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/shaderlang/glsl-sema/core/tree"
)

// Bag accumulates independent non-fatal problems. It is not safe for
// concurrent use from multiple goroutines; each resolution call should
// own its own Bag.
type Bag struct {
	err error
}

// Skip records that node was skipped during a walk because it was a
// parser recovery node (invalid/unknown tag).
func (b *Bag) Skip(t *tree.Tree, node uint32, reason string) {
	b.err = multierr.Append(b.err, fmt.Errorf("skipped node %d (tag %v): %s", node, t.Tag(node), reason))
}

// Note records an arbitrary non-fatal diagnostic.
func (b *Bag) Note(format string, args ...any) {
	b.err = multierr.Append(b.err, fmt.Errorf(format, args...))
}

// Err returns the aggregated error, or nil if nothing was recorded.
func (b *Bag) Err() error { return b.err }

// Errors returns the individual errors that were aggregated, in the
// order they were recorded.
func (b *Bag) Errors() []error { return multierr.Errors(b.err) }

// Empty reports whether no diagnostics were recorded.
func (b *Bag) Empty() bool { return b.err == nil }
