// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classes implements the class repository (SPEC_FULL.md §4.2):
// lookup of a class by descriptor, classifying each class as program,
// library or classpath, and the single-writer discipline that keeps
// the planner's view of the world frozen during parallel planning.
//
// The shape is adapted from go/ssa/create.go's Program: one
// constructor takes ownership of a closed set of definitions, and a
// small number of guarded methods are the only way to mutate it
// afterwards.
package classes

import (
	"fmt"
	"sync"

	"github.com/desugarkit/ifacedesugar/model"
)

// Repository owns every ClassDefinition for the run. It is read-only
// during planning and single-writer during synthesis (SPEC_FULL.md §5).
type Repository struct {
	mu     sync.RWMutex
	byType map[*model.TypeDescriptor]*model.ClassDefinition
	frozen bool
}

// NewRepository returns a Repository seeded with defs. Ownership of
// defs transfers to the Repository; callers must not mutate the slice
// or its elements afterwards except through Repository methods.
func NewRepository(defs []*model.ClassDefinition) *Repository {
	r := &Repository{byType: make(map[*model.TypeDescriptor]*model.ClassDefinition, len(defs))}
	for _, d := range defs {
		r.byType[d.Type] = d
	}
	return r
}

// Get returns the definition for t and its classification, or
// (nil, 0, false) if t is unknown to the repository. An unknown type
// is never fatal for the planner: it signals that t belongs outside
// the compilation closure (SPEC_FULL.md §4.1).
func (r *Repository) Get(t *model.TypeDescriptor) (*model.ClassDefinition, model.Classification, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byType[t]
	if !ok {
		return nil, 0, false
	}
	return d, d.Classification, true
}

// Freeze forbids further Publish/Replace calls until the matching
// Thaw. The move planner's parallel phase runs only while frozen.
func (r *Repository) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Thaw lifts a prior Freeze, allowing the synthesizer to publish new
// classes and the final trim pass to replace rewritten ones.
func (r *Repository) Thaw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = false
}

// Publish adds a new class definition, typically a synthesized
// companion or dispatch class. It panics if the repository is frozen
// or if def.Type already exists: both are precondition violations by
// a caller, not recoverable run errors, mirroring the panics
// go/ssa/methods.go uses for its own preconditions.
func (r *Repository) Publish(def *model.ClassDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic("classes.Repository.Publish called while frozen")
	}
	if _, exists := r.byType[def.Type]; exists {
		panic(fmt.Sprintf("classes.Repository.Publish: %s already exists", def.Type))
	}
	r.byType[def.Type] = def
}

// Replace applies mutator to the class identified by t and stores the
// result. It panics if the repository is frozen or t is unknown.
func (r *Repository) Replace(t *model.TypeDescriptor, mutator func(*model.ClassDefinition)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic("classes.Repository.Replace called while frozen")
	}
	d, ok := r.byType[t]
	if !ok {
		panic(fmt.Sprintf("classes.Repository.Replace: unknown type %s", t))
	}
	mutator(d)
}

// All returns every class definition currently in the repository, in
// unspecified order. Callers that need determinism (the synthesizer's
// merge step) must sort the result themselves, see
// SPEC_FULL.md §5 on sorted interface-descriptor order.
func (r *Repository) All() []*model.ClassDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.ClassDefinition, 0, len(r.byType))
	for _, d := range r.byType {
		out = append(out, d)
	}
	return out
}
