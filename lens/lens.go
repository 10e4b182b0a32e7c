// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lens builds and queries the bidirectional renaming index
// produced by a desugaring run (SPEC_FULL.md §4.5): for any method
// reference appearing in rewritten code, what was it called before the
// move, and what invocation kind should a caller now use?
//
// The two inverse maps and their toggle are modeled on
// internal/aliases.Unalias's role as a mandatory indirection layer:
// callers must always go through GetOriginalMethodSignature /
// GetNextMethodSignature rather than inspecting a method reference's
// holder directly, the same discipline aliases.go imposes on types
// that may or may not be alias-expanded depending on a build tag.
package lens

import (
	"sort"

	"github.com/desugarkit/ifacedesugar/model"
	"github.com/desugarkit/ifacedesugar/plan"
	"github.com/desugarkit/ifacedesugar/resolve"
)

// Lens is the accumulated, queryable result of planning one or more
// interfaces: every moved or forwarded method, indexed both forward
// (original -> new) and backward (new -> original), plus the
// invocation kind each new reference should be called with.
type Lens struct {
	// originalMethodSignatures maps a post-move reference's Id to the
	// reference it replaced.
	originalMethodSignatures map[string]*model.MethodRef
	// extraOriginalMethodSignatures is the same shape, populated only
	// for references the planner marked Extra (SPEC_FULL.md's
	// distinction between a default/private method's direct rename and
	// any secondary signature a toggled view should expose instead,
	// resolved per DESIGN.md as a simple second map, never queried
	// simultaneously with the first).
	extraOriginalMethodSignatures map[string]*model.MethodRef
	// nextMethodSignatures maps an original reference's Id to its
	// post-move replacement: the forward direction of the same
	// relationship.
	nextMethodSignatures map[string]*model.MethodRef
	// methodInvocationTypeMap records the invocation kind a caller must
	// use for a post-move reference.
	methodInvocationTypeMap map[string]resolve.InvocationKind

	useExtra bool
}

// New returns an empty Lens.
func New() *Lens {
	return &Lens{
		originalMethodSignatures:      map[string]*model.MethodRef{},
		extraOriginalMethodSignatures: map[string]*model.MethodRef{},
		nextMethodSignatures:          map[string]*model.MethodRef{},
		methodInvocationTypeMap:       map[string]resolve.InvocationKind{},
	}
}

// Record adds one planner-produced mapping to the lens.
func (l *Lens) Record(rec plan.LensRecord) {
	l.nextMethodSignatures[rec.Original.Id()] = rec.New
	l.methodInvocationTypeMap[rec.New.Id()] = rec.Kind
	if rec.Extra {
		l.extraOriginalMethodSignatures[rec.New.Id()] = rec.Original
	} else {
		l.originalMethodSignatures[rec.New.Id()] = rec.Original
	}
}

// RecordAll records every entry of recs, in order.
func (l *Lens) RecordAll(recs []plan.LensRecord) {
	for _, r := range recs {
		l.Record(r)
	}
}

// ToggleMappingToExtraMethods flips which of the two inverse maps
// GetOriginalMethodSignature consults. It never queries both at once;
// the spec explicitly defers reconciling the two views to a downstream
// consumer (DESIGN.md Open Question 2).
func (l *Lens) ToggleMappingToExtraMethods() {
	l.useExtra = !l.useExtra
}

// GetOriginalMethodSignature returns the reference current replaced,
// consulting whichever of the two inverse maps is currently selected.
func (l *Lens) GetOriginalMethodSignature(current *model.MethodRef) (*model.MethodRef, bool) {
	table := l.originalMethodSignatures
	if l.useExtra {
		table = l.extraOriginalMethodSignatures
	}
	orig, ok := table[current.Id()]
	return orig, ok
}

// GetNextMethodSignature returns the reference original was moved to,
// if any.
func (l *Lens) GetNextMethodSignature(original *model.MethodRef) (*model.MethodRef, bool) {
	next, ok := l.nextMethodSignatures[original.Id()]
	return next, ok
}

// MapInvocationType returns the invocation kind a caller must use for
// current, defaulting to resolve.Static: every reference this lens
// knows about was produced by a move, and moved members are always
// invoked statically (SPEC_FULL.md §4.1, §4.5).
func (l *Lens) MapInvocationType(current *model.MethodRef) resolve.InvocationKind {
	if k, ok := l.methodInvocationTypeMap[current.Id()]; ok {
		return k
	}
	return resolve.Static
}

// Merge combines lenses in order into a single Lens, with deterministic
// iteration order regardless of the order the arguments' underlying
// maps were populated in: a later lens's entry for the same key
// overwrites an earlier one, matching the "most recent compilation
// wins" semantics a PriorLens chain needs.
func Merge(lenses ...*Lens) *Lens {
	out := New()
	for _, l := range lenses {
		for _, k := range sortedKeys(l.originalMethodSignatures) {
			out.originalMethodSignatures[k] = l.originalMethodSignatures[k]
		}
		for _, k := range sortedKeys(l.extraOriginalMethodSignatures) {
			out.extraOriginalMethodSignatures[k] = l.extraOriginalMethodSignatures[k]
		}
		for _, k := range sortedKeys(l.nextMethodSignatures) {
			out.nextMethodSignatures[k] = l.nextMethodSignatures[k]
		}
		for k, v := range l.methodInvocationTypeMap {
			out.methodInvocationTypeMap[k] = v
		}
	}
	return out
}

func sortedKeys(m map[string]*model.MethodRef) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// find walks a chain of lenses, most recent first, returning the first
// original signature any of them reports for current: the lookup a
// multi-run (PriorLens-chained) desugaring pipeline needs when a method
// has been moved again in a later independent compilation of the same
// interface.
func find(lensChain []*Lens, current *model.MethodRef) (*model.MethodRef, bool) {
	for _, l := range lensChain {
		if orig, ok := l.GetOriginalMethodSignature(current); ok {
			return orig, true
		}
	}
	return nil, false
}

// FindOriginal is the exported form of find, for callers holding an
// explicit chain of lenses from independent compilation units rather
// than one already-merged Lens.
func FindOriginal(lensChain []*Lens, current *model.MethodRef) (*model.MethodRef, bool) {
	return find(lensChain, current)
}
