// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve implements the resolution oracle (SPEC_FULL.md §4.1):
// "given a receiver type and a method reference, which method
// definition does the VM execute?" It follows the same shape as
// go/callgraph/static.CallGraph's reachability walk: a BFS closure
// over a frontier of classes/interfaces, generalized from "which
// functions are reachable" to "which declaration wins under Java-like
// dispatch rules".
package resolve

import (
	"github.com/desugarkit/ifacedesugar/model"
)

// ClassGetter is the subset of *classes.Repository the oracle needs.
// Declared as an interface (rather than importing package classes
// directly) so tests can supply a minimal fake, the way
// go/callgraph/static.CallGraph depends only on *ssa.Program's public
// surface.
type ClassGetter interface {
	Get(t *model.TypeDescriptor) (*model.ClassDefinition, model.Classification, bool)
}

// Oracle answers resolution and reachability queries against a frozen
// class repository.
type Oracle struct {
	classes ClassGetter
}

// New returns an Oracle backed by classes. The repository must not be
// mutated while the Oracle is in use (SPEC_FULL.md §5: read-only
// during planning).
func New(classes ClassGetter) *Oracle {
	return &Oracle{classes: classes}
}

// Get exposes the oracle's underlying repository lookup, so callers
// that already hold an *Oracle (the move planner, the invariant
// checker) don't need a second reference to the repository.
func (o *Oracle) Get(t *model.TypeDescriptor) (*model.ClassDefinition, model.Classification, bool) {
	return o.classes.Get(t)
}

// ResultKind distinguishes the four resolution outcomes of SPEC_FULL.md §4.1.
type ResultKind int

const (
	Resolved ResultKind = iota
	NoSuchMethod
	IllegalAccess
	Ambiguous
)

// ResolutionResult is the outcome of Oracle.Resolve.
type ResolutionResult struct {
	Kind         ResultKind
	Definition   *model.MethodDefinition   // valid iff Kind == Resolved
	DefiningType *model.TypeDescriptor     // the class/interface that declares Definition
	Candidates   []*model.MethodDefinition // valid iff Kind == Ambiguous
}

// SuperEdge is one step of a supertypesOf/subtypesOf walk.
type SuperEdge struct {
	Type         *model.TypeDescriptor
	ViaInterface bool
}

// supertypesOf returns t's superclasses and superinterfaces in BFS
// order, each tagged with whether it was reached via an interface
// edge, per SPEC_FULL.md §4.1. Unknown types (outside the compilation
// closure) simply end that branch of the walk.
func (o *Oracle) supertypesOf(t *model.TypeDescriptor) []SuperEdge {
	var out []SuperEdge
	seen := map[*model.TypeDescriptor]bool{t: true}
	queue := []SuperEdge{{Type: t, ViaInterface: false}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		def, _, ok := o.classes.Get(cur.Type)
		if !ok {
			continue
		}
		if def.Super != nil && !seen[def.Super] {
			seen[def.Super] = true
			edge := SuperEdge{Type: def.Super, ViaInterface: false}
			out = append(out, edge)
			queue = append(queue, edge)
		}
		for _, i := range def.Interfaces {
			if seen[i] {
				continue
			}
			seen[i] = true
			edge := SuperEdge{Type: i, ViaInterface: true}
			out = append(out, edge)
			queue = append(queue, edge)
		}
	}
	return out
}

// SupertypesOf is the exported form of supertypesOf, including t itself
// as the first (non-via-interface) entry.
func (o *Oracle) SupertypesOf(t *model.TypeDescriptor) []SuperEdge {
	self := SuperEdge{Type: t, ViaInterface: false}
	return append([]SuperEdge{self}, o.supertypesOf(t)...)
}

// classChain returns t and its superclasses (never interfaces), in
// order from t up to java/lang/Object.
func (o *Oracle) classChain(t *model.TypeDescriptor) []*model.TypeDescriptor {
	chain := []*model.TypeDescriptor{t}
	cur := t
	for {
		def, _, ok := o.classes.Get(cur)
		if !ok || def.Super == nil {
			break
		}
		chain = append(chain, def.Super)
		cur = def.Super
	}
	return chain
}

func findDeclared(def *model.ClassDefinition, name string, proto *model.Proto) *model.MethodDefinition {
	for _, m := range def.VirtualMethods {
		if m.Ref.Name() == name && m.Ref.Proto() == proto {
			return m
		}
	}
	for _, m := range def.DirectMethods {
		if m.Ref.Name() == name && m.Ref.Proto() == proto {
			return m
		}
	}
	return nil
}

// Resolve implements standard static/virtual/interface resolution:
// search receiverType's class chain for a concrete declaration; if
// none exists, search reachable interfaces for a maximally-specific
// default method, raising Ambiguous if two unrelated interfaces each
// supply one.
func (o *Oracle) Resolve(receiverType *model.TypeDescriptor, ref *model.MethodRef) ResolutionResult {
	chain := o.classChain(receiverType)

	var lastAbstract *model.MethodDefinition
	var lastAbstractType *model.TypeDescriptor
	for _, c := range chain {
		def, _, ok := o.classes.Get(c)
		if !ok {
			continue
		}
		if m := findDeclared(def, ref.Name(), ref.Proto()); m != nil {
			if !m.IsAbstract() {
				return ResolutionResult{Kind: Resolved, Definition: m, DefiningType: c}
			}
			if lastAbstract == nil {
				lastAbstract, lastAbstractType = m, c
			}
		}
	}

	// No concrete class declaration: search interfaces reachable from
	// the whole class chain for maximally-specific default methods.
	type candidate struct {
		def *model.MethodDefinition
		typ *model.TypeDescriptor
	}
	var defaults []candidate
	var abstractIfaces []candidate
	seenIface := map[*model.TypeDescriptor]bool{}
	for _, c := range chain {
		for _, edge := range o.supertypesOf(c) {
			if !edge.ViaInterface || seenIface[edge.Type] {
				continue
			}
			seenIface[edge.Type] = true
			def, _, ok := o.classes.Get(edge.Type)
			if !ok {
				continue
			}
			if m := findDeclared(def, ref.Name(), ref.Proto()); m != nil {
				if m.IsAbstract() {
					abstractIfaces = append(abstractIfaces, candidate{m, edge.Type})
				} else {
					defaults = append(defaults, candidate{m, edge.Type})
				}
			}
		}
	}

	// Maximally specific: drop any default candidate that is a
	// super-interface of another candidate.
	maximal := make([]candidate, 0, len(defaults))
	for i, a := range defaults {
		shadowed := false
		for j, b := range defaults {
			if i == j {
				continue
			}
			if isSuperInterface(o, a.typ, b.typ) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			maximal = append(maximal, a)
		}
	}

	switch {
	case len(maximal) == 1:
		return ResolutionResult{Kind: Resolved, Definition: maximal[0].def, DefiningType: maximal[0].typ}
	case len(maximal) > 1:
		defs := make([]*model.MethodDefinition, len(maximal))
		for i, c := range maximal {
			defs[i] = c.def
		}
		return ResolutionResult{Kind: Ambiguous, Candidates: defs}
	}

	if lastAbstract != nil {
		return ResolutionResult{Kind: Resolved, Definition: lastAbstract, DefiningType: lastAbstractType}
	}
	if len(abstractIfaces) > 0 {
		return ResolutionResult{Kind: Resolved, Definition: abstractIfaces[0].def, DefiningType: abstractIfaces[0].typ}
	}
	return ResolutionResult{Kind: NoSuchMethod}
}

// isSuperInterface reports whether candidate is a (possibly indirect)
// super-interface of sub, i.e. sub extends candidate transitively.
func isSuperInterface(o *Oracle, candidate, sub *model.TypeDescriptor) bool {
	if candidate == sub {
		return false
	}
	for _, edge := range o.supertypesOf(sub) {
		if edge.ViaInterface && edge.Type == candidate {
			return true
		}
	}
	return false
}

// SubtypesOf returns every type in all that is a (possibly indirect)
// subtype of typ. It is used by the invariant checker's
// ValidateNoOverride (SPEC_FULL.md §4.7). It is
// implemented as a scan + supertypesOf membership test; callers that
// need this on a hot path should index it themselves, as the oracle
// makes no promises about its cost.
func (o *Oracle) SubtypesOf(all []*model.TypeDescriptor, typ *model.TypeDescriptor) []*model.TypeDescriptor {
	var out []*model.TypeDescriptor
	for _, t := range all {
		if t == typ {
			continue
		}
		for _, edge := range o.supertypesOf(t) {
			if edge.Type == typ {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
