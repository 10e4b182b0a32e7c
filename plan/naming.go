// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plan implements the move planner (SPEC_FULL.md §4.3-§4.4):
// the naming helper that derives companion/dispatch class names and
// moved-member signatures, and the per-interface planning algorithm
// that decides where each method body ends up.
package plan

import "github.com/desugarkit/ifacedesugar/model"

// Suffixes are fixed so that companion/dispatch naming is a pure
// function of the source interface's name, satisfying the last
// invariant of SPEC_FULL.md §3: two separate compilations of the same
// interface produce byte-identical companion/dispatch class names.
const (
	companionSuffix = "$-CC" // "companion class"
	dispatchSuffix  = "$-DC" // "dispatch class"
	defaultNameTag  = "$dflt"
	privateNameTag  = "$private"
)

// Naming is the pure, deterministic naming layer of SPEC_FULL.md §4.3.
// All of its methods are bijective on the set of inputs the planner
// feeds them, which the lens (package lens) depends on to invert.
type Naming struct {
	in *model.Interner
}

// NewNaming returns a Naming backed by in. All produced descriptors and
// refs are interned through in, so repeated calls with equal inputs
// return pointer-identical results.
func NewNaming(in *model.Interner) *Naming {
	return &Naming{in: in}
}

// CompanionOf returns the deterministic, reversible companion class
// type for iface.
func (n *Naming) CompanionOf(iface *model.TypeDescriptor) *model.TypeDescriptor {
	return n.in.Class(iface.ClassName() + companionSuffix)
}

// DispatchOf returns the deterministic dispatch class type for iface,
// in a distinct namespace from CompanionOf so the two can never
// collide for the same interface.
func (n *Naming) DispatchOf(iface *model.TypeDescriptor) *model.TypeDescriptor {
	return n.in.Class(iface.ClassName() + dispatchSuffix)
}

// AsMovedDefault returns the companion-class method reference for a
// moved default method: the receiver becomes parameter zero (adapted
// from go/ssa/util.go's recvAsFirstArg) and the name carries a suffix
// so it cannot collide with a pre-existing static method that
// AsMovedStatic moves to the same companion and whose own proto happens
// to equal the prepended one.
func (n *Naming) AsMovedDefault(holder *model.TypeDescriptor, ref *model.MethodRef) *model.MethodRef {
	companion := n.CompanionOf(holder)
	newProto := n.in.Proto(ref.Proto().WithLeadingParam(holder), ref.Proto().Return())
	return n.in.Method(companion, ref.Name()+defaultNameTag, newProto)
}

// AsMovedStatic returns the companion-class method reference for a
// moved static method: same name and proto, new holder.
func (n *Naming) AsMovedStatic(holder *model.TypeDescriptor, ref *model.MethodRef) *model.MethodRef {
	companion := n.CompanionOf(holder)
	return n.in.Method(companion, ref.Name(), ref.Proto())
}

// AsMovedPrivate returns the companion-class method reference for a
// moved private instance method: behaves like AsMovedDefault (receiver
// prepended, holder becomes companion) with its own name tag.
func (n *Naming) AsMovedPrivate(holder *model.TypeDescriptor, ref *model.MethodRef) *model.MethodRef {
	companion := n.CompanionOf(holder)
	newProto := n.in.Proto(ref.Proto().WithLeadingParam(holder), ref.Proto().Return())
	return n.in.Method(companion, ref.Name()+privateNameTag, newProto)
}

// AsDispatchForward returns the dispatch-class method reference for a
// library static interface method forwarder: same name and proto, new
// holder.
func (n *Naming) AsDispatchForward(holder *model.TypeDescriptor, ref *model.MethodRef) *model.MethodRef {
	dispatch := n.DispatchOf(holder)
	return n.in.Method(dispatch, ref.Name(), ref.Proto())
}
