// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synth builds the companion and dispatch classes a move plan
// calls for (SPEC_FULL.md §4.6). Construction follows go/ssa/create.go's
// memberFromObject: one function per synthesized class kind populates
// the new class. The planned methods are taken over as the plan built
// them, with no per-method switch on the kind of move. Method bodies are moved
// by pointer/slice reassignment, never deep-copied, matching the
// "transferred, not cloned" discipline in go/ssa/func.go.
package synth

import (
	"github.com/desugarkit/ifacedesugar/model"
	"github.com/desugarkit/ifacedesugar/plan"
)

// checksumMultiplier is the arbitrary-but-fixed checksum formula kept
// from the distilled spec (DESIGN.md Open Question 1): a synthesized
// class's checksum is always a simple deterministic function of its
// originating interface's checksum, not an independent hash of its own
// contents.
const checksumMultiplier = 7

// checksum returns source's checksum scaled by checksumMultiplier, or 0
// when encodeChecksums is false. 0 is a safe sentinel here: class
// checksums are otherwise always non-zero for any interface that went
// through a real compiler front end, and downstream code must check
// encodeChecksums itself before trusting a zero checksum to mean
// anything.
func checksum(source *model.ClassDefinition, encodeChecksums bool) uint64 {
	if !encodeChecksums {
		return 0
	}
	return checksumMultiplier * source.Checksum
}

// BuildCompanion constructs the companion class for iface from pl's
// companion methods: public, final, synthetic, a concrete (non-
// interface, non-abstract) class whose superclass is the root object
// type, per SPEC_FULL.md §4.6.
func BuildCompanion(naming *plan.Naming, iface *model.ClassDefinition, pl *plan.Plan, objectType *model.TypeDescriptor, encodeChecksums bool) *model.ClassDefinition {
	return &model.ClassDefinition{
		Type:               naming.CompanionOf(iface.Type),
		Super:              objectType,
		DirectMethods:      pl.CompanionMethods,
		Classification:     model.Program,
		ClassFlags:         model.Public | model.Final | model.Synthetic,
		Checksum:           checksum(iface, encodeChecksums),
		SynthesizingInputs: []*model.TypeDescriptor{iface.Type},
	}
}

// BuildDispatch constructs the dispatch class for a library interface
// from dp's forwarder methods, in the same shape as BuildCompanion.
func BuildDispatch(naming *plan.Naming, libIface *model.ClassDefinition, dp *plan.DispatchPlan, objectType *model.TypeDescriptor, encodeChecksums bool) *model.ClassDefinition {
	if len(dp.Methods) == 0 {
		return nil
	}
	return &model.ClassDefinition{
		Type:               naming.DispatchOf(libIface.Type),
		Super:              objectType,
		DirectMethods:      dp.Methods,
		Classification:     model.Program,
		ClassFlags:         model.Public | model.Final | model.Synthetic,
		Checksum:           checksum(libIface, encodeChecksums),
		SynthesizingInputs: []*model.TypeDescriptor{libIface.Type},
	}
}

// RewriteInterface returns iface's own post-plan shape: virtual/direct
// method lists replaced with pl's surviving members, everything else
// (super, interfaces, fields, flags) carried over unchanged.
func RewriteInterface(iface *model.ClassDefinition, pl *plan.Plan) *model.ClassDefinition {
	rewritten := *iface
	rewritten.VirtualMethods = pl.NewVirtualMethods
	rewritten.DirectMethods = pl.NewDirectMethods
	return &rewritten
}
