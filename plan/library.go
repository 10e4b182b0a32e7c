// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"golang.org/x/mod/semver"

	"github.com/desugarkit/ifacedesugar/model"
	"github.com/desugarkit/ifacedesugar/resolve"
)

// minAPILevelForStaticInterfaceMethods is the first platform level
// whose VM directly supports invoke-static on interface methods
// (SPEC_FULL.md's EXPANSION of §6: API-level gating). Below it, any
// invoked static interface method on a library interface needs a
// dispatch-class forwarder exactly like a program one would.
const minAPILevelForStaticInterfaceMethods = "v24.0.0"

// ForwardStub is the code body the planner attaches to a synthesized
// dispatch forwarder: "call Target with the same arguments and return
// its result." It carries no instructions of its own; the synthesizer
// (package synth) is what turns it into a concrete method body, but it
// does answer the CodeBody capability query like any other body: a
// pure forwarder never contains a super-invoke.
type ForwardStub struct {
	Target *model.MethodRef
}

func (f *ForwardStub) HasSuperInvokeTo(*model.TypeDescriptor) bool { return false }

// DispatchPlan is everything the planner produced for one library
// interface's static methods.
type DispatchPlan struct {
	LibraryInterface *model.TypeDescriptor
	Methods          []*model.MethodDefinition
	LensRecords      []LensRecord
}

// PlanLibraryInterface synthesizes dispatch-class forwarders for
// libIface's public static methods that are actually invoked by
// program code (invokedStaticRefs), per SPEC_FULL.md §4.4's "library
// interface pass". minAPILevel is compared with semver.Compare against
// minAPILevelForStaticInterfaceMethods (both in the "vMAJOR.MINOR.PATCH"
// form golang.org/x/mod/semver expects); when the target already
// supports invoke-static on interface methods directly, no forwarder is
// needed and PlanLibraryInterface returns a plan with no methods.
func PlanLibraryInterface(naming *Naming, libIface *model.ClassDefinition, invokedStaticRefs map[*model.MethodRef]bool, minAPILevel string) *DispatchPlan {
	dp := &DispatchPlan{LibraryInterface: libIface.Type}

	if semver.IsValid(minAPILevel) && semver.Compare(minAPILevel, minAPILevelForStaticInterfaceMethods) >= 0 {
		return dp
	}

	for _, m := range libIface.DirectMethods {
		if !m.IsStatic() || !m.Flags.Has(model.Public) {
			continue
		}
		if !invokedStaticRefs[m.Ref] {
			continue // never observed as invoked: nothing to forward
		}
		newRef := naming.AsDispatchForward(libIface.Type, m.Ref)
		dp.Methods = append(dp.Methods, &model.MethodDefinition{
			Ref:   newRef,
			Flags: model.Public | model.Static,
			Body:  &ForwardStub{Target: m.Ref},
		})
		dp.LensRecords = append(dp.LensRecords, LensRecord{Original: m.Ref, New: newRef, Kind: resolve.Static, Extra: true})
	}
	return dp
}
