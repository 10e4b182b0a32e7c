// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package check implements the invariant checker (SPEC_FULL.md §4.7,
// §3, §8), adapted directly from go/ssa/sanity.go: a sanity-shaped
// struct with one check* method per invariant, an errorf/warnf pair
// mirroring sanity.diagnostic/errorf/warnf, and a mustCheck wrapper
// mirroring mustSanityCheck that panics, used only by this module's
// own internal self-tests, never by the public entry point, which
// returns a bool instead.
package check

import (
	"fmt"
	"io"
	"os"

	"github.com/desugarkit/ifacedesugar/model"
	"github.com/desugarkit/ifacedesugar/plan"
	"github.com/desugarkit/ifacedesugar/resolve"
)

type checker struct {
	reporter io.Writer
	class    *model.ClassDefinition
	insane   bool
}

func (c *checker) diagnostic(prefix, format string, args ...interface{}) {
	fmt.Fprintf(c.reporter, "%s: class %s: ", prefix, c.class.Type)
	fmt.Fprintf(c.reporter, format, args...)
	io.WriteString(c.reporter, "\n")
}

func (c *checker) errorf(format string, args ...interface{}) {
	c.insane = true
	c.diagnostic("Error", format, args...)
}

func (c *checker) warnf(format string, args ...interface{}) {
	c.diagnostic("Warning", format, args...)
}

// CheckInterfacePlan runs the post-move invariants of SPEC_FULL.md §3
// and §8 against iface's rewritten shape and the plan that produced it.
// Diagnostics are written to reporter if non-nil, os.Stderr otherwise.
// It returns true if no invariant was violated; warnings do not imply a
// negative result.
func CheckInterfacePlan(iface *model.ClassDefinition, pl *plan.Plan, reporter io.Writer) bool {
	if reporter == nil {
		reporter = os.Stderr
	}
	c := &checker{reporter: reporter, class: iface}
	c.checkMoveTotality(pl)
	c.checkShimAbstractness(pl)
	c.checkNoDuplicateVirtualMethods(pl)
	return !c.insane
}

// MustCheckInterfacePlan is like CheckInterfacePlan but panics on
// failure; reserved for this module's own tests and debug tooling, per
// go/ssa/sanity.go's mustSanityCheck idiom.
func MustCheckInterfacePlan(iface *model.ClassDefinition, pl *plan.Plan, reporter io.Writer) {
	if !CheckInterfacePlan(iface, pl, reporter) {
		panic("check: invariant violated for " + iface.Type.String())
	}
}

// checkMoveTotality verifies every default, static, and private
// instance method either moved to the companion or was explicitly kept
// (class initializer, plain abstract method); nothing silently
// vanishes (SPEC_FULL.md §8 "move totality").
func (c *checker) checkMoveTotality(pl *plan.Plan) {
	moved := map[*model.MethodRef]bool{}
	for _, m := range pl.CompanionMethods {
		moved[m.Ref] = true
	}
	kept := map[*model.MethodRef]bool{}
	for _, m := range pl.NewVirtualMethods {
		kept[m.Ref] = true
	}
	for _, m := range pl.NewDirectMethods {
		kept[m.Ref] = true
	}
	movedFrom := map[*model.MethodRef]bool{}
	for _, rec := range pl.LensRecords {
		if !moved[rec.New] {
			c.errorf("lens records a move to %s but no companion method was produced", rec.New)
		}
		movedFrom[rec.Original] = true
	}
	for _, ms := range [][]*model.MethodDefinition{c.class.VirtualMethods, c.class.DirectMethods} {
		for _, m := range ms {
			if !movedFrom[m.Ref] && !kept[m.Ref] {
				c.errorf("method %s was neither moved to the companion nor kept", m.Ref)
			}
		}
	}
}

// checkShimAbstractness verifies every retained virtual method is
// either abstract, or bridge-and-pinned (SPEC_FULL.md §8 "shim
// abstractness": m.abstract ∧ ¬m.bridge, unless m.pinned excuses the
// bridge flag).
func (c *checker) checkShimAbstractness(pl *plan.Plan) {
	for _, m := range pl.NewVirtualMethods {
		if !m.IsAbstract() && !pl.PinnedShims[m.Ref] {
			c.errorf("retained virtual method %s is not abstract", m.Ref)
			continue
		}
		if m.IsBridge() && !pl.PinnedShims[m.Ref] {
			c.errorf("shim %s kept its bridge flag without being pinned", m.Ref)
		}
	}
}

// checkNoDuplicateVirtualMethods is a cheap companion to the planner's
// own companion-collision check: it verifies no two retained virtual
// methods share a (name, proto) pair, which would indicate the planner
// produced an internally inconsistent plan.
func (c *checker) checkNoDuplicateVirtualMethods(pl *plan.Plan) {
	seen := map[string]bool{}
	for _, m := range pl.NewVirtualMethods {
		key := m.Ref.Name() + m.Ref.Proto().String()
		if seen[key] {
			c.errorf("duplicate retained virtual method %s", m.Ref)
		}
		seen[key] = true
	}
}

// ValidateNoOverride checks the subtype-override invariant referenced
// in SPEC_FULL.md §4.7: after a default method m is moved off iface and
// its shim dropped, no subtype of iface may still declare an abstract
// method with m's exact signature expecting dynamic dispatch to resolve
// to iface's (now-absent) default: every subtype that could have
// relied on m must itself supply a concrete override. o and all are the
// same whole-program closure the planner ran against.
func ValidateNoOverride(o *resolve.Oracle, all []*model.TypeDescriptor, iface *model.TypeDescriptor, droppedShim *model.MethodRef) []error {
	var errs []error
	for _, sub := range o.SubtypesOf(all, iface) {
		def, _, ok := o.Get(sub)
		if !ok || def.IsInterface() {
			continue
		}
		res := o.Resolve(sub, droppedShim)
		if res.Kind != resolve.Resolved || res.Definition.IsAbstract() {
			errs = append(errs, fmt.Errorf("check: %s no longer resolves %s after %s's shim was dropped", sub, droppedShim, iface))
		}
	}
	return errs
}
