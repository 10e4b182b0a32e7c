// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"sort"

	"github.com/desugarkit/ifacedesugar/model"
	"github.com/desugarkit/ifacedesugar/resolve"
)

// LensRecord is one accumulated mapping the planner hands to the lens
// builder (SPEC_FULL.md §4.5): an original reference, its replacement,
// and the invocation kind the lens must report for call sites of the
// original going forward (always Static for members moved by this
// planner).
type LensRecord struct {
	Original *model.MethodRef
	New      *model.MethodRef
	Kind     resolve.InvocationKind
	Extra    bool // feeds lens's extraOriginalMethodSignatures map
}

// Plan is everything the planner produced for one program interface.
type Plan struct {
	Interface         *model.TypeDescriptor
	CompanionMethods  []*model.MethodDefinition
	NewVirtualMethods []*model.MethodDefinition
	NewDirectMethods  []*model.MethodDefinition
	LensRecords       []LensRecord

	// PinnedShims records every kept shim of a bridge default method
	// that the liveness oracle pinned; such shims keep their bridge
	// flag. Used by the invariant checker's shim abstractness property
	// (SPEC_FULL.md §8).
	PinnedShims map[*model.MethodRef]bool
}

// LivenessOracle answers SPEC_FULL.md §6's isPinned(methodRef) query.
// A nil LivenessOracle is treated as "nothing is pinned", per spec.
type LivenessOracle func(ref *model.MethodRef) bool

// EmulatedDispatchOracle reports whether a method reference is already
// owned by the emulated interface dispatch layer (SPEC_FULL.md §4.4's
// "Emulated-dispatch exclusion"); the planner skips such methods
// entirely.
type EmulatedDispatchOracle func(ref *model.MethodRef) bool

// Planner runs the per-interface move-planning algorithm of
// SPEC_FULL.md §4.4.
type Planner struct {
	Oracle          *resolve.Oracle
	Naming          *Naming
	IsPinned        LivenessOracle
	IsEmulatedOwned EmulatedDispatchOracle
}

func (p *Planner) isPinned(ref *model.MethodRef) bool {
	if p.IsPinned == nil {
		return false
	}
	return p.IsPinned(ref)
}

func (p *Planner) isEmulatedOwned(ref *model.MethodRef) bool {
	if p.IsEmulatedOwned == nil {
		return false
	}
	return p.IsEmulatedOwned(ref)
}

// PlanInterface plans the desugaring of one program interface. iface
// must be a program interface (Classification == model.Program,
// ClassFlags.Has(model.Interface)); callers iterate only over such
// classes, matching SPEC_FULL.md §5's "parallel across interfaces"
// scheduling model. PlanInterface itself does no I/O and touches only
// the (read-only, frozen) repository through p.Oracle, so it is safe
// to call concurrently for distinct interfaces.
func (p *Planner) PlanInterface(iface *model.ClassDefinition) (*Plan, error) {
	plan := &Plan{Interface: iface.Type, PinnedShims: map[*model.MethodRef]bool{}}

	if err := p.planVirtualMethods(iface, plan); err != nil {
		return nil, err
	}
	if err := p.planDirectMethods(iface, plan); err != nil {
		return nil, err
	}
	if err := p.checkCompanionCollisions(iface.Type, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (p *Planner) planVirtualMethods(iface *model.ClassDefinition, plan *Plan) error {
	for _, m := range iface.VirtualMethods {
		if p.isEmulatedOwned(m.Ref) {
			continue // benign skip: owned by the emulated dispatch layer
		}
		if m.IsAbstract() {
			// Plain abstract method or pre-existing shim: untouched.
			plan.NewVirtualMethods = append(plan.NewVirtualMethods, m)
			continue
		}

		// Non-abstract virtual method: a default method.
		if m.Body == nil {
			return newError(ErrDefaultWithoutBody, iface.Type, m.Ref, nil)
		}
		if m.IsNative() {
			return newError(ErrNativeDefaultMethod, iface.Type, m.Ref, nil)
		}
		if p.hasForbiddenSuperInvoke(iface, m) {
			return newError(ErrNonMovableSuperInvoke, iface.Type, m.Ref, nil)
		}

		companionRef := p.Naming.AsMovedDefault(iface.Type, m.Ref)
		companionMethod := &model.MethodDefinition{
			Ref:   companionRef,
			Flags: m.Flags.Without(model.Bridge).Without(model.Abstract).With(model.Static).With(model.Public),
			Body:  m.Body,
		}
		plan.CompanionMethods = append(plan.CompanionMethods, companionMethod)
		plan.LensRecords = append(plan.LensRecords, LensRecord{
			Original: m.Ref, New: companionRef, Kind: resolve.Static, Extra: true,
		})

		if p.keepShim(iface, m) {
			shim := &model.MethodDefinition{
				Ref:   m.Ref,
				Flags: m.Flags.Without(model.Bridge).With(model.Abstract).With(model.Public),
			}
			if m.IsBridge() && p.isPinned(m.Ref) {
				// Pinned bridges keep their bridge flag: the shim
				// abstractness property (SPEC_FULL.md §8) allows this
				// only because the method is pinned.
				shim.Flags = shim.Flags.With(model.Bridge)
				plan.PinnedShims[m.Ref] = true
			}
			plan.NewVirtualMethods = append(plan.NewVirtualMethods, shim)
		}
	}
	return nil
}

// hasForbiddenSuperInvoke reports whether m's body invokes, via
// invoke-super, a method of one of iface's own super-interfaces: such
// a call has meaning only from the interface itself and cannot survive
// the move to a non-interface companion (SPEC_FULL.md §4.4).
func (p *Planner) hasForbiddenSuperInvoke(iface *model.ClassDefinition, m *model.MethodDefinition) bool {
	for _, edge := range p.Oracle.SupertypesOf(iface.Type) {
		if edge.Type == iface.Type || !edge.ViaInterface {
			continue
		}
		if m.Body.HasSuperInvokeTo(edge.Type) {
			return true
		}
	}
	return false
}

// keepShim decides whether iface keeps an abstract shim for default
// method m, per the three-way rule in SPEC_FULL.md §4.4.
func (p *Planner) keepShim(iface *model.ClassDefinition, m *model.MethodDefinition) bool {
	if p.isPinned(m.Ref) {
		return true
	}
	if !m.IsBridge() {
		return true
	}
	// m is a bridge: removable only if some reachable super-type
	// still declares a virtual method with the same signature, making
	// the removal API-preserving.
	for _, edge := range p.Oracle.SupertypesOf(iface.Type) {
		if edge.Type == iface.Type {
			continue
		}
		def, _, ok := p.Oracle.Get(edge.Type)
		if !ok {
			continue
		}
		for _, vm := range def.VirtualMethods {
			if vm.Ref.Name() == m.Ref.Name() && vm.Ref.Proto() == m.Ref.Proto() {
				return false // API-preserving: safe to drop
			}
		}
	}
	return true
}

func (p *Planner) planDirectMethods(iface *model.ClassDefinition, plan *Plan) error {
	for _, d := range iface.DirectMethods {
		switch {
		case d.IsClassInitializer():
			plan.NewDirectMethods = append(plan.NewDirectMethods, d)

		case d.IsNative():
			return newError(ErrUnsupportedNative, iface.Type, d.Ref, nil)

		case d.IsStatic():
			newRef := p.Naming.AsMovedStatic(iface.Type, d.Ref)
			moved := &model.MethodDefinition{
				Ref:   newRef,
				Flags: d.Flags.Without(model.Private).With(model.Public),
				Body:  d.Body,
			}
			plan.CompanionMethods = append(plan.CompanionMethods, moved)
			plan.LensRecords = append(plan.LensRecords, LensRecord{Original: d.Ref, New: newRef, Kind: resolve.Static})

		case d.IsPrivate():
			newRef := p.Naming.AsMovedPrivate(iface.Type, d.Ref)
			moved := &model.MethodDefinition{
				Ref:   newRef,
				Flags: d.Flags.Without(model.Private).With(model.Public).With(model.Static),
				Body:  d.Body,
			}
			plan.CompanionMethods = append(plan.CompanionMethods, moved)
			plan.LensRecords = append(plan.LensRecords, LensRecord{Original: d.Ref, New: newRef, Kind: resolve.Static, Extra: true})

		default:
			plan.NewDirectMethods = append(plan.NewDirectMethods, d)
		}
	}
	return nil
}

func (p *Planner) checkCompanionCollisions(iface *model.TypeDescriptor, plan *Plan) error {
	seen := map[string]*model.MethodRef{}
	for _, m := range plan.CompanionMethods {
		key := m.Ref.Name() + m.Ref.Proto().String()
		if prior, ok := seen[key]; ok {
			return newError(ErrCompanionNameCollision, iface, prior, nil)
		}
		seen[key] = m.Ref
	}
	return nil
}

// SortedLensRecords returns plan's lens records ordered by original
// reference id, for deterministic merging (SPEC_FULL.md §5).
func SortedLensRecords(records []LensRecord) []LensRecord {
	out := append([]LensRecord(nil), records...)
	sort.Slice(out, func(i, j int) bool { return out[i].Original.Id() < out[j].Original.Id() })
	return out
}
