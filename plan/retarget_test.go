// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"testing"

	"github.com/desugarkit/ifacedesugar/model"
)

func TestPlanRetargetStaticAlwaysDirect(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	holder := in.Class("java/util/Collections")
	orig := in.Method(holder, "emptyList", proto)
	repl := in.Method(holder, "emptyList$j$", proto)

	rule := RetargetRule{Original: orig, Replacement: repl}
	got := PlanRetarget(rule, true)
	if got.Kind != StaticRetarget {
		t.Fatalf("Kind = %v, want StaticRetarget", got.Kind)
	}
	if got.Original != orig || got.Replacement != repl {
		t.Fatalf("PlanRetarget did not preserve Original/Replacement: %+v", got)
	}
}

func TestPlanRetargetFinalHolderIsNonEmulated(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	holder := in.Class("java/lang/String")
	orig := in.Method(holder, "chars", proto)
	repl := in.Method(holder, "chars$j$", proto)

	rule := RetargetRule{Original: orig, Replacement: repl, HolderIsFinal: true}
	got := PlanRetarget(rule, false)
	if got.Kind != NonEmulatedVirtualRetarget {
		t.Fatalf("Kind = %v, want NonEmulatedVirtualRetarget", got.Kind)
	}
}

func TestPlanRetargetFinalMethodIsNonEmulated(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	holder := in.Class("java/util/AbstractMap")
	orig := in.Method(holder, "size", proto)
	repl := in.Method(holder, "size$j$", proto)

	rule := RetargetRule{Original: orig, Replacement: repl, MethodIsFinal: true}
	got := PlanRetarget(rule, false)
	if got.Kind != NonEmulatedVirtualRetarget {
		t.Fatalf("Kind = %v, want NonEmulatedVirtualRetarget", got.Kind)
	}
}

func TestPlanRetargetOverridableVirtualIsEmulated(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	holder := in.Class("java/util/AbstractCollection")
	orig := in.Method(holder, "stream", proto)
	repl := in.Method(holder, "stream$j$", proto)

	rule := RetargetRule{Original: orig, Replacement: repl}
	got := PlanRetarget(rule, false)
	if got.Kind != EmulatedVirtualRetarget {
		t.Fatalf("Kind = %v, want EmulatedVirtualRetarget", got.Kind)
	}
}

func TestRetargetKindString(t *testing.T) {
	cases := []struct {
		kind RetargetKind
		want string
	}{
		{StaticRetarget, "static-retarget"},
		{NonEmulatedVirtualRetarget, "non-emulated-virtual-retarget"},
		{EmulatedVirtualRetarget, "emulated-virtual-retarget"},
		{RetargetKind(99), "unknown-retarget"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("%d.String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestPlanRetargetsPreservesInputOrder(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	holder := in.Class("java/util/List")
	staticOrig := in.Method(holder, "of", proto)
	staticRepl := in.Method(holder, "of$j$", proto)
	virtOrig := in.Method(holder, "forEach", proto)
	virtRepl := in.Method(holder, "forEach$j$", proto)

	rules := []RetargetRule{
		{Original: virtOrig, Replacement: virtRepl},
		{Original: staticOrig, Replacement: staticRepl},
	}
	isStaticOf := func(r *model.MethodRef) bool { return r == staticOrig }

	got := PlanRetargets(rules, isStaticOf)
	if len(got) != 2 {
		t.Fatalf("got %d plans, want 2", len(got))
	}
	if got[0].Original != virtOrig || got[0].Kind != EmulatedVirtualRetarget {
		t.Fatalf("plan[0] = %+v, want virtOrig/EmulatedVirtualRetarget", got[0])
	}
	if got[1].Original != staticOrig || got[1].Kind != StaticRetarget {
		t.Fatalf("plan[1] = %+v, want staticOrig/StaticRetarget", got[1])
	}
}
