// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lens

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/desugarkit/ifacedesugar/model"
	"github.com/desugarkit/ifacedesugar/plan"
	"github.com/desugarkit/ifacedesugar/resolve"
)

func TestLensRecordAndLookup(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	iface := in.Class("com/example/I")
	companion := in.Class("com/example/I$-CC")
	orig := in.Method(iface, "f", proto)
	moved := in.Method(companion, "f$dflt", proto)

	l := New()
	l.Record(plan.LensRecord{Original: orig, New: moved, Kind: resolve.Static})

	got, ok := l.GetOriginalMethodSignature(moved)
	if !ok || got != orig {
		t.Fatalf("GetOriginalMethodSignature(moved) = %v, %v; want %v, true", got, ok, orig)
	}
	next, ok := l.GetNextMethodSignature(orig)
	if !ok || next != moved {
		t.Fatalf("GetNextMethodSignature(orig) = %v, %v; want %v, true", next, ok, moved)
	}
	if kind := l.MapInvocationType(moved); kind != resolve.Static {
		t.Fatalf("MapInvocationType(moved) = %v, want Static", kind)
	}
}

func TestLensToggleSelectsExtraMap(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	iface := in.Class("com/example/I")
	companion := in.Class("com/example/I$-CC")
	orig := in.Method(iface, "f", proto)
	moved := in.Method(companion, "f$private", proto)

	l := New()
	l.Record(plan.LensRecord{Original: orig, New: moved, Kind: resolve.Static, Extra: true})

	if _, ok := l.GetOriginalMethodSignature(moved); ok {
		t.Fatalf("GetOriginalMethodSignature found an extra-only entry before toggling")
	}
	l.ToggleMappingToExtraMethods()
	got, ok := l.GetOriginalMethodSignature(moved)
	if !ok || got != orig {
		t.Fatalf("after toggle, GetOriginalMethodSignature(moved) = %v, %v; want %v, true", got, ok, orig)
	}
}

func TestLensMergeLaterWins(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	iface := in.Class("com/example/I")
	companion := in.Class("com/example/I$-CC")
	orig := in.Method(iface, "f", proto)
	movedA := in.Method(companion, "f$dflt", proto)
	movedB := in.Method(companion, "f$dflt2", proto)

	l1 := New()
	l1.Record(plan.LensRecord{Original: orig, New: movedA, Kind: resolve.Static})
	l2 := New()
	l2.Record(plan.LensRecord{Original: orig, New: movedB, Kind: resolve.Static})

	merged := Merge(l1, l2)
	next, ok := merged.GetNextMethodSignature(orig)
	if !ok || next != movedB {
		t.Fatalf("Merge: GetNextMethodSignature(orig) = %v, %v; want %v (l2 wins), true", next, ok, movedB)
	}
}

func TestLensRecordAllReportsExpectedSignaturesForEveryEntry(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	iface := in.Class("com/example/I")
	companion := in.Class("com/example/I$-CC")

	origF := in.Method(iface, "f", proto)
	movedF := in.Method(companion, "f$dflt", proto)
	origG := in.Method(iface, "g", proto)
	movedG := in.Method(companion, "g$static", proto)

	l := New()
	l.RecordAll([]plan.LensRecord{
		{Original: origF, New: movedF, Kind: resolve.Static, Extra: true},
		{Original: origG, New: movedG, Kind: resolve.Static},
	})

	// model.MethodRef defines Equal, so cmp compares by interned
	// identity rather than by exported struct fields.
	gotNextF, _ := l.GetNextMethodSignature(origF)
	if diff := cmp.Diff(movedF, gotNextF); diff != "" {
		t.Fatalf("GetNextMethodSignature(origF) mismatch (-want +got):\n%s", diff)
	}
	gotNextG, _ := l.GetNextMethodSignature(origG)
	if diff := cmp.Diff(movedG, gotNextG); diff != "" {
		t.Fatalf("GetNextMethodSignature(origG) mismatch (-want +got):\n%s", diff)
	}

	l.ToggleMappingToExtraMethods()
	gotOrigF, _ := l.GetOriginalMethodSignature(movedF)
	if diff := cmp.Diff(origF, gotOrigF); diff != "" {
		t.Fatalf("GetOriginalMethodSignature(movedF) mismatch (-want +got):\n%s", diff)
	}
}

func TestFindOriginalWalksChain(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	iface := in.Class("com/example/I")
	companion := in.Class("com/example/I$-CC")
	orig := in.Method(iface, "f", proto)
	moved := in.Method(companion, "f$dflt", proto)

	older := New()
	older.Record(plan.LensRecord{Original: orig, New: moved, Kind: resolve.Static})
	newer := New() // has no knowledge of moved

	got, ok := FindOriginal([]*Lens{newer, older}, moved)
	if !ok || got != orig {
		t.Fatalf("FindOriginal = %v, %v; want %v, true", got, ok, orig)
	}
}
