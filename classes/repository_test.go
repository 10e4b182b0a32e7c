// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classes

import (
	"testing"

	"github.com/desugarkit/ifacedesugar/model"
)

func iface(in *model.Interner, name string) *model.ClassDefinition {
	t := in.Class(name)
	return &model.ClassDefinition{
		Type:           t,
		Classification: model.Program,
		ClassFlags:     model.Public | model.Interface | model.Abstract,
	}
}

func TestRepositoryGet(t *testing.T) {
	in := model.NewInterner()
	def := iface(in, "com/example/I")
	repo := NewRepository([]*model.ClassDefinition{def})

	got, class, ok := repo.Get(def.Type)
	if !ok || got != def || class != model.Program {
		t.Fatalf("Get returned (%v, %v, %v), want (%v, Program, true)", got, class, ok, def)
	}

	if _, _, ok := repo.Get(in.Class("com/example/Unknown")); ok {
		t.Fatalf("Get found a class never published")
	}
}

func TestRepositoryFreezePanicsOnPublish(t *testing.T) {
	repo := NewRepository(nil)
	repo.Freeze()
	defer func() {
		if recover() == nil {
			t.Fatalf("Publish while frozen did not panic")
		}
	}()
	in := model.NewInterner()
	repo.Publish(iface(in, "com/example/Companion"))
}

func TestRepositoryPublishDuplicatePanics(t *testing.T) {
	in := model.NewInterner()
	def := iface(in, "com/example/I")
	repo := NewRepository([]*model.ClassDefinition{def})
	defer func() {
		if recover() == nil {
			t.Fatalf("Publish of duplicate type did not panic")
		}
	}()
	repo.Publish(def)
}

func TestRepositoryReplace(t *testing.T) {
	in := model.NewInterner()
	def := iface(in, "com/example/I")
	repo := NewRepository([]*model.ClassDefinition{def})
	repo.Replace(def.Type, func(d *model.ClassDefinition) {
		d.SourceFile = "I.java"
	})
	got, _, _ := repo.Get(def.Type)
	if got.SourceFile != "I.java" {
		t.Fatalf("Replace did not apply mutator")
	}
}

func TestRepositoryAll(t *testing.T) {
	in := model.NewInterner()
	a := iface(in, "com/example/A")
	b := iface(in, "com/example/B")
	repo := NewRepository([]*model.ClassDefinition{a, b})
	all := repo.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d classes, want 2", len(all))
	}
}
