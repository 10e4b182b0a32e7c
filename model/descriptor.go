// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model defines the value-identified type model shared by every
// other package in this module: type descriptors, protos, method and
// field references, and access flags. Every entity here is interned
// by its descriptor string, so equality within one Interner is pointer
// identity, and two independent compilations of the same interface
// produce identical descriptor strings (see the determinism contract
// in SPEC_FULL.md §6).
package model

import "fmt"

// Kind distinguishes the three shapes a TypeDescriptor can take.
type Kind int

const (
	KindPrimitive Kind = iota
	KindClass
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindClass:
		return "class"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TypeDescriptor is an interned, value-identified reference to a
// primitive, class or array type. Two TypeDescriptors are equal iff
// they were returned from the same Interner for the same descriptor
// string; see Interner.Class, Interner.Primitive and Interner.Array.
type TypeDescriptor struct {
	kind Kind
	name string // fully qualified class name, primitive name, or "[" + elem descriptor
	elem *TypeDescriptor // non-nil iff kind == KindArray
}

// Kind reports the descriptor's kind.
func (t *TypeDescriptor) Kind() Kind { return t.kind }

// ClassName returns the fully qualified class name for a KindClass
// descriptor, or the primitive's name for KindPrimitive. It panics for
// KindArray; use Elem instead.
func (t *TypeDescriptor) ClassName() string {
	if t.kind == KindArray {
		panic("ClassName of array type " + t.name)
	}
	return t.name
}

// Elem returns the element type of an array descriptor. It panics if
// t is not a KindArray descriptor.
func (t *TypeDescriptor) Elem() *TypeDescriptor {
	if t.kind != KindArray {
		panic("Elem of non-array type " + t.name)
	}
	return t.elem
}

// String returns the JVM-style descriptor string, e.g. "Ljava/util/List;"
// for a class, "I" for int, or "[Ljava/lang/String;" for an array.
func (t *TypeDescriptor) String() string {
	switch t.kind {
	case KindArray:
		return "[" + t.elem.String()
	case KindPrimitive:
		return t.name
	default:
		return "L" + t.name + ";"
	}
}

// Equal reports whether t and u are the same interned descriptor.
// Implements the single-method contract github.com/google/go-cmp/cmp
// uses to respect interning instead of doing a structural walk.
func (t *TypeDescriptor) Equal(u *TypeDescriptor) bool { return t == u }
