// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"sync"

	"golang.org/x/text/unicode/norm"
)

// An Interner is a thread-safe, append-only table mapping descriptor
// strings to pointer-stable TypeDescriptor, Proto, MethodRef and
// FieldRef values, in the spirit of go/ssa's Program caches
// (prog.methodSets guarded by prog.methodsMu, prog.objectMethods
// guarded by prog.objectMethodsMu): one lock per table, populated
// lazily, never shrunk.
//
// Class names are normalized to Unicode NFC before interning.
// Synthesized companion/dispatch names are built by string
// concatenation from interface names supplied by independent
// compilation units; without normalization, two byte-distinct but
// canonically-equivalent names (e.g. differing only in combining vs.
// precomposed accents) would intern as separate descriptors and
// silently violate the determinism contract of SPEC_FULL.md §6.
type Interner struct {
	mu      sync.Mutex
	types   map[string]*TypeDescriptor
	protos  map[string]*Proto
	methods map[string]*MethodRef
	fields  map[string]*FieldRef
}

// NewInterner returns an empty Interner ready for use.
func NewInterner() *Interner {
	return &Interner{
		types:   make(map[string]*TypeDescriptor),
		protos:  make(map[string]*Proto),
		methods: make(map[string]*MethodRef),
		fields:  make(map[string]*FieldRef),
	}
}

func normalizeClassName(name string) string {
	return norm.NFC.String(name)
}

// Class interns a class type by fully qualified name (e.g. "java/util/List").
func (in *Interner) Class(name string) *TypeDescriptor {
	name = normalizeClassName(name)
	in.mu.Lock()
	defer in.mu.Unlock()
	if t, ok := in.types["L"+name]; ok {
		return t
	}
	t := &TypeDescriptor{kind: KindClass, name: name}
	in.types["L"+name] = t
	return t
}

// Primitive interns a primitive type by its JVM descriptor letter
// ("I", "J", "Z", "V", ...).
func (in *Interner) Primitive(letter string) *TypeDescriptor {
	in.mu.Lock()
	defer in.mu.Unlock()
	if t, ok := in.types[letter]; ok {
		return t
	}
	t := &TypeDescriptor{kind: KindPrimitive, name: letter}
	in.types[letter] = t
	return t
}

// Array interns an array type with the given element type.
func (in *Interner) Array(elem *TypeDescriptor) *TypeDescriptor {
	key := "[" + elem.String()
	in.mu.Lock()
	defer in.mu.Unlock()
	if t, ok := in.types[key]; ok {
		return t
	}
	t := &TypeDescriptor{kind: KindArray, name: key, elem: elem}
	in.types[key] = t
	return t
}

// Proto interns an ordered parameter list plus return type.
func (in *Interner) Proto(params []*TypeDescriptor, ret *TypeDescriptor) *Proto {
	key := protoKey(params, ret)
	in.mu.Lock()
	defer in.mu.Unlock()
	if p, ok := in.protos[key]; ok {
		return p
	}
	p := &Proto{params: append([]*TypeDescriptor(nil), params...), ret: ret}
	in.protos[key] = p
	return p
}

// Method interns a method reference.
func (in *Interner) Method(holder *TypeDescriptor, name string, proto *Proto) *MethodRef {
	key := holder.String() + "->" + name + proto.descriptorKey()
	in.mu.Lock()
	defer in.mu.Unlock()
	if m, ok := in.methods[key]; ok {
		return m
	}
	m := &MethodRef{holder: holder, name: name, proto: proto}
	in.methods[key] = m
	return m
}

// Field interns a field reference.
func (in *Interner) Field(holder *TypeDescriptor, name string, typ *TypeDescriptor) *FieldRef {
	key := holder.String() + "->" + name + ":" + typ.String()
	in.mu.Lock()
	defer in.mu.Unlock()
	if f, ok := in.fields[key]; ok {
		return f
	}
	f := &FieldRef{holder: holder, name: name, typ: typ}
	in.fields[key] = f
	return f
}
