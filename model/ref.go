// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// MethodRef is an interned (holder, name, proto) triple identifying a
// method independent of any particular definition: the same MethodRef
// may resolve to different MethodDefinitions depending on the
// receiver's runtime type (see package resolve).
type MethodRef struct {
	holder *TypeDescriptor
	name   string
	proto  *Proto
}

func (m *MethodRef) Holder() *TypeDescriptor { return m.holder }
func (m *MethodRef) Name() string            { return m.name }
func (m *MethodRef) Proto() *Proto           { return m.proto }

// Equal reports whether m and n are the same interned method reference.
func (m *MethodRef) Equal(n *MethodRef) bool { return m == n }

// Id returns a stable, human-readable identifier suitable for sorting
// and map keys that must survive outside the interner (e.g. lens
// serialization). It is not itself interned.
func (m *MethodRef) Id() string {
	return m.holder.String() + "->" + m.name + m.proto.String()
}

func (m *MethodRef) String() string { return m.Id() }

// FieldRef is an interned (holder, name, type) triple identifying a field.
type FieldRef struct {
	holder *TypeDescriptor
	name   string
	typ    *TypeDescriptor
}

func (f *FieldRef) Holder() *TypeDescriptor { return f.holder }
func (f *FieldRef) Name() string            { return f.name }
func (f *FieldRef) Type() *TypeDescriptor   { return f.typ }
func (f *FieldRef) Equal(g *FieldRef) bool  { return f == g }

func (f *FieldRef) Id() string {
	return f.holder.String() + "->" + f.name + ":" + f.typ.String()
}

func (f *FieldRef) String() string { return f.Id() }
