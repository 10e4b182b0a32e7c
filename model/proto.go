// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "strings"

// Proto is an interned method prototype: an ordered parameter list
// plus a return type. Two Protos from the same Interner are equal iff
// pointer-identical.
type Proto struct {
	params []*TypeDescriptor
	ret    *TypeDescriptor
}

// Params returns the (immutable) ordered parameter types.
func (p *Proto) Params() []*TypeDescriptor { return p.params }

// Return returns the return type; KindPrimitive "V" denotes void.
func (p *Proto) Return() *TypeDescriptor { return p.ret }

// Arity returns the number of parameters.
func (p *Proto) Arity() int { return len(p.params) }

// Equal reports whether p and q are the same interned proto.
func (p *Proto) Equal(q *Proto) bool { return p == q }

func (p *Proto) descriptorKey() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, t := range p.params {
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	b.WriteString(p.ret.String())
	return b.String()
}

func protoKey(params []*TypeDescriptor, ret *TypeDescriptor) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, t := range params {
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	b.WriteString(ret.String())
	return b.String()
}

// String renders the proto as a JVM-style method descriptor, e.g. "(I)Z".
func (p *Proto) String() string { return p.descriptorKey() }

// WithLeadingParam returns a new (uninterned) parameter slice with recv
// prepended to p's existing parameters, the core of the "receiver
// becomes parameter zero" transform in SPEC_FULL.md §4.3, adapted from
// go/ssa/util.go's recvAsFirstArg.
func (p *Proto) WithLeadingParam(recv *TypeDescriptor) []*TypeDescriptor {
	out := make([]*TypeDescriptor, 0, 1+len(p.params))
	out = append(out, recv)
	out = append(out, p.params...)
	return out
}
