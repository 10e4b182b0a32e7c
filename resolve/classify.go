// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve

import (
	"fmt"

	"github.com/desugarkit/ifacedesugar/model"
)

// InvokeOpcode is the bytecode-level invocation opcode at a call site,
// prior to any desugaring rewrite.
type InvokeOpcode int

const (
	InvokeVirtual InvokeOpcode = iota
	InvokeInterface
	InvokeStatic
	InvokeSpecial
	InvokeSuper
)

func (op InvokeOpcode) String() string {
	switch op {
	case InvokeVirtual:
		return "invoke-virtual"
	case InvokeInterface:
		return "invoke-interface"
	case InvokeStatic:
		return "invoke-static"
	case InvokeSpecial:
		return "invoke-special"
	case InvokeSuper:
		return "invoke-super"
	default:
		return fmt.Sprintf("InvokeOpcode(%d)", int(op))
	}
}

// InvocationKind is the oracle's classification of a call site,
// directly modeled on internal/typesinternal.ClassifyCall's CallKind
// (CallStatic / CallInterface / CallDynamic / ...): the same
// static-vs-virtual-vs-interface trichotomy, specialized to bytecode
// invoke opcodes rather than Go call expressions.
type InvocationKind int

const (
	Static InvocationKind = iota
	Virtual
	InterfaceDispatch
	Super
)

var invocationKindNames = []string{"Static", "Virtual", "InterfaceDispatch", "Super"}

func (k InvocationKind) String() string {
	if i := int(k); i >= 0 && i < len(invocationKindNames) {
		return invocationKindNames[i]
	}
	return fmt.Sprintf("InvocationKind(%d)", int(k))
}

// ClassifyInvocation classifies a call site's opcode into the
// invocation kind the lens must eventually normalize away for moved
// members (SPEC_FULL.md §4.1, §4.5): every moved member is reported as
// Static by the lens regardless of what ClassifyInvocation returns
// for its original call site.
func (o *Oracle) ClassifyInvocation(ref *model.MethodRef, opcode InvokeOpcode) InvocationKind {
	switch opcode {
	case InvokeStatic:
		return Static
	case InvokeInterface:
		return InterfaceDispatch
	case InvokeSuper:
		return Super
	case InvokeVirtual, InvokeSpecial:
		def, _, ok := o.classes.Get(ref.Holder())
		if ok && def.IsInterface() {
			return InterfaceDispatch
		}
		return Virtual
	default:
		return Virtual
	}
}
