// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// AccessFlags is a bitmask of class/method/field modifiers, mutable
// only on program definitions (see ClassDefinition / MethodDefinition).
type AccessFlags uint32

const (
	Public AccessFlags = 1 << iota
	Private
	Protected
	Static
	Final
	Abstract
	Synthetic
	Bridge
	Interface
	Annotation
	Native
)

func (f AccessFlags) Has(bit AccessFlags) bool { return f&bit != 0 }

func (f AccessFlags) With(bit AccessFlags) AccessFlags    { return f | bit }
func (f AccessFlags) Without(bit AccessFlags) AccessFlags { return f &^ bit }
