// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"github.com/desugarkit/ifacedesugar/model"
	"github.com/desugarkit/ifacedesugar/plan"
)

// ForwardMethodBuilder turns a planned dispatch forwarder into its
// final method body. In this model a forwarder's body is nothing more
// than "invoke Target statically with my own arguments and return the
// result" (SPEC_FULL.md §4.6); there is no lower-level instruction
// stream to emit here, so building largely validates the stub the
// planner produced and attaches it as-is; a real bytecode backend
// would instead lower ForwardStub into concrete invoke-static plus
// return instructions at this point.
type ForwardMethodBuilder struct{}

// Build returns def unchanged if its body is already a *plan.ForwardStub,
// and nil, false otherwise.
func (ForwardMethodBuilder) Build(def *model.MethodDefinition) (*model.MethodDefinition, bool) {
	if _, ok := def.Body.(*plan.ForwardStub); !ok {
		return nil, false
	}
	return def, true
}
