// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"context"
	"strings"
	"testing"

	"github.com/desugarkit/ifacedesugar/classes"
	"github.com/desugarkit/ifacedesugar/desugar"
	"github.com/desugarkit/ifacedesugar/model"
)

type stubBody struct{}

func (stubBody) HasSuperInvokeTo(*model.TypeDescriptor) bool { return false }

func TestRenderMarkdownAndHTML(t *testing.T) {
	in := model.NewInterner()
	v := in.Primitive("V")
	proto := in.Proto(nil, v)
	obj := in.Class("java/lang/Object")
	iface := in.Class("com/example/Greeter")

	ifaceDef := &model.ClassDefinition{
		Type: iface, Classification: model.Program, ClassFlags: model.Interface,
		VirtualMethods: []*model.MethodDefinition{
			{Ref: in.Method(iface, "greet", proto), Flags: model.Public, Body: stubBody{}},
		},
	}
	repo := classes.NewRepository([]*model.ClassDefinition{ifaceDef})
	res, err := desugar.Run(context.Background(), repo, obj, desugar.Options{})
	if err != nil {
		t.Fatalf("desugar.Run: %v", err)
	}

	md := RenderMarkdown(res)
	if !strings.Contains(md, "com/example/Greeter") {
		t.Fatalf("markdown report missing interface name:\n%s", md)
	}
	if !strings.Contains(md, "Synthesized companion classes") {
		t.Fatalf("markdown report missing companion section:\n%s", md)
	}

	html, err := RenderHTML(md)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(string(html), "<h1>") {
		t.Fatalf("rendered HTML missing heading:\n%s", html)
	}
}
