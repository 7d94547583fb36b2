// Package generate runs the generation pass: it walks an experiment phase by
// phase, routine by routine, and lets each component's registered writer
// append its code.
//
// Components of one routine and phase are written concurrently, each into
// its own Buffer, and appended to the caller's sink in sibling order once all
// of them succeeded. The sink therefore never sees partial output of a
// failed section.
package generate

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
	"github.com/specialistvlad/stimforge/internal/depth"
	"github.com/specialistvlad/stimforge/internal/emit"
	"github.com/specialistvlad/stimforge/internal/experiment"
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/internal/registry"
)

// Generator writes experiments with the component writers of a registry.
type Generator struct {
	registry *registry.Registry
	workers  int
}

// New creates a Generator. A workers value below 1 uses one worker per CPU.
func New(r *registry.Registry, workers int) *Generator {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Generator{registry: r, workers: workers}
}

// job is one component of a routine bound to its writer.
type job struct {
	desc   *model.Descriptor
	writer registry.Writer
}

// Generate writes exp for target to sink. It fails before writing anything
// if the experiment does not validate, a routine's sibling order is
// ambiguous, or a component type is unknown.
func (g *Generator) Generate(ctx context.Context, exp *experiment.Experiment, target model.Target, sink emit.Sink) error {
	logger := ctxlog.FromContext(ctx).With("experiment", exp.Name, "target", target.String())

	e, err := emit.For(target)
	if err != nil {
		return err
	}
	if err := exp.Validate(); err != nil {
		return fmt.Errorf("experiment '%s' is invalid: %w", exp.Name, err)
	}

	jobs := make(map[*experiment.Routine][]job, len(exp.Routines))
	var skipped, names []string
	for _, r := range exp.Routines {
		if _, err := depth.ForRoutine(r); err != nil {
			return err
		}
		for _, desc := range r.Components {
			c, ok := g.registry.Lookup(desc.Type)
			if !ok {
				return fmt.Errorf("routine '%s', component '%s': unknown component type '%s'", r.Name, desc.Name, desc.Type)
			}
			if !desc.Supports(target) {
				logger.Warn("Component is not available for target, skipping.", "routine", r.Name, "component", desc.Name, "type", desc.Type)
				skipped = append(skipped, fmt.Sprintf("component '%s' (%s) in routine '%s' is not available for the %s runtime", desc.Name, desc.Type, r.Name, target))
				continue
			}
			jobs[r] = append(jobs[r], job{desc: desc, writer: c.Writer})
			names = append(names, desc.Name)
		}
	}

	logger.Info("Generating experiment.", "routines", len(exp.Routines), "workers", g.workers)
	sink.Append(e.Comment(fmt.Sprintf("%s: generated for the %s runtime", exp.Name, target)))
	e.Prelude(exp.RequiredLibraries(target), sink)
	for _, msg := range skipped {
		sink.Append(e.Comment(msg))
	}
	e.Declare(names, sink)

	for _, phase := range emit.Phases {
		for _, r := range exp.Routines {
			if err := g.section(ctx, e, phase, r, jobs[r], sink); err != nil {
				return err
			}
		}
	}
	logger.Info("Experiment generated.")
	return nil
}

// section writes one phase of one routine.
func (g *Generator) section(ctx context.Context, e emit.Emitter, phase emit.Phase, r *experiment.Routine, jobs []job, sink emit.Sink) error {
	logger := ctxlog.FromContext(ctx)

	buffers := make([]*emit.Buffer, len(jobs))
	errs := make([]error, len(jobs))

	var group errgroup.Group
	group.SetLimit(g.workers)
	for i, j := range jobs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			buf := emit.NewBuffer(e.IndentUnit())
			req := &registry.Request{Phase: phase, Target: e.Target(), Descriptor: j.desc, Routine: r}
			if err := j.writer.Write(ctx, req, buf); err != nil {
				errs[i] = fmt.Errorf("routine '%s', component '%s' (%s), phase %s: %w", r.Name, j.desc.Name, j.desc.Type, phase, err)
				return errs[i]
			}
			buffers[i] = buf
			return nil
		})
	}
	// Without a group context every writer still runs. Wait reports the
	// first failure; errs holds all of them in sibling order.
	if group.Wait() != nil {
		err := errors.Join(errs...)
		logger.Error("Section failed.", "routine", r.Name, "phase", phase.String(), "error", err)
		return err
	}

	written := 0
	for _, buf := range buffers {
		written += buf.Len()
	}
	logger.Debug("Section written.", "routine", r.Name, "phase", phase.String(), "components", len(jobs), "lines", written)
	if written == 0 {
		return nil
	}

	sink.Append("", e.Comment(fmt.Sprintf("--- %s: Routine %q ---", phase, r.Name)))
	for _, buf := range buffers {
		sink.Append(buf.Lines()...)
	}
	return nil
}
