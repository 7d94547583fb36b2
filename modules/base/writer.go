package base

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
	"github.com/specialistvlad/stimforge/internal/depth"
	"github.com/specialistvlad/stimforge/internal/emit"
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/internal/registry"
	"github.com/specialistvlad/stimforge/internal/resolve"
)

// StimWriter writes a stimulus that is built by one constructor call and
// changed through setters afterwards.
type StimWriter struct {
	// Fields are the parameters the constructor template cannot do without.
	Fields []string
}

var _ registry.Writer = (*StimWriter)(nil)

// NewStimWriter returns a StimWriter that requires the name field and
// fields.
func NewStimWriter(fields ...string) *StimWriter {
	required := []string{ParamName}
	for _, f := range fields {
		if !slices.Contains(required, f) {
			required = append(required, f)
		}
	}
	return &StimWriter{Fields: required}
}

// Required implements registry.Writer.
func (w *StimWriter) Required() []string {
	return slices.Clone(w.Fields)
}

// Write implements registry.Writer. Init constructs the stimulus with the
// initial values; routine start and frame apply the matching updates.
func (w *StimWriter) Write(ctx context.Context, req *registry.Request, sink emit.Sink) error {
	logger := ctxlog.FromContext(ctx)
	desc := req.Descriptor

	e, err := emit.For(req.Target)
	if err != nil {
		return err
	}

	switch req.Phase {
	case emit.PhaseInit:
		if req.Routine == nil {
			return fmt.Errorf("component '%s': construction needs its routine", desc.Name)
		}
		res, err := resolve.Resolve(desc, req.Target, w.Fields...)
		if err != nil {
			return err
		}
		d, err := depth.For(desc.Name, req.Routine)
		if err != nil {
			return err
		}
		logger.Debug("Constructing stimulus.", "component", desc.Name, "target", req.Target, "fields", res.Len(), "depth", d)
		return e.Construct(desc, res, d, sink)
	case emit.PhaseRoutineStart:
		return w.updates(ctx, e, desc, model.UpdateEveryRepeat, sink)
	case emit.PhaseFrame:
		return w.updates(ctx, e, desc, model.UpdateEveryFrame, sink)
	}
	return nil
}

func (w *StimWriter) updates(ctx context.Context, e emit.Emitter, desc *model.Descriptor, policy model.UpdatePolicy, sink emit.Sink) error {
	res, err := resolve.ResolveUpdates(desc, e.Target(), policy)
	if err != nil {
		return err
	}
	if res.Len() == 0 {
		return nil
	}
	ctxlog.FromContext(ctx).Debug("Writing stimulus updates.", "component", desc.Name, "policy", policy.String(), "fields", res.Len())
	return e.Updates(desc, res, sink)
}
