// This file contains the logic for translating HCL design blocks into the
// format-agnostic experiment model.

package hcl_adapter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
	"github.com/specialistvlad/stimforge/internal/experiment"
	"github.com/specialistvlad/stimforge/internal/model"
)

// translateRoutine converts a routine block into the model.
func (l *Loader) translateRoutine(ctx context.Context, rb *RoutineBlock, src []byte) (*experiment.Routine, error) {
	r := &experiment.Routine{Name: rb.Name}
	for _, cb := range rb.Components {
		desc, err := l.translateComponent(ctx, cb, src)
		if err != nil {
			return nil, fmt.Errorf("routine '%s': %w", rb.Name, err)
		}
		r.Components = append(r.Components, desc)
	}
	return r, nil
}

// translateComponent builds the default descriptor of the block's type and
// applies the block's attributes and update policies to it.
func (l *Loader) translateComponent(ctx context.Context, cb *ComponentBlock, src []byte) (*model.Descriptor, error) {
	logger := ctxlog.FromContext(ctx).With("component_type", cb.Type, "component_name", cb.Name)
	logger.Debug("Translating HCL component to internal model.")

	desc, err := l.registry.NewDescriptor(cb.Type, cb.Name)
	if err != nil {
		return nil, fmt.Errorf("component '%s': %w", cb.Name, err)
	}

	attrs, diags := componentAttributes(cb.Body)
	if diags.HasErrors() {
		return nil, fmt.Errorf("component '%s': %w", cb.Name, diags)
	}
	for _, name := range sortedNames(attrs) {
		attr := attrs[name]
		p, ok := desc.ParamByKey(name)
		if !ok {
			return nil, unknownParam(cb, name, attr.NameRange)
		}
		v, err := attributeValue(attr, src)
		if err != nil {
			return nil, fmt.Errorf("component '%s', parameter '%s': %w", cb.Name, p.Name, err)
		}
		p.Value = v
		logger.Debug("Parameter set from design.", "param", p.Name, "type", v.Type().FriendlyName())
	}

	if cb.Updates != nil {
		updates, diags := cb.Updates.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("component '%s': %w", cb.Name, diags)
		}
		for _, name := range sortedNames(updates) {
			attr := updates[name]
			p, ok := desc.ParamByKey(name)
			if !ok {
				return nil, unknownParam(cb, name, attr.NameRange)
			}
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("component '%s': %w", cb.Name, diags)
			}
			if v.IsNull() || v.Type() != cty.String {
				return nil, fmt.Errorf("component '%s': update policy of '%s' must be a string", cb.Name, p.Name)
			}
			policy, err := model.ParseUpdatePolicy(v.AsString())
			if err != nil {
				return nil, fmt.Errorf("component '%s', parameter '%s': %w", cb.Name, p.Name, err)
			}
			p.Updates = policy
		}
	}
	return desc, nil
}

// componentAttributes returns the parameter attributes of a component body.
// JustAttributes reports any nested block as an error, the updates block
// included, so for native syntax bodies blocks are checked here instead.
func componentAttributes(body hcl.Body) (hcl.Attributes, hcl.Diagnostics) {
	attrs, diags := body.JustAttributes()
	syn, ok := body.(*hclsyntax.Body)
	if !ok {
		return attrs, diags
	}
	diags = nil
	for _, b := range syn.Blocks {
		if b.Type == updatesBlockType {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported block type",
			Detail:   fmt.Sprintf("Blocks of type %q are not expected in a component; only %q is.", b.Type, updatesBlockType),
			Subject:  b.TypeRange.Ptr(),
		})
	}
	return attrs, diags
}

// attributeValue evaluates a constant attribute. An expression that refers
// to variables is evaluated by the target runtime instead, so its source
// text is kept as an expression value.
func attributeValue(attr *hcl.Attribute, src []byte) (cty.Value, error) {
	raw := func() cty.Value {
		text := strings.TrimSpace(string(attr.Expr.Range().SliceBytes(src)))
		return cty.StringVal(model.ExprPrefix + text)
	}
	if len(attr.Expr.Variables()) > 0 {
		return raw(), nil
	}
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		if _, isCall := attr.Expr.(*hclsyntax.FunctionCallExpr); isCall {
			return raw(), nil
		}
		return cty.NilVal, diags
	}
	if v.IsNull() {
		return model.None(), nil
	}
	return v, nil
}

func unknownParam(cb *ComponentBlock, name string, rng hcl.Range) error {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unsupported parameter",
		Detail:   fmt.Sprintf("Component type %q has no parameter named %q.", cb.Type, name),
		Subject:  rng.Ptr(),
	}}
}

func sortedNames(attrs hcl.Attributes) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
