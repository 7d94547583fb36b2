package hcl_adapter

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/specialistvlad/stimforge/internal/model"
)

// SkeletonRoutine is the routine name used by WriteSkeleton.
const SkeletonRoutine = "trial"

// WriteSkeleton writes a design holding one routine with the given
// components at their current values. Parameters are keyed by name, or by
// constructor keyword when the name is not an HCL identifier; parameters
// with neither are left out. Non-constant update policies are written to an
// updates block.
func WriteSkeleton(w io.Writer, experimentName string, descs ...*model.Descriptor) error {
	f := hclwrite.NewEmptyFile()
	exp := f.Body().AppendNewBlock("experiment", []string{experimentName})
	routine := exp.Body().AppendNewBlock("routine", []string{SkeletonRoutine})

	for i, desc := range descs {
		if i > 0 {
			routine.Body().AppendNewline()
		}
		block := routine.Body().AppendNewBlock("component", []string{desc.Type, desc.Name})
		body := block.Body()

		type update struct{ key, policy string }
		var updates []update
		for _, p := range desc.Sorted() {
			key, ok := attributeKey(p)
			if !ok || p.Name == "name" {
				continue
			}
			body.SetAttributeValue(key, p.Value)
			if p.Updates != model.UpdateConstant {
				updates = append(updates, update{key, p.Updates.String()})
			}
		}
		if len(updates) > 0 {
			ub := body.AppendNewBlock("updates", nil).Body()
			for _, u := range updates {
				ub.SetAttributeValue(u.key, model.Str(u.policy))
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write design skeleton: %w", err)
	}
	return nil
}

func attributeKey(p *model.Parameter) (string, bool) {
	if hclsyntax.ValidIdentifier(p.Name) {
		return p.Name, true
	}
	if p.Arg != "" && hclsyntax.ValidIdentifier(p.Arg) {
		return p.Arg, true
	}
	return "", false
}
