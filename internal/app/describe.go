package app

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
	"github.com/specialistvlad/stimforge/internal/model"
)

// describe prints the parameters of one or every component type, labelled
// in the configured locale.
func (a *App) describe(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	types := a.registry.Types()
	if a.config.Describe != DescribeAll {
		if _, ok := a.registry.Lookup(a.config.Describe); !ok {
			return fmt.Errorf("unknown component type '%s', available: %s", a.config.Describe, strings.Join(types, ", "))
		}
		types = []string{a.config.Describe}
	}

	locale := a.catalog.Match(a.config.Locale)
	p := a.catalog.Printer(locale)
	logger.Debug("Describing component types.", "types", types, "locale", locale)

	for i, typ := range types {
		c, _ := a.registry.Lookup(typ)
		desc, err := c.New(typ)
		if err != nil {
			return fmt.Errorf("component '%s': %w", typ, err)
		}
		tooltip, ok := a.catalog.Message(locale, "component."+typ+".tooltip")
		if !ok {
			tooltip = c.Tooltip
		}

		if i > 0 {
			fmt.Fprintln(a.outW)
		}
		p.Fprintf(a.outW, "describe.header", typ, tooltip)
		fmt.Fprintln(a.outW)
		p.Fprintf(a.outW, "describe.targets", desc.Targets.String())
		fmt.Fprintln(a.outW)

		tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			p.Sprintf("describe.column.param"),
			p.Sprintf("describe.column.type"),
			p.Sprintf("describe.column.default"),
			p.Sprintf("describe.column.updates"))
		for _, prm := range desc.Sorted() {
			fallback := prm.Label
			if fallback == "" {
				fallback = prm.Name
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				a.catalog.Label(locale, prm.Name, fallback),
				prm.Type,
				defaultText(prm.Value),
				prm.Updates)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write description: %w", err)
		}
	}
	return nil
}

// defaultText renders a default value the way it would be written in a
// design file.
func defaultText(v cty.Value) string {
	if s, ok := model.ValueText(v); ok {
		if s == "" {
			return `""`
		}
		return s
	}
	return string(hclwrite.TokensForValue(v).Bytes())
}
