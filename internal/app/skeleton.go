package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
	"github.com/specialistvlad/stimforge/internal/hcl_adapter"
	"github.com/specialistvlad/stimforge/internal/model"
)

// DefaultExperimentName names a skeleton written to the output writer.
const DefaultExperimentName = "untitled"

// writeSkeleton writes a starter design holding one default component per
// requested type. Repeated types are numbered: image1, image2.
func (a *App) writeSkeleton(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	counts := map[string]int{}
	var descs []*model.Descriptor
	for _, typ := range strings.Split(a.config.Init, ",") {
		typ = strings.TrimSpace(typ)
		if typ == "" {
			continue
		}
		counts[typ]++
		desc, err := a.registry.NewDescriptor(typ, fmt.Sprintf("%s%d", typ, counts[typ]))
		if err != nil {
			return err
		}
		descs = append(descs, desc)
	}
	if len(descs) == 0 {
		return fmt.Errorf("no component types given, available: %s", strings.Join(a.registry.Types(), ", "))
	}

	name := DefaultExperimentName
	var w io.Writer = a.outW
	if a.config.OutPath != "" {
		name = strings.TrimSuffix(filepath.Base(a.config.OutPath), filepath.Ext(a.config.OutPath))
		f, err := os.Create(a.config.OutPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", a.config.OutPath, err)
		}
		defer f.Close()
		w = f
	}

	if err := hcl_adapter.WriteSkeleton(w, name, descs...); err != nil {
		return err
	}
	logger.Info("Design skeleton written.", "experiment", name, "components", len(descs))
	return nil
}
