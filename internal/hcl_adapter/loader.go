// Package hcl_adapter loads experiment designs written in HCL and writes
// default design skeletons.
package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
	"github.com/specialistvlad/stimforge/internal/experiment"
	"github.com/specialistvlad/stimforge/internal/fsutil"
	"github.com/specialistvlad/stimforge/internal/registry"
)

// Extension is the file extension of design files.
const Extension = ".hcl"

// Loader reads design files into an Experiment. Component blocks are built
// from the defaults of the registered component types.
type Loader struct {
	registry *registry.Registry
}

// NewLoader creates a new HCL design loader.
func NewLoader(r *registry.Registry) *Loader {
	return &Loader{registry: r}
}

// Load parses every design file found under paths, in path order. Routines
// from all files are merged into one experiment; at most one experiment
// block may name it.
func (l *Loader) Load(ctx context.Context, paths ...string) (*experiment.Experiment, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s design files found in %s", Extension, strings.Join(paths, ", "))
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	exp := &experiment.Experiment{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, eb := range root.Experiments {
			if exp.Name != "" && exp.Name != eb.Name {
				return nil, fmt.Errorf("in HCL file %s: experiment '%s' conflicts with experiment '%s'", file, eb.Name, exp.Name)
			}
			exp.Name = eb.Name
			if err := l.addRoutines(ctx, exp, eb.Routines, hclFile.Bytes); err != nil {
				return nil, fmt.Errorf("in HCL file %s: %w", file, err)
			}
		}
		if err := l.addRoutines(ctx, exp, root.Routines, hclFile.Bytes); err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", file, err)
		}
	}

	if exp.Name == "" {
		exp.Name = strings.TrimSuffix(filepath.Base(files[0]), Extension)
	}
	logger.Debug("HCL loading complete.", "experiment", exp.Name, "routines", len(exp.Routines))
	return exp, nil
}

func (l *Loader) addRoutines(ctx context.Context, exp *experiment.Experiment, blocks []*RoutineBlock, src []byte) error {
	for _, rb := range blocks {
		r, err := l.translateRoutine(ctx, rb, src)
		if err != nil {
			return err
		}
		exp.Routines = append(exp.Routines, r)
	}
	return nil
}
