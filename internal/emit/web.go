package emit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/stimforge/internal/literal"
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/internal/resolve"
)

const (
	// WebWindow is the window argument passed to every web constructor.
	WebWindow = "psychoJS.window"
	// WebLibrary is the module the web runtime is imported from.
	WebLibrary = "./lib/psychojs.js"
	// webColorLib provides the color wrapper and is always imported.
	webColorLib = "util"
)

// Web emits JavaScript for the browser runtime.
type Web struct{}

func (Web) Target() model.Target { return model.TargetWeb }

func (Web) IndentUnit() string { return "  " }

func (Web) Comment(text string) string { return "// " + text }

// Prelude appends a named import of the required runtime libraries.
func (Web) Prelude(libs []string, sink Sink) {
	names := append(slices.Clone(libs), webColorLib)
	slices.Sort(names)
	names = slices.Compact(names)
	sink.Append(fmt.Sprintf("import { %s } from '%s';", strings.Join(names, ", "), WebLibrary))
}

// Declare appends one var statement per binding. The prelude's import makes
// the program a module, and assigning an undeclared name fails in one.
func (Web) Declare(names []string, sink Sink) {
	for _, name := range names {
		sink.Append("var " + name + ";")
	}
}

// Construct appends an object-literal constructor call:
//
//	image = new visual.ImageStim({
//	  win : psychoJS.window,
//	  name : 'image',
//	  ...
//	  depth : -1.0
//	});
func (w Web) Construct(desc *model.Descriptor, res *resolve.Resolved, depth float64, sink Sink) error {
	if err := checkConstructible(desc, model.TargetWeb); err != nil {
		return err
	}
	fields, err := bindings(desc, res, model.TargetWeb, wrapColor)
	if err != nil {
		return err
	}

	ind := w.IndentUnit()
	lines := make([]string, 0, len(fields)+4)
	lines = append(lines,
		fmt.Sprintf("%s = new %s({", desc.Name, desc.Class),
		fmt.Sprintf("%swin : %s,", ind, WebWindow),
	)
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("%s%s : %s,", ind, f.key, f.text))
	}
	lines = append(lines,
		fmt.Sprintf("%sdepth : %s", ind, FormatDepth(depth)),
		"});",
	)

	sink.Append(lines...)
	return nil
}

// Updates appends setter calls, e.g. image.setImage('face.jpg');
func (Web) Updates(desc *model.Descriptor, res *resolve.Resolved, sink Sink) error {
	fields, err := updateBindings(desc, res, model.TargetWeb, wrapColor)
	if err != nil {
		return err
	}
	for _, f := range fields {
		sink.Append(fmt.Sprintf("%s.%s(%s);", desc.Name, setter(f.key), f.text))
	}
	return nil
}

// wrapColor renders a color through the runtime's color constructor. The
// absent value stays bare so the runtime default applies.
func wrapColor(text string) string {
	if text == literal.Null(model.TargetWeb) {
		return text
	}
	return "new util.Color(" + text + ")"
}
