package emit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/internal/resolve"
)

// NativeWindow is the window argument passed to every native constructor.
const NativeWindow = "win"

// Native emits Python for the desktop runtime.
type Native struct{}

func (Native) Target() model.Target { return model.TargetNative }

func (Native) IndentUnit() string { return "    " }

func (Native) Comment(text string) string { return "# " + text }

// Prelude appends a single import of the required runtime libraries.
func (Native) Prelude(libs []string, sink Sink) {
	if len(libs) == 0 {
		return
	}
	sorted := slices.Clone(libs)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	sink.Append("from psychopy import " + strings.Join(sorted, ", "))
}

// Declare appends nothing: assignment binds a name in Python.
func (Native) Declare([]string, Sink) {}

// Construct appends a keyword-argument constructor call:
//
//	image = visual.ImageStim(
//	    win=win,
//	    name='image',
//	    ...
//	    depth=-1.0)
func (n Native) Construct(desc *model.Descriptor, res *resolve.Resolved, depth float64, sink Sink) error {
	if err := checkConstructible(desc, model.TargetNative); err != nil {
		return err
	}
	fields, err := bindings(desc, res, model.TargetNative, nil)
	if err != nil {
		return err
	}

	ind := n.IndentUnit()
	lines := make([]string, 0, len(fields)+3)
	lines = append(lines,
		fmt.Sprintf("%s = %s(", desc.Name, desc.Class),
		fmt.Sprintf("%swin=%s,", ind, NativeWindow),
	)
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("%s%s=%s,", ind, f.key, f.text))
	}
	lines = append(lines, fmt.Sprintf("%sdepth=%s)", ind, FormatDepth(depth)))

	sink.Append(lines...)
	return nil
}

// Updates appends setter calls, e.g. image.setImage('face.jpg', log=False).
func (Native) Updates(desc *model.Descriptor, res *resolve.Resolved, sink Sink) error {
	fields, err := updateBindings(desc, res, model.TargetNative, nil)
	if err != nil {
		return err
	}
	for _, f := range fields {
		sink.Append(fmt.Sprintf("%s.%s(%s, log=False)", desc.Name, setter(f.key), f.text))
	}
	return nil
}
