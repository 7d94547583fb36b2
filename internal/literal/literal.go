// Package literal holds the coercion table that turns a parameter value into
// literal source text for a target runtime.
//
// The table is the only place where target-specific literal rules live. It
// is keyed by (Target, ValType) and every pair is enumerated explicitly; a
// pair without a rule is an UnsupportedTypeError.
package literal

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// Literal is a rendered value: the source text and the type it now has.
// Type is ValTypeCode when the text must be used verbatim.
type Literal struct {
	Text string
	Type model.ValType
}

type rule func(d *dialect, v cty.Value) (Literal, error)

// dialect holds the literal syntax of one target.
type dialect struct {
	target   model.Target
	trueLit  string
	falseLit string
	nullLit  string

	// nullTexts are raw strings that stand for the absent value.
	nullTexts map[string]struct{}

	tupleOpen, tupleClose string
	singleTupleComma      bool

	// parensToArray rewrites a parenthesised code expression as an array.
	parensToArray bool
}

var native = &dialect{
	target:           model.TargetNative,
	trueLit:          "True",
	falseLit:         "False",
	nullLit:          "None",
	nullTexts:        set("None", "none"),
	tupleOpen:        "(",
	tupleClose:       ")",
	singleTupleComma: true,
}

var web = &dialect{
	target:        model.TargetWeb,
	trueLit:       "true",
	falseLit:      "false",
	nullLit:       "undefined",
	nullTexts:     set("None", "none", "", "sin"),
	tupleOpen:     "[",
	tupleClose:    "]",
	parensToArray: true,
}

var dialects = map[model.Target]*dialect{
	model.TargetNative: native,
	model.TargetWeb:    web,
}

var table = map[model.Target]map[model.ValType]rule{
	model.TargetNative: {
		model.ValTypeFile:   stringRule,
		model.ValTypeString: stringRule,
		model.ValTypeChoice: stringRule,
		model.ValTypeNumber: numberRule,
		model.ValTypeBool:   boolRule,
		model.ValTypeCode:   codeRule,
	},
	model.TargetWeb: {
		model.ValTypeFile:   stringRule,
		model.ValTypeString: stringRule,
		model.ValTypeChoice: stringRule,
		model.ValTypeNumber: numberRule,
		model.ValTypeBool:   boolRule,
		model.ValTypeCode:   codeRule,
	},
}

// Coerce renders v, declared as typ, as a literal for target.
func Coerce(target model.Target, typ model.ValType, v cty.Value) (Literal, error) {
	rules, ok := table[target]
	if !ok {
		return Literal{}, &model.UnsupportedTypeError{Target: target, Type: typ}
	}
	r, ok := rules[typ]
	if !ok {
		return Literal{}, &model.UnsupportedTypeError{Target: target, Type: typ}
	}
	d := dialects[target]
	if d.isNull(v) {
		return Literal{Text: d.nullLit, Type: model.ValTypeCode}, nil
	}
	if !v.IsKnown() {
		return Literal{}, fmt.Errorf("cannot render an unknown %s value", typ)
	}
	return r(d, v)
}

// Bool renders a boolean in the literal syntax of target.
func Bool(target model.Target, b bool) (string, error) {
	d, ok := dialects[target]
	if !ok {
		return "", &model.UnsupportedTypeError{Target: target, Type: model.ValTypeBool}
	}
	return d.boolText(b), nil
}

// Null returns the literal for the absent value in target.
func Null(target model.Target) string {
	if d, ok := dialects[target]; ok {
		return d.nullLit
	}
	return ""
}

func (d *dialect) isNull(v cty.Value) bool {
	if v.IsNull() {
		return true
	}
	if v.IsKnown() && v.Type() == cty.String {
		_, ok := d.nullTexts[v.AsString()]
		return ok
	}
	return false
}

func (d *dialect) boolText(b bool) string {
	if b {
		return d.trueLit
	}
	return d.falseLit
}

func stringRule(d *dialect, v cty.Value) (Literal, error) {
	if v.Type() == cty.String {
		s := v.AsString()
		if model.IsExpression(s) {
			return d.expression(s), nil
		}
		return Literal{Text: quote(s), Type: model.ValTypeString}, nil
	}
	return d.value(v)
}

func numberRule(d *dialect, v cty.Value) (Literal, error) {
	if v.Type() == cty.String {
		s := strings.TrimSpace(v.AsString())
		if model.IsExpression(s) {
			return d.expression(s), nil
		}
		return Literal{Text: s, Type: model.ValTypeNumber}, nil
	}
	return d.value(v)
}

func boolRule(d *dialect, v cty.Value) (Literal, error) {
	if v.Type() == cty.String {
		s := v.AsString()
		if model.IsExpression(s) {
			return d.expression(s), nil
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			return Literal{Text: d.trueLit, Type: model.ValTypeBool}, nil
		case "false", "0":
			return Literal{Text: d.falseLit, Type: model.ValTypeBool}, nil
		}
		return Literal{}, fmt.Errorf("cannot render %q as a bool", s)
	}
	return d.value(v)
}

func codeRule(d *dialect, v cty.Value) (Literal, error) {
	if v.Type() == cty.String {
		return d.expression(v.AsString()), nil
	}
	return d.value(v)
}

// expression renders raw code, dropping the expression marker.
func (d *dialect) expression(s string) Literal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, model.ExprPrefix)
	if d.parensToArray && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "[" + s[1:len(s)-1] + "]"
	}
	return Literal{Text: s, Type: model.ValTypeCode}
}

// value renders a non-string value by its own cty type.
func (d *dialect) value(v cty.Value) (Literal, error) {
	if v.IsNull() {
		return Literal{Text: d.nullLit, Type: model.ValTypeCode}, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return Literal{Text: quote(v.AsString()), Type: model.ValTypeString}, nil
	case ty == cty.Number:
		return Literal{Text: v.AsBigFloat().Text('f', -1), Type: model.ValTypeNumber}, nil
	case ty == cty.Bool:
		return Literal{Text: d.boolText(v.True()), Type: model.ValTypeBool}, nil
	case ty.IsTupleType(), ty.IsListType(), ty.IsSetType():
		return d.sequence(v)
	}
	return Literal{}, fmt.Errorf("cannot render a %s value", ty.FriendlyName())
}

func (d *dialect) sequence(v cty.Value) (Literal, error) {
	open, closing := d.tupleOpen, d.tupleClose
	if v.Type().IsListType() {
		open, closing = "[", "]"
	}

	elems := make([]string, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if !ev.IsKnown() {
			return Literal{}, fmt.Errorf("cannot render an unknown element")
		}
		lit, err := d.value(ev)
		if err != nil {
			return Literal{}, err
		}
		elems = append(elems, lit.Text)
	}

	text := open + strings.Join(elems, ", ")
	if len(elems) == 1 && open == "(" && d.singleTupleComma {
		text += ","
	}
	return Literal{Text: text + closing, Type: model.ValTypeCode}, nil
}

// quote renders s as a single-quoted string literal. The escapes used are
// valid in both target languages.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\x%02x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
