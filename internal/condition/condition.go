// Package condition describes the supported health conditions: their input
// fields, the key fields at least one of which must be present, the
// attribution table, the explanation schema, and how the upstream predictor
// reports errors.
package condition

import "sort"

type Kind int

const (
	Numeric Kind = iota
	Choice
)

// Field is one clinical input.
type Field struct {
	Name    string
	Label   string
	Unit    string
	Kind    Kind
	Choices []Option
	// Hint is shown next to the form input.
	Hint string
}

// Option is one allowed value of a choice field. Prompt is how the value is
// described to the language model.
type Option struct {
	Value  string
	Label  string
	Prompt string
}

// AttributionRule produces a linear offset for a numeric field:
// (observed - Reference) * Coefficient.
type AttributionRule struct {
	Key         string
	Field       string
	Reference   float64
	Coefficient float64
}

// ErrorDetailMode selects how an upstream error body becomes a message.
type ErrorDetailMode int

const (
	// RawText surfaces the upstream body text verbatim.
	RawText ErrorDetailMode = iota
	// JSONDetail surfaces the "detail" field of a JSON body.
	JSONDetail
)

type Descriptor struct {
	Name         string
	Title        string
	UpstreamPath string
	Fields       []Field
	KeyFields    []string
	Attributions []AttributionRule
	ErrorDetail  ErrorDetailMode
	// Schema is the JSON document the language model must fill in. It may
	// contain the placeholders {{risk}} and {{confidence}}.
	Schema string
	// Sections lists the schema's item sections in display order.
	Sections []string
}

func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (d Descriptor) IsNumeric(name string) bool {
	f, ok := d.Field(name)
	return ok && f.Kind == Numeric
}

// KeyLabels returns the English labels of the key fields, in order. They
// double as i18n label keys.
func (d Descriptor) KeyLabels() []string {
	out := make([]string, 0, len(d.KeyFields))
	for _, name := range d.KeyFields {
		if f, ok := d.Field(name); ok {
			out = append(out, f.Label)
			continue
		}
		out = append(out, name)
	}
	return out
}

// AttributionFor returns the attribution rule bound to an input field.
func (d Descriptor) AttributionFor(field string) (AttributionRule, bool) {
	for _, r := range d.Attributions {
		if r.Field == field {
			return r, true
		}
	}
	return AttributionRule{}, false
}

func (o Option) describe() string {
	if o.Prompt != "" {
		return o.Prompt
	}
	return o.Value
}

// Describe renders a choice value for the prompt. Unknown values pass through.
func (f Field) Describe(value string) string {
	for _, o := range f.Choices {
		if o.Value == value {
			return o.describe()
		}
	}
	return value
}

var registry = map[string]Descriptor{}

func register(d Descriptor) {
	registry[d.Name] = d
}

// Lookup returns the descriptor for a condition name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := registry[name]
	return d, ok
}

// All returns every registered condition sorted by name.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
