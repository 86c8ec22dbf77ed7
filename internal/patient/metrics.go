// Package patient normalizes and validates the raw metrics submitted for a
// condition.
package patient

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/chauanphu/xdoc-iu/internal/apperr"
	"github.com/chauanphu/xdoc-iu/internal/condition"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
)

// Metrics maps field names to values. Absent fields have no entry; numeric
// fields of the condition hold float64.
type Metrics map[string]any

func (m Metrics) Has(name string) bool {
	_, ok := m[name]
	return ok
}

func (m Metrics) Float(name string) (float64, bool) {
	v, ok := m[name].(float64)
	return v, ok
}

func (m Metrics) String(name string) (string, bool) {
	v, ok := m[name].(string)
	return v, ok
}

// Normalize drops null and blank entries and coerces the condition's numeric
// fields to float64. Other fields, including unknown ones, pass through.
func Normalize(raw map[string]any, d condition.Descriptor, p *i18n.Printer) (Metrics, error) {
	out := make(Metrics, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		if !d.IsNumeric(k) {
			out[k] = v
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			label := k
			if field, found := d.Field(k); found {
				label = p.Label(field.Label)
			}
			return nil, apperr.Validation(p.Sprintf(i18n.InvalidNumber, label))
		}
		out[k] = f
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Validate requires at least one of the condition's key fields.
func Validate(m Metrics, d condition.Descriptor, p *i18n.Printer) error {
	for _, k := range d.KeyFields {
		if m.Has(k) {
			return nil
		}
	}
	return apperr.Validation(p.Sprintf(i18n.AtLeastOneOf, p.JoinOr(p.Labels(d.KeyLabels()))))
}
