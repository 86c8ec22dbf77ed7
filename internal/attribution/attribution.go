// Package attribution computes per-field linear offsets from a reference
// value. These are display heuristics, not model-derived feature
// importances.
package attribution

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/chauanphu/xdoc-iu/internal/condition"
	"github.com/chauanphu/xdoc-iu/internal/patient"
)

// NotApplicable marks a field that was not supplied.
const NotApplicable = "N/A"

// Set is an ordered mapping from attribution key to a 3-decimal string.
type Set struct {
	keys   []string
	values map[string]string
}

// Estimate computes (observed - reference) * coefficient for every rule whose
// field is present in m.
func Estimate(m patient.Metrics, rules []condition.AttributionRule) Set {
	s := Set{
		keys:   make([]string, 0, len(rules)),
		values: make(map[string]string, len(rules)),
	}
	for _, r := range rules {
		s.keys = append(s.keys, r.Key)
		v, ok := m.Float(r.Field)
		if !ok {
			s.values[r.Key] = NotApplicable
			continue
		}
		s.values[r.Key] = format((v - r.Reference) * r.Coefficient)
	}
	return s
}

func format(v float64) string {
	out := strconv.FormatFloat(v, 'f', 3, 64)
	if out == "-0.000" {
		return "0.000"
	}
	return out
}

// Get returns the value for key, or NotApplicable when the key is unknown.
func (s Set) Get(key string) string {
	if v, ok := s.values[key]; ok {
		return v
	}
	return NotApplicable
}

func (s Set) Keys() []string {
	return append([]string(nil), s.keys...)
}

func (s Set) Len() int {
	return len(s.keys)
}

func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
