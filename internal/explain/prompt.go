package explain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chauanphu/xdoc-iu/internal/attribution"
	"github.com/chauanphu/xdoc-iu/internal/condition"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
	"github.com/chauanphu/xdoc-iu/internal/patient"
	"github.com/chauanphu/xdoc-iu/internal/predictor"
)

// PromptInput is everything the prompt describes.
type PromptInput struct {
	Condition    condition.Descriptor
	Metrics      patient.Metrics
	Attributions attribution.Set
	Label        predictor.RiskLabel
	Confidence   float64
	// Language names the language the model should write in.
	Language string
	// Messages localizes field labels and choice values; nil keeps English.
	Messages *i18n.Printer
}

func (in PromptInput) label(s string) string {
	if in.Messages == nil {
		return s
	}
	return in.Messages.Label(s)
}

// BuildPrompt renders the explanation prompt. Only fields present in the
// metrics are listed.
func BuildPrompt(in PromptInput) string {
	d := in.Condition
	confidence := strconv.FormatFloat(in.Confidence, 'f', 1, 64)
	schema := strings.NewReplacer(
		"{{risk}}", in.Label.Level(),
		"{{confidence}}", confidence,
	).Replace(d.Schema)

	var b strings.Builder
	b.WriteString("IMPORTANT: Return ONLY raw JSON without any markdown formatting or backticks. ")
	b.WriteString("The response must be valid JSON that can be directly parsed.\n\n")
	fmt.Fprintf(&b, "As a medical AI assistant, analyze the following %s metrics and return the result as pure JSON "+
		"(no markdown, no backticks) with exactly this structure:\n\n", strings.ToLower(d.Title))
	b.WriteString(schema)
	b.WriteString("\n\nInput (analyze only the metrics provided):\n")

	for _, line := range inputLines(in) {
		b.WriteString("* ")
		b.WriteString(line)
		b.WriteByte('\n')
	}

	riskText := "Low risk"
	if in.Label == predictor.HighRisk {
		riskText = "High risk"
	}
	fmt.Fprintf(&b, "\nPrediction: %s\n", riskText)
	fmt.Fprintf(&b, "Confidence: %s%%\n", confidence)

	b.WriteString("\nNotes:\n")
	b.WriteString("* Analyze only the metrics provided\n")
	b.WriteString("* Use plain language\n")
	b.WriteString("* Flag abnormal values\n")
	b.WriteString("* Explain the attribution value of every metric that has one; attribution values are " +
		"heuristic offsets from a reference value, not model-derived importances\n")
	if in.Language != "" {
		fmt.Fprintf(&b, "* Write every text value in %s; keep the JSON keys in English\n", in.Language)
	}
	return b.String()
}

func inputLines(in PromptInput) []string {
	d := in.Condition
	lines := make([]string, 0, len(in.Metrics))
	for _, f := range d.Fields {
		v, ok := in.Metrics[f.Name]
		if !ok {
			continue
		}

		var value string
		switch f.Kind {
		case condition.Numeric:
			n, isNum := v.(float64)
			if !isNum {
				continue
			}
			value = strconv.FormatFloat(n, 'f', -1, 64)
			if f.Unit == "%" {
				value += "%"
			} else if f.Unit != "" {
				value += " " + f.Unit
			}
		default:
			if s, isStr := v.(string); isStr {
				value = in.label(f.Describe(s))
			} else {
				value = fmt.Sprint(v)
			}
		}

		line := in.label(f.Label) + ": " + value
		if rule, ok := d.AttributionFor(f.Name); ok {
			line += " (attribution: " + in.Attributions.Get(rule.Key) + ")"
		}
		lines = append(lines, line)
	}
	return lines
}
