package predictor

import "strings"

type RiskLabel string

const (
	HighRisk RiskLabel = "High Risk"
	LowRisk  RiskLabel = "Low Risk"
)

// Classify derives the risk label from the predictor's response text: any
// case-insensitive occurrence of "high" means high risk.
func Classify(text string) RiskLabel {
	if strings.Contains(strings.ToLower(text), "high") {
		return HighRisk
	}
	return LowRisk
}

// Level is the lowercase form used inside explanation documents.
func (l RiskLabel) Level() string {
	if l == HighRisk {
		return "high"
	}
	return "low"
}
