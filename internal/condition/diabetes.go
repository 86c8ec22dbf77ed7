package condition

const diabetesSchema = `{
  "patientInfo": {
    "title": "Basic information",
    "items": [
      { "label": "BMI", "value": "X kg/m²", "shap": "...", "status": "normal/high/low" },
      { "label": "Age", "value": "X years" }
    ]
  },
  "bloodMarkers": {
    "title": "Blood markers",
    "items": [
      { "label": "HbA1c", "value": "X%", "shap": "...", "status": "normal/high/low", "normalRange": "4.0-5.6%" }
    ]
  },
  "lipidProfile": {
    "title": "Lipid profile",
    "items": [
      { "label": "Cholesterol", "value": "X mg/dL", "shap": "...", "status": "normal/high/low" },
      { "label": "Triglycerides", "value": "X mg/dL", "shap": "...", "status": "normal/high/low" },
      { "label": "HDL", "value": "X mg/dL", "status": "normal/high/low" },
      { "label": "LDL", "value": "X mg/dL", "status": "normal/high/low" },
      { "label": "VLDL", "value": "X mg/dL", "shap": "...", "status": "normal/high/low" }
    ]
  },
  "kidneyFunction": {
    "title": "Kidney function",
    "items": [
      { "label": "Urea", "value": "X mg/dL", "status": "normal/high/low" },
      { "label": "Creatinine", "value": "X mg/dL", "status": "normal/high/low" }
    ]
  },
  "prediction": {
    "title": "Prediction",
    "risk": "{{risk}}",
    "confidence": "{{confidence}}%",
    "interpretation": "Short interpretation of the result"
  },
  "analysis": {
    "title": "Detailed analysis",
    "mainFactors": [
      { "factor": "Factor name", "impact": "high/medium/low", "explanation": "Explanation" }
    ]
  },
  "recommendations": {
    "title": "Recommendations",
    "items": [
      { "category": "Diet", "suggestions": ["Suggestions"] },
      { "category": "Lifestyle", "suggestions": ["Suggestions"] },
      { "category": "Monitoring", "suggestions": ["Metrics to monitor"] }
    ]
  }
}`

// Diabetes is the diabetes risk condition. Field names follow the upstream
// model's lab-panel column names.
var Diabetes = Descriptor{
	Name:         "diabetes",
	Title:        "Diabetes risk",
	UpstreamPath: "/predict/diabetes/",
	Fields: []Field{
		{Name: "BMI", Label: "BMI", Unit: "kg/m²", Kind: Numeric},
		{Name: "AGE", Label: "Age", Unit: "years", Kind: Numeric},
		{Name: "Urea", Label: "Urea", Unit: "mg/dL", Kind: Numeric},
		{Name: "Cr", Label: "Creatinine", Unit: "mg/dL", Kind: Numeric},
		{Name: "HbA1c", Label: "HbA1c", Unit: "%", Kind: Numeric},
		{Name: "Chol", Label: "Cholesterol", Unit: "mg/dL", Kind: Numeric},
		{Name: "TG", Label: "Triglycerides", Unit: "mg/dL", Kind: Numeric},
		{Name: "HDL", Label: "HDL", Unit: "mg/dL", Kind: Numeric},
		{Name: "LDL", Label: "LDL", Unit: "mg/dL", Kind: Numeric},
		{Name: "VLDL", Label: "VLDL", Unit: "mg/dL", Kind: Numeric},
	},
	KeyFields: []string{"HbA1c", "Chol", "TG"},
	Attributions: []AttributionRule{
		{Key: "HbA1c", Field: "HbA1c", Reference: 5.7, Coefficient: -0.5},
		{Key: "TG", Field: "TG", Reference: 150, Coefficient: -0.003},
		{Key: "VLDL", Field: "VLDL", Reference: 30, Coefficient: -0.01},
		{Key: "Chol", Field: "Chol", Reference: 200, Coefficient: -0.001},
		{Key: "BMI", Field: "BMI", Reference: 25, Coefficient: 0.02},
	},
	ErrorDetail: JSONDetail,
	Schema:      diabetesSchema,
	Sections:    []string{"patientInfo", "bloodMarkers", "lipidProfile", "kidneyFunction"},
}

func init() {
	register(Diabetes)
}
