package condition

func levels() []Option {
	return []Option{
		{Value: "Low", Label: "Low"},
		{Value: "Medium", Label: "Medium"},
		{Value: "High", Label: "High"},
	}
}

func yesNo() []Option {
	return []Option{
		{Value: "No", Label: "No"},
		{Value: "Yes", Label: "Yes"},
	}
}

const cardiovascularSchema = `{
  "patientInfo": {
    "title": "Patient information",
    "items": [
      { "label": "Age", "value": "X years", "shap": "...", "impact": "high/medium/low" },
      { "label": "Gender", "value": "Male/Female" },
      { "label": "BMI", "value": "X kg/m²", "shap": "...", "status": "normal/high/low" }
    ]
  },
  "vitals": {
    "title": "Vital signs",
    "items": [
      { "label": "Blood pressure", "value": "X mmHg", "shap": "...", "status": "normal/high/low" },
      { "label": "Cholesterol", "value": "X mg/dL", "shap": "...", "status": "normal/high/low" }
    ]
  },
  "lifestyle": {
    "title": "Lifestyle",
    "items": [
      { "label": "Exercise", "value": "Low/Medium/High", "impact": "positive/negative" },
      { "label": "Smoking", "value": "Yes/No", "impact": "high/low" },
      { "label": "Sleep", "value": "X hours", "status": "good/poor" },
      { "label": "Stress", "value": "High/Low", "impact": "high/low" }
    ]
  },
  "biomarkers": {
    "title": "Biomarkers",
    "items": [
      { "label": "Triglycerides", "value": "X mg/dL", "shap": "...", "status": "normal/high/low" },
      { "label": "Fasting blood sugar", "value": "X mg/dL", "shap": "...", "status": "normal/high/low" },
      { "label": "CRP", "value": "X mg/L", "shap": "...", "status": "normal/high/low" },
      { "label": "Homocysteine", "value": "X µmol/L", "status": "normal/high/low" }
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
    ],
    "riskFactors": [
      { "category": "Modifiable", "factors": ["List of factors"] },
      { "category": "Non-modifiable", "factors": ["List of factors"] }
    ]
  },
  "recommendations": {
    "title": "Recommendations",
    "lifestyle": ["Lifestyle suggestions"],
    "monitoring": ["Metrics to monitor"],
    "prevention": ["Preventive measures"]
  }
}`

// Cardiovascular is the heart-disease risk condition.
var Cardiovascular = Descriptor{
	Name:         "cardiovascular",
	Title:        "Cardiovascular risk",
	UpstreamPath: "/predict/cardiovascular/",
	Fields: []Field{
		{Name: "age", Label: "Age", Unit: "years", Kind: Numeric},
		{Name: "gender", Label: "Gender", Kind: Choice, Choices: []Option{
			{Value: "Male", Label: "Male"},
			{Value: "Female", Label: "Female"},
		}},
		{Name: "blood_pressure", Label: "Blood pressure", Unit: "mmHg", Kind: Numeric, Hint: "Systolic"},
		{Name: "cholesterol_level", Label: "Cholesterol", Unit: "mg/dL", Kind: Numeric},
		{Name: "exercise_habits", Label: "Exercise", Kind: Choice, Choices: levels()},
		{Name: "smoking", Label: "Smoking", Kind: Choice, Choices: yesNo()},
		{Name: "family_heart_disease", Label: "Family history of heart disease", Kind: Choice, Choices: yesNo()},
		{Name: "diabetes", Label: "Diabetes", Kind: Choice, Choices: yesNo()},
		{Name: "bmi", Label: "BMI", Unit: "kg/m²", Kind: Numeric},
		{Name: "high_blood_pressure", Label: "Diagnosed high blood pressure", Kind: Choice, Choices: yesNo()},
		{Name: "low_hdl_cholesterol", Label: "Low HDL cholesterol", Kind: Choice, Choices: yesNo()},
		{Name: "high_ldl_cholesterol", Label: "High LDL cholesterol", Kind: Choice, Choices: yesNo()},
		{Name: "alcohol_consumption", Label: "Alcohol consumption", Kind: Choice, Choices: levels()},
		{Name: "stress_level", Label: "Stress", Kind: Choice, Choices: []Option{
			{Value: "No", Label: "No", Prompt: "Low"},
			{Value: "Yes", Label: "Yes", Prompt: "High"},
		}},
		{Name: "sleep_hours", Label: "Sleep", Unit: "hours", Kind: Numeric},
		{Name: "sugar_consumption", Label: "Sugar consumption", Kind: Choice, Choices: levels()},
		{Name: "triglyceride_level", Label: "Triglycerides", Unit: "mg/dL", Kind: Numeric},
		{Name: "fasting_blood_sugar", Label: "Fasting blood sugar", Unit: "mg/dL", Kind: Numeric},
		{Name: "crp_level", Label: "CRP", Unit: "mg/L", Kind: Numeric},
		{Name: "homocysteine_level", Label: "Homocysteine", Unit: "µmol/L", Kind: Numeric},
	},
	KeyFields: []string{"blood_pressure", "cholesterol_level", "triglyceride_level"},
	Attributions: []AttributionRule{
		{Key: "blood_pressure", Field: "blood_pressure", Reference: 120, Coefficient: 0.01},
		{Key: "cholesterol", Field: "cholesterol_level", Reference: 200, Coefficient: 0.005},
		{Key: "bmi", Field: "bmi", Reference: 25, Coefficient: 0.02},
		{Key: "age", Field: "age", Reference: 50, Coefficient: 0.015},
		{Key: "triglycerides", Field: "triglyceride_level", Reference: 150, Coefficient: 0.003},
		{Key: "blood_sugar", Field: "fasting_blood_sugar", Reference: 100, Coefficient: 0.008},
		{Key: "crp", Field: "crp_level", Reference: 1, Coefficient: 0.1},
	},
	ErrorDetail: RawText,
	Schema:      cardiovascularSchema,
	Sections:    []string{"patientInfo", "vitals", "lifestyle", "biomarkers"},
}

func init() {
	register(Cardiovascular)
}
