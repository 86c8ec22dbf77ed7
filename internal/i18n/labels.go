package i18n

import "golang.org/x/text/language"

// Field and choice labels are keyed by their English text. English needs no
// entries; unknown labels print unchanged.
var vietnameseLabels = map[string]string{
	"Cardiovascular risk":             "Nguy cơ tim mạch",
	"Diabetes risk":                   "Nguy cơ tiểu đường",
	"Age":                             "Tuổi",
	"Gender":                          "Giới tính",
	"Male":                            "Nam",
	"Female":                          "Nữ",
	"Blood pressure":                  "Huyết áp",
	"Systolic":                        "Huyết áp tâm thu",
	"Cholesterol":                     "Cholesterol",
	"Exercise":                        "Tập thể dục",
	"Smoking":                         "Hút thuốc",
	"Family history of heart disease": "Tiền sử tim mạch gia đình",
	"Diabetes":                        "Tiểu đường",
	"BMI":                             "BMI",
	"Diagnosed high blood pressure":   "Đã được chẩn đoán cao huyết áp",
	"Low HDL cholesterol":             "HDL cholesterol thấp",
	"High LDL cholesterol":            "LDL cholesterol cao",
	"Alcohol consumption":             "Uống rượu bia",
	"Stress":                          "Căng thẳng",
	"Sleep":                           "Giấc ngủ",
	"Sugar consumption":               "Tiêu thụ đường",
	"Triglycerides":                   "Triglycerides",
	"Fasting blood sugar":             "Đường huyết lúc đói",
	"CRP":                             "CRP",
	"Homocysteine":                    "Homocysteine",
	"Urea":                            "Ure",
	"Creatinine":                      "Creatinine",
	"HbA1c":                           "HbA1c",
	"HDL":                             "HDL",
	"LDL":                             "LDL",
	"VLDL":                            "VLDL",
	"Low":                             "Thấp",
	"Medium":                          "Trung bình",
	"High":                            "Cao",
	"Yes":                             "Có",
	"No":                              "Không",
}

func registerLabels(set func(tag language.Tag, key, msg string)) {
	for key, msg := range vietnameseLabels {
		set(vietnamese, key, msg)
	}
}

// Label translates a field or choice label.
func (p *Printer) Label(label string) string {
	if label == "" {
		return ""
	}
	return p.p.Sprintf(label)
}

func (p *Printer) Labels(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = p.Label(l)
	}
	return out
}
