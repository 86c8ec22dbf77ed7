package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	SystemError      = "system error"
	PredictorError   = "predictor error"
	AtLeastOneOf     = "enter at least one of: %s"
	InvalidNumber    = "field %s must be a number"
	ExplanationError = "could not process the AI response"
	AnswerLanguage   = "answer language"
	ListJoinOr       = "or"
	HistoryDisabled  = "diagnosis history is disabled"
	InvalidBody      = "invalid payload"
	UnknownCondition = "unknown condition %s"
	TooManyRequests  = "too many requests"
)

var vietnamese = language.Vietnamese

func init() {
	set := func(tag language.Tag, key, msg string) {
		if err := message.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}

	set(vietnamese, SystemError, "Lỗi hệ thống")
	set(vietnamese, PredictorError, "Lỗi khi gọi API")
	set(vietnamese, AtLeastOneOf, "Vui lòng nhập ít nhất một trong các chỉ số: %s")
	set(vietnamese, InvalidNumber, "Chỉ số %s phải là số")
	set(vietnamese, ExplanationError, "Không thể xử lý phản hồi từ AI")
	set(vietnamese, AnswerLanguage, "Vietnamese")
	set(vietnamese, ListJoinOr, "hoặc")
	set(vietnamese, HistoryDisabled, "Lịch sử chẩn đoán chưa được bật")
	set(vietnamese, InvalidBody, "Dữ liệu không hợp lệ")
	set(vietnamese, UnknownCondition, "Không hỗ trợ bệnh %s")
	set(vietnamese, TooManyRequests, "Quá nhiều yêu cầu")

	registerLabels(set)

	set(language.English, SystemError, "System error")
	set(language.English, PredictorError, "Error calling the prediction API")
	set(language.English, AtLeastOneOf, "Please enter at least one of: %s")
	set(language.English, InvalidNumber, "Field %s must be a number")
	set(language.English, ExplanationError, "Could not process the AI response")
	set(language.English, AnswerLanguage, "English")
	set(language.English, ListJoinOr, "or")
	set(language.English, HistoryDisabled, "Diagnosis history is disabled")
	set(language.English, InvalidBody, "Invalid payload")
	set(language.English, UnknownCondition, "Unsupported condition %s")
	set(language.English, TooManyRequests, "Too many requests")
}

// Printer formats user-facing messages for one locale.
type Printer struct {
	p *message.Printer
}

// New returns a Printer for "vi" or "en"; anything else falls back to Vietnamese.
func New(locale string) *Printer {
	tag := vietnamese
	if locale == "en" {
		tag = language.English
	}
	return &Printer{p: message.NewPrinter(tag)}
}

func (p *Printer) Sprintf(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// JoinOr renders "a, b, or c" in the printer's language.
func (p *Printer) JoinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	out := ""
	for i, it := range items[:len(items)-1] {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out + ", " + p.Sprintf(ListJoinOr) + " " + items[len(items)-1]
}
