package explain

import (
	"encoding/json"
	"strings"
)

// Document is the structured explanation returned to the caller. When the
// model output could not be parsed it holds only "error" and "rawResponse".
type Document map[string]any

const fence = "```"

// StripFences removes a surrounding markdown code fence, with or without a
// language tag.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, fence) {
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(strings.TrimPrefix(s, fence), "json")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// Parse decodes model output into a Document. On failure it returns the
// fallback document carrying marker and the verbatim text, and ok=false.
func Parse(text, marker string) (doc Document, ok bool) {
	var out map[string]any
	if err := json.Unmarshal([]byte(StripFences(text)), &out); err != nil || out == nil {
		return Document{
			"error":       marker,
			"rawResponse": text,
		}, false
	}
	return Document(out), true
}
