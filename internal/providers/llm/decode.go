package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResponse is returned when the model answer is not the JSON we asked for.
var ErrInvalidResponse = errors.New("llm returned invalid data")

// DecodeJSON unwraps an answer that may be fenced in ``` blocks and
// unmarshals it into dst.
func DecodeJSON(raw string, dst any) error {
	body := Unfence(raw)
	if body == "" {
		return fmt.Errorf("%w: empty answer", ErrInvalidResponse)
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// Unfence strips markdown code fences and any prose around the JSON object.
func Unfence(raw string) string {
	s := strings.TrimSpace(raw)

	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		// drop the language tag line (```json)
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "json")
		}
		if j := strings.LastIndex(s, "```"); j >= 0 {
			s = s[:j]
		}
		s = strings.TrimSpace(s)
	}

	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return s
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
