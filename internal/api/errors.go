package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

const maxDetailLen = 200

// StatusError is returned for any non-2xx response from the server.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("request failed with status code %d", e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// detailFromBody pulls a human-readable message out of an error body.
// Problem-details JSON, {"message": ...} objects, bare JSON strings and plain
// text are understood.
func detailFromBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return ""
	}
	switch s[0] {
	case '{':
		var obj map[string]any
		if err := json.Unmarshal([]byte(s), &obj); err == nil {
			for _, k := range []string{"detail", "title", "message", "error"} {
				if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
					return clip(strings.TrimSpace(v))
				}
			}
			return ""
		}
	case '"':
		var str string
		if err := json.Unmarshal([]byte(s), &str); err == nil {
			return clip(strings.TrimSpace(str))
		}
	}
	return clip(strings.Join(strings.Fields(s), " "))
}

func clip(s string) string {
	r := []rune(s)
	if len(r) > maxDetailLen {
		return string(r[:maxDetailLen-3]) + "..."
	}
	return s
}
