package cms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// maxDescriptionLen caps a raw error body copied into an APIError, in bytes.
const maxDescriptionLen = 200

// APIError is returned when the CMS answers with a non-2xx status.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("cms api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("cms api: %d: %s", e.StatusCode, e.Description)
}

// errorBody covers both error shapes the API returns.
type errorBody struct {
	Error *struct {
		Description string `json:"description"`
	} `json:"error"`
	Message string `json:"message"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case eb.Error != nil && eb.Error.Description != "":
			apiErr.Description = eb.Error.Description
		case eb.Message != "":
			apiErr.Description = eb.Message
		}
	}
	if apiErr.Description == "" {
		apiErr.Description = truncateUTF8(strings.TrimSpace(string(body)), maxDescriptionLen)
	}

	return apiErr
}

// truncateUTF8 shortens s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
