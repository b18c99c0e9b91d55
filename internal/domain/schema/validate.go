package schema

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// Violation is a single validation failure.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// Validate checks a document's fields against the schema. It returns nil when
// the document is valid.
func (s Schema) Validate(fields map[string]any) []Violation {
	var violations []Violation
	add := func(field, format string, args ...any) {
		violations = append(violations, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	for _, f := range s.Fields {
		v, present := fields[f.Name]
		if !present || isEmpty(v) {
			if f.Required {
				add(f.Name, "is required")
			}
			continue
		}

		switch f.Type {
		case FieldString, FieldText:
			str, ok := v.(string)
			if !ok {
				add(f.Name, "must be a string")
				continue
			}
			if f.MaxLength > 0 && utf8.RuneCountInString(str) > f.MaxLength {
				add(f.Name, "must be at most %d characters", f.MaxLength)
			}
		case FieldSlug:
			current := nestedString(v, "current")
			if current == "" {
				add(f.Name, "must have a current value")
				continue
			}
			if f.MaxLength > 0 && utf8.RuneCountInString(current) > f.MaxLength {
				add(f.Name, "must be at most %d characters", f.MaxLength)
			}
		case FieldNumber:
			switch v.(type) {
			case int, int64, float64:
			default:
				add(f.Name, "must be a number")
			}
		case FieldReference:
			if nestedString(v, "_ref") == "" {
				add(f.Name, "must reference a document")
			}
		case FieldImage, FieldVideo:
			if nestedString(v, "_type") == "" {
				add(f.Name, "must be a media descriptor")
			}
		case FieldArray, FieldBlocks:
			if _, ok := v.([]any); !ok {
				add(f.Name, "must be a list")
			}
		case FieldURL:
			str, _ := v.(string)
			u, err := url.Parse(str)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				add(f.Name, "must be an absolute http(s) URL")
			}
		case FieldEmail:
			str, _ := v.(string)
			if _, err := mail.ParseAddress(str); err != nil {
				add(f.Name, "must be an email address")
			}
		case FieldDate, FieldDatetime:
			str, ok := v.(string)
			if !ok {
				add(f.Name, "must be a date string")
				continue
			}
			if _, err := model.ParseDate(str); err != nil {
				add(f.Name, "must be a date (2006-01-02) or RFC 3339 datetime")
			}
		}
	}

	return violations
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

func nestedString(v any, key string) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
