// Package schema declares the CMS content type definitions and the validation
// rules the authoring studio enforces on them.
package schema

import (
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// FieldType is the CMS field type.
type FieldType string

const (
	FieldString    FieldType = "string"
	FieldText      FieldType = "text"
	FieldSlug      FieldType = "slug"
	FieldDate      FieldType = "date"
	FieldDatetime  FieldType = "datetime"
	FieldNumber    FieldType = "number"
	FieldImage     FieldType = "image"
	FieldVideo     FieldType = "video"
	FieldReference FieldType = "reference"
	FieldArray     FieldType = "array"
	FieldBlocks    FieldType = "blocks"
	FieldURL       FieldType = "url"
	FieldEmail     FieldType = "email"
)

// Field is one declared field of a content type.
type Field struct {
	Name      string              `json:"name"`
	Title     string              `json:"title"`
	Type      FieldType           `json:"type"`
	Required  bool                `json:"required,omitempty"`
	MaxLength int                 `json:"maxLength,omitempty"`
	To        []model.ContentType `json:"to,omitempty"`
	Source    string              `json:"source,omitempty"` // slug fields: field the slug is generated from
}

// Schema is the declaration of one content type.
type Schema struct {
	Name      model.ContentType `json:"name"`
	Title     string            `json:"title"`
	Singleton bool              `json:"singleton,omitempty"`
	Fields    []Field           `json:"fields"`
}

// Field returns the named field declaration.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SlugSource returns the name of the field the slug is generated from, or ""
// when the type has no slug.
func (s Schema) SlugSource() string {
	for _, f := range s.Fields {
		if f.Type == FieldSlug {
			return f.Source
		}
	}
	return ""
}

// HasSlug reports whether the type declares a slug field.
func (s Schema) HasSlug() bool {
	for _, f := range s.Fields {
		if f.Type == FieldSlug {
			return true
		}
	}
	return false
}

// Lookup returns the schema for a content type.
func Lookup(t model.ContentType) (Schema, bool) {
	for _, s := range definitions {
		if s.Name == t {
			return s, true
		}
	}
	return Schema{}, false
}

// All returns every schema in declaration order.
func All() []Schema {
	out := make([]Schema, len(definitions))
	copy(out, definitions)
	return out
}
