package application_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/marquee/internal/application"
)

func TestDefaultTokens(t *testing.T) {
	set, err := application.DefaultTokens()
	require.NoError(t, err)

	tokens := set.Tokens()
	require.NotEmpty(t, tokens)
	assert.Equal(t, "color-brand-primary", tokens[0].Name())
	assert.Equal(t, "color", tokens[0].Type)
}

func TestTokenSet_CSS(t *testing.T) {
	set, err := application.ParseTokens([]byte(`
color:
  brand:
    primary: "#e50914"
spacing:
  md: 16px
font:
  weight:
    bold: 700
`))
	require.NoError(t, err)

	want := ":root {\n" +
		"  --color-brand-primary: #e50914;\n" +
		"  --spacing-md: 16px;\n" +
		"  --font-weight-bold: 700;\n" +
		"}\n"
	assert.Equal(t, want, string(set.CSS()))
}

func TestTokenSet_JSON(t *testing.T) {
	set, err := application.ParseTokens([]byte(`
color:
  brand:
    primary: "#e50914"
font:
  family:
    body: Inter, sans-serif
misc:
  opacity: "0.5"
`))
	require.NoError(t, err)

	out, err := set.JSON()
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal(out, &tree))

	assert.JSONEq(t, `{
		"color": {"brand": {"primary": {"$value": "#e50914", "$type": "color"}}},
		"font": {"family": {"body": {"$value": "Inter, sans-serif", "$type": "fontFamily"}}},
		"misc": {"opacity": {"$value": "0.5"}}
	}`, string(out))
}

func TestParseTokens_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "", wantErr: "empty document"},
		{name: "ungrouped token", input: "primary: red\n", wantErr: "must belong to a group"},
		{name: "list value", input: "color:\n  brand: [red, blue]\n", wantErr: "unsupported value"},
		{name: "hyphenated name", input: "color:\n  brand-primary: red\n", wantErr: "invalid name"},
		{name: "malformed yaml", input: "color: [\n", wantErr: "parse tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := application.ParseTokens([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "got %v", err)
		})
	}
}
