package application

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/tokens.yaml
var defaultTokens []byte

// Token is one design token. Path is the group path from the root, ending
// with the token's own name.
type Token struct {
	Path  []string
	Value string
	Type  string
}

// Name returns the hyphen-joined path, e.g. "color-brand-primary".
func (t Token) Name() string {
	return strings.Join(t.Path, "-")
}

// TokenSet is an ordered collection of design tokens.
type TokenSet struct {
	tokens []Token
}

// tokenTypes maps a top-level group to its token $type.
var tokenTypes = map[string]string{
	"color":    "color",
	"spacing":  "dimension",
	"radius":   "dimension",
	"shadow":   "shadow",
	"duration": "duration",
}

// fontTypes maps the second level of the font group to its token $type.
var fontTypes = map[string]string{
	"family": "fontFamily",
	"size":   "dimension",
	"weight": "fontWeight",
}

// DefaultTokens parses the embedded token set.
func DefaultTokens() (*TokenSet, error) {
	return ParseTokens(defaultTokens)
}

// ParseTokens parses a YAML token tree. Mappings are groups and scalars are
// token values; document order is kept.
func ParseTokens(data []byte) (*TokenSet, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse tokens: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("parse tokens: empty document")
	}

	set := &TokenSet{}
	if err := set.walk(root.Content[0], nil); err != nil {
		return nil, err
	}
	if len(set.tokens) == 0 {
		return nil, errors.New("parse tokens: no tokens defined")
	}
	return set, nil
}

func (s *TokenSet) walk(node *yaml.Node, path []string) error {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if key == "" || strings.ContainsAny(key, " -") {
				return fmt.Errorf("token %s: invalid name %q at line %d", strings.Join(path, "."), key, node.Content[i].Line)
			}
			child := append(append([]string(nil), path...), key)
			if err := s.walk(node.Content[i+1], child); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		if len(path) < 2 {
			return fmt.Errorf("token %q at line %d: tokens must belong to a group", node.Value, node.Line)
		}
		s.tokens = append(s.tokens, Token{Path: path, Value: node.Value, Type: tokenType(path)})
		return nil
	default:
		return fmt.Errorf("token %s at line %d: unsupported value", strings.Join(path, "."), node.Line)
	}
}

func tokenType(path []string) string {
	if path[0] == "font" && len(path) > 2 {
		if t, ok := fontTypes[path[1]]; ok {
			return t
		}
	}
	if t, ok := tokenTypes[path[0]]; ok {
		return t
	}
	return ""
}

// Tokens returns the tokens in definition order.
func (s *TokenSet) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// CSS renders the tokens as custom properties on :root.
func (s *TokenSet) CSS() []byte {
	var b bytes.Buffer
	b.WriteString(":root {\n")
	for _, t := range s.tokens {
		fmt.Fprintf(&b, "  --%s: %s;\n", t.Name(), t.Value)
	}
	b.WriteString("}\n")
	return b.Bytes()
}

// JSON renders the tokens as a design-token tree where every leaf is an
// object with $value and, when known, $type.
func (s *TokenSet) JSON() ([]byte, error) {
	root := map[string]any{}
	for _, t := range s.tokens {
		group := root
		for _, name := range t.Path[:len(t.Path)-1] {
			next, ok := group[name].(map[string]any)
			if !ok {
				next = map[string]any{}
				group[name] = next
			}
			group = next
		}

		leaf := map[string]any{"$value": t.Value}
		if t.Type != "" {
			leaf["$type"] = t.Type
		}
		group[t.Path[len(t.Path)-1]] = leaf
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tokens: %w", err)
	}
	return append(out, '\n'), nil
}
