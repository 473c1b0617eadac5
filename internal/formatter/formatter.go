package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonmodel/internal/models"
)

// Style selects the textual form a value tree is rendered in.
type Style string

const (
	StyleCompact Style = "compact"
	StylePretty  Style = "pretty"
	StyleYAML    Style = "yaml"
)

// Formatter renders value trees as JSON or YAML text. Object member order is
// kept in every style.
type Formatter struct {
	Indent     string // pretty JSON indentation
	Width      int    // pretty JSON packs arrays shorter than this on one line
	YAMLIndent int
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{
		Indent:     "  ",
		Width:      80,
		YAMLIndent: 2,
	}
}

// Format renders v in the given style
func (f *Formatter) Format(v models.Value, style Style) (string, error) {
	switch style {
	case StyleCompact, "":
		return f.Compact(v)
	case StylePretty:
		return f.Pretty(v)
	case StyleYAML:
		return f.YAML(v)
	}
	return "", fmt.Errorf("unknown output style %q", style)
}

// Compact encodes v as JSON without insignificant whitespace
func (f *Formatter) Compact(v models.Value) (string, error) {
	// json.Marshal would escape HTML characters in the output.
	data, err := v.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data), nil
}

// Pretty encodes v as indented JSON
func (f *Formatter) Pretty(v models.Value) (string, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}

	out := pretty.PrettyOptions(data, &pretty.Options{
		Width:  f.Width,
		Indent: f.Indent,
	})
	return strings.TrimRight(string(out), "\n"), nil
}

// YAML encodes v as a YAML document
func (f *Formatter) YAML(v models.Value) (string, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(f.YAMLIndent)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// toYAMLNode builds a node tree instead of marshaling a map so that member
// order survives.
func toYAMLNode(v models.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case models.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case models.Bool:
		b, _ := v.Bool()
		value := "false"
		if b {
			value = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: value}, nil
	case models.Number:
		n, _ := v.Number()
		literal := string(n)
		if !json.Valid([]byte(literal)) {
			return nil, fmt.Errorf("invalid number literal %q", literal)
		}
		tag := "!!int"
		if strings.ContainsAny(literal, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: literal}, nil
	case models.String:
		s, _ := v.Str()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}, nil
	case models.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		obj := v.Object()
		for _, key := range obj.Keys() {
			member, _ := obj.Get(key)
			child, err := toYAMLNode(member)
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", key, err)
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child,
			)
		}
		return node, nil
	case models.Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, elem := range v.Elements() {
			child, err := toYAMLNode(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	}
	return nil, fmt.Errorf("unknown kind %s", v.Kind())
}
