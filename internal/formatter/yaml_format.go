package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridcol/pkg/column"
)

// YAMLFormatOptions control YAML rendering.
type YAMLFormatOptions struct {
	Indent              int
	LiteralBlockStrings bool
}

// modelDocument is the structured form of a resolved column set.
type modelDocument struct {
	Columns []*column.Model `json:"columns" yaml:"columns"`
}

// FormatYAML renders an object to YAML using the provided options. Multi-line
// strings can be emitted as literal blocks ("|") to preserve newlines.
func FormatYAML(v interface{}, opts YAMLFormatOptions) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", err
	}

	if opts.LiteralBlockStrings {
		applyLiteralStyle(&node)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatModelsYAML renders models under a top-level "columns" key.
func FormatModelsYAML(models []*column.Model) (string, error) {
	return FormatYAML(modelDocument{Columns: nonNil(models)}, YAMLFormatOptions{LiteralBlockStrings: true})
}

// FormatModelsJSON renders models under a top-level "columns" key, indented.
func FormatModelsJSON(models []*column.Model) (string, error) {
	b, err := json.MarshalIndent(modelDocument{Columns: nonNil(models)}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

func nonNil(models []*column.Model) []*column.Model {
	if models == nil {
		return []*column.Model{}
	}
	return models
}

func applyLiteralStyle(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	for _, c := range n.Content {
		applyLiteralStyle(c)
	}
}
