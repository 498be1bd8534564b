package templates

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// scalar renders s as a block-context YAML scalar. Text YAML would read
// as written stays plain; anything else is quoted. Line breaks are always
// escaped so a value never spans lines or closes the frontmatter fence.
func scalar(s string) string {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if strings.ContainsAny(s, "\r\n") {
		node.Style = yaml.DoubleQuotedStyle
	}
	return encodeScalar(node)
}

// flowItem renders s as an item of a flow sequence, where flow indicators
// are not allowed in plain scalars.
func flowItem(s string) string {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if strings.ContainsAny(s, ",[]{}\r\n") {
		node.Style = yaml.DoubleQuotedStyle
	}
	return encodeScalar(node)
}

// quoted renders s as a double-quoted YAML scalar.
func quoted(s string) string {
	return encodeScalar(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle})
}

// flowList renders items as a one-line flow sequence.
func flowList(items []string, render func(string) string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, render(item))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// splitList splits comma separated text into trimmed, non-empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func encodeScalar(node *yaml.Node) string {
	// Encoding a single string scalar cannot fail.
	data, _ := yaml.Marshal(node)
	return strings.TrimSuffix(string(data), "\n")
}
