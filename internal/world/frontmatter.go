package world

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontMatter indicates the document did not start with a YAML fence.
	ErrMissingFrontMatter = errors.New("world: missing frontmatter")
	// ErrMalformedFrontMatter indicates the YAML block was not closed.
	ErrMalformedFrontMatter = errors.New("world: malformed frontmatter")
)

// ParseFrontMatter decodes the YAML block of a document fenced by "---"
// lines into out and returns the body that follows it.
func ParseFrontMatter(content []byte, out any) ([]byte, error) {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, ErrMissingFrontMatter
	}

	meta, body, found := bytes.Cut(normalized[4:], []byte("\n---\n"))
	if !found {
		return nil, ErrMalformedFrontMatter
	}
	if err := yaml.Unmarshal(meta, out); err != nil {
		return nil, fmt.Errorf("world: parse frontmatter: %w", err)
	}
	return bytes.TrimLeft(body, "\n"), nil
}
