// Package world inspects an existing World on disk.
package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alivecomputer/setup/internal/templates"
	"github.com/alivecomputer/setup/internal/util/naming"
)

// Key is the frontmatter of a walnut's key document.
type Key struct {
	Type     string   `yaml:"type"`
	Goal     string   `yaml:"goal"`
	Created  int      `yaml:"created"`
	Rhythm   string   `yaml:"rhythm,omitempty"`
	People   []string `yaml:"people"`
	Tags     []string `yaml:"tags"`
	Codebase string   `yaml:"codebase,omitempty"`
	Stack    []string `yaml:"stack,omitempty"`
}

// Now is the frontmatter of a walnut's now document.
type Now struct {
	Phase   string `yaml:"phase"`
	Health  string `yaml:"health,omitempty"`
	Updated string `yaml:"updated"`
	Next    string `yaml:"next"`
}

// Walnut is a walnut found on disk.
type Walnut struct {
	// Path is relative to the World root, slash separated.
	Path string

	Key Key
	Now Now

	// Err is set when the walnut's documents could not be read.
	Err error
}

// skipDirs are never searched for walnuts.
var skipDirs = map[string]bool{
	naming.CoreDir:       true,
	naming.SquirrelsDir:  true,
	naming.WorkingDir:    true,
	naming.ReferencesDir: true,
}

// List finds every walnut below root in lexical path order. A directory is
// a walnut when it holds _core/key.md. Unreadable documents are reported
// on the walnut rather than failing the listing.
func List(root string) ([]Walnut, error) {
	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("open world: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open world: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open world: %s is not a directory", root)
	}

	var walnuts []Walnut
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}

		core := filepath.Join(p, naming.CoreDir)
		if _, err := os.Stat(filepath.Join(core, templates.KeyDoc)); err != nil {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		walnuts = append(walnuts, Load(core, filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list walnuts: %w", err)
	}
	return walnuts, nil
}

// Load reads the key and now documents of the walnut whose _core is core.
func Load(core, rel string) Walnut {
	w := Walnut{Path: path.Clean(rel)}

	var errs []error
	if err := readFrontMatter(filepath.Join(core, templates.KeyDoc), &w.Key); err != nil {
		errs = append(errs, err)
	}
	if err := readFrontMatter(filepath.Join(core, templates.NowDoc), &w.Now); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, err)
	}
	w.Err = errors.Join(errs...)
	return w
}

func readFrontMatter(p string, out any) error {
	content, err := os.ReadFile(p) // #nosec G304 -- path is inside the World being inspected
	if err != nil {
		return err
	}
	if _, err := ParseFrontMatter(content, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(p), err)
	}
	return nil
}
