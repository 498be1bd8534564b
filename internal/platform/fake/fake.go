// Package fake provides an in-memory host bridge for tests.
//
// The bridge keeps files, directories and symlinks in maps, records every
// call in order and can be told to fail any operation. It is safe for
// concurrent use.
package fake

import (
	"context"
	"errors"
	"path"
	"slices"
	"strings"
	"sync"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("injected failure")

// Call is one recorded bridge invocation.
type Call struct {
	Method string
	Args   []string
}

// Bridge simulates a host.
type Bridge struct {
	mu sync.Mutex

	// Home is returned by HomeDirectory.
	Home string

	tools   map[string]bool
	dirs    map[string]bool
	files   map[string]string
	links   map[string]string
	calls   []Call
	failAll bool

	// Installs maps a command line to the tools it makes available.
	installs map[string][]string

	runErrs   map[string]error
	dirErrs   map[string]error
	writeErrs map[string]error
	linkErrs  map[string]error
	homeErr   error
}

// New creates a host with the given tools on PATH.
func New(home string, tools ...string) *Bridge {
	b := &Bridge{
		Home:      home,
		tools:     make(map[string]bool),
		dirs:      make(map[string]bool),
		files:     make(map[string]string),
		links:     make(map[string]string),
		installs:  make(map[string][]string),
		runErrs:   make(map[string]error),
		dirErrs:   make(map[string]error),
		writeErrs: make(map[string]error),
		linkErrs:  make(map[string]error),
	}
	for _, t := range tools {
		b.tools[t] = true
	}
	return b
}

// Broken creates a host on which every operation fails.
func Broken() *Bridge {
	b := New("")
	b.failAll = true
	b.homeErr = ErrInjected
	return b
}

// InstallProvides makes a successful run of command line provide tools.
func (b *Bridge) InstallProvides(commandLine string, tools ...string) *Bridge {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.installs[commandLine] = tools
	return b
}

// FailRun makes every run of command fail with err.
func (b *Bridge) FailRun(command string, err error) *Bridge {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runErrs[command] = err
	return b
}

// FailDir makes creating path fail.
func (b *Bridge) FailDir(p string) *Bridge {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirErrs[p] = ErrInjected
	return b
}

// FailWrite makes writing path fail.
func (b *Bridge) FailWrite(p string) *Bridge {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErrs[p] = ErrInjected
	return b
}

// FailLink makes creating a symlink at link fail.
func (b *Bridge) FailLink(link string) *Bridge {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.linkErrs[link] = ErrInjected
	return b
}

// FailHome makes HomeDirectory fail.
func (b *Bridge) FailHome() *Bridge {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.homeErr = ErrInjected
	return b
}

// PutFile seeds a file.
func (b *Bridge) PutFile(p, content string) *Bridge {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[p] = content
	return b
}

func (b *Bridge) record(method string, args ...string) {
	b.calls = append(b.calls, Call{Method: method, Args: args})
}

// Probe reports whether tool is on PATH.
func (b *Bridge) Probe(_ context.Context, tool string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("Probe", tool)
	return !b.failAll && b.tools[tool]
}

// Run succeeds unless configured otherwise.
func (b *Bridge) Run(ctx context.Context, name string, args ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("Run", append([]string{name}, args...)...)
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.failAll {
		return ErrInjected
	}
	if err := b.runErrs[name]; err != nil {
		return err
	}
	line := strings.Join(append([]string{name}, args...), " ")
	for _, t := range b.installs[line] {
		b.tools[t] = true
	}
	return nil
}

// EnsureDirectories creates every path, reporting the first failure after
// attempting all of them.
func (b *Bridge) EnsureDirectories(_ context.Context, paths []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("EnsureDirectories", paths...)
	var errs []error
	for _, p := range paths {
		if b.failAll {
			errs = append(errs, ErrInjected)
			continue
		}
		if err := b.dirErrs[p]; err != nil {
			errs = append(errs, err)
			continue
		}
		b.dirs[p] = true
	}
	return errors.Join(errs...)
}

// WriteIfMissing stores content unless something exists at p.
func (b *Bridge) WriteIfMissing(_ context.Context, p, content string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("WriteIfMissing", p)
	if b.failAll {
		return false, ErrInjected
	}
	if err := b.writeErrs[p]; err != nil {
		return false, err
	}
	if b.existsLocked(p) {
		return false, nil
	}
	b.files[p] = content
	return true, nil
}

// CreateSymlink records a link unless something exists at link.
func (b *Bridge) CreateSymlink(_ context.Context, target, link string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("CreateSymlink", target, link)
	if b.failAll {
		return false, ErrInjected
	}
	if err := b.linkErrs[link]; err != nil {
		return false, err
	}
	if b.existsLocked(link) {
		return false, nil
	}
	b.links[link] = target
	return true, nil
}

// HomeDirectory returns Home.
func (b *Bridge) HomeDirectory(context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("HomeDirectory")
	if b.homeErr != nil {
		return "", b.homeErr
	}
	return b.Home, nil
}

func (b *Bridge) existsLocked(p string) bool {
	_, file := b.files[p]
	_, link := b.links[p]
	return file || link || b.dirs[p]
}

// File returns the content at p, following symlinks.
func (b *Bridge) File(p string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for range 8 {
		target, ok := b.links[p]
		if !ok {
			break
		}
		p = target
	}
	content, ok := b.files[p]
	return content, ok
}

// Link returns the target of the symlink at p.
func (b *Bridge) Link(p string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	target, ok := b.links[p]
	return target, ok
}

// HasDir reports whether p was created as a directory.
func (b *Bridge) HasDir(p string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirs[p]
}

// Files returns every regular file path, sorted.
func (b *Bridge) Files() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.files))
	for p := range b.files {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// FilesUnder returns the sorted file paths below dir.
func (b *Bridge) FilesUnder(dir string) []string {
	var out []string
	prefix := path.Clean(dir) + "/"
	for _, p := range b.Files() {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// Calls returns a copy of the recorded calls.
func (b *Bridge) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

// Ran reports whether Run was called with the given command name.
func (b *Bridge) Ran(name string) bool {
	for _, c := range b.Calls() {
		if c.Method == "Run" && len(c.Args) > 0 && c.Args[0] == name {
			return true
		}
	}
	return false
}
