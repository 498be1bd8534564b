package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	dirMode  = 0o755
	fileMode = 0o644

	// waitDelay bounds how long Run waits for output pipes after the
	// command was killed by its context.
	waitDelay = 2 * time.Second
)

// Bridge runs provisioning operations against the real filesystem.
type Bridge struct {
	home   func() (string, error)
	getenv func(string) string
	extra  []string

	// write fills a newly created file.
	write func(f *os.File, content string) error
}

// Option customizes a Bridge.
type Option func(*Bridge)

// WithHome overrides home directory lookup.
func WithHome(home func() (string, error)) Option {
	return func(b *Bridge) { b.home = home }
}

// WithSearchPath replaces the directories searched ahead of PATH.
func WithSearchPath(dirs ...string) Option {
	return func(b *Bridge) { b.extra = dirs }
}

// WithEnv overrides environment lookup.
func WithEnv(getenv func(string) string) Option {
	return func(b *Bridge) { b.getenv = getenv }
}

// New creates a host bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		home:   os.UserHomeDir,
		getenv: os.Getenv,
		write:  writeString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SearchPath returns the directories searched for tools, in order.
func (b *Bridge) SearchPath() []string {
	extra := b.extra
	if extra == nil {
		extra = []string{"/opt/homebrew/bin", "/usr/local/bin"}
		if home, err := b.home(); err == nil && home != "" {
			extra = append(extra, filepath.Join(home, ".cargo", "bin"), filepath.Join(home, ".local", "bin"))
		}
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, d := range append(append([]string{}, extra...), filepath.SplitList(b.getenv("PATH"))...) {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		dirs = append(dirs, d)
	}
	return dirs
}

// lookPath finds an executable named tool on the search path.
func (b *Bridge) lookPath(tool string) (string, bool) {
	if strings.ContainsRune(tool, filepath.Separator) {
		return tool, isExecutable(tool)
	}
	for _, dir := range b.SearchPath() {
		candidate := filepath.Join(dir, tool)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutable(p string) bool {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

// Probe reports whether tool is on the search path.
func (b *Bridge) Probe(_ context.Context, tool string) bool {
	_, ok := b.lookPath(tool)
	return ok
}

// Run executes name with args and waits for it. A non-zero exit is an
// error carrying the command's stderr.
func (b *Bridge) Run(ctx context.Context, name string, args ...string) error {
	bin, ok := b.lookPath(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, exec.ErrNotFound)
	}

	// #nosec G204 -- commands come from the fixed prerequisite catalog
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), "PATH="+strings.Join(b.SearchPath(), string(filepath.ListSeparator)))
	cmd.WaitDelay = waitDelay

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		line := strings.Join(append([]string{name}, args...), " ")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", line, ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", line, err, msg)
		}
		return fmt.Errorf("%s: %w", line, err)
	}
	return nil
}

// EnsureDirectories creates every path with its parents. All paths are
// attempted; failures are returned joined.
func (b *Bridge) EnsureDirectories(ctx context.Context, paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := os.MkdirAll(p, dirMode); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteIfMissing creates path with content unless anything exists there.
// Parent directories are created first.
func (b *Bridge) WriteIfMissing(ctx context.Context, path, content string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := os.Lstat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return false, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode) // #nosec G304 -- path is inside the World or a configured codebase
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	err = b.write(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Never leave a partial file behind.
		_ = os.Remove(path)
		return false, err
	}
	return true, nil
}

func writeString(f *os.File, content string) error {
	_, err := f.WriteString(content)
	return err
}

// CreateSymlink creates link pointing at target unless anything, including
// a dangling symlink, exists at link.
func (b *Bridge) CreateSymlink(ctx context.Context, target, link string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := os.Lstat(link); err == nil {
		return false, nil
	}
	if err := os.Symlink(target, link); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// HomeDirectory returns the current user's home directory.
func (b *Bridge) HomeDirectory(context.Context) (string, error) {
	home, err := b.home()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	if home == "" {
		return "", errors.New("home directory: empty")
	}
	return home, nil
}
