package provisioning

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alivecomputer/setup/internal/templates"
)

// Scaffolder wraps the Bridge with the idempotent filesystem primitives a
// World is built from. Nothing it does overwrites an existing file.
type Scaffolder struct {
	bridge   Bridge
	log      *EventLog
	observer Observer
}

// NewScaffolder creates a scaffolder. Link failures are reported to log.
func NewScaffolder(bridge Bridge, log *EventLog, observer Observer) *Scaffolder {
	if observer == nil {
		observer = NewDiscardObserver()
	}
	return &Scaffolder{bridge: bridge, log: log, observer: observer}
}

// EnsureDirectories creates every path, continuing past failures.
// It returns the failures joined, or nil.
func (s *Scaffolder) EnsureDirectories(ctx context.Context, paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := s.bridge.EnsureDirectories(ctx, []string{p}); err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// WriteIfMissing writes content to path unless a file is already there.
func (s *Scaffolder) WriteIfMissing(ctx context.Context, path, content string) (bool, error) {
	wrote, err := s.bridge.WriteIfMissing(ctx, path, content)
	if err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return wrote, nil
}

// Create is WriteIfMissing with an existing file reported as ErrWriteConflict.
func (s *Scaffolder) Create(ctx context.Context, path, content string) error {
	wrote, err := s.WriteIfMissing(ctx, path, content)
	if err != nil {
		return err
	}
	if !wrote {
		return fmt.Errorf("%s: %w", path, ErrWriteConflict)
	}
	return nil
}

// WriteDocuments creates every document inside dir. Existing documents are
// kept. Every document is attempted; real failures are returned joined.
func (s *Scaffolder) WriteDocuments(ctx context.Context, dir string, docs []templates.Document) error {
	var errs []error
	for _, doc := range docs {
		path := filepath.Join(dir, doc.Name)
		err := s.Create(ctx, path, doc.Content)
		switch {
		case err == nil:
		case errors.Is(err, ErrWriteConflict):
			LogFileSkipped(s.observer, path, err)
		default:
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Link creates link pointing at target. Any failure, including something
// already present at link, is a LinkUnsupportedError.
func (s *Scaffolder) Link(ctx context.Context, target, link string) error {
	ok, err := s.bridge.CreateSymlink(ctx, target, link)
	if err != nil {
		return &LinkUnsupportedError{Link: link, Err: err}
	}
	if !ok {
		return &LinkUnsupportedError{Link: link, Err: ErrWriteConflict}
	}
	return nil
}

// LinkOrCopy points every link at target. A link that cannot be created is
// replaced by a copy of content written with WriteIfMissing. Each link is
// handled on its own; a failure is logged and the next link is attempted.
// It returns the number of links that ended up neither linked nor copied.
func (s *Scaffolder) LinkOrCopy(ctx context.Context, target string, links []string, content string) int {
	failed := 0
	for _, link := range links {
		err := s.Link(ctx, target, link)
		if err == nil {
			continue
		}

		LogFileSkipped(s.observer, link, err)

		if _, err := s.WriteIfMissing(ctx, link, content); err != nil {
			LogFileSkipped(s.observer, link, err)
			s.log.Append(fmt.Sprintf("couldn't create %s", filepath.Base(link)), CategoryError)
			failed++
		}
	}
	return failed
}
