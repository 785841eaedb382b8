package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"

	"apkcollect/internal/domain"
)

// Source implements ports.ArtifactSource by walking a directory tree
type Source struct {
	root string
}

// NewSource creates a Source rooted at root, made absolute where possible.
// A leading ~ must already be expanded.
func NewSource(root string) *Source {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Source{root: root}
}

// Root returns the scanned directory
func (s *Source) Root() string {
	return s.root
}

// Discover yields every non-directory entry under the root whose name ends
// in the artifact extension. A symlinked root is followed, but yielded paths
// stay under the root as given. A missing root yields nothing. Unreadable
// entries are yielded as errors and the walk moves on.
func (s *Source) Discover(ctx context.Context) iter.Seq2[domain.Artifact, error] {
	return func(yield func(domain.Artifact, error) bool) {
		resolved, err := filepath.EvalSymlinks(s.root)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				yield(domain.Artifact{Path: s.root}, fmt.Errorf("failed to resolve %s: %w", s.root, err))
			}
			return
		}

		_ = filepath.WalkDir(resolved, func(walked string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				yield(domain.Artifact{}, ctxErr)
				return filepath.SkipAll
			}

			path := s.root
			if rel, relErr := filepath.Rel(resolved, walked); relErr == nil {
				path = filepath.Join(s.root, rel)
			}

			if err != nil {
				if walked == resolved && errors.Is(err, fs.ErrNotExist) {
					return filepath.SkipAll
				}
				if !yield(domain.Artifact{Path: path}, fmt.Errorf("failed to read %s: %w", path, err)) {
					return filepath.SkipAll
				}
				return nil
			}

			if d.IsDir() || !domain.IsArtifactName(d.Name()) {
				return nil
			}

			if !yield(domain.NewArtifact(path), nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
