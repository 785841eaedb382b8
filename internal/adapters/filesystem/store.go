package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"apkcollect/internal/domain"
)

// Store implements ports.ArtifactStore on a local directory
type Store struct {
	root string
}

// NewStore creates a Store for the destination directory root
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the destination directory
func (s *Store) Root() string {
	return s.root
}

// Prepare deletes the destination directory with everything in it and
// creates it again, empty. A missing destination is not an error.
func (s *Store) Prepare(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	makeRemovable(s.root)

	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("failed to remove %s: %w", s.root, err)
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.root, err)
	}

	return nil
}

// makeRemovable grants the owner full permission on every directory under
// root before it is listed, so read-only trees can be deleted. Errors are
// ignored; RemoveAll reports whatever is still in the way.
func makeRemovable(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if mode := info.Mode().Perm(); mode&0700 != 0700 {
			_ = os.Chmod(path, mode|0700)
		}
		return nil
	})
}

// Resolve returns the destination path for name. When name is taken it
// tries name_1, name_2, ... (before the extension) and returns the first
// free one. The check is not atomic against other writers.
func (s *Store) Resolve(name string) (string, error) {
	for n := 0; ; n++ {
		candidate := filepath.Join(s.root, domain.CandidateName(name, n))
		_, err := os.Lstat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
	}
}

// Copy copies the content of src into a new file dst, then applies the
// source's permission bits and modification time. dst must not exist.
// On failure nothing is left at dst.
func (s *Store) Copy(ctx context.Context, src, dst string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}

	return copyMetadata(dst, info)
}

// copyMetadata applies mode and mtime from info. The access time is left
// as the copy set it.
func copyMetadata(dst string, info fs.FileInfo) error {
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, time.Time{}, info.ModTime())
}
