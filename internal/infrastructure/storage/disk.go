// Package storage implements the FileStore port on the local filesystem.
// Uploads land under <root>/<category>/<name>; the returned path is relative
// to the root and is what gets persisted on the owning record.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed and returns a store.
func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Save writes the reader's content to <root>/<category>/<name>, replacing
// any previous file. Writes go through a temp file and rename so a failed
// upload never leaves a truncated file behind.
func (s *DiskStore) Save(ctx context.Context, category, name string, r io.Reader) (string, error) {
	rel := filepath.Join(category, filepath.Base(name))
	if err := s.guard(rel); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create category dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.root, rel)); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return rel, nil
}

// Open returns a reader over a previously stored file.
func (s *DiskStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := s.guard(path); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.root, path))
	if err != nil {
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. Removing a missing file is not an error.
func (s *DiskStore) Remove(ctx context.Context, path string) error {
	if err := s.guard(path); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored file: %w", err)
	}
	return nil
}

// guard rejects paths that would escape the upload root.
func (s *DiskStore) guard(rel string) error {
	clean := filepath.Clean(rel)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid storage path %q", rel)
	}
	return nil
}
