package iofs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FromFS wraps any fs.FS, e.g. an embedded template collection.
func FromFS(fsys fs.FS, root string) *FS {
	return &FS{fs: fsys, root: root}
}

type FS struct {
	fs   fs.FS
	root string
}

func (f *FS) FS(ctx context.Context) (fs.FS, error) {
	return f.fs, nil
}

func (f *FS) Root() string {
	return f.root
}

func (f *FS) Close() error {
	return nil
}

// FromOS wraps a directory on disk. It is both a collection source and a
// generation target.
func FromOS(path string) *OSFS {
	return &OSFS{path: path}
}

type OSFS struct {
	path string
}

func (o *OSFS) FS(ctx context.Context) (fs.FS, error) {
	return os.DirFS(o.path), nil
}

func (o *OSFS) Root() string {
	return "."
}

func (o *OSFS) Close() error {
	return nil
}

func (o *OSFS) EnsureRoot() error {
	info, err := os.Stat(o.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(o.path, 0o755); err != nil {
				return fmt.Errorf("creating target directory %q: %w", o.path, err)
			}
			return nil
		}
		return fmt.Errorf("stat target directory %q: %w", o.path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target %q is not a directory", o.path)
	}
	return nil
}

func (o *OSFS) MkdirAll(rel string, perm fs.FileMode) error {
	return os.MkdirAll(filepath.Join(o.path, filepath.FromSlash(rel)), perm)
}

func (o *OSFS) Remove(rel string) error {
	return os.Remove(filepath.Join(o.path, filepath.FromSlash(rel)))
}

func (o *OSFS) Write(rel string, gen WriterFunc, exists bool) error {
	return writeAtomic(filepath.Join(o.path, filepath.FromSlash(rel)), gen, exists)
}

func (o *OSFS) DisplayPath(rel string) string {
	return filepath.Join(o.path, filepath.FromSlash(rel))
}

func joinRoot(root, rel string) string {
	if root == "" {
		root = "."
	}
	return path.Join(root, rel)
}

func errorsIsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
