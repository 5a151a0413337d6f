package iofs

import (
	"context"
	"io"
	"io/fs"
)

// Readable is a source tree a collection is loaded from.
type Readable interface {
	FS(context.Context) (fs.FS, error)
	Root() string
	Close() error
}

// WriterFunc writes one generated file to w.
type WriterFunc func(w io.Writer) error

// Writable is the target tree staged changes are committed to.
// Write must be safe for concurrent calls on distinct paths.
type Writable interface {
	Readable
	EnsureRoot() error
	MkdirAll(rel string, perm fs.FileMode) error
	Remove(rel string) error
	Write(rel string, gen WriterFunc, exists bool) error
	DisplayPath(rel string) string
}

// Exists reports whether rel is present in the tree.
func Exists(ctx context.Context, r Readable, rel string) (bool, error) {
	fsys, err := r.FS(ctx)
	if err != nil {
		return false, err
	}

	_, err = fs.Stat(fsys, joinRoot(r.Root(), rel))
	if err == nil {
		return true, nil
	}
	if errorsIsNotExist(err) {
		return false, nil
	}
	return false, err
}
