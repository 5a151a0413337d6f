package iofs

import (
	"bytes"
	"os"
	"path/filepath"
)

// writeAtomic writes through a temp file in the destination directory and
// renames it into place. When the file already exists and the new content
// is identical the rename is skipped, leaving the mtime alone.
func writeAtomic(path string, gen WriterFunc, exists bool) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	defer func(tmp *os.File) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}(tmp)

	if err := gen(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if exists {
		if same, err := sameContent(tmp.Name(), path); err != nil {
			return err
		} else if same {
			return nil
		}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	if df, err := os.Open(dir); err == nil {
		_ = df.Sync()
		_ = df.Close()
	}

	return nil
}

// sameContent compares two regular files. Generated files are small, so
// reading both fully is fine.
func sameContent(a, b string) (bool, error) {
	aInfo, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bInfo, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if !aInfo.Mode().IsRegular() || !bInfo.Mode().IsRegular() || aInfo.Size() != bInfo.Size() {
		return false, nil
	}

	aData, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	bData, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}

	return bytes.Equal(aData, bData), nil
}
