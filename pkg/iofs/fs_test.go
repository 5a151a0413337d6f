package iofs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestOSFSWriteAndExists(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "out")
	out := FromOS(dir)

	if err := out.EnsureRoot(); err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	if err := out.MkdirAll("cmd/app", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	write := func(content string) WriterFunc {
		return func(w io.Writer) error {
			_, err := io.WriteString(w, content)
			return err
		}
	}

	if err := out.Write("cmd/app/main.go", write("package main\n"), false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	ok, err := Exists(ctx, out, "cmd/app/main.go")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true, nil", ok, err)
	}

	if err := out.Write("cmd/app/main.go", write("package app\n"), true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cmd", "app", "main.go"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "package app\n" {
		t.Fatalf("content = %q", data)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "cmd", "app"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}

	ok, err = Exists(ctx, out, "missing.txt")
	if err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v; want false, nil", ok, err)
	}
}

func TestEnsureRootRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := FromOS(file).EnsureRoot(); err == nil {
		t.Fatal("expected error for non-directory target")
	}
}

func TestFromFSExistsUsesRoot(t *testing.T) {
	src := FromFS(fstest.MapFS{
		"collection/hinagata.toml": {Data: []byte("question = 'x'")},
	}, "collection")

	ok, err := Exists(context.Background(), src, "hinagata.toml")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true, nil", ok, err)
	}
}
