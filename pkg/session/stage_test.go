package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/olimci/hinagata/pkg/iofs"
)

func TestStageRejectsUnsafePaths(t *testing.T) {
	s := NewStage()

	for _, p := range []string{"", ".", "..", "../x", "/etc/passwd", "a/../../b"} {
		if err := s.Write(p, nil); !errors.Is(err, ErrUnsafePath) {
			t.Errorf("Write(%q) error = %v, want ErrUnsafePath", p, err)
		}
	}

	if err := s.Write("./a/./b.txt", nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := s.Changes()[0].Path; got != "a/b.txt" {
		t.Fatalf("path not cleaned: %q", got)
	}
}

func TestStageLastWriteWinsAndConflicts(t *testing.T) {
	s := NewStage()

	_ = s.Write("a.txt", []byte("1"))
	_ = s.Write("b.txt", []byte("2"))
	_ = s.Write("a.txt", []byte("3"))

	want := []Change{
		{Path: "a.txt", Op: OpWrite, Content: []byte("3")},
		{Path: "b.txt", Op: OpWrite, Content: []byte("2")},
	}
	if diff := cmp.Diff(want, s.Changes()); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a.txt"}, s.Conflicts()); diff != "" {
		t.Fatalf("conflicts mismatch (-want +got):\n%s", diff)
	}
}

func TestStageCommit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "old.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStage(WithMaxWorkers(2))
	_ = s.Write("cmd/app/main.go", []byte("package main\n"))
	_ = s.Write("README.md", []byte("# app\n"))
	_ = s.Delete("old.txt")
	_ = s.Delete("never-existed.txt")

	res, err := s.Commit(ctx, iofs.FromOS(dir))
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	want := &CommitResult{
		Written: []string{"README.md", "cmd/app/main.go"},
		Deleted: []string{"old.txt"},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cmd", "app", "main.go"))
	if err != nil || string(data) != "package main\n" {
		t.Fatalf("main.go = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "old.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("old.txt should be gone, stat err = %v", err)
	}
	if s.Len() != 0 {
		t.Fatal("stage should be empty after commit")
	}
}

func TestStageCommitRefusesOverwrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStage()
	_ = s.Write("go.mod", []byte("module new\n"))
	_ = s.Write("main.go", []byte("package main\n"))

	if _, err := s.Commit(ctx, iofs.FromOS(dir)); !errors.Is(err, ErrExists) {
		t.Fatalf("Commit error = %v, want ErrExists", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "main.go")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("nothing should be written when the commit is refused")
	}

	forced := NewStage(WithForce(true))
	_ = forced.Write("go.mod", []byte("module new\n"))
	if _, err := forced.Commit(ctx, iofs.FromOS(dir)); err != nil {
		t.Fatalf("forced Commit: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "go.mod"))
	if string(data) != "module new\n" {
		t.Fatalf("go.mod = %q", data)
	}
}
