package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/olimci/hinagata/pkg/iofs"
	"github.com/olimci/hinagata/pkg/utils/set"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnsafePath = errors.New("unsafe path")
	ErrExists     = errors.New("file already exists")
)

type Op uint8

const (
	OpWrite Op = iota
	OpDelete
)

func (o Op) String() string {
	if o == OpDelete {
		return "delete"
	}
	return "write"
}

// Change is one staged operation on a target-relative, slash separated path.
type Change struct {
	Path    string
	Op      Op
	Content []byte
}

type StageOption func(*Stage)

// WithForce allows the commit to overwrite files that already exist.
func WithForce(force bool) StageOption {
	return func(s *Stage) {
		s.force = force
	}
}

func WithMaxWorkers(n int) StageOption {
	return func(s *Stage) {
		if n > 0 {
			s.maxWorkers = n
		}
	}
}

// Stage collects file writes and deletes until Commit. Staging the same path
// again replaces the earlier change; the path keeps its original position.
type Stage struct {
	changes []Change
	index   map[string]int
	writes  map[string]int

	force      bool
	maxWorkers int
}

func NewStage(opts ...StageOption) *Stage {
	s := &Stage{
		index:      make(map[string]int),
		writes:     make(map[string]int),
		maxWorkers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stage) Write(p string, content []byte) error {
	clean, err := cleanPath(p)
	if err != nil {
		return err
	}

	s.writes[clean]++
	s.put(Change{Path: clean, Op: OpWrite, Content: slices.Clone(content)})
	return nil
}

func (s *Stage) Delete(p string) error {
	clean, err := cleanPath(p)
	if err != nil {
		return err
	}

	s.put(Change{Path: clean, Op: OpDelete})
	return nil
}

func (s *Stage) put(c Change) {
	if i, ok := s.index[c.Path]; ok {
		s.changes[i] = c
		return
	}
	s.index[c.Path] = len(s.changes)
	s.changes = append(s.changes, c)
}

// Changes returns the pending changes in staging order.
func (s *Stage) Changes() []Change {
	return slices.Clone(s.changes)
}

func (s *Stage) Len() int {
	return len(s.changes)
}

// Conflicts lists paths that were written more than once, sorted.
func (s *Stage) Conflicts() []string {
	out := make([]string, 0)
	for p, n := range s.writes {
		if n > 1 {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}

func (s *Stage) Reset() {
	s.changes = nil
	clear(s.index)
	clear(s.writes)
}

// CommitResult lists what a commit did, sorted by path.
type CommitResult struct {
	Written []string
	Deleted []string
}

// Commit applies the staged changes to out and clears the stage. Nothing is
// written when an existing file would be overwritten without force.
func (s *Stage) Commit(ctx context.Context, out iofs.Writable) (*CommitResult, error) {
	if err := out.EnsureRoot(); err != nil {
		return nil, err
	}

	exists := set.New[string]()
	var errs []error
	for _, c := range s.changes {
		ok, err := iofs.Exists(ctx, out, c.Path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", out.DisplayPath(c.Path), err)
		}
		if !ok {
			continue
		}
		exists.Add(c.Path)
		if c.Op == OpWrite && !s.force {
			errs = append(errs, fmt.Errorf("%w: %s (use force to overwrite)", ErrExists, c.Path))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	result := &CommitResult{
		Written: make([]string, 0),
		Deleted: make([]string, 0),
	}

	for _, dir := range parentDirs(s.changes) {
		if err := out.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", out.DisplayPath(dir), err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)

	for _, c := range s.changes {
		if c.Op != OpWrite {
			continue
		}
		result.Written = append(result.Written, c.Path)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			err := out.Write(c.Path, func(w io.Writer) error {
				_, err := w.Write(c.Content)
				return err
			}, exists.Has(c.Path))
			if err != nil {
				return fmt.Errorf("writing %s: %w", out.DisplayPath(c.Path), err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, c := range s.changes {
		if c.Op != OpDelete || !exists.Has(c.Path) {
			continue
		}
		if err := out.Remove(c.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("removing %s: %w", out.DisplayPath(c.Path), err)
		}
		result.Deleted = append(result.Deleted, c.Path)
	}

	slices.Sort(result.Written)
	slices.Sort(result.Deleted)
	s.Reset()

	return result, nil
}

// cleanPath normalizes p and rejects paths that would leave the target.
func cleanPath(p string) (string, error) {
	clean := path.Clean(filepath.ToSlash(strings.TrimSpace(p)))
	if clean == "." || clean == "" || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, p)
	}
	return clean, nil
}

// parentDirs returns the directories written files live in, parents first.
func parentDirs(changes []Change) []string {
	dirs := set.New[string]()
	for _, c := range changes {
		if c.Op != OpWrite {
			continue
		}
		for dir := path.Dir(c.Path); dir != "."; dir = path.Dir(dir) {
			dirs.Add(dir)
		}
	}

	out := dirs.Values()
	slices.Sort(out)
	return out
}
