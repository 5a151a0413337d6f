package iofs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"
)

var ErrNoGit = errors.New("git executable not found")

// Remote names a collection kept in a git repository: the clone URL and an
// optional branch or tag, written as url#ref.
type Remote struct {
	URL string
	Ref string
}

func ParseRemote(s string) Remote {
	url, ref, _ := strings.Cut(strings.TrimSpace(s), "#")
	return Remote{URL: url, Ref: ref}
}

func (r Remote) String() string {
	if r.Ref == "" {
		return r.URL
	}
	return r.URL + "#" + r.Ref
}

// cloneArgs is the git invocation fetching only the tip of Ref.
func (r Remote) cloneArgs(dir string) []string {
	args := []string{"clone", "--quiet", "--depth", "1"}
	if r.Ref != "" {
		args = append(args, "--branch", r.Ref)
	}
	return append(args, "--", r.URL, dir)
}

// FromRemote returns a collection source cloned from spec (url or url#ref)
// the first time its tree is needed.
func FromRemote(spec string) *RemoteFS {
	return &RemoteFS{remote: ParseRemote(spec)}
}

// RemoteFS is a shallow checkout in a temporary directory, removed by Close.
type RemoteFS struct {
	remote Remote

	once sync.Once
	dir  string
	err  error
}

func (r *RemoteFS) Remote() Remote {
	return r.remote
}

func (r *RemoteFS) FS(ctx context.Context) (fs.FS, error) {
	r.once.Do(func() {
		r.dir, r.err = r.checkout(ctx)
	})
	if r.err != nil {
		return nil, r.err
	}

	return os.DirFS(r.dir), nil
}

func (r *RemoteFS) Root() string {
	return "."
}

func (r *RemoteFS) Close() error {
	if r.dir == "" {
		return nil
	}
	return os.RemoveAll(r.dir)
}

func (r *RemoteFS) checkout(ctx context.Context) (string, error) {
	git, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("fetching collection %s: %w", r.remote, ErrNoGit)
	}

	dir, err := os.MkdirTemp("", "hinagata-collection-*")
	if err != nil {
		return "", fmt.Errorf("creating checkout directory: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, git, r.remote.cloneArgs(dir)...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.RemoveAll(dir)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("fetching collection %s: %w: %s", r.remote, err, msg)
		}
		return "", fmt.Errorf("fetching collection %s: %w", r.remote, err)
	}

	return dir, nil
}
