package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/olimci/hinagata/pkg/config"
	"github.com/olimci/hinagata/pkg/iofs"
	"github.com/olimci/hinagata/pkg/version"
)

// ConfigFiles are the collection file names looked up at a source root, in
// order.
var ConfigFiles = []string{"hinagata.toml", "hinagata.yaml", "hinagata.yml", "hinagata.json"}

var (
	ErrNoCollection       = errors.New("no collection file found")
	ErrUnsupportedVersion = errors.New("collection requires a newer hinagata")
)

var gitKnownHosts = []string{
	"github.com/",
	"gitlab.com/",
	"bitbucket.org/",
	"codeberg.org/",
}

// Scaffold is a loaded collection file together with the source tree its
// file mappings read from.
type Scaffold struct {
	Config CollectionCfg
	File   string

	source iofs.Readable
	fsys   fs.FS
	base   string
}

// Load resolves target to a local directory or git remote and loads the
// collection at its root.
func Load(ctx context.Context, target string) (*Scaffold, error) {
	src, err := openSource(target)
	if err != nil {
		return nil, fmt.Errorf("resolving source: %w", err)
	}

	s, err := LoadFrom(ctx, src)
	if err != nil {
		src.Close()
		return nil, err
	}
	return s, nil
}

// LoadFS loads the collection rooted at root in fsys.
func LoadFS(ctx context.Context, fsys fs.FS, root string) (*Scaffold, error) {
	return LoadFrom(ctx, iofs.FromFS(fsys, root))
}

// LoadFrom loads the collection at the root of src. The returned Scaffold
// owns src and closes it on Close.
func LoadFrom(ctx context.Context, src iofs.Readable) (*Scaffold, error) {
	fsys, err := src.FS(ctx)
	if err != nil {
		return nil, fmt.Errorf("accessing source: %w", err)
	}

	base := src.Root()
	if base == "" {
		base = "."
	}

	for _, name := range ConfigFiles {
		p := path.Join(base, name)
		if _, err := fs.Stat(fsys, p); err != nil {
			continue
		}

		cfg, err := readConfig(fsys, p)
		if err != nil {
			return nil, err
		}

		return &Scaffold{
			Config: cfg,
			File:   name,
			source: src,
			fsys:   fsys,
			base:   base,
		}, nil
	}

	return nil, fmt.Errorf("%w in %s (looked for %s)", ErrNoCollection, base, strings.Join(ConfigFiles, ", "))
}

func readConfig(fsys fs.FS, p string) (CollectionCfg, error) {
	var cfg CollectionCfg

	file, err := fsys.Open(p)
	if err != nil {
		return cfg, fmt.Errorf("opening collection file: %w", err)
	}
	defer file.Close()

	if err := config.Decode(p, file, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding %s: %w", path.Base(p), err)
	}

	if err := version.Require(cfg.Metadata.HinagataVersion); err != nil {
		if errors.Is(err, version.ErrTooOld) {
			return cfg, fmt.Errorf("%w: %w", ErrUnsupportedVersion, err)
		}
		return cfg, fmt.Errorf("metadata.hinagata_version: %w", err)
	}

	return cfg, nil
}

// FS returns the source tree and the directory of the collection file in it.
func (s *Scaffold) FS() (fs.FS, string) {
	return s.fsys, s.base
}

func (s *Scaffold) Close() error {
	return s.source.Close()
}

// openSource determines the source type from the target string
func openSource(target string) (iofs.Readable, error) {
	if isRemoteURL(target) {
		return iofs.FromRemote(target), nil
	}

	if info, err := os.Stat(target); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", target)
		}
		return iofs.FromOS(target), nil
	}

	if looksLikeGitShorthand(target) {
		return iofs.FromRemote("https://" + target), nil
	}

	return nil, fmt.Errorf("cannot resolve %s: path does not exist and is not a valid remote URL", target)
}

func isRemoteURL(target string) bool {
	return strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "git://") ||
		strings.HasPrefix(target, "git@")
}

func looksLikeGitShorthand(target string) bool {
	for _, host := range gitKnownHosts {
		if strings.HasPrefix(target, host) {
			return true
		}
	}

	return false
}
