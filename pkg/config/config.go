package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/olimci/hinagata/pkg/version"

	gm "github.com/yuin/goldmark"
	gmext "github.com/yuin/goldmark/extension"
	gmparse "github.com/yuin/goldmark/parser"
	gmrenderer "github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
	minjson "github.com/tdewolff/minify/v2/json"
	minsvg "github.com/tdewolff/minify/v2/svg"
)

// FileNames lists the user configuration files looked up in the config
// directory, in order.
var FileNames = []string{"config.toml", "config.yaml", "config.yml", "config.json"}

// Config is the user configuration of the hinagata command.
type Config struct {
	Hinagata  ConfigHinagata `toml:"hinagata" yaml:"hinagata" json:"hinagata"`
	Defaults  ConfigDefaults `toml:"defaults" yaml:"defaults" json:"defaults"`
	Variables map[string]any `toml:"variables" yaml:"variables" json:"variables"`
	Render    ConfigRender   `toml:"render" yaml:"render" json:"render"`
}

type ConfigHinagata struct {
	Version string `toml:"version" yaml:"version" json:"version"`
}

// ConfigDefaults holds defaults for flags of the init command.
type ConfigDefaults struct {
	Source     string `toml:"source" yaml:"source" json:"source"`
	Output     string `toml:"output" yaml:"output" json:"output"`
	Force      bool   `toml:"force" yaml:"force" json:"force"`
	MaxWorkers int    `toml:"max_workers" yaml:"max_workers" json:"max_workers"`
	LogLevel   string `toml:"log_level" yaml:"log_level" json:"log_level"`
}

type ConfigRender struct {
	Markdown ConfigGoldmark `toml:"markdown" yaml:"markdown" json:"markdown"`
	Minify   ConfigMinify   `toml:"minify" yaml:"minify" json:"minify"`
}

type ConfigGoldmark struct {
	Extensions []string               `toml:"extensions" yaml:"extensions" json:"extensions"`
	Parser     ConfigGoldmarkParser   `toml:"parser" yaml:"parser" json:"parser"`
	Renderer   ConfigGoldmarkRenderer `toml:"renderer" yaml:"renderer" json:"renderer"`
}

type ConfigGoldmarkParser struct {
	AutoHeadingID bool `toml:"auto_heading_id" yaml:"auto_heading_id" json:"auto_heading_id"`
	Attribute     bool `toml:"attribute" yaml:"attribute" json:"attribute"`
}

type ConfigGoldmarkRenderer struct {
	Hardbreaks bool `toml:"hardbreaks" yaml:"hardbreaks" json:"hardbreaks"`
	XHTML      bool `toml:"XHTML" yaml:"XHTML" json:"XHTML"`
}

// ConfigMinify selects the media types the minify processor handles.
type ConfigMinify struct {
	Types        []string `toml:"types" yaml:"types" json:"types"`
	KeepComments bool     `toml:"keep_comments" yaml:"keep_comments" json:"keep_comments"`
}

// DefaultConfig constructs a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Hinagata: ConfigHinagata{
			Version: version.String(),
		},
		Defaults: ConfigDefaults{
			Output:     ".",
			MaxWorkers: runtime.NumCPU(),
			LogLevel:   "info",
		},
		Variables: map[string]any{},
		Render: ConfigRender{
			Markdown: ConfigGoldmark{
				Extensions: []string{
					"gfm",
					"table",
					"strikethrough",
					"tasklist",
					"deflist",
					"footnotes",
					"typographer",
				},
			},
			Minify: ConfigMinify{
				Types: []string{"html", "css", "js", "json", "svg"},
			},
		},
	}
}

// DefaultPath returns the first existing configuration file in the user
// configuration directory, or "" when there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	for _, name := range FileNames {
		p := filepath.Join(dir, "hinagata", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// Load loads a Config from a file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if err := decodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the Config and fills in defaults.
func (c *Config) Validate() error {
	if err := version.Require(c.Hinagata.Version); err != nil {
		return fmt.Errorf("hinagata.version: %w", err)
	}

	if strings.TrimSpace(c.Defaults.Output) == "" {
		c.Defaults.Output = "."
	}
	if c.Defaults.MaxWorkers < 0 {
		return errors.New("defaults.max_workers must be >= 0")
	}
	if c.Defaults.MaxWorkers == 0 {
		c.Defaults.MaxWorkers = runtime.NumCPU()
	}

	switch strings.ToLower(strings.TrimSpace(c.Defaults.LogLevel)) {
	case "":
		c.Defaults.LogLevel = "info"
	case "debug", "info", "warn", "error":
		c.Defaults.LogLevel = strings.ToLower(strings.TrimSpace(c.Defaults.LogLevel))
	default:
		return fmt.Errorf("defaults.log_level must be one of debug, info, warn, error (got %q)", c.Defaults.LogLevel)
	}

	if c.Variables == nil {
		c.Variables = map[string]any{}
	}

	for _, t := range c.Render.Minify.Types {
		if _, ok := minifyMimes[strings.ToLower(strings.TrimSpace(t))]; !ok {
			return fmt.Errorf("render.minify.types: unknown type %q", t)
		}
	}

	return nil
}

func (cfg ConfigGoldmark) Build() gm.Markdown {
	var (
		exts       []gm.Extender
		parserOpts []gmparse.Option
		htmlOpts   []gmrenderer.Option
	)

	for _, name := range cfg.Extensions {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "gfm":
			exts = append(exts, gmext.GFM)
		case "table", "tables":
			exts = append(exts, gmext.Table)
		case "strikethrough":
			exts = append(exts, gmext.Strikethrough)
		case "tasklist", "task-list":
			exts = append(exts, gmext.TaskList)
		case "deflist", "definition-list":
			exts = append(exts, gmext.DefinitionList)
		case "footnote", "footnotes":
			exts = append(exts, gmext.Footnote)
		case "linkify":
			exts = append(exts, gmext.Linkify)
		case "typographer", "smartypants":
			exts = append(exts, gmext.Typographer)
		default:
		}
	}

	if cfg.Parser.AutoHeadingID {
		parserOpts = append(parserOpts, gmparse.WithAutoHeadingID())
	}
	if cfg.Parser.Attribute {
		parserOpts = append(parserOpts, gmparse.WithAttribute())
	}

	htmlOpts = append(htmlOpts, gmhtml.WithUnsafe())

	if cfg.Renderer.Hardbreaks {
		htmlOpts = append(htmlOpts, gmhtml.WithHardWraps())
	}
	if cfg.Renderer.XHTML {
		htmlOpts = append(htmlOpts, gmhtml.WithXHTML())
	}

	opts := make([]gm.Option, 0, 3)
	if len(exts) > 0 {
		opts = append(opts, gm.WithExtensions(exts...))
	}
	if len(parserOpts) > 0 {
		opts = append(opts, gm.WithParserOptions(parserOpts...))
	}
	opts = append(opts, gm.WithRendererOptions(htmlOpts...))

	return gm.New(opts...)
}

var minifyMimes = map[string]string{
	"html": "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"json": "application/json",
	"svg":  "image/svg+xml",
}

// MimeType returns the media type minified for files with extension ext
// (".html", ".css", ...), or "" when ext is not minified.
func (cfg ConfigMinify) MimeType(ext string) string {
	name := strings.TrimPrefix(strings.ToLower(ext), ".")
	if name == "htm" {
		name = "html"
	}
	if name == "mjs" {
		name = "js"
	}

	for _, t := range cfg.Types {
		if strings.ToLower(strings.TrimSpace(t)) == name {
			return minifyMimes[name]
		}
	}
	return ""
}

func (cfg ConfigMinify) Build() *minify.M {
	m := minify.New()

	for _, t := range cfg.Types {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "html":
			m.Add("text/html", &minhtml.Minifier{
				KeepComments:     cfg.KeepComments,
				KeepDocumentTags: true,
				KeepEndTags:      true,
			})
		case "css":
			m.AddFunc("text/css", mincss.Minify)
		case "js":
			m.AddFunc("application/javascript", minjs.Minify)
		case "json":
			m.AddFunc("application/json", minjson.Minify)
		case "svg":
			m.AddFunc("image/svg+xml", minsvg.Minify)
		}
	}

	return m
}
