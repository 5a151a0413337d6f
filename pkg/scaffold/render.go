package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/olimci/hinagata/pkg/config"
	"github.com/olimci/hinagata/pkg/session"
	"github.com/tdewolff/minify/v2"
	gm "github.com/yuin/goldmark"
)

const (
	ProcessorCopy     = "copy"
	ProcessorTemplate = "template"
	ProcessorMarkdown = "markdown"
	ProcessorMinify   = "minify"
)

// Processors lists the processor names a pipeline may use.
var Processors = []string{ProcessorCopy, ProcessorTemplate, ProcessorMarkdown, ProcessorMinify}

// Renderer produces file content from a source tree and stages it. It is
// the session generator of a scaffolding run.
type Renderer struct {
	fsys      fs.FS
	base      string
	templates []string

	markdown  gm.Markdown
	minifier  *minify.M
	minifyCfg config.ConfigMinify
}

func NewRenderer(s *Scaffold, cfg config.ConfigRender) *Renderer {
	fsys, base := s.FS()

	return &Renderer{
		fsys:      fsys,
		base:      base,
		templates: s.Config.Templates,
		markdown:  cfg.Markdown.Build(),
		minifier:  cfg.Minify.Build(),
		minifyCfg: cfg.Minify,
	}
}

// Pipeline returns the processors run for m: its own pipeline, or template
// for sources matching a templates glob and copy for everything else.
func (r *Renderer) Pipeline(m session.Mapping) []string {
	if len(m.Pipeline) > 0 {
		return m.Pipeline
	}
	if matchesGlobs(m.Source, r.templates) {
		return []string{ProcessorTemplate}
	}
	return []string{ProcessorCopy}
}

func (r *Renderer) Generate(ctx context.Context, gc *session.Context, m session.Mapping) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := fs.ReadFile(r.fsys, path.Join(r.base, m.Source))
	if err != nil {
		return fmt.Errorf("reading %s: %w", m.Source, err)
	}

	pipeline := r.Pipeline(m)
	for _, p := range pipeline {
		content, err = r.process(p, gc, m, content)
		if err != nil {
			return fmt.Errorf("%s %s: %w", p, m.Source, err)
		}
	}

	if err := gc.Stage().Write(m.Destination, content); err != nil {
		return fmt.Errorf("staging %s: %w", m.Destination, err)
	}

	gc.Debugf(m.Destination, "staged from %s (%s)", m.Source, strings.Join(pipeline, " | "))
	return nil
}

func (r *Renderer) process(name string, gc *session.Context, m session.Mapping, content []byte) ([]byte, error) {
	switch name {
	case ProcessorCopy:
		return content, nil

	case ProcessorTemplate:
		tmpl, err := template.New(m.Source).Funcs(funcs).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parsing: %w", err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, templateData(gc)); err != nil {
			return nil, fmt.Errorf("executing: %w", err)
		}
		return buf.Bytes(), nil

	case ProcessorMarkdown:
		var buf bytes.Buffer
		if err := r.markdown.Convert(content, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case ProcessorMinify:
		mime := r.minifyCfg.MimeType(path.Ext(m.Destination))
		if mime == "" {
			return content, nil
		}
		return r.minifier.Bytes(mime, content)

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownProcessor, name)
	}
}
