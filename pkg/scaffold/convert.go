package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/olimci/hinagata/pkg/generator"
	"github.com/olimci/hinagata/pkg/resolve"
	"github.com/olimci/hinagata/pkg/session"
)

var ErrUnknownProcessor = errors.New("unknown processor")

// Options converts the collection file into generator options. Templated
// strings are parsed here; they are rendered against the session whenever
// the value is resolved.
func (s *Scaffold) Options() (*generator.CollectionOptions, error) {
	cfg := s.Config

	categories := make([]*generator.CategoryOptions, 0, len(cfg.Categories))
	for i, cat := range cfg.Categories {
		opts, err := s.convertCategory(cat)
		if err != nil {
			return nil, fmt.Errorf("categories[%d] (%s): %w", i, cat.ID, err)
		}
		categories = append(categories, opts)
	}

	question := cfg.Question
	if question == "" {
		question = "Select the components to generate"
	}

	return &generator.CollectionOptions{
		Question:   question,
		Categories: resolve.Literal(categories),
	}, nil
}

func (s *Scaffold) convertCategory(cfg CategoryCfg) (*generator.CategoryOptions, error) {
	name, err := stringValue("name", cfg.Name)
	if err != nil {
		return nil, err
	}

	components := make([]*generator.ComponentOptions, 0, len(cfg.Components))
	for i, c := range cfg.Components {
		opts, err := s.convertComponent(c)
		if err != nil {
			return nil, fmt.Errorf("components[%d] (%s): %w", i, c.ID, err)
		}
		components = append(components, opts)
	}

	return &generator.CategoryOptions{
		Identifier:  cfg.ID,
		DisplayName: name,
		Components:  resolve.Literal(components),
	}, nil
}

func (s *Scaffold) convertComponent(cfg ComponentCfg) (*generator.ComponentOptions, error) {
	name, err := stringValue("name", cfg.Name)
	if err != nil {
		return nil, err
	}
	desc, err := stringValue("description", cfg.Description)
	if err != nil {
		return nil, err
	}
	def, err := boolValue("default", cfg.Default)
	if err != nil {
		return nil, err
	}

	questions := make([]session.Question, 0, len(cfg.Questions))
	for i, q := range cfg.Questions {
		question, err := convertQuestion(q)
		if err != nil {
			return nil, fmt.Errorf("questions[%d]: %w", i, err)
		}
		questions = append(questions, question)
	}

	files := make([]*generator.FileMappingOptions, 0, len(cfg.Files))
	for i, f := range cfg.Files {
		fm, err := s.convertFile(f)
		if err != nil {
			return nil, fmt.Errorf("files[%d]: %w", i, err)
		}
		files = append(files, fm)
	}

	includes := make([]include, 0, len(cfg.Include))
	for i, inc := range cfg.Include {
		in, err := s.convertInclude(inc)
		if err != nil {
			return nil, fmt.Errorf("include[%d]: %w", i, err)
		}
		includes = append(includes, in)
	}

	opts := &generator.ComponentOptions{
		Identifier:     cfg.ID,
		DisplayName:    name,
		DefaultEnabled: def,
		Questions:      questions,
		FileMappings:   resolve.Literal(files),
	}
	if cfg.Description != "" {
		opts.Description = desc
	}
	if len(includes) > 0 {
		opts.FileMappings = s.expandIncludes(files, includes)
	}

	return opts, nil
}

func convertQuestion(cfg QuestionCfg) (session.Question, error) {
	if cfg.Name == "" {
		return session.Question{}, errors.New("question name is required")
	}

	kind, err := session.ParseQuestionKind(cfg.Kind)
	if err != nil {
		return session.Question{}, err
	}

	choices := make([]session.Choice, 0, len(cfg.Options))
	for _, opt := range cfg.Options {
		choices = append(choices, session.Choice{Label: opt, Value: opt})
	}

	if (kind == session.Select || kind == session.MultiSelect) && len(choices) == 0 {
		return session.Question{}, fmt.Errorf("%s question %q needs options", kind, cfg.Name)
	}

	return session.Question{
		Name:        cfg.Name,
		Prompt:      cfg.Prompt,
		Description: cfg.Description,
		Kind:        kind,
		Default:     cfg.Default,
		Choices:     choices,
	}, nil
}

func (s *Scaffold) convertFile(cfg FileCfg) (*generator.FileMappingOptions, error) {
	src, err := stringValue("source", cfg.Source)
	if err != nil {
		return nil, err
	}

	dest := cfg.Destination
	if dest == "" {
		dest = s.destinationFor(cfg.Source)
	}
	dst, err := stringValue("destination", dest)
	if err != nil {
		return nil, err
	}

	when, err := boolValue("when", cfg.When)
	if err != nil {
		return nil, err
	}

	proc, err := pipelineValue(cfg.Pipeline)
	if err != nil {
		return nil, err
	}

	return &generator.FileMappingOptions{
		Source:      src,
		Destination: dst,
		When:        when,
		Processor:   proc,
	}, nil
}

type include struct {
	glob        string
	exclude     []string
	strip       string
	destination resolve.Value[string]
	when        resolve.Value[bool]
	pipeline    resolve.Value[generator.ProcessorFunc]
}

func (s *Scaffold) convertInclude(cfg IncludeCfg) (include, error) {
	if cfg.Glob == "" {
		return include{}, errors.New("include glob is required")
	}
	for _, p := range append([]string{cfg.Glob}, cfg.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return include{}, fmt.Errorf("invalid glob %q", p)
		}
	}

	dst, err := stringValue("destination", cfg.Destination)
	if err != nil {
		return include{}, err
	}
	when, err := boolValue("when", cfg.When)
	if err != nil {
		return include{}, err
	}
	proc, err := pipelineValue(cfg.Pipeline)
	if err != nil {
		return include{}, err
	}

	return include{
		glob:        cfg.Glob,
		exclude:     cfg.Exclude,
		strip:       strings.Trim(cfg.Strip, "/"),
		destination: dst,
		when:        when,
		pipeline:    proc,
	}, nil
}

// expandIncludes returns the component's mappings as an asynchronous list:
// the explicit files followed by one mapping per file matching an include
// glob, found by walking the source tree when the list is resolved.
func (s *Scaffold) expandIncludes(files []*generator.FileMappingOptions, includes []include) resolve.Value[[]*generator.FileMappingOptions] {
	return resolve.Async(func(ctx context.Context, gc *session.Context, owner any) *resolve.Deferred[[]*generator.FileMappingOptions] {
		return resolve.Go(func() ([]*generator.FileMappingOptions, error) {
			out := slices.Clone(files)
			for _, inc := range includes {
				matched, err := s.glob(inc)
				if err != nil {
					return nil, err
				}
				for _, rel := range matched {
					out = append(out, s.includedFile(inc, rel))
				}
			}
			return out, nil
		})
	})
}

func (s *Scaffold) glob(inc include) ([]string, error) {
	sub, err := fs.Sub(s.fsys, s.base)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(sub, inc.glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("include %q: %w", inc.glob, err)
	}

	out := matches[:0]
	for _, m := range matches {
		if slices.Contains(ConfigFiles, m) || matchesGlobs(m, inc.exclude) {
			continue
		}
		out = append(out, m)
	}
	slices.Sort(out)

	return out, nil
}

func (s *Scaffold) includedFile(inc include, rel string) *generator.FileMappingOptions {
	target := rel
	if inc.strip != "" {
		target = stripDir(target, inc.strip)
	}
	target = s.destinationFor(target)

	return &generator.FileMappingOptions{
		Source: resolve.Literal(rel),
		Destination: resolve.Map(inc.destination, func(dir string) (string, error) {
			return path.Join(dir, target), nil
		}),
		When:      inc.when,
		Processor: inc.pipeline,
	}
}

// stripDir removes the leading directory dir from rel. Paths outside dir,
// including siblings sharing its name as a prefix, are returned unchanged.
func stripDir(rel, dir string) string {
	if rel == dir {
		return path.Base(rel)
	}
	if rest, ok := strings.CutPrefix(rel, dir+"/"); ok {
		return rest
	}
	return rel
}

// destinationFor applies the collection's suffix stripping and turns a
// leading underscore into a dot, so that dotfiles can be stored without
// being hidden in the source tree.
func (s *Scaffold) destinationFor(rel string) string {
	dir, base := path.Split(rel)

	if strings.HasPrefix(base, "_") && len(base) > 1 {
		base = "." + base[1:]
	}

	for _, suffix := range s.Config.StripSuffixes {
		if trimmed, ok := strings.CutSuffix(base, suffix); ok && trimmed != "" {
			base = trimmed
			break
		}
	}

	return dir + base
}

// stringValue returns a literal for plain strings and a computed value
// rendering the string as a template otherwise.
func stringValue(name, s string) (resolve.Value[string], error) {
	if !strings.Contains(s, "{{") {
		return resolve.Literal(s), nil
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(s)
	if err != nil {
		return resolve.Value[string]{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	return resolve.Computed(func(ctx context.Context, gc *session.Context, owner any) (string, error) {
		var b strings.Builder
		if err := tmpl.Execute(&b, templateData(gc)); err != nil {
			return "", fmt.Errorf("rendering %s: %w", name, err)
		}
		return b.String(), nil
	}), nil
}

// boolValue accepts a bool, a string parsing as one, or a template rendering
// to one. A template rendering to nothing is false.
func boolValue(name string, v any) (resolve.Value[bool], error) {
	switch v := v.(type) {
	case nil:
		return resolve.Value[bool]{}, nil
	case bool:
		return resolve.Literal(v), nil
	case string:
		if !strings.Contains(v, "{{") {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return resolve.Value[bool]{}, fmt.Errorf("%s: %w", name, err)
			}
			return resolve.Literal(b), nil
		}

		sv, err := stringValue(name, v)
		if err != nil {
			return resolve.Value[bool]{}, err
		}
		return resolve.Map(sv, func(s string) (bool, error) {
			s = strings.TrimSpace(s)
			if s == "" || s == "<no value>" {
				return false, nil
			}
			b, err := strconv.ParseBool(s)
			if err != nil {
				return false, fmt.Errorf("%s: %w", name, err)
			}
			return b, nil
		}), nil
	default:
		return resolve.Value[bool]{}, fmt.Errorf("%s: expected bool or string, got %T", name, v)
	}
}

// pipelineValue checks the processor names and returns a processor that
// hands the mapping to the session generator with that pipeline. An empty
// pipeline leaves the processor unset.
func pipelineValue(pipeline []string) (resolve.Value[generator.ProcessorFunc], error) {
	if len(pipeline) == 0 {
		return resolve.Value[generator.ProcessorFunc]{}, nil
	}

	for _, p := range pipeline {
		if !slices.Contains(Processors, p) {
			return resolve.Value[generator.ProcessorFunc]{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownProcessor, p, strings.Join(Processors, ", "))
		}
	}
	pipeline = slices.Clone(pipeline)

	return resolve.Computed(func(ctx context.Context, gc *session.Context, owner any) (generator.ProcessorFunc, error) {
		fm, ok := owner.(*generator.FileMappingOptions)
		if !ok {
			return nil, fmt.Errorf("pipeline owner is %T, not a file mapping", owner)
		}

		return func(ctx context.Context) error {
			src, err := fm.Source.Resolve(ctx, gc, fm)
			if err != nil {
				return err
			}
			dst, err := fm.Destination.Resolve(ctx, gc, fm)
			if err != nil {
				return err
			}
			return gc.Generate(ctx, session.Mapping{Source: src, Destination: dst, Pipeline: pipeline})
		}, nil
	}), nil
}
