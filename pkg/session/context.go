// Package session holds the state shared by every resolution step of one
// scaffolding run: the answers collected so far, the staged file writes and
// the host surfaces used to ask questions and generate file content.
//
// A Context is not safe for concurrent use. Resolution is sequential and
// callers drive it in a fixed order, so no locking is done.
package session

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/olimci/hinagata/pkg/events"
)

var (
	ErrNotPrompting = errors.New("questions can only be asked during the prompt phase")
	ErrNoAsker      = errors.New("no asker configured")
	ErrNoGenerator  = errors.New("no content generator configured")
)

// Mapping is a resolved source/destination pair handed to a Generator.
// Pipeline names the content processors to run, empty for the generator's
// default.
type Mapping struct {
	Source      string
	Destination string
	Pipeline    []string
}

// Generator produces the content for a mapping and stages it on gc.
type Generator interface {
	Generate(ctx context.Context, gc *Context, m Mapping) error
}

// GeneratorFunc adapts a plain function into a Generator.
type GeneratorFunc func(ctx context.Context, gc *Context, m Mapping) error

func (f GeneratorFunc) Generate(ctx context.Context, gc *Context, m Mapping) error {
	return f(ctx, gc, m)
}

// Context is the generation context of a single run. Construct it with New;
// a zero Context accepts settings and drops events but has no stage.
type Context struct {
	settings  map[string]any
	stage     *Stage
	asker     Asker
	generator Generator
	events    events.Handler
	prompting bool
}

func New(opts ...Option) *Context {
	o := defaultOptions().apply(opts...)

	stage := o.stage
	if stage == nil {
		stage = NewStage()
	}

	return &Context{
		settings:  o.settings,
		stage:     stage,
		asker:     o.asker,
		generator: o.generator,
		events:    o.events,
	}
}

func (c *Context) Get(name string) (any, bool) {
	v, ok := c.settings[name]
	return v, ok
}

func (c *Context) Set(name string, v any) {
	if c.settings == nil {
		c.settings = make(map[string]any)
	}
	c.settings[name] = v
}

func (c *Context) Delete(name string) {
	delete(c.settings, name)
}

// Settings returns a copy of every setting, for use as template data.
func (c *Context) Settings() map[string]any {
	return maps.Clone(c.settings)
}

func (c *Context) Stage() *Stage {
	return c.stage
}

// Prompting reports whether the question phase is running.
func (c *Context) Prompting() bool {
	return c.prompting
}

// Prompt runs fn as the question phase. Ask is only usable inside fn.
func (c *Context) Prompt(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.prompting {
		return errors.New("prompt phase already running")
	}

	c.prompting = true
	defer func() { c.prompting = false }()

	return fn(ctx)
}

// Ask asks q through the configured Asker and records the answer under
// q.Name.
func (c *Context) Ask(ctx context.Context, q Question) (any, error) {
	if !c.prompting {
		return nil, fmt.Errorf("%w: %s", ErrNotPrompting, q.Name)
	}
	if c.asker == nil {
		return nil, ErrNoAsker
	}

	answer, err := c.asker.Ask(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("asking %s: %w", q.Name, err)
	}

	if q.Name != "" {
		c.Set(q.Name, answer)
	}
	c.Debugf(q.Name, "answered %v", answer)

	return answer, nil
}

// Generate delegates content generation for m to the host generator.
func (c *Context) Generate(ctx context.Context, m Mapping) error {
	if c.generator == nil {
		return ErrNoGenerator
	}
	return c.generator.Generate(ctx, c, m)
}

func (c *Context) Emit(event events.Event) {
	if c.events == nil {
		return
	}
	c.events.Handle(event)
}

func (c *Context) Debugf(source, format string, args ...any) {
	c.Emit(events.Event{Level: events.Debug, Source: source, Message: fmt.Sprintf(format, args...)})
}

func (c *Context) Infof(source, format string, args ...any) {
	c.Emit(events.Event{Level: events.Info, Source: source, Message: fmt.Sprintf(format, args...)})
}

func (c *Context) Warnf(source, format string, args ...any) {
	c.Emit(events.Event{Level: events.Warn, Source: source, Message: fmt.Sprintf(format, args...)})
}
