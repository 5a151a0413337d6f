package session

import (
	"maps"

	"github.com/olimci/hinagata/pkg/events"
)

func defaultOptions() *options {
	return &options{
		settings: make(map[string]any),
		events:   events.NoopHandler{},
	}
}

type options struct {
	settings  map[string]any
	asker     Asker
	generator Generator
	stage     *Stage
	events    events.Handler
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}

	return o
}

type Option func(*options)

// WithSettings seeds the context with initial settings. The map is copied.
func WithSettings(settings map[string]any) Option {
	return func(o *options) {
		maps.Copy(o.settings, settings)
	}
}

func WithAsker(asker Asker) Option {
	return func(o *options) {
		o.asker = asker
	}
}

func WithGenerator(gen Generator) Option {
	return func(o *options) {
		o.generator = gen
	}
}

func WithStage(stage *Stage) Option {
	return func(o *options) {
		o.stage = stage
	}
}

func WithEventHandler(handler events.Handler) Option {
	return func(o *options) {
		if handler == nil {
			handler = events.NoopHandler{}
		}
		o.events = handler
	}
}
