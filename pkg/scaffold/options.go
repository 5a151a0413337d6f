package scaffold

import (
	"maps"
	"runtime"

	"github.com/olimci/hinagata/pkg/config"
	"github.com/olimci/hinagata/pkg/events"
	"github.com/olimci/hinagata/pkg/session"
)

func defaultOptions() *options {
	return &options{
		variables:  make(map[string]any),
		force:      false,
		maxWorkers: runtime.NumCPU(),
		events:     events.NoopHandler{},
		render:     config.DefaultConfig().Render,
	}
}

type options struct {
	variables  map[string]any
	force      bool
	dryRun     bool
	maxWorkers int
	asker      session.Asker
	events     events.Handler
	render     config.ConfigRender
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}

	return o
}

type Option func(o *options)

// WithVariables sets initial settings. They override the builtins and
// answer questions of the same name without asking.
func WithVariables(vars map[string]any) Option {
	return func(o *options) {
		o.variables = maps.Clone(vars)
		if o.variables == nil {
			o.variables = make(map[string]any)
		}
	}
}

func WithForce(force bool) Option {
	return func(o *options) {
		o.force = force
	}
}

// WithDryRun stages every file but commits nothing.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

func WithMaxWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxWorkers = n
		}
	}
}

// WithAsker sets how questions are answered. Without one, every question
// takes its default.
func WithAsker(asker session.Asker) Option {
	return func(o *options) {
		o.asker = asker
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

func WithRender(cfg config.ConfigRender) Option {
	return func(o *options) {
		o.render = cfg
	}
}
