package generator

import (
	"context"

	"github.com/olimci/hinagata/pkg/session"
)

// Component is the resolved view of a ComponentOptions record. Nothing is
// cached: every getter resolves against the session as it is now.
type Component struct {
	options *ComponentOptions
	gc      *session.Context
}

func newComponent(gc *session.Context, opts *ComponentOptions) *Component {
	return &Component{options: opts, gc: gc}
}

func (c *Component) Options() *ComponentOptions {
	return c.options
}

func (c *Component) Identifier() string {
	return c.options.Identifier
}

func (c *Component) DisplayName(ctx context.Context) (string, error) {
	return c.options.DisplayName.Resolve(ctx, c.gc, c.options)
}

func (c *Component) Description(ctx context.Context) (string, error) {
	return c.options.Description.Resolve(ctx, c.gc, c.options)
}

// DefaultEnabled is false when unset.
func (c *Component) DefaultEnabled(ctx context.Context) (bool, error) {
	return c.options.DefaultEnabled.Resolve(ctx, c.gc, c.options)
}

// Enabled reports whether the component was selected during the prompt
// phase, falling back to DefaultEnabled when it was never asked about.
func (c *Component) Enabled(ctx context.Context) (bool, error) {
	if on, ok := session.Lookup(c.gc, session.EnabledKey(c.options.Identifier)); ok {
		return on, nil
	}
	return c.DefaultEnabled(ctx)
}

func (c *Component) Questions() []session.Question {
	return cloneQuestions(c.options.Questions)
}

// FileMappingEditor returns a new editor over the component's file mappings.
func (c *Component) FileMappingEditor() *FileMappingEditor {
	return NewFileMappingEditor(c.gc, FromValue(c.gc, c.options, c.options.FileMappings))
}

func (c *Component) FileMappings(ctx context.Context) ([]*FileMapping, error) {
	return c.FileMappingEditor().Items(ctx)
}
