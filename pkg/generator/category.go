package generator

import (
	"context"

	"github.com/olimci/hinagata/pkg/session"
)

// Category is the resolved view of a CategoryOptions record.
type Category struct {
	options *CategoryOptions
	gc      *session.Context
}

func newCategory(gc *session.Context, opts *CategoryOptions) *Category {
	return &Category{options: opts, gc: gc}
}

func (c *Category) Options() *CategoryOptions {
	return c.options
}

func (c *Category) Identifier() string {
	return c.options.Identifier
}

func (c *Category) DisplayName(ctx context.Context) (string, error) {
	return c.options.DisplayName.Resolve(ctx, c.gc, c.options)
}

// ComponentEditor returns a new editor over the category's components.
func (c *Category) ComponentEditor() *ComponentEditor {
	return NewComponentEditor(c.gc, FromValue(c.gc, c.options, c.options.Components))
}

func (c *Category) Components(ctx context.Context) ([]*Component, error) {
	return c.ComponentEditor().Items(ctx)
}
