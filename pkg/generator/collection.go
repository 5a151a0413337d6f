package generator

import (
	"context"

	"github.com/olimci/hinagata/pkg/session"
)

// Collection is the resolved root of a scaffolding configuration, the
// object a host walks category by category during its write phase.
type Collection struct {
	options *CollectionOptions
	gc      *session.Context
}

// NewCollection validates opts and wraps it.
func NewCollection(ctx context.Context, gc *session.Context, opts *CollectionOptions) (*Collection, error) {
	if err := Validate(ctx, gc, opts); err != nil {
		return nil, err
	}
	return &Collection{options: opts, gc: gc}, nil
}

func (c *Collection) Options() *CollectionOptions {
	return c.options
}

// Question is asked when selecting components.
func (c *Collection) Question() string {
	return c.options.Question
}

// CategoryEditor returns a new editor over the collection's categories.
func (c *Collection) CategoryEditor() *CategoryEditor {
	return NewCategoryEditor(c.gc, FromValue(c.gc, c.options, c.options.Categories))
}

func (c *Collection) Categories(ctx context.Context) ([]*Category, error) {
	return c.CategoryEditor().Items(ctx)
}
