package generator

import (
	"context"

	"github.com/olimci/hinagata/pkg/collection"
	"github.com/olimci/hinagata/pkg/resolve"
	"github.com/olimci/hinagata/pkg/session"
)

// Factory turns a validated options record into its resolved object.
type Factory[O Record, R any] func(gc *session.Context, opts O) R

// Editor edits a collection of options records and materializes it into
// resolved objects. Records are only checked when Items is read, so a record
// missing a required field can be added and removed again without error.
type Editor[O Record, R any] struct {
	gc     *session.Context
	items  collection.Collection[O]
	create Factory[O, R]
}

func NewEditor[O Record, R any](gc *session.Context, items collection.Collection[O], create Factory[O, R]) *Editor[O, R] {
	return &Editor[O, R]{
		gc:     gc,
		items:  items,
		create: create,
	}
}

func (e *Editor[O, R]) Add(opts ...O) {
	e.items.Add(opts...)
}

func (e *Editor[O, R]) Remove(where collection.Predicate[O]) {
	e.items.Remove(where)
}

// Options returns the materialized records without resolving them.
func (e *Editor[O, R]) Options(ctx context.Context) ([]O, error) {
	return e.items.Items(ctx)
}

// Items materializes the records, validates each against the live session
// and builds one resolved object per record, in order.
func (e *Editor[O, R]) Items(ctx context.Context) ([]R, error) {
	opts, err := e.items.Items(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]R, 0, len(opts))
	for _, o := range opts {
		if err := Validate(ctx, e.gc, o); err != nil {
			return nil, err
		}
		out = append(out, e.create(e.gc, o))
	}

	return out, nil
}

// Value exposes the edited records as a resolvable list, for writing the
// edits back into a parent record.
func (e *Editor[O, R]) Value() resolve.Value[[]O] {
	return resolve.Computed(func(ctx context.Context, gc *session.Context, owner any) ([]O, error) {
		return e.items.Items(ctx)
	})
}

// Validate resolves every declared field of rec with rec as the owner, then
// checks that required fields are present. A resolution failure is reported
// before any missing field.
func Validate(ctx context.Context, gc *session.Context, rec Record) error {
	fields := rec.Fields()
	present := make([]bool, len(fields))

	for i, f := range fields {
		ok, err := f.Check(ctx, gc, rec)
		if err != nil {
			return &ResolutionError{Kind: rec.Kind(), Identifier: rec.Identity(), Field: f.Name, Err: err}
		}
		present[i] = ok
	}

	for i, f := range fields {
		if f.Required && !present[i] {
			return &ConfigurationError{Kind: rec.Kind(), Identifier: rec.Identity(), Field: f.Name}
		}
	}
	return nil
}

// FromValue reads a resolvable child list as an editor base. The value is
// resolved on every read with owner as the owning record.
func FromValue[O any](gc *session.Context, owner any, v resolve.Value[[]O]) collection.Source[O] {
	return func(ctx context.Context) ([]O, error) {
		return v.Resolve(ctx, gc, owner)
	}
}
