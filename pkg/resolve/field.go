package resolve

import (
	"context"

	"github.com/olimci/hinagata/pkg/session"
)

// Field describes one resolvable leaf of an options record, for the
// resolve-and-validate pass done when a record is instantiated.
type Field struct {
	Name     string
	Required bool

	check func(ctx context.Context, gc *session.Context, owner any) (bool, error)
}

// Require declares a field that must resolve to a non-zero value.
func Require[T comparable](name string, v Value[T]) Field {
	return Field{
		Name:     name,
		Required: true,
		check: func(ctx context.Context, gc *session.Context, owner any) (bool, error) {
			if !v.IsSet() {
				return false, nil
			}
			got, err := v.Resolve(ctx, gc, owner)
			if err != nil {
				return false, err
			}
			var zero T
			return got != zero, nil
		},
	}
}

// Optional declares a field that is resolved when set but may be absent.
func Optional[T any](name string, v Value[T]) Field {
	return Field{
		Name: name,
		check: func(ctx context.Context, gc *session.Context, owner any) (bool, error) {
			if !v.IsSet() {
				return false, nil
			}
			if _, err := v.Resolve(ctx, gc, owner); err != nil {
				return false, err
			}
			return true, nil
		},
	}
}

// Check resolves the field and reports whether a value is present.
func (f Field) Check(ctx context.Context, gc *session.Context, owner any) (present bool, err error) {
	if f.check == nil {
		return false, nil
	}
	return f.check(ctx, gc, owner)
}
