// Package resolve implements configuration values that are decided at the
// point of use rather than at declaration.
//
// A Value is exactly one of: a literal, a function computing the value from
// the live session, or a function returning a Deferred that completes with
// the value later. The variant is fixed by the constructor, so a literal
// whose type happens to be a function is still a literal and is never
// called.
package resolve

import (
	"context"
	"errors"

	"github.com/olimci/hinagata/pkg/session"
)

var (
	ErrNilFunc     = errors.New("computed value has no function")
	ErrNilDeferred = errors.New("async value returned no deferred")
)

type Kind uint8

const (
	KindUnset Kind = iota
	KindLiteral
	KindComputed
	KindAsync
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindComputed:
		return "computed"
	case KindAsync:
		return "async"
	default:
		return "unset"
	}
}

// Func computes a value from the session. owner is the options record the
// value belongs to.
type Func[T any] func(ctx context.Context, gc *session.Context, owner any) (T, error)

// AsyncFunc starts computing a value and returns a handle to its result.
type AsyncFunc[T any] func(ctx context.Context, gc *session.Context, owner any) *Deferred[T]

// Value is a resolvable configuration field. The zero Value is unset.
type Value[T any] struct {
	kind    Kind
	literal T
	fn      Func[T]
	async   AsyncFunc[T]
}

func Literal[T any](v T) Value[T] {
	return Value[T]{kind: KindLiteral, literal: v}
}

func Computed[T any](fn Func[T]) Value[T] {
	return Value[T]{kind: KindComputed, fn: fn}
}

func Async[T any](fn AsyncFunc[T]) Value[T] {
	return Value[T]{kind: KindAsync, async: fn}
}

func (v Value[T]) Kind() Kind {
	return v.kind
}

func (v Value[T]) IsSet() bool {
	return v.kind != KindUnset
}

// Resolve produces the concrete value. Errors returned by the function or
// carried by the deferred result are returned as is.
func (v Value[T]) Resolve(ctx context.Context, gc *session.Context, owner any) (T, error) {
	var zero T

	switch v.kind {
	case KindLiteral:
		return v.literal, nil

	case KindComputed:
		if v.fn == nil {
			return zero, ErrNilFunc
		}
		return v.fn(ctx, gc, owner)

	case KindAsync:
		if v.async == nil {
			return zero, ErrNilFunc
		}
		d := v.async(ctx, gc, owner)
		if d == nil {
			return zero, ErrNilDeferred
		}
		return d.Await(ctx)

	default:
		return zero, nil
	}
}

// Resolve resolves v against gc with owner as the owning record.
func Resolve[T any](ctx context.Context, gc *session.Context, owner any, v Value[T]) (T, error) {
	return v.Resolve(ctx, gc, owner)
}

// Map returns a computed value applying fn to the resolution of v.
func Map[T, U any](v Value[T], fn func(T) (U, error)) Value[U] {
	return Computed(func(ctx context.Context, gc *session.Context, owner any) (U, error) {
		t, err := v.Resolve(ctx, gc, owner)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(t)
	})
}
