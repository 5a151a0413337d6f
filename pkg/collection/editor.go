// Package collection edits sequences declaratively. An Editor records adds
// and removals as an ordered action log over a base sequence and only applies
// them when Items is read, so the base can change underneath it.
package collection

import (
	"context"
	"slices"

	"github.com/olimci/hinagata/pkg/resolve"
)

// Source produces the base sequence of an editor. It is called on every read.
type Source[T any] func(ctx context.Context) ([]T, error)

// Static is a Source over a fixed sequence. The items are copied.
func Static[T any](items ...T) Source[T] {
	items = slices.Clone(items)
	return func(context.Context) ([]T, error) {
		return slices.Clone(items), nil
	}
}

// Provide is a Source calling fn on every read.
func Provide[T any](fn func(ctx context.Context) ([]T, error)) Source[T] {
	return fn
}

// Defer is a Source whose provider completes asynchronously.
func Defer[T any](fn func(ctx context.Context) *resolve.Deferred[[]T]) Source[T] {
	return func(ctx context.Context) ([]T, error) {
		d := fn(ctx)
		if d == nil {
			return nil, resolve.ErrNilDeferred
		}
		return d.Await(ctx)
	}
}

type Predicate[T any] func(T) bool

type ActionKind uint8

const (
	ActionAdd ActionKind = iota
	ActionRemove
)

// Action is one entry of the log. Add actions carry Items, remove actions
// carry Where.
type Action[T any] struct {
	Kind  ActionKind
	Items []T
	Where Predicate[T]
}

// Collection is what editors of T have in common.
type Collection[T any] interface {
	Add(items ...T)
	Remove(where Predicate[T])
	Items(ctx context.Context) ([]T, error)
}

type Editor[T any] struct {
	base    Source[T]
	actions []Action[T]
}

// New returns an editor over a fixed base sequence.
func New[T any](items ...T) *Editor[T] {
	return FromSource(Static(items...))
}

// FromSource returns an editor over src. A nil src is empty.
func FromSource[T any](src Source[T]) *Editor[T] {
	return &Editor[T]{base: src}
}

func (e *Editor[T]) Add(items ...T) {
	if len(items) == 0 {
		return
	}
	e.actions = append(e.actions, Action[T]{Kind: ActionAdd, Items: slices.Clone(items)})
}

func (e *Editor[T]) Remove(where Predicate[T]) {
	if where == nil {
		return
	}
	e.actions = append(e.actions, Action[T]{Kind: ActionRemove, Where: where})
}

// Actions returns a copy of the action log.
func (e *Editor[T]) Actions() []Action[T] {
	return slices.Clone(e.actions)
}

// Items reads the base and replays the action log over it. Nothing is
// cached: every call reads the base again and returns a new slice.
func (e *Editor[T]) Items(ctx context.Context) ([]T, error) {
	var base []T
	if e.base != nil {
		var err error
		if base, err = e.base(ctx); err != nil {
			return nil, err
		}
	}

	return Apply(base, e.actions), nil
}

// Apply folds actions over base left to right. A removal filters everything
// accumulated so far and never affects items added after it.
func Apply[T any](base []T, actions []Action[T]) []T {
	out := slices.Clone(base)
	if out == nil {
		out = make([]T, 0)
	}

	for _, a := range actions {
		switch a.Kind {
		case ActionAdd:
			out = append(out, a.Items...)
		case ActionRemove:
			out = slices.DeleteFunc(out, a.Where)
		}
	}

	return out
}
