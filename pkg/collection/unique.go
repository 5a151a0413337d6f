package collection

import (
	"context"
	"slices"

	"github.com/olimci/hinagata/pkg/utils/set"
)

// UniqueEditor is an Editor that keeps at most one item per key. When two
// items share a key the later one wins and keeps its own position.
type UniqueEditor[T any, K comparable] struct {
	*Editor[T]
	key func(T) K
}

func NewUnique[T any, K comparable](src Source[T], key func(T) K) *UniqueEditor[T, K] {
	return &UniqueEditor[T, K]{
		Editor: FromSource(src),
		key:    key,
	}
}

func (u *UniqueEditor[T, K]) Key(item T) K {
	return u.key(item)
}

func (u *UniqueEditor[T, K]) Items(ctx context.Context) ([]T, error) {
	items, err := u.Editor.Items(ctx)
	if err != nil {
		return nil, err
	}
	return Dedupe(items, u.key), nil
}

// Set replaces whatever is stored under k with v.
func (u *UniqueEditor[T, K]) Set(k K, v T) {
	u.Delete(k)
	u.Add(v)
}

func (u *UniqueEditor[T, K]) Delete(k K) {
	u.Remove(func(item T) bool {
		return u.key(item) == k
	})
}

// Get returns the live item stored under k.
func (u *UniqueEditor[T, K]) Get(ctx context.Context, k K) (T, bool, error) {
	items, err := u.Items(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	for _, item := range items {
		if u.key(item) == k {
			return item, true, nil
		}
	}

	var zero T
	return zero, false, nil
}

// Dedupe keeps the last item for every key, preserving relative order.
func Dedupe[T any, K comparable](items []T, key func(T) K) []T {
	seen := set.New[K]()
	out := make([]T, 0, len(items))

	for i := len(items) - 1; i >= 0; i-- {
		if seen.Insert(key(items[i])) {
			out = append(out, items[i])
		}
	}

	slices.Reverse(out)
	return out
}
