package session

// K is a typed settings key.
type K[T any] string

// GetAs returns the setting under k, or the zero T when it is unset or of
// another type.
func GetAs[T any](c *Context, k K[T]) T {
	v, _ := Lookup(c, k)
	return v
}

// Lookup returns the setting under k and whether it held a T.
func Lookup[T any](c *Context, k K[T]) (T, bool) {
	if v, ok := c.Get(string(k)); ok {
		if vt, ok := v.(T); ok {
			return vt, true
		}
	}
	return *new(T), false
}

func SetAs[T any](c *Context, k K[T], v T) {
	c.Set(string(k), v)
}

// EnabledKey is the setting recording whether a component was selected.
func EnabledKey(component string) K[bool] {
	return K[bool]("components." + component)
}

// SelectionKey is the setting recording the components chosen in a category.
func SelectionKey(category string) K[[]string] {
	return K[[]string]("categories." + category)
}
