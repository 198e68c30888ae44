package ledger

import "slices"

// collection is an ordered set of entities keyed by ID.
//
// Entities with pointer fields pass a clone function. Values are cloned on
// the way in and out so no caller shares memory with the stored entry.
type collection[T any] struct {
	order []string
	items map[string]T
	clone func(T) T
}

func newCollection[T any](values []T, id func(T) string, clone ...func(T) T) collection[T] {
	c := collection[T]{
		order: make([]string, 0, len(values)),
		items: make(map[string]T, len(values)),
	}
	if len(clone) > 0 {
		c.clone = clone[0]
	}
	for _, v := range values {
		c.put(id(v), v)
	}
	return c
}

func (c *collection[T]) copy(v T) T {
	if c.clone == nil {
		return v
	}
	return c.clone(v)
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	return c.copy(v), ok
}

// put replaces an existing entry in place or appends a new one.
func (c *collection[T]) put(id string, v T) {
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = c.copy(v)
}

// prepend inserts a new entry at the head of the collection.
func (c *collection[T]) prepend(id string, v T) {
	if _, ok := c.items[id]; ok {
		c.items[id] = c.copy(v)
		return
	}
	c.order = slices.Insert(c.order, 0, id)
	c.items[id] = c.copy(v)
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(o string) bool { return o == id })
	return true
}

func (c *collection[T]) first() (T, bool) {
	if len(c.order) == 0 {
		var zero T
		return zero, false
	}
	return c.copy(c.items[c.order[0]]), true
}

func (c *collection[T]) len() int {
	return len(c.order)
}

// list returns the entries in order. The slice is a copy.
func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.copy(c.items[id]))
	}
	return out
}
