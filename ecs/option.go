package ecs

import (
	"fmt"

	"github.com/plus3/gencol/ecs/genid"
)

// Option is a value that may be absent. Components of Option values can have
// their values removed in place with Remove.
type Option[T any] struct {
	value T
	ok    bool
}

func Some[T any](value T) Option[T] {
	return Option[T]{value: value, ok: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Option[T]) IsSome() bool {
	return o.ok
}

func (o Option[T]) IsNone() bool {
	return !o.ok
}

// OrElse returns the value if present, fallback otherwise
func (o Option[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// Take moves the value out of o, leaving it empty
func (o *Option[T]) Take() Option[T] {
	taken := *o
	*o = Option[T]{}
	return taken
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Remove takes the value stored for id out of c, leaving None in its place.
// Returns None if id never had a value or its value was already removed.
func Remove[A, T any](c *Component[A, Option[T]], id genid.Valid[genid.Id[A]]) Option[T] {
	slot := c.Get(id)
	if slot == nil {
		return None[T]()
	}
	return slot.Take()
}
