package ecs

import (
	"iter"

	"github.com/plus3/gencol/ecs/genid"
)

// UntypedComponent stores one value per arena-erased id. Generations are
// ignored: the caller is responsible for only using ids that are alive.
type UntypedComponent[T any] struct {
	values IndexVec[T]
}

// UntypedComponentFrom creates a component where the value for index i is values[i]
func UntypedComponentFrom[T any](values []T) *UntypedComponent[T] {
	return &UntypedComponent[T]{values: IndexVec[T]{values: values}}
}

// Insert stores value for id, filling any gap with zero values
func (c *UntypedComponent[T]) Insert(id genid.UntypedId, value T) {
	c.values.InsertWith(id.Index(), value, zeroOf[T])
}

func (c *UntypedComponent[T]) InsertWith(id genid.UntypedId, value T, fill func() T) {
	c.values.InsertWith(id.Index(), value, fill)
}

// Get returns a pointer to the value of id, or nil
func (c *UntypedComponent[T]) Get(id genid.UntypedId) *T {
	return c.values.Get(id.Index())
}

// At returns a pointer to the value of id. Panics if the slot does not exist.
func (c *UntypedComponent[T]) At(id genid.UntypedId) *T {
	return c.values.At(id.Index())
}

func (c *UntypedComponent[T]) Swap(a, b genid.UntypedId) {
	c.values.Swap(a.Index(), b.Index())
}

func (c *UntypedComponent[T]) FillWith(f func() T) {
	c.values.FillWith(f)
}

func (c *UntypedComponent[T]) Iter() iter.Seq[T] {
	return c.values.Iter()
}

func (c *UntypedComponent[T]) IterMut() iter.Seq[*T] {
	return c.values.IterMut()
}

func (c *UntypedComponent[T]) Values() []T {
	return c.values.values
}

func (c *UntypedComponent[T]) Len() int {
	return c.values.Len()
}

func (c *UntypedComponent[T]) IsEmpty() bool {
	return c.Len() == 0
}

func (c *UntypedComponent[T]) Clone() *UntypedComponent[T] {
	return &UntypedComponent[T]{values: *c.values.Clone()}
}

func (c *UntypedComponent[T]) CloneFrom(src *UntypedComponent[T]) {
	c.values.CloneFrom(&src.values)
}
