package ecs

import (
	"fmt"
	"iter"

	"github.com/plus3/gencol/ecs/genid"
)

// Component stores one value of type T per id of arena A. It is one column
// of a simulation: the position of every unit, the mass of every unit, and so
// on. All components of an arena are indexed by the same ids, which lets them
// be combined element by element through Iter.
//
// The zero value is an empty component ready to use.
type Component[A, T any] struct {
	values UntypedComponent[T]
}

// ComponentFrom creates a component where the value for the id with index i
// is values[i]. The component takes ownership of the slice.
func ComponentFrom[A, T any](values []T) *Component[A, T] {
	return &Component[A, T]{values: UntypedComponent[T]{values: IndexVec[T]{values: values}}}
}

// Insert stores value for id. Panics with ErrImplicitGap if id lies past the
// first missing slot: ids are issued in order, so a component that receives
// every new id never needs to invent values for the slots in between.
func (c *Component[A, T]) Insert(id genid.Valid[genid.Id[A]], value T) {
	c.InsertWith(id, value, func() T {
		panic(fmt.Errorf("%w: id %s, len %d", ErrImplicitGap, id.Value, c.Len()))
	})
}

// InsertWith stores value for id, filling any gap before it with the results of fill
func (c *Component[A, T]) InsertWith(id genid.Valid[genid.Id[A]], value T, fill func() T) {
	c.values.InsertWith(id.Value.Untyped(), value, fill)
}

// Get returns a pointer to the value of id, or nil if the component has no
// slot for it.
func (c *Component[A, T]) Get(id genid.Valid[genid.Id[A]]) *T {
	return c.values.Get(id.Value.Untyped())
}

// At returns a pointer to the value of id. Panics with ErrIndexOutOfRange if
// the component has no slot for it. Use genid.Stable to index with a plain
// id of a fixed arena.
func (c *Component[A, T]) At(id genid.Valid[genid.Id[A]]) *T {
	return c.values.At(id.Value.Untyped())
}

// Slice returns the values of a contiguous range of ids. The slice shares
// the component's memory.
func (c *Component[A, T]) Slice(r genid.Valid[genid.IdRange[A]]) []T {
	return c.values.values.Slice(r.Value.Start(), r.Value.End())
}

// Swap exchanges the values of a and b. Both must have a slot.
func (c *Component[A, T]) Swap(a, b genid.Valid[genid.Id[A]]) {
	c.values.Swap(a.Value.Untyped(), b.Value.Untyped())
}

// FillWith overwrites every value, in id order, with the results of f
func (c *Component[A, T]) FillWith(f func() T) {
	c.values.FillWith(f)
}

// Iter iterates over copies of the values in id order
func (c *Component[A, T]) Iter() Iter[A, T] {
	return Over[A](c.values.Values())
}

// IterMut iterates over pointers to the values in id order
func (c *Component[A, T]) IterMut() Iter[A, *T] {
	return OverMut[A](c.values.Values())
}

// All yields the raw index and value of every slot
func (c *Component[A, T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for idx, value := range c.values.Values() {
			if !yield(idx, value) {
				return
			}
		}
	}
}

// Assign overwrites the values in id order with the items of rhs. Pairing
// stops at the shorter of the two.
func (c *Component[A, T]) Assign(rhs Iter[A, T]) {
	UpdateWith(c, rhs, func(lhs *T, value T) { *lhs = value })
}

// AssignRef is Assign for an iterator of pointers, typically the IterMut of
// another component. The source is only read.
func (c *Component[A, T]) AssignRef(rhs Iter[A, *T]) {
	UpdateWith(c, rhs, func(lhs *T, value *T) { *lhs = *value })
}

// Values returns the values in id order. The slice shares the component's memory.
func (c *Component[A, T]) Values() []T {
	return c.values.Values()
}

func (c *Component[A, T]) Len() int {
	return c.values.Len()
}

func (c *Component[A, T]) IsEmpty() bool {
	return c.Len() == 0
}

func (c *Component[A, T]) Clone() *Component[A, T] {
	return &Component[A, T]{values: *c.values.Clone()}
}

func (c *Component[A, T]) CloneFrom(src *Component[A, T]) {
	c.values.CloneFrom(&src.values)
}

// UpdateWith zips the values of c with rhs and lets f modify each value in place.
func UpdateWith[A, T, R any](c *Component[A, T], rhs Iter[A, R], f func(*T, R)) {
	Zip(c.IterMut(), rhs).ForEach(func(p Pair[*T, R]) {
		f(p.Left, p.Right)
	})
}
