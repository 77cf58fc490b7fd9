package ecs

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
)

// IndexVec is a growable slice addressed by plain integer index.
// Slots are never removed, only overwritten, so the length only grows.
type IndexVec[T any] struct {
	values []T
}

// NewIndexVec creates an empty IndexVec with room for capacity values
func NewIndexVec[T any](capacity int) *IndexVec[T] {
	return &IndexVec[T]{values: make([]T, 0, capacity)}
}

// IndexVecFrom creates an IndexVec owning values. Slot i holds values[i].
func IndexVecFrom[T any](values []T) *IndexVec[T] {
	return &IndexVec[T]{values: values}
}

// InsertWith stores value at index. An existing slot is overwritten. Otherwise
// the vec grows to index+1 and every slot between the old end and index is set
// to the result of fill. fill is never called for index itself.
func (v *IndexVec[T]) InsertWith(index int, value T, fill func() T) {
	if index < 0 {
		panic(outOfRange(index, len(v.values)))
	}

	if index < len(v.values) {
		v.values[index] = value
		return
	}

	if gap := index - len(v.values); gap > 0 {
		Logger().Debug("filling gap before insert",
			zap.Int("len", len(v.values)),
			zap.Int("index", index))

		for range gap {
			v.values = append(v.values, fill())
		}
	}

	v.values = append(v.values, value)
}

// Insert stores value at index, filling any gap with zero values.
func (v *IndexVec[T]) Insert(index int, value T) {
	v.InsertWith(index, value, zeroOf[T])
}

// Get returns a pointer to the value at index, or nil if there is no such slot.
func (v *IndexVec[T]) Get(index int) *T {
	if index < 0 || index >= len(v.values) {
		return nil
	}
	return &v.values[index]
}

// At returns a pointer to the value at index. Panics if there is no such slot.
func (v *IndexVec[T]) At(index int) *T {
	if index < 0 || index >= len(v.values) {
		panic(outOfRange(index, len(v.values)))
	}
	return &v.values[index]
}

// Swap exchanges the values at a and b. Both must exist.
func (v *IndexVec[T]) Swap(a, b int) {
	if a < 0 || a >= len(v.values) {
		panic(outOfRange(a, len(v.values)))
	}
	if b < 0 || b >= len(v.values) {
		panic(outOfRange(b, len(v.values)))
	}
	v.values[a], v.values[b] = v.values[b], v.values[a]
}

// FillWith overwrites every slot, left to right, with the results of f
func (v *IndexVec[T]) FillWith(f func() T) {
	for i := range v.values {
		v.values[i] = f()
	}
}

// Slice returns the slots [lo, hi) as a slice sharing the vec's memory
func (v *IndexVec[T]) Slice(lo, hi int) []T {
	if lo < 0 || lo > hi {
		panic(fmt.Errorf("%w: range [%d, %d)", ErrIndexOutOfRange, lo, hi))
	}
	if hi > len(v.values) {
		panic(outOfRange(hi-1, len(v.values)))
	}
	return v.values[lo:hi:hi]
}

func (v *IndexVec[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.values {
			if !yield(value) {
				return
			}
		}
	}
}

func (v *IndexVec[T]) IterMut() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range v.values {
			if !yield(&v.values[i]) {
				return
			}
		}
	}
}

// Values returns the slots in index order. The slice shares the vec's memory.
func (v *IndexVec[T]) Values() []T {
	return v.values
}

func (v *IndexVec[T]) Len() int {
	return len(v.values)
}

func (v *IndexVec[T]) IsEmpty() bool {
	return len(v.values) == 0
}

// Clone returns a shallow copy of the vec
func (v *IndexVec[T]) Clone() *IndexVec[T] {
	return &IndexVec[T]{values: append([]T(nil), v.values...)}
}

// CloneFrom replaces the contents of v with a copy of src, reusing v's memory
func (v *IndexVec[T]) CloneFrom(src *IndexVec[T]) {
	v.values = append(v.values[:0], src.values...)
}

func zeroOf[T any]() T {
	var zero T
	return zero
}
