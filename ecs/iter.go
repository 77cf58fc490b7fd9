package ecs

import "iter"

// Iter is a lazy, single-pass iterator over values that belong to arena A.
//
// The arena parameter is what makes combining components safe: Zip only
// accepts two iterators of the same arena, so values at the same position
// always describe the same id. No runtime check is involved.
//
// Iterators are consumed as they are read. Copies of an Iter share its
// position, and an exhausted Iter stays exhausted.
type Iter[A, T any] struct {
	next func() (T, bool)
	size int
}

// Pair is the item type of a zipped iterator
type Pair[L, R any] struct {
	Left  L
	Right R
}

// NewIter tags a pull function with arena A. sizeHint is the number of items
// next is expected to produce, or -1 if unknown.
func NewIter[A, T any](next func() (T, bool), sizeHint int) Iter[A, T] {
	return Iter[A, T]{next: next, size: sizeHint}
}

// Over iterates over a copy of every element of values, declaring that the
// slice is indexed by the ids of arena A.
func Over[A, T any](values []T) Iter[A, T] {
	var idx int
	return Iter[A, T]{
		next: func() (T, bool) {
			if idx >= len(values) {
				var zero T
				return zero, false
			}
			value := values[idx]
			idx++
			return value, true
		},
		size: len(values),
	}
}

// OverMut iterates over pointers to every element of values, declaring that
// the slice is indexed by the ids of arena A.
func OverMut[A, T any](values []T) Iter[A, *T] {
	var idx int
	return Iter[A, *T]{
		next: func() (*T, bool) {
			if idx >= len(values) {
				return nil, false
			}
			ptr := &values[idx]
			idx++
			return ptr, true
		},
		size: len(values),
	}
}

// Next advances the iterator. Returns false once it is exhausted.
func (it Iter[A, T]) Next() (T, bool) {
	if it.next == nil {
		var zero T
		return zero, false
	}
	return it.next()
}

// SizeHint returns the number of items the iterator was expected to produce
// when it was created, or -1 if unknown.
func (it Iter[A, T]) SizeHint() int {
	return it.size
}

// Seq adapts the iterator for use with range. Ranging consumes it.
func (it Iter[A, T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			value, ok := it.Next()
			if !ok || !yield(value) {
				return
			}
		}
	}
}

// ForEach consumes the iterator, calling f for every item
func (it Iter[A, T]) ForEach(f func(T)) {
	for {
		value, ok := it.Next()
		if !ok {
			return
		}
		f(value)
	}
}

// Zip pairs up the items of two iterators of the same arena. It stops as soon
// as either side is exhausted; a length mismatch is not reported.
func Zip[A, L, R any](l Iter[A, L], r Iter[A, R]) Iter[A, Pair[L, R]] {
	return ZipWith(l, r, func(lv L, rv R) Pair[L, R] {
		return Pair[L, R]{Left: lv, Right: rv}
	})
}

// ZipWith combines the items of two iterators of the same arena using f.
// It is equivalent to mapping over Zip(l, r), without building the pairs.
func ZipWith[A, L, R, U any](l Iter[A, L], r Iter[A, R], f func(L, R) U) Iter[A, U] {
	return Iter[A, U]{
		next: func() (U, bool) {
			lv, ok := l.Next()
			if !ok {
				var zero U
				return zero, false
			}
			rv, ok := r.Next()
			if !ok {
				var zero U
				return zero, false
			}
			return f(lv, rv), true
		},
		size: minSizeHint(l.size, r.size),
	}
}

// Map transforms the items of it with f. f runs once per item, only when the
// item is read.
func Map[A, T, U any](it Iter[A, T], f func(T) U) Iter[A, U] {
	return Iter[A, U]{
		next: func() (U, bool) {
			value, ok := it.Next()
			if !ok {
				var zero U
				return zero, false
			}
			return f(value), true
		},
		size: it.size,
	}
}

// Copied dereferences the items of it
func Copied[A, T any](it Iter[A, *T]) Iter[A, T] {
	return Map(it, func(ptr *T) T { return *ptr })
}

// Collect consumes it into a new component. The value at index i is the
// i-th item produced.
func Collect[A, T any](it Iter[A, T]) *Component[A, T] {
	values := make([]T, 0, max(it.size, 0))
	for value := range it.Seq() {
		values = append(values, value)
	}
	return ComponentFrom[A](values)
}

// CollectRef consumes an iterator of pointers into a new component holding
// copies of the pointed-to values.
func CollectRef[A, T any](it Iter[A, *T]) *Component[A, T] {
	return Collect(Copied(it))
}

func minSizeHint(a, b int) int {
	switch {
	case a < 0:
		return b
	case b < 0:
		return a
	default:
		return min(a, b)
	}
}
