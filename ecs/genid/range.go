package genid

import (
	"fmt"
	"iter"
	"math"
)

// IdRange is a run of consecutive ids [start, end) within arena A.
type IdRange[A any] struct {
	start uint32
	end   uint32
}

// RangeOf creates the range [start, end). Panics if end < start or either
// bound does not fit in 32 bits.
func RangeOf[A any](start, end int) IdRange[A] {
	if start < 0 || end < start || uint64(end) > math.MaxUint32 {
		panic(fmt.Sprintf("invalid id range [%d, %d)", start, end))
	}
	return IdRange[A]{start: uint32(start), end: uint32(end)}
}

func (r IdRange[A]) Start() int {
	return int(r.start)
}

func (r IdRange[A]) End() int {
	return int(r.end)
}

func (r IdRange[A]) Len() int {
	return int(r.end - r.start)
}

// Contains checks whether the index of id falls within the range
func (r IdRange[A]) Contains(id Id[A]) bool {
	index := id.untyped.index
	return index >= r.start && index < r.end
}

// All yields the ids of the range in their first generation
func (r IdRange[A]) All() iter.Seq[Id[A]] {
	return func(yield func(Id[A]) bool) {
		for index := r.start; index < r.end; index++ {
			if !yield(Id[A]{untyped: UntypedId{index: index}}) {
				return
			}
		}
	}
}

func (r IdRange[A]) String() string {
	return fmt.Sprintf("[%d, %d)", r.start, r.end)
}
