package genid

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// Allocator issues ids for arena A and tracks the current generation of every
// slot it ever issued. Killing an id bumps the generation of its slot right
// away, so the killed id stops validating. The slot itself is only handed out
// again after ReleaseKilled, which gives systems a window to clean up
// component data belonging to the killed ids.
type Allocator[A any] struct {
	generations []uint32
	issued      []bool
	freeSlots   []uint32
	killed      *intmap.Map[uint32, uint32]
}

// NewAllocator creates an allocator with room for capacity ids
func NewAllocator[A any](capacity int) *Allocator[A] {
	return &Allocator[A]{
		generations: make([]uint32, 0, capacity),
		issued:      make([]bool, 0, capacity),
		killed:      intmap.New[uint32, uint32](64),
	}
}

// Create issues a new id, reusing a released slot if one is available.
func (a *Allocator[A]) Create() Id[A] {
	if len(a.freeSlots) > 0 {
		index := a.freeSlots[len(a.freeSlots)-1]
		a.freeSlots = a.freeSlots[:len(a.freeSlots)-1]
		a.issued[index] = true
		return Id[A]{untyped: UntypedId{index: index, generation: a.generations[index]}}
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 0)
	a.issued = append(a.issued, true)
	return Id[A]{untyped: UntypedId{index: index}}
}

// CreateRange issues n fresh consecutive ids. Released slots are never used
// for ranges.
func (a *Allocator[A]) CreateRange(n int) IdRange[A] {
	start := len(a.generations)
	for range n {
		a.generations = append(a.generations, 0)
		a.issued = append(a.issued, true)
	}
	return RangeOf[A](start, start+n)
}

// Kill invalidates id. Returns false if the id was not alive.
// Panics for fixed arenas, whose ids must stay valid forever.
func (a *Allocator[A]) Kill(id Id[A]) bool {
	if isFixed[A]() {
		panic("cannot kill id " + id.String() + " of a fixed arena")
	}

	if !a.IsAlive(id) {
		return false
	}

	index := id.untyped.index
	a.killed.Put(index, a.generations[index])
	a.generations[index]++
	a.issued[index] = false
	return true
}

// Validate proves that id is alive
func (a *Allocator[A]) Validate(id Id[A]) (Valid[Id[A]], bool) {
	if !a.IsAlive(id) {
		return Valid[Id[A]]{}, false
	}
	return Valid[Id[A]]{Value: id}, true
}

// ValidateRange proves that every id in r was issued and is alive in its
// first generation.
func (a *Allocator[A]) ValidateRange(r IdRange[A]) (Valid[IdRange[A]], bool) {
	if int(r.end) > len(a.generations) {
		return Valid[IdRange[A]]{}, false
	}
	for index := r.start; index < r.end; index++ {
		if a.generations[index] != 0 || !a.issued[index] {
			return Valid[IdRange[A]]{}, false
		}
	}
	return Valid[IdRange[A]]{Value: r}, true
}

// IsAlive checks whether id was issued by this allocator and not killed since.
// A killed or released slot is not alive for any generation, including the
// one its next id will carry.
func (a *Allocator[A]) IsAlive(id Id[A]) bool {
	index := id.untyped.index
	if int(index) >= len(a.generations) {
		return false
	}
	return a.issued[index] && a.generations[index] == id.untyped.generation
}

// Killed yields the ids killed since the last call to ReleaseKilled, in no
// particular order.
func (a *Allocator[A]) Killed() iter.Seq[Id[A]] {
	return func(yield func(Id[A]) bool) {
		for index, generation := range a.killed.All() {
			if !yield(Id[A]{untyped: UntypedId{index: index, generation: generation}}) {
				return
			}
		}
	}
}

// ReleaseKilled makes the slots of all killed ids available for reuse and
// returns how many were released.
func (a *Allocator[A]) ReleaseKilled() int {
	released := a.killed.Len()
	if released == 0 {
		return 0
	}

	for index := range a.killed.Keys() {
		a.freeSlots = append(a.freeSlots, index)
	}
	a.killed.Clear()
	return released
}

// Len returns the number of slots ever issued. Components indexed by this
// allocator's ids need exactly this length.
func (a *Allocator[A]) Len() int {
	return len(a.generations)
}

// Live returns the number of ids currently alive
func (a *Allocator[A]) Live() int {
	return len(a.generations) - len(a.freeSlots) - a.killed.Len()
}
