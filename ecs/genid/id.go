// Package genid provides generational identifiers scoped to an arena.
//
// An arena is any Go type used as a type parameter. It never exists at runtime;
// it only keeps identifiers of one domain from being used with components of
// another. Id[Units] and Id[Cells] are different types and do not mix.
package genid

import (
	"math"
	"strconv"

	"go.uber.org/zap/zapcore"
)

// UntypedId is an arena-erased identifier. It carries the raw slot index and
// the generation the slot had when the id was issued.
type UntypedId struct {
	index      uint32
	generation uint32
}

// NewUntypedId creates an UntypedId from a raw index and a generation.
// Panics if index does not fit in 32 bits.
func NewUntypedId(index int, generation uint32) UntypedId {
	if index < 0 {
		panic("negative id index " + strconv.Itoa(index))
	}
	if uint64(index) > math.MaxUint32 {
		panic("id index " + strconv.Itoa(index) + " overflows uint32")
	}
	return UntypedId{index: uint32(index), generation: generation}
}

// Index returns the raw slot index
func (u UntypedId) Index() int {
	return int(u.index)
}

// Generation returns the reuse counter of the slot
func (u UntypedId) Generation() uint32 {
	return u.generation
}

func (u UntypedId) String() string {
	return strconv.Itoa(int(u.index)) + "v" + strconv.Itoa(int(u.generation))
}

func (u UntypedId) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("index", int(u.index))
	enc.AddUint32("generation", u.generation)
	return nil
}

// Id is a generational identifier belonging to arena A
type Id[A any] struct {
	untyped UntypedId
}

// First returns the id of the given index in its first generation.
func First[A any](index int) Id[A] {
	return Id[A]{untyped: NewUntypedId(index, 0)}
}

// NewId creates an Id from a raw index and a generation
func NewId[A any](index int, generation uint32) Id[A] {
	return Id[A]{untyped: NewUntypedId(index, generation)}
}

// Index returns the raw slot index
func (id Id[A]) Index() int {
	return id.untyped.Index()
}

// Generation returns the reuse counter of the slot
func (id Id[A]) Generation() uint32 {
	return id.untyped.generation
}

// Untyped strips the arena from the id
func (id Id[A]) Untyped() UntypedId {
	return id.untyped
}

func (id Id[A]) String() string {
	return id.untyped.String()
}

func (id Id[A]) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return id.untyped.MarshalLogObject(enc)
}

// Fixed is implemented by arena marker types whose ids are never invalidated.
// Ids of a fixed arena can index components without a liveness check, see Stable.
//
//	type Tiles struct{}
//
//	func (Tiles) FixedArena() {}
type Fixed interface {
	FixedArena()
}

// isFixed reports whether A is a fixed arena
func isFixed[A any]() bool {
	var zero A
	_, ok := any(zero).(Fixed)
	return ok
}
