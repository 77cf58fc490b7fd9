package ecs_test

import (
	"testing"

	"github.com/plus3/gencol/ecs/genid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Common test arenas
type Units struct{}

type Cells struct{}

// Tiles never invalidate their ids
type Tiles struct{}

func (Tiles) FixedArena() {}

type Position struct {
	X, Y float32
}

type Health struct {
	Current int
	Max     int
}

// unit returns a valid id for the unit at index i
func unit(i int) genid.Valid[genid.Id[Units]] {
	return genid.Assert(genid.First[Units](i))
}

func tile(i int) genid.Valid[genid.Id[Tiles]] {
	return genid.Stable(genid.First[Tiles](i))
}

// assertPanicsWith checks that fn panics with an error wrapping target
func assertPanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")

		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, target)
	}()

	fn()
}
