package genid_test

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/plus3/gencol/ecs/genid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type Units struct{}

type Tiles struct{}

func (Tiles) FixedArena() {}

func TestIdEncoding(t *testing.T) {
	tests := []struct {
		index      int
		generation uint32
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{0xFFFF, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index=%d,gen=%d", tt.index, tt.generation), func(t *testing.T) {
			id := genid.NewId[Units](tt.index, tt.generation)
			assert.Equal(t, tt.index, id.Index())
			assert.Equal(t, tt.generation, id.Generation())
			assert.Equal(t, tt.index, id.Untyped().Index())
			assert.Equal(t, tt.generation, id.Untyped().Generation())
		})
	}
}

func TestIdString(t *testing.T) {
	assert.Equal(t, "3v0", genid.First[Units](3).String())
	assert.Equal(t, "7v2", genid.NewId[Units](7, 2).String())
}

func TestIdLogObject(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, genid.NewId[Units](4, 9).MarshalLogObject(enc))

	assert.Equal(t, 4, enc.Fields["index"])
	assert.Equal(t, uint32(9), enc.Fields["generation"])
}

func TestNegativeIndexPanics(t *testing.T) {
	assert.Panics(t, func() { genid.First[Units](-1) })
}

func TestOversizedIndexPanics(t *testing.T) {
	tooBig := int(uint64(math.MaxUint32) + 1)

	assert.Panics(t, func() { genid.NewUntypedId(tooBig, 0) })
	assert.Panics(t, func() { genid.First[Units](tooBig) })
	assert.Panics(t, func() { genid.RangeOf[Units](0, tooBig) })
	assert.NotPanics(t, func() { genid.NewUntypedId(math.MaxUint32, 0) })
}

func TestIdRange(t *testing.T) {
	r := genid.RangeOf[Units](2, 5)

	assert.Equal(t, 2, r.Start())
	assert.Equal(t, 5, r.End())
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(genid.First[Units](2)))
	assert.True(t, r.Contains(genid.First[Units](4)))
	assert.False(t, r.Contains(genid.First[Units](5)))
	assert.False(t, r.Contains(genid.First[Units](1)))

	var indices []int
	for id := range r.All() {
		indices = append(indices, id.Index())
	}
	assert.Equal(t, []int{2, 3, 4}, indices)

	assert.Equal(t, 0, genid.RangeOf[Units](3, 3).Len())
	assert.Panics(t, func() { genid.RangeOf[Units](3, 2) })
}

func TestStable(t *testing.T) {
	id := genid.First[Tiles](3)
	assert.Equal(t, id, genid.Stable(id).Value)

	r := genid.RangeOf[Tiles](0, 4)
	assert.Equal(t, r, genid.StableRange(r).Value)
}

func TestAllocatorCreate(t *testing.T) {
	alloc := genid.NewAllocator[Units](4)

	a := alloc.Create()
	b := alloc.Create()

	assert.Equal(t, 0, a.Index())
	assert.Equal(t, 1, b.Index())
	assert.Equal(t, 2, alloc.Len())
	assert.Equal(t, 2, alloc.Live())
	assert.True(t, alloc.IsAlive(a))
	assert.True(t, alloc.IsAlive(b))
	assert.False(t, alloc.IsAlive(genid.First[Units](2)))
}

func TestAllocatorKillAndReuse(t *testing.T) {
	alloc := genid.NewAllocator[Units](4)

	a := alloc.Create()
	b := alloc.Create()

	require.True(t, alloc.Kill(a))
	assert.False(t, alloc.IsAlive(a))
	assert.False(t, alloc.Kill(a), "killing twice must fail")

	_, ok := alloc.Validate(a)
	assert.False(t, ok)

	valid, ok := alloc.Validate(b)
	require.True(t, ok)
	assert.Equal(t, b, valid.Value)

	// killed slots are not reused before they are released
	c := alloc.Create()
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, 2, alloc.Live())

	killed := slices.Collect(alloc.Killed())
	assert.Equal(t, []genid.Id[Units]{a}, killed)

	assert.Equal(t, 1, alloc.ReleaseKilled())
	assert.Equal(t, 0, alloc.ReleaseKilled())
	assert.Empty(t, slices.Collect(alloc.Killed()))

	reused := alloc.Create()
	assert.Equal(t, a.Index(), reused.Index())
	assert.Equal(t, a.Generation()+1, reused.Generation())
	assert.True(t, alloc.IsAlive(reused))
	assert.False(t, alloc.IsAlive(a))
	assert.Equal(t, 3, alloc.Len())
	assert.Equal(t, 3, alloc.Live())
}

func TestAllocatorKillManyIncludingZero(t *testing.T) {
	alloc := genid.NewAllocator[Units](0)

	var ids []genid.Id[Units]
	for range 10 {
		ids = append(ids, alloc.Create())
	}

	for _, id := range ids[:5] {
		require.True(t, alloc.Kill(id))
	}

	assert.ElementsMatch(t, ids[:5], slices.Collect(alloc.Killed()))
	assert.Equal(t, 5, alloc.Live())
	assert.Equal(t, 5, alloc.ReleaseKilled())

	var reused []int
	for range 5 {
		reused = append(reused, alloc.Create().Index())
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, reused)
	assert.Equal(t, 10, alloc.Len())
}

func TestAllocatorCreateRange(t *testing.T) {
	alloc := genid.NewAllocator[Tiles](0)
	alloc.Create()

	r := alloc.CreateRange(4)
	assert.Equal(t, 1, r.Start())
	assert.Equal(t, 5, r.End())
	assert.Equal(t, 5, alloc.Len())

	valid, ok := alloc.ValidateRange(r)
	require.True(t, ok)
	assert.Equal(t, r, valid.Value)

	_, ok = alloc.ValidateRange(genid.RangeOf[Tiles](3, 9))
	assert.False(t, ok)
}

func TestAllocatorValidateRangeRejectsReusedSlots(t *testing.T) {
	alloc := genid.NewAllocator[Units](0)
	r := alloc.CreateRange(3)

	require.True(t, alloc.Kill(genid.First[Units](1)))

	_, ok := alloc.ValidateRange(r)
	assert.False(t, ok)
}

func TestAllocatorFixedArenaCannotKill(t *testing.T) {
	alloc := genid.NewAllocator[Tiles](0)
	id := alloc.Create()

	assert.Panics(t, func() { alloc.Kill(id) })
	assert.True(t, alloc.IsAlive(id))
}

func TestAllocatorRejectsIdsOfFreeSlots(t *testing.T) {
	alloc := genid.NewAllocator[Units](0)

	a := alloc.Create()
	require.True(t, alloc.Kill(a))

	// the slot already holds the generation its next id will carry
	next := genid.NewId[Units](a.Index(), a.Generation()+1)
	assert.False(t, alloc.IsAlive(next), "killed slot")

	require.Equal(t, 1, alloc.ReleaseKilled())
	assert.False(t, alloc.IsAlive(next), "released slot")

	_, ok := alloc.Validate(next)
	assert.False(t, ok)
	assert.False(t, alloc.Kill(next))
	assert.Equal(t, 0, alloc.ReleaseKilled())

	x := alloc.Create()
	y := alloc.Create()
	assert.Equal(t, next, x)
	assert.NotEqual(t, x, y)
	assert.True(t, alloc.IsAlive(x))
	assert.True(t, alloc.IsAlive(y))
	assert.Equal(t, 2, alloc.Live())
	assert.Equal(t, 2, alloc.Len())
}
