package genid

// Valid wraps a value (an Id or an IdRange) that was proven valid against the
// allocator state it is used with. Components accept Valid ids for lookups and
// indexing so they never have to check generations themselves.
type Valid[V any] struct {
	Value V
}

// Assert wraps v without checking it. The caller vouches that v is valid.
func Assert[V any](v V) Valid[V] {
	return Valid[V]{Value: v}
}

// Stable lifts an id of a fixed arena. Fixed ids are never invalidated, so no
// allocator is needed to prove them.
func Stable[A Fixed](id Id[A]) Valid[Id[A]] {
	return Valid[Id[A]]{Value: id}
}

// StableRange lifts a range of a fixed arena.
func StableRange[A Fixed](r IdRange[A]) Valid[IdRange[A]] {
	return Valid[IdRange[A]]{Value: r}
}
