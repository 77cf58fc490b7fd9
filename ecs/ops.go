package ecs

// Element-wise arithmetic over components.
//
// The binary operators take two iterators of the same arena and return a
// lazy iterator; nothing is computed until the result is assigned into a
// component or collected. Expressions nest without intermediate allocations:
//
//	target.Assign(ecs.Mul(ecs.Add(primes.Iter(), ints.Iter()), primes.Iter()))
//
// The *Assign variants modify a component in place.

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Float interface {
	~float32 | ~float64
}

type Complex interface {
	~complex64 | ~complex128
}

// Number is satisfied by every type supporting + - * /
type Number interface {
	Integer | Float | Complex
}

func Add[A any, T Number](l, r Iter[A, T]) Iter[A, T] {
	return ZipWith(l, r, func(a, b T) T { return a + b })
}

func Sub[A any, T Number](l, r Iter[A, T]) Iter[A, T] {
	return ZipWith(l, r, func(a, b T) T { return a - b })
}

func Mul[A any, T Number](l, r Iter[A, T]) Iter[A, T] {
	return ZipWith(l, r, func(a, b T) T { return a * b })
}

// Div divides element-wise. Integer division by zero panics when the item is read.
func Div[A any, T Number](l, r Iter[A, T]) Iter[A, T] {
	return ZipWith(l, r, func(a, b T) T { return a / b })
}

func Rem[A any, T Integer](l, r Iter[A, T]) Iter[A, T] {
	return ZipWith(l, r, func(a, b T) T { return a % b })
}

func And[A any, T Integer](l, r Iter[A, T]) Iter[A, T] {
	return ZipWith(l, r, func(a, b T) T { return a & b })
}

func Or[A any, T Integer](l, r Iter[A, T]) Iter[A, T] {
	return ZipWith(l, r, func(a, b T) T { return a | b })
}

func Xor[A any, T Integer](l, r Iter[A, T]) Iter[A, T] {
	return ZipWith(l, r, func(a, b T) T { return a ^ b })
}

func AndNot[A any, T Integer](l, r Iter[A, T]) Iter[A, T] {
	return ZipWith(l, r, func(a, b T) T { return a &^ b })
}

// Shl shifts every item of l left by the matching item of r. Negative shift
// counts panic when the item is read.
func Shl[A any, T, S Integer](l Iter[A, T], r Iter[A, S]) Iter[A, T] {
	return ZipWith(l, r, func(a T, s S) T { return a << s })
}

func Shr[A any, T, S Integer](l Iter[A, T], r Iter[A, S]) Iter[A, T] {
	return ZipWith(l, r, func(a T, s S) T { return a >> s })
}

func Neg[A any, T Signed | Float | Complex](it Iter[A, T]) Iter[A, T] {
	return Map(it, func(a T) T { return -a })
}

func Not[A any, T ~bool](it Iter[A, T]) Iter[A, T] {
	return Map(it, func(a T) T { return !a })
}

// Scale multiplies every item by k
func Scale[A any, T Number](it Iter[A, T], k T) Iter[A, T] {
	return Map(it, func(a T) T { return a * k })
}

// Offset adds k to every item
func Offset[A any, T Number](it Iter[A, T], k T) Iter[A, T] {
	return Map(it, func(a T) T { return a + k })
}

func AddAssign[A any, T Number](c *Component[A, T], rhs Iter[A, T]) {
	UpdateWith(c, rhs, func(lhs *T, v T) { *lhs += v })
}

func SubAssign[A any, T Number](c *Component[A, T], rhs Iter[A, T]) {
	UpdateWith(c, rhs, func(lhs *T, v T) { *lhs -= v })
}

func MulAssign[A any, T Number](c *Component[A, T], rhs Iter[A, T]) {
	UpdateWith(c, rhs, func(lhs *T, v T) { *lhs *= v })
}

func DivAssign[A any, T Number](c *Component[A, T], rhs Iter[A, T]) {
	UpdateWith(c, rhs, func(lhs *T, v T) { *lhs /= v })
}

func RemAssign[A any, T Integer](c *Component[A, T], rhs Iter[A, T]) {
	UpdateWith(c, rhs, func(lhs *T, v T) { *lhs %= v })
}

func AndAssign[A any, T Integer](c *Component[A, T], rhs Iter[A, T]) {
	UpdateWith(c, rhs, func(lhs *T, v T) { *lhs &= v })
}

func OrAssign[A any, T Integer](c *Component[A, T], rhs Iter[A, T]) {
	UpdateWith(c, rhs, func(lhs *T, v T) { *lhs |= v })
}

func XorAssign[A any, T Integer](c *Component[A, T], rhs Iter[A, T]) {
	UpdateWith(c, rhs, func(lhs *T, v T) { *lhs ^= v })
}

func ShlAssign[A any, T, S Integer](c *Component[A, T], rhs Iter[A, S]) {
	UpdateWith(c, rhs, func(lhs *T, s S) { *lhs <<= s })
}

func ShrAssign[A any, T, S Integer](c *Component[A, T], rhs Iter[A, S]) {
	UpdateWith(c, rhs, func(lhs *T, s S) { *lhs >>= s })
}
