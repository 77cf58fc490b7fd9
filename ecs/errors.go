package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is the panic cause when a slot is indexed past the end
	// of its component.
	ErrIndexOutOfRange = errors.New("component index out of range")

	// ErrImplicitGap is the panic cause when a typed insert would have to
	// invent values for slots between the end of a component and the target id.
	// Ids are issued in order, so components that receive every new id never
	// have gaps.
	ErrImplicitGap = errors.New("insert leaves an implicit gap")
)

func outOfRange(index, length int) error {
	return fmt.Errorf("%w: index %d, len %d", ErrIndexOutOfRange, index, length)
}
