package ecs

import (
	"github.com/plus3/gencol/ecs/genid"
	"go.uber.org/zap"
)

// Commands buffers component mutations that are applied at the end of a frame,
// after every system ran. Systems zip over components while they execute, so
// changes that would move or invalidate ids must wait until nobody iterates.
type Commands struct {
	removes []func()
	inserts []func()
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations
func (c *Commands) Len() int {
	return len(c.removes) + len(c.inserts) + len(c.defers)
}

// InsertLater queues an insert of value for id into comp.
func InsertLater[A, T any](c *Commands, comp *Component[A, T], id genid.Valid[genid.Id[A]], value T) {
	c.inserts = append(c.inserts, func() {
		comp.Insert(id, value)
	})
}

// RemoveLater queues the removal of the value of id from comp.
func RemoveLater[A, T any](c *Commands, comp *Component[A, Option[T]], id genid.Valid[genid.Id[A]]) {
	c.removes = append(c.removes, func() {
		Remove(comp, id)
	})
}

// KillLater queues killing id in alloc.
func KillLater[A any](c *Commands, alloc *genid.Allocator[A], id genid.Id[A]) {
	c.removes = append(c.removes, func() {
		alloc.Kill(id)
	})
}

// Flush applies all queued operations, reseting the buffer state.
// Removals run first, then inserts, then deferred functions. Operations queued
// by a running operation are applied in a further round before Flush returns.
func (c *Commands) Flush() {
	for round := 0; c.Len() > 0; round++ {
		removes, inserts, defers := c.removes, c.inserts, c.defers
		c.removes, c.inserts, c.defers = nil, nil, nil

		Logger().Debug("flushing commands",
			zap.Int("round", round),
			zap.Int("removes", len(removes)),
			zap.Int("inserts", len(inserts)),
			zap.Int("defers", len(defers)))

		for _, fn := range removes {
			fn()
		}

		for _, fn := range inserts {
			fn()
		}

		for _, fn := range defers {
			fn()
		}
	}
}
