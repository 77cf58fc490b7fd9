package ecs

// System represents a behavior that runs once per frame over the components
// it holds. Systems keep references to the components they read and write as
// fields, together with any state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a function to the System interface
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
