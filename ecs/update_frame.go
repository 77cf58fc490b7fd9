package ecs

type UpdateFrame struct {
	Frame     uint64
	DeltaTime float64
	Commands  *Commands
}

func newUpdateFrame(frame uint64, dt float64) *UpdateFrame {
	return &UpdateFrame{
		Frame:     frame,
		DeltaTime: dt,
		Commands:  newCommands(),
	}
}
