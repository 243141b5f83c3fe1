package ecs

import "time"

// System is one step of a frame. Systems may declare Query and Singleton
// fields; the Scheduler wires them to its Storage on registration and
// refreshes every Query before the frame starts.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during a single Scheduler.Once call.
type UpdateFrame struct {
	// DeltaTime is the time since the previous frame, in seconds.
	DeltaTime float64
	// Now is the frame timestamp taken from the scheduler clock.
	Now      time.Time
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, now time.Time, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Now:       now,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
