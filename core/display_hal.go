package core

// Display renders the menu/status view. Show is called synchronously after
// every mutation, so implementations should only redraw.
type Display interface {
	Show(s Screen) error
}

// RigStatus summarizes all axes for a status indicator
type RigStatus uint8

const (
	StatusStopped RigStatus = iota
	StatusRunning
	StatusCalibrating
)

func (s RigStatus) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusCalibrating:
		return "CALIBRATING"
	}
	return "STOPPED"
}

// StatusIndicator shows the aggregate rig status, e.g. on an RGB LED
type StatusIndicator interface {
	ShowStatus(s RigStatus) error
}
