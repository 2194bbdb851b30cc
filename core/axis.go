package core

import "axisrig/protocol"

// Direction of travel for an axis
type Direction int8

const (
	DirIdle     Direction = 0
	DirForward  Direction = 1
	DirBackward Direction = -1
)

func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBackward:
		return "backward"
	}
	return "idle"
}

// Mode is the motion mode of an axis. The modes are mutually exclusive;
// ModeManual covers both idle and bounded target seeks.
type Mode uint8

const (
	ModeManual Mode = iota
	ModeFullForward
	ModeFullBackward
	ModeCalibrating
)

func (m Mode) String() string {
	switch m {
	case ModeFullForward:
		return "full_forward"
	case ModeFullBackward:
		return "full_backward"
	case ModeCalibrating:
		return "calibrating"
	}
	return "manual"
}

// fullMode returns the full-travel mode for a direction
func fullMode(dir Direction) Mode {
	if dir == DirBackward {
		return ModeFullBackward
	}
	return ModeFullForward
}

// AxisPins are the GPIO lines of one actuator
type AxisPins struct {
	Forward  GPIOPin // drive output, high = move forward
	Backward GPIOPin // drive output, high = move backward
	Limit    GPIOPin // zero limit switch input
}

// Axis is the tracked state of one linear actuator. Position is an open-loop
// estimate in distance units, advanced one unit per StepDuration of drive.
type Axis struct {
	Position       int
	Target         int
	ManualDistance int
	Direction      Direction
	Running        bool
	Mode           Mode
	LastTick       uint32

	// seekSpan is Target-Position at the start of a bounded seek; the seek
	// ends when ManualDistance reaches it.
	seekSpan int
}

// Calibrating reports whether the axis is seeking its zero limit
func (a Axis) Calibrating() bool { return a.Mode == ModeCalibrating }

// FullForward reports whether the axis is in forward full travel
func (a Axis) FullForward() bool { return a.Mode == ModeFullForward }

// FullBackward reports whether the axis is in backward full travel
func (a Axis) FullBackward() bool { return a.Mode == ModeFullBackward }

// Seeking reports whether a bounded manual seek is in progress
func (a *Axis) Seeking() bool { return a.Running && a.Mode == ModeManual }

// seekDone reports whether ManualDistance has reached the seek span in the
// direction of travel
func (a *Axis) seekDone() bool {
	switch a.Direction {
	case DirForward:
		return a.ManualDistance >= a.seekSpan
	case DirBackward:
		return a.ManualDistance <= a.seekSpan
	}
	return true
}

func (a *Axis) status() protocol.AxisStatus {
	return protocol.AxisStatus{
		Position:     a.Position,
		Target:       a.Target,
		Running:      a.Running,
		Calibrating:  a.Calibrating(),
		FullForward:  a.FullForward(),
		FullBackward: a.FullBackward(),
	}
}
