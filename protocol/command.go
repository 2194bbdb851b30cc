package protocol

import "encoding/json"

// Remote command types
const (
	CmdSetTarget       = "set_target"
	CmdSetAllTargets   = "set_all_targets"
	CmdCalibrate       = "calibrate"
	CmdCalibrateAll    = "calibrate_all"
	CmdFullForward     = "full_forward"
	CmdFullBackward    = "full_backward"
	CmdAllFullForward  = "all_full_forward"
	CmdAllFullBackward = "all_full_backward"
	CmdEmergencyStop   = "emergency_stop"
	CmdSetServo        = "set_servo"
	CmdGetIP           = "get_ip"
)

// Argument field names as they appear in the "data" object
const (
	FieldMotor  = "motor"
	FieldTarget = "target"
	FieldState  = "state"
)

// Args holds the optional fields of a command's "data" object.
// Pointers distinguish a missing field from a zero value.
type Args struct {
	Motor  *int  `json:"motor,omitempty"`
	Target *int  `json:"target,omitempty"`
	State  *bool `json:"state,omitempty"`
}

// Has reports whether the named field was present
func (a Args) Has(field string) bool {
	switch field {
	case FieldMotor:
		return a.Motor != nil
	case FieldTarget:
		return a.Target != nil
	case FieldState:
		return a.State != nil
	}
	return false
}

// Command is one decoded remote message
type Command struct {
	Type string `json:"type"`
	Data Args   `json:"data"`
}

// DecodeCommand parses {"type": ..., "data": {...}}.
// It rejects unparsable JSON and an empty type; whether the type is known
// is decided by the command registry.
func DecodeCommand(b []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(b, &cmd); err != nil {
		return Command{}, ErrMalformed
	}
	if cmd.Type == "" {
		return Command{}, ErrMalformed
	}
	return cmd, nil
}

// Encode serializes the command in the same shape DecodeCommand accepts
func (c Command) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// IntArg returns a pointer to v, for building Args literals
func IntArg(v int) *int { return &v }

// BoolArg returns a pointer to v, for building Args literals
func BoolArg(v bool) *bool { return &v }
