package protocol

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Aggregate status values
const (
	StatusRunning = "RUNNING"
	StatusStopped = "STOPPED"
)

const axisKeyPrefix = "motor"

// AxisStatus is the per-axis part of a snapshot
type AxisStatus struct {
	Position     int  `json:"position"`
	Target       int  `json:"target"`
	Running      bool `json:"running"`
	Calibrating  bool `json:"calibrating"`
	FullForward  bool `json:"fullForward"`
	FullBackward bool `json:"fullBackward"`
}

// Snapshot is the complete state pushed to observers after every mutation.
// On the wire each axis is keyed "motor<N>" at the top level.
type Snapshot struct {
	Axes         []AxisStatus
	ServoState   bool
	GlobalStatus string
	IP           string // set by the network side, empty on the firmware
}

// Clone returns a copy that shares no memory with s
func (s Snapshot) Clone() Snapshot {
	s.Axes = append([]AxisStatus(nil), s.Axes...)
	return s
}

// AnyRunning reports whether any axis is running
func (s Snapshot) AnyRunning() bool {
	for _, a := range s.Axes {
		if a.Running {
			return true
		}
	}
	return false
}

// AppendJSON appends the wire encoding of s to dst without reflection,
// so the firmware can serialize a snapshot on every broadcast.
func (s Snapshot) AppendJSON(dst []byte) []byte {
	dst = append(dst, '{')
	for i, a := range s.Axes {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, '"')
		dst = append(dst, axisKeyPrefix...)
		dst = strconv.AppendInt(dst, int64(i), 10)
		dst = append(dst, `":{"position":`...)
		dst = strconv.AppendInt(dst, int64(a.Position), 10)
		dst = append(dst, `,"target":`...)
		dst = strconv.AppendInt(dst, int64(a.Target), 10)
		dst = append(dst, `,"running":`...)
		dst = strconv.AppendBool(dst, a.Running)
		dst = append(dst, `,"calibrating":`...)
		dst = strconv.AppendBool(dst, a.Calibrating)
		dst = append(dst, `,"fullForward":`...)
		dst = strconv.AppendBool(dst, a.FullForward)
		dst = append(dst, `,"fullBackward":`...)
		dst = strconv.AppendBool(dst, a.FullBackward)
		dst = append(dst, '}')
	}
	if len(s.Axes) > 0 {
		dst = append(dst, ',')
	}
	dst = append(dst, `"servoState":`...)
	dst = strconv.AppendBool(dst, s.ServoState)
	dst = append(dst, `,"globalStatus":`...)
	dst = strconv.AppendQuote(dst, s.GlobalStatus)
	if s.IP != "" {
		dst = append(dst, `,"ip":`...)
		dst = strconv.AppendQuote(dst, s.IP)
	}
	return append(dst, '}')
}

// MarshalJSON implements json.Marshaler
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return s.AppendJSON(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler. Axis keys may arrive in any
// order; gaps are filled with zero values.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	out := Snapshot{}
	for key, raw := range fields {
		switch {
		case key == "servoState":
			if err := json.Unmarshal(raw, &out.ServoState); err != nil {
				return err
			}
		case key == "globalStatus":
			if err := json.Unmarshal(raw, &out.GlobalStatus); err != nil {
				return err
			}
		case key == "ip":
			if err := json.Unmarshal(raw, &out.IP); err != nil {
				return err
			}
		case strings.HasPrefix(key, axisKeyPrefix):
			idx, err := strconv.Atoi(key[len(axisKeyPrefix):])
			if err != nil || idx < 0 || idx > 255 {
				return ErrMalformed
			}
			var a AxisStatus
			if err := json.Unmarshal(raw, &a); err != nil {
				return err
			}
			for len(out.Axes) <= idx {
				out.Axes = append(out.Axes, AxisStatus{})
			}
			out.Axes[idx] = a
		}
	}
	*s = out
	return nil
}

// DecodeSnapshot parses a snapshot document
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, ErrMalformed
	}
	return s, nil
}
