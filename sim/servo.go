package sim

import "sync"

// Servo records the commanded servo state
type Servo struct {
	mu      sync.Mutex
	on      bool
	changes int
}

// SetServo implements core.ServoDriver
func (s *Servo) SetServo(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.on != on {
		s.changes++
	}
	s.on = on
	return nil
}

// On returns the last commanded state
func (s *Servo) On() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

// Changes counts state changes
func (s *Servo) Changes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changes
}
