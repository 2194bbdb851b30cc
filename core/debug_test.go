package core

import (
	"errors"
	"testing"
)

func TestDebugPrintln(t *testing.T) {
	var got []string
	SetDebugWriter(func(s string) { got = append(got, s) })
	defer SetDebugWriter(func(string) {})
	defer SetDebugEnabled(false)

	DebugPrintln("dropped while disabled")
	if len(got) != 0 {
		t.Fatalf("disabled output written: %q", got)
	}

	SetDebugEnabled(true)
	DebugPrintln("hello")
	debugError("servo", errors.New("stalled"))
	debugError("servo", nil)

	want := []string{"hello", "[servo] stalled"}
	if len(got) != len(want) {
		t.Fatalf("output = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDriverSingletons(t *testing.T) {
	defer SetGPIODriver(nil)
	defer SetServoDriver(nil)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("MustGPIO did not panic without a driver")
			}
		}()
		MustGPIO()
	}()

	g := newFakeGPIO()
	SetGPIODriver(g)
	if MustGPIO() != GPIODriver(g) {
		t.Error("MustGPIO returned a different driver")
	}

	s := &recordingServo{}
	SetServoDriver(s)
	if MustServo() != ServoDriver(s) {
		t.Error("MustServo returned a different driver")
	}
}
