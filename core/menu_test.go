package core

import (
	"strings"
	"testing"
)

// navigate presses through the given cursor positions, one per level
func navigate(tr *testRig, items ...int) {
	for _, item := range items {
		m := tr.Menu()
		for m.Index() < item {
			tr.HandleEncoder(1)
			m = tr.Menu()
		}
		tr.HandlePress()
	}
}

func TestMenuRootPress(t *testing.T) {
	tr := newTestRig()

	tr.HandlePress()
	m := tr.Menu()
	if m.Level != LevelModeSelect {
		t.Fatalf("level = %s, want modeSelect", m.Level)
	}
	if m.Index() != 0 {
		t.Errorf("cursor = %d, want 0", m.Index())
	}
}

func TestMenuCursorClamps(t *testing.T) {
	tr := newTestRig()

	tr.HandleEncoder(-1)
	if got := tr.Menu().Index(); got != 0 {
		t.Errorf("cursor below zero: %d", got)
	}

	for i := 0; i < 10; i++ {
		tr.HandleEncoder(1)
	}
	if got := tr.Menu().Index(); got != 2 {
		t.Errorf("root cursor = %d, want clamped to 2", got)
	}

	// A large drained count still moves one item
	tr.HandleEncoder(-40)
	if got := tr.Menu().Index(); got != 1 {
		t.Errorf("cursor after -40 = %d, want 1", got)
	}
	if tr.Menu().Level != LevelRoot {
		t.Error("encoder changed the level")
	}
}

func TestMenuEncoderAtBoundDoesNotBroadcast(t *testing.T) {
	tr := newTestRig()
	before := tr.Broadcasts()
	tr.HandleEncoder(-1)
	tr.HandleEncoder(0)
	if tr.Broadcasts() != before {
		t.Error("no-op encoder input broadcast")
	}
	tr.HandleEncoder(1)
	if tr.Broadcasts() != before+1 {
		t.Error("cursor move did not broadcast")
	}
}

func TestMenuTransitions(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		level Level
		axis  int
	}{
		{"calibration", []int{1}, LevelCalibrationList, 0},
		{"servo", []int{2}, LevelServoControl, 0},
		{"all motors", []int{0, 0}, LevelActionSelect, AllAxes},
		{"single motor", []int{0, 1}, LevelAxisSelect, 0},
		{"mode back", []int{0, 2}, LevelRoot, 0},
		{"motor 3", []int{0, 1, 3}, LevelActionSelect, 3},
		{"axis back", []int{0, 1, 4}, LevelModeSelect, 0},
		{"distance", []int{0, 1, 2, 0}, LevelDistanceEdit, 2},
		{"action back single", []int{0, 1, 2, 3}, LevelAxisSelect, 2},
		{"action back all", []int{0, 0, 3}, LevelModeSelect, AllAxes},
		{"distance back", []int{0, 1, 1, 0, 3}, LevelActionSelect, 1},
		{"calibration back", []int{1, 4}, LevelRoot, 0},
		{"servo back", []int{2, 1}, LevelRoot, 0},
	}

	for _, tt := range tests {
		tr := newTestRig()
		navigate(tr, tt.items...)
		m := tr.Menu()
		if m.Level != tt.level {
			t.Errorf("%s: level = %s, want %s", tt.name, m.Level, tt.level)
		}
		if m.Index() != 0 {
			t.Errorf("%s: cursor = %d, want 0 on entry", tt.name, m.Index())
		}
		if tt.axis != 0 && m.SelectedAxis != tt.axis {
			t.Errorf("%s: selected axis = %d, want %d", tt.name, m.SelectedAxis, tt.axis)
		}
	}
}

func TestMenuEnteringLevelResetsCursor(t *testing.T) {
	tr := newTestRig()
	navigate(tr, 0, 1)  // axis select
	tr.HandleEncoder(1) // cursor 1
	tr.HandleEncoder(1) // cursor 2
	navigate(tr, 4)     // Back to mode select
	navigate(tr, 1)     // axis select again
	if got := tr.Menu().Index(); got != 0 {
		t.Errorf("cursor on re-entry = %d, want 0", got)
	}
}

func TestMenuFullForwardSingleAxis(t *testing.T) {
	tr := newTestRig()
	navigate(tr, 0, 1, 2, 1) // Motor 2, Forward

	m := tr.Menu()
	if m.Level != LevelActionSelect || m.Index() != ActionForward {
		t.Errorf("level=%s cursor=%d, want actionSelect at Forward", m.Level, m.Index())
	}
	if !tr.axis(2).FullForward() {
		t.Fatal("axis 2 not in full forward")
	}
	if !strings.Contains(tr.display.last().Items[ActionForward], "[ON]") {
		t.Errorf("forward label = %q, want [ON]", tr.display.last().Items[ActionForward])
	}

	tr.HandlePress()
	if tr.axis(2).Running {
		t.Error("second press did not stop axis 2")
	}
	for _, i := range []int{0, 1, 3} {
		if tr.axis(i).Running {
			t.Errorf("axis %d started", i)
		}
	}
}

func TestMenuFullBackwardAllAxes(t *testing.T) {
	tr := newTestRig()
	navigate(tr, 0, 0, 2) // All Motors, Backward
	for i := 0; i < NumAxes; i++ {
		if !tr.axis(i).FullBackward() {
			t.Errorf("axis %d not in full backward", i)
		}
	}
}

func TestMenuDistanceEdit(t *testing.T) {
	tr := newTestRig()
	navigate(tr, 0, 1, 1, 0) // Motor 1, Distance Control

	tr.HandlePress() // start editing
	if !tr.Menu().Editing {
		t.Fatal("press on Target did not start editing")
	}
	for i := 0; i < 6; i++ {
		tr.HandleEncoder(1)
	}
	m := tr.Menu()
	if m.EditValue != 6 || m.Index() != EditTarget {
		t.Errorf("edit value=%d cursor=%d, want 6 with cursor unchanged", m.EditValue, m.Index())
	}
	if got := tr.display.last().Items[EditTarget]; got != "Target: [6] mm" {
		t.Errorf("target label = %q", got)
	}
	if tr.axis(1).Running {
		t.Error("editing moved the axis before confirm")
	}

	tr.HandlePress() // stop editing
	tr.HandleEncoder(1)
	tr.HandleEncoder(1)
	tr.HandlePress() // Confirm

	a := tr.axis(1)
	if a.Target != 6 || !a.Running || a.Direction != DirForward {
		t.Errorf("after confirm: target=%d running=%v dir=%s", a.Target, a.Running, a.Direction)
	}
	if tr.Menu().Level != LevelDistanceEdit {
		t.Error("confirm left the distance level")
	}
}

func TestMenuDistanceEditClamps(t *testing.T) {
	tr := newTestRig()
	navigate(tr, 0, 1, 0, 0)
	tr.HandlePress()
	tr.HandleEncoder(-1)
	if got := tr.Menu().EditValue; got != DefaultMinDistance {
		t.Errorf("edit value = %d, want %d", got, DefaultMinDistance)
	}
	for i := 0; i < DefaultMaxDistance+5; i++ {
		tr.HandleEncoder(1)
	}
	if got := tr.Menu().EditValue; got != DefaultMaxDistance {
		t.Errorf("edit value = %d, want %d", got, DefaultMaxDistance)
	}
}

func TestMenuDistanceConfirmAll(t *testing.T) {
	tr := newTestRig()
	navigate(tr, 0, 0, 0) // All Motors, Distance Control
	tr.HandlePress()
	tr.HandleEncoder(1)
	tr.HandleEncoder(1)
	tr.HandlePress()
	tr.HandleEncoder(1)
	tr.HandleEncoder(1)
	tr.HandlePress()

	for i := 0; i < NumAxes; i++ {
		if a := tr.axis(i); a.Target != 2 || !a.Running {
			t.Errorf("axis %d: target=%d running=%v", i, a.Target, a.Running)
		}
	}
}

func TestMenuDistanceBackClearsEditing(t *testing.T) {
	tr := newTestRig()
	navigate(tr, 0, 1, 0, 0)
	tr.HandlePress()
	tr.HandlePress()
	tr.HandleEncoder(1)
	tr.HandleEncoder(1)
	tr.HandleEncoder(1)
	tr.HandlePress() // Back

	m := tr.Menu()
	if m.Level != LevelActionSelect || m.Editing {
		t.Errorf("level=%s editing=%v, want actionSelect not editing", m.Level, m.Editing)
	}
}

func TestMenuEditSeededFromTarget(t *testing.T) {
	tr := newTestRig()
	tr.SetTarget(3, 12)
	navigate(tr, 0, 1, 3, 0)
	if got := tr.Menu().EditValue; got != 12 {
		t.Errorf("edit value = %d, want axis 3 target 12", got)
	}
}

func TestMenuCalibrationList(t *testing.T) {
	tr := newTestRig()
	navigate(tr, 1, 2) // Calibration, Cal. Motor 2

	if !tr.axis(2).Calibrating() {
		t.Fatal("axis 2 not calibrating")
	}
	if tr.Menu().Level != LevelCalibrationList {
		t.Error("toggle left the calibration level")
	}
	if got := tr.display.last().Items[2]; got != "Cal. Motor 2 [ON]" {
		t.Errorf("label = %q", got)
	}

	tr.HandlePress()
	if tr.axis(2).Running {
		t.Error("second press did not stop calibration")
	}
}

func TestMenuServo(t *testing.T) {
	tr := newTestRig()
	navigate(tr, 2, 0)
	if !tr.ServoState() {
		t.Fatal("servo not on")
	}
	if got := tr.display.last().Items[0]; got != "Servo ON/OFF [ON]" {
		t.Errorf("label = %q", got)
	}
	tr.HandlePress()
	if tr.ServoState() {
		t.Error("servo not toggled off")
	}
}

func TestScreenRendering(t *testing.T) {
	tr := newTestRig()
	tr.Broadcast()
	s := tr.display.last()

	want := []string{
		"MAIN MENU",
		"> Motor Control",
		"  Calibration",
		"  Servo Control",
		"Status: STOPPED",
	}
	lines := s.Lines()
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	tr.SetTarget(0, 1)
	if got := tr.display.last().Status; got != "Status: RUNNING" {
		t.Errorf("status line = %q", got)
	}
}

func TestMenuHeaders(t *testing.T) {
	headers := map[Level]string{
		LevelRoot:            "MAIN MENU",
		LevelModeSelect:      "MOTOR CONTROL TYPE",
		LevelAxisSelect:      "MOTOR SELECT",
		LevelActionSelect:    "ACTION SELECT",
		LevelDistanceEdit:    "DISTANCE CONTROL",
		LevelCalibrationList: "CALIBRATION",
		LevelServoControl:    "SERVO CONTROL",
	}
	tr := newTestRig()
	for level, want := range headers {
		tr.enterLevel(level)
		if got := tr.Screen().Header; got != want {
			t.Errorf("%s header = %q, want %q", level, got, want)
		}
		if n := len(tr.Screen().Items); n != tr.maxIndex(level)+1 {
			t.Errorf("%s renders %d items, cursor range allows %d", level, n, tr.maxIndex(level)+1)
		}
	}
}

func TestScreenWindow(t *testing.T) {
	s := Screen{
		Header: "H",
		Items:  []string{"a", "b", "c", "d", "e"},
		Cursor: 4,
		Status: "S",
	}

	if got := s.Window(10); len(got) != 7 {
		t.Fatalf("Window(10) = %q, want all 7 lines", got)
	}

	want := []string{"H", "  c", "  d", "> e", "S"}
	got := s.Window(5)
	if len(got) != len(want) {
		t.Fatalf("Window(5) = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	s.Cursor = 0
	if got := s.Window(4); got[1] != "> a" || got[3] != "S" {
		t.Errorf("Window(4) at top = %q", got)
	}
	if got := s.Window(1); len(got) != 1 || got[0] != "H" {
		t.Errorf("Window(1) = %q", got)
	}
}
