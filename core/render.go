package core

import "axisrig/protocol"

// Screen is the text view of the menu shown on the local display
type Screen struct {
	Header string
	Items  []string
	Cursor int
	Status string
}

// Lines returns the screen as plain text rows: header, items with the
// cursor marked by "> ", and the status line.
func (s Screen) Lines() []string {
	lines := make([]string, 0, len(s.Items)+2)
	lines = append(lines, s.Header)
	for i, item := range s.Items {
		if i == s.Cursor {
			lines = append(lines, "> "+item)
		} else {
			lines = append(lines, "  "+item)
		}
	}
	return append(lines, s.Status)
}

// Window fits the screen into rows text lines for small displays. The
// header and status line always show; the items scroll to keep the cursor
// visible.
func (s Screen) Window(rows int) []string {
	lines := s.Lines()
	if rows >= len(lines) {
		return lines
	}
	if rows < 3 {
		if rows < 0 {
			rows = 0
		}
		return lines[:rows]
	}
	visible := rows - 2
	first := s.Cursor - visible + 1
	if first < 0 {
		first = 0
	}
	out := make([]string, 0, rows)
	out = append(out, lines[0])
	out = append(out, lines[1+first:1+first+visible]...)
	return append(out, lines[len(lines)-1])
}

// Screen renders the current menu level
func (r *Rig) Screen() Screen {
	lvl := &menuLevels[r.menu.Level]
	status := protocol.StatusStopped
	for i := range r.axes {
		if r.axes[i].Running {
			status = protocol.StatusRunning
			break
		}
	}
	return Screen{
		Header: lvl.header,
		Items:  lvl.labels(r),
		Cursor: r.menu.Index(),
		Status: "Status: " + status,
	}
}

func rootLabels(*Rig) []string {
	return []string{"Motor Control", "Calibration", "Servo Control"}
}

func modeLabels(*Rig) []string {
	return []string{"All Motors", "Single Motor", "Back"}
}

func axisLabels(r *Rig) []string {
	items := make([]string, 0, len(r.axes)+1)
	for i := range r.axes {
		items = append(items, "Motor "+itoa(i))
	}
	return append(items, "Back")
}

func actionLabels(r *Rig) []string {
	return []string{
		"Distance Control",
		"Forward " + onOff(r.selectedFull(DirForward)),
		"Backward " + onOff(r.selectedFull(DirBackward)),
		"Back",
	}
}

func distanceLabels(r *Rig) []string {
	target := itoa(r.menu.EditValue)
	if r.menu.Editing {
		target = "[" + target + "]"
	}
	return []string{
		"Target: " + target + " mm",
		"Current: " + itoa(r.axes[r.menuAxis()].Position) + " mm",
		"Confirm",
		"Back",
	}
}

func calibrationLabels(r *Rig) []string {
	items := make([]string, 0, len(r.axes)+1)
	for i := range r.axes {
		items = append(items, "Cal. Motor "+itoa(i)+" "+onOff(r.axes[i].Calibrating()))
	}
	return append(items, "Back")
}

func servoLabels(r *Rig) []string {
	return []string{"Servo ON/OFF " + onOff(r.servo), "Back"}
}
