package core

// Level is one screen of the operator menu
type Level uint8

const (
	LevelRoot Level = iota
	LevelModeSelect
	LevelAxisSelect
	LevelActionSelect
	LevelDistanceEdit
	LevelCalibrationList
	LevelServoControl
	levelCount
)

func (l Level) String() string {
	if l < levelCount {
		return menuLevels[l].name
	}
	return "unknown"
}

// AllAxes as SelectedAxis applies actions to every axis
const AllAxes = -1

// Items of the action and distance levels
const (
	ActionDistance = iota
	ActionForward
	ActionBackward
	ActionBack
)

const (
	EditTarget = iota
	EditCurrent
	EditConfirm
	EditBack
)

// Menu is the state of the rotary-encoder menu
type Menu struct {
	Level          Level
	Cursor         [levelCount]int
	SelectedAxis   int // axis index or AllAxes
	SelectedAction int
	Editing        bool // encoder adjusts EditValue instead of the cursor
	EditValue      int  // pending target on the distance level
}

// Index returns the cursor of the current level
func (m Menu) Index() int {
	return m.Cursor[m.Level]
}

func (m *Menu) reset() {
	*m = Menu{}
}

// menuLevel is one row of the transition table. count is the number of
// items given the number of axes; activate runs when the operator presses
// on an item.
type menuLevel struct {
	name     string
	header   string
	count    func(axes int) int
	labels   func(r *Rig) []string
	activate func(r *Rig, item int)
}

var menuLevels [levelCount]menuLevel

func fixedCount(n int) func(int) int { return func(int) int { return n } }

func perAxisCount(axes int) int { return axes + 1 }

func init() {
	menuLevels = [levelCount]menuLevel{
		LevelRoot: {
			name:   "root",
			header: "MAIN MENU",
			count:  fixedCount(3),
			labels: rootLabels,
			activate: func(r *Rig, item int) {
				switch item {
				case 0:
					r.enterLevel(LevelModeSelect)
				case 1:
					r.enterLevel(LevelCalibrationList)
				case 2:
					r.enterLevel(LevelServoControl)
				}
			},
		},
		LevelModeSelect: {
			name:   "modeSelect",
			header: "MOTOR CONTROL TYPE",
			count:  fixedCount(3),
			labels: modeLabels,
			activate: func(r *Rig, item int) {
				switch item {
				case 0:
					r.menu.SelectedAxis = AllAxes
					r.enterLevel(LevelActionSelect)
				case 1:
					r.enterLevel(LevelAxisSelect)
				case 2:
					r.enterLevel(LevelRoot)
				}
			},
		},
		LevelAxisSelect: {
			name:   "axisSelect",
			header: "MOTOR SELECT",
			count:  perAxisCount,
			labels: axisLabels,
			activate: func(r *Rig, item int) {
				if item < len(r.axes) {
					r.menu.SelectedAxis = item
					r.enterLevel(LevelActionSelect)
					return
				}
				r.enterLevel(LevelModeSelect)
			},
		},
		LevelActionSelect: {
			name:   "actionSelect",
			header: "ACTION SELECT",
			count:  fixedCount(4),
			labels: actionLabels,
			activate: func(r *Rig, item int) {
				r.menu.SelectedAction = item
				switch item {
				case ActionDistance:
					r.enterLevel(LevelDistanceEdit)
				case ActionForward:
					r.toggleSelectedFull(DirForward)
				case ActionBackward:
					r.toggleSelectedFull(DirBackward)
				case ActionBack:
					if r.menu.SelectedAxis == AllAxes {
						r.enterLevel(LevelModeSelect)
					} else {
						r.enterLevel(LevelAxisSelect)
					}
				}
			},
		},
		LevelDistanceEdit: {
			name:   "distanceEdit",
			header: "DISTANCE CONTROL",
			count:  fixedCount(4),
			labels: distanceLabels,
			activate: func(r *Rig, item int) {
				switch item {
				case EditTarget:
					r.menu.Editing = !r.menu.Editing
				case EditConfirm:
					r.menu.Editing = false
					r.confirmTarget()
				case EditBack:
					r.enterLevel(LevelActionSelect)
				}
			},
		},
		LevelCalibrationList: {
			name:   "calibrationList",
			header: "CALIBRATION",
			count:  perAxisCount,
			labels: calibrationLabels,
			activate: func(r *Rig, item int) {
				if item < len(r.axes) {
					r.toggleCalibration(item)
					return
				}
				r.enterLevel(LevelRoot)
			},
		},
		LevelServoControl: {
			name:   "servoControl",
			header: "SERVO CONTROL",
			count:  fixedCount(2),
			labels: servoLabels,
			activate: func(r *Rig, item int) {
				if item == 0 {
					r.setServo(!r.servo)
					return
				}
				r.enterLevel(LevelRoot)
			},
		},
	}
}

// enterLevel switches the menu to l with its cursor at the first item.
// Editing only survives on the distance level.
func (r *Rig) enterLevel(l Level) {
	m := &r.menu
	m.Level = l
	m.Cursor[l] = 0
	m.Editing = false
	if l == LevelDistanceEdit {
		m.EditValue = r.axes[r.menuAxis()].Target
	}
}

// menuAxis is the axis whose values the menu displays: the selected axis,
// or axis 0 when all axes are selected.
func (r *Rig) menuAxis() int {
	if r.validAxis(r.menu.SelectedAxis) {
		return r.menu.SelectedAxis
	}
	return 0
}

func (r *Rig) toggleSelectedFull(dir Direction) {
	if r.menu.SelectedAxis == AllAxes {
		r.toggleAllFull(dir)
		return
	}
	r.toggleFull(r.menuAxis(), dir)
}

func (r *Rig) confirmTarget() {
	if r.menu.SelectedAxis == AllAxes {
		for i := range r.axes {
			r.setTarget(i, r.menu.EditValue)
		}
		return
	}
	r.setTarget(r.menuAxis(), r.menu.EditValue)
}

// selectedFull reports whether the selection is in full travel toward dir
func (r *Rig) selectedFull(dir Direction) bool {
	mode := fullMode(dir)
	if r.menu.SelectedAxis == AllAxes {
		return r.allInMode(mode)
	}
	a := &r.axes[r.menuAxis()]
	return a.Running && a.Mode == mode
}

// maxIndex is the last valid cursor position of level l
func (r *Rig) maxIndex(l Level) int {
	return menuLevels[l].count(len(r.axes)) - 1
}

// HandleEncoder applies a drained encoder count. Only its sign is used:
// one step moves the cursor, or the pending target while editing, by one.
// Nothing is broadcast if the value is already at its bound.
func (r *Rig) HandleEncoder(delta int) {
	step := sign(delta)
	if step == 0 {
		return
	}

	m := &r.menu
	if m.Level == LevelDistanceEdit && m.Editing {
		v := clampInt(m.EditValue+step, r.cfg.MinDistance, r.cfg.MaxDistance)
		if v == m.EditValue {
			return
		}
		m.EditValue = v
		r.broadcast()
		return
	}

	idx := clampInt(m.Cursor[m.Level]+step, 0, r.maxIndex(m.Level))
	if idx == m.Cursor[m.Level] {
		return
	}
	m.Cursor[m.Level] = idx
	r.broadcast()
}

// HandlePress activates the item under the cursor
func (r *Rig) HandlePress() {
	m := &r.menu
	menuLevels[m.Level].activate(r, m.Cursor[m.Level])
	r.broadcast()
}
