package core

// Axis motion engine. Motion is open loop: a running axis advances its
// position estimate by one unit per StepDuration of drive time.
//
// Lower-case methods mutate without broadcasting so that menu actions and
// all-axis commands can combine several of them into one broadcast.

func (r *Rig) validAxis(i int) bool {
	return i >= 0 && i < len(r.axes)
}

// drive sets the H-bridge inputs of axis i. The inactive line is released
// before the active one is raised so both are never high together.
func (r *Rig) drive(i int, dir Direction) {
	pins := r.cfg.Axes[i]
	var err error
	switch dir {
	case DirForward:
		err = r.gpio.SetPin(pins.Backward, false)
		if err == nil {
			err = r.gpio.SetPin(pins.Forward, true)
		}
	case DirBackward:
		err = r.gpio.SetPin(pins.Forward, false)
		if err == nil {
			err = r.gpio.SetPin(pins.Backward, true)
		}
	default:
		err = r.gpio.SetPin(pins.Forward, false)
		if e := r.gpio.SetPin(pins.Backward, false); err == nil {
			err = e
		}
	}
	debugError("drive", err)
}

func (r *Rig) startAxis(i int, dir Direction) {
	a := &r.axes[i]
	a.Running = true
	a.Direction = dir
	a.LastTick = r.clock()
	r.drive(i, dir)
}

func (r *Rig) stopAxis(i int) {
	a := &r.axes[i]
	a.Running = false
	a.Mode = ModeManual
	a.Direction = DirIdle
	r.drive(i, DirIdle)
}

func (r *Rig) setTarget(i, value int) {
	a := &r.axes[i]
	a.Target = clampInt(value, r.cfg.MinDistance, r.cfg.MaxDistance)
	a.Mode = ModeManual
	a.ManualDistance = 0
	a.seekSpan = a.Target - a.Position

	switch {
	case a.Target > a.Position:
		r.startAxis(i, DirForward)
	case a.Target < a.Position:
		r.startAxis(i, DirBackward)
	default:
		r.stopAxis(i)
	}
}

func (r *Rig) toggleFull(i int, dir Direction) {
	a := &r.axes[i]
	mode := fullMode(dir)
	if a.Running && a.Mode == mode {
		r.stopAxis(i)
		return
	}
	a.Mode = mode
	r.startAxis(i, dir)
}

func (r *Rig) toggleAllFull(dir Direction) {
	mode := fullMode(dir)
	if r.allInMode(mode) {
		for i := range r.axes {
			r.stopAxis(i)
		}
		return
	}
	for i := range r.axes {
		if r.axes[i].Running && r.axes[i].Mode == mode {
			continue
		}
		r.axes[i].Mode = mode
		r.startAxis(i, dir)
	}
}

func (r *Rig) toggleCalibration(i int) {
	a := &r.axes[i]
	if a.Running && a.Mode == ModeCalibrating {
		r.stopAxis(i)
		return
	}
	a.Mode = ModeCalibrating
	r.limits[i].Reset()
	r.startAxis(i, DirBackward)
}

func (r *Rig) toggleAllCalibration() {
	if r.allInMode(ModeCalibrating) {
		for i := range r.axes {
			r.stopAxis(i)
		}
		return
	}
	for i := range r.axes {
		if r.axes[i].Running && r.axes[i].Mode == ModeCalibrating {
			continue
		}
		r.axes[i].Mode = ModeCalibrating
		r.limits[i].Reset()
		r.startAxis(i, DirBackward)
	}
}

func (r *Rig) allInMode(mode Mode) bool {
	for i := range r.axes {
		if !r.axes[i].Running || r.axes[i].Mode != mode {
			return false
		}
	}
	return true
}

// zeroAxis handles the limit switch of a calibrating axis
func (r *Rig) zeroAxis(i int) bool {
	if !r.axes[i].Calibrating() {
		return false
	}
	r.stopAxis(i)
	r.axes[i].ManualDistance = 0
	r.axes[i].Position = 0
	return true
}

func (r *Rig) setServo(on bool) {
	r.servo = on
	debugError("servo", r.servoDrv.SetServo(on))
}

// StartAxis drives axis i in dir without changing its mode. In manual mode
// the move is bounded by the current target like a seek; a move away from
// the target stops after one step.
func (r *Rig) StartAxis(i int, dir Direction) error {
	if !r.validAxis(i) {
		return ErrAxisOutOfRange
	}
	if dir == DirIdle {
		r.stopAxis(i)
	} else {
		a := &r.axes[i]
		if a.Mode == ModeManual {
			a.ManualDistance = 0
			a.seekSpan = a.Target - a.Position
		}
		r.startAxis(i, dir)
	}
	r.broadcast()
	return nil
}

// StopAxis stops axis i and leaves any full-travel or calibration mode
func (r *Rig) StopAxis(i int) error {
	if !r.validAxis(i) {
		return ErrAxisOutOfRange
	}
	r.stopAxis(i)
	r.broadcast()
	return nil
}

// SetTarget clamps value into the travel bounds and starts a bounded seek
// toward it. It is the only way to begin a manual seek.
func (r *Rig) SetTarget(i, value int) error {
	if !r.validAxis(i) {
		return ErrAxisOutOfRange
	}
	r.setTarget(i, value)
	r.broadcast()
	return nil
}

// SetAllTargets applies SetTarget to every axis with one broadcast
func (r *Rig) SetAllTargets(value int) {
	for i := range r.axes {
		r.setTarget(i, value)
	}
	r.broadcast()
}

// ToggleFullDirection stops axis i if it is already in full travel toward
// dir, otherwise switches it into that mode.
func (r *Rig) ToggleFullDirection(i int, dir Direction) error {
	if !r.validAxis(i) {
		return ErrAxisOutOfRange
	}
	if dir == DirIdle {
		return nil
	}
	r.toggleFull(i, dir)
	r.broadcast()
	return nil
}

// ToggleAllFullDirection stops every axis if all are in full travel toward
// dir, otherwise drives every axis into it.
func (r *Rig) ToggleAllFullDirection(dir Direction) {
	if dir == DirIdle {
		return
	}
	r.toggleAllFull(dir)
	r.broadcast()
}

// ToggleCalibration starts or stops the backward seek to the zero limit
func (r *Rig) ToggleCalibration(i int) error {
	if !r.validAxis(i) {
		return ErrAxisOutOfRange
	}
	r.toggleCalibration(i)
	r.broadcast()
	return nil
}

// ToggleAllCalibration stops every axis if all are calibrating, otherwise
// puts every axis into calibration.
func (r *Rig) ToggleAllCalibration() {
	r.toggleAllCalibration()
	r.broadcast()
}

// EmergencyStop stops every axis
func (r *Rig) EmergencyStop() {
	for i := range r.axes {
		r.stopAxis(i)
	}
	r.broadcast()
}

// OnLimitReached zeroes axis i if it is calibrating; otherwise it does
// nothing.
func (r *Rig) OnLimitReached(i int) error {
	if !r.validAxis(i) {
		return ErrAxisOutOfRange
	}
	if r.zeroAxis(i) {
		r.broadcast()
	}
	return nil
}

// PollLimits samples the limit switch of every calibrating axis and zeroes
// the axes whose switch has triggered. Idle switches are re-armed.
func (r *Rig) PollLimits() {
	for i, l := range r.limits {
		if !r.axes[i].Calibrating() {
			l.Reset()
			continue
		}
		level, err := r.gpio.GetPin(l.Pin)
		if err != nil {
			debugError("limit", err)
			continue
		}
		if l.Sample(level) {
			DebugPrintln("[limit] axis " + itoa(i) + " zeroed")
			r.OnLimitReached(i)
		}
	}
}

// SetServo sets the servo state
func (r *Rig) SetServo(on bool) {
	r.setServo(on)
	r.broadcast()
}

// Tick advances every running axis whose step quantum has elapsed by one
// unit. A manual seek stops once it reaches its target; full travel and
// calibration continue until stopped. Each step is broadcast on its own.
func (r *Rig) Tick(now uint32) {
	for i := range r.axes {
		a := &r.axes[i]
		if !a.Running || Elapsed(now, a.LastTick) < r.cfg.StepDuration {
			continue
		}

		a.LastTick = now
		a.Position += int(a.Direction)
		if a.Mode == ModeManual {
			a.ManualDistance += int(a.Direction)
			if a.seekDone() {
				r.stopAxis(i)
			}
		}
		r.broadcast()
	}
}
