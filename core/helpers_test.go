package core

import (
	"errors"
	"sync"

	"axisrig/protocol"
)

// fakeGPIO is an in-memory pin map
type fakeGPIO struct {
	mu      sync.Mutex
	levels  map[GPIOPin]bool
	outputs map[GPIOPin]bool
	pullUp  map[GPIOPin]bool
	failSet bool
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		levels:  make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
		pullUp:  make(map[GPIOPin]bool),
	}
}

func (g *fakeGPIO) ConfigureOutput(pin GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.outputs[pin] = true
	g.levels[pin] = false
	return nil
}

func (g *fakeGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pullUp[pin] = true
	g.levels[pin] = true
	return nil
}

func (g *fakeGPIO) ConfigureInputPullDown(pin GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.levels[pin] = false
	return nil
}

func (g *fakeGPIO) SetPin(pin GPIOPin, value bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failSet {
		return errors.New("pin write failed")
	}
	if !g.outputs[pin] {
		return errors.New("pin not configured as output")
	}
	g.levels[pin] = value
	return nil
}

func (g *fakeGPIO) GetPin(pin GPIOPin) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels[pin], nil
}

// force sets an input level as the outside world would
func (g *fakeGPIO) force(pin GPIOPin, level bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.levels[pin] = level
}

func (g *fakeGPIO) level(pin GPIOPin) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels[pin]
}

type recordingDisplay struct {
	screens []Screen
}

func (d *recordingDisplay) Show(s Screen) error {
	d.screens = append(d.screens, s)
	return nil
}

func (d *recordingDisplay) last() Screen {
	if len(d.screens) == 0 {
		return Screen{}
	}
	return d.screens[len(d.screens)-1]
}

type recordingStatus struct {
	shown []RigStatus
}

func (s *recordingStatus) ShowStatus(st RigStatus) error {
	s.shown = append(s.shown, st)
	return nil
}

type recordingServo struct {
	states []bool
}

func (s *recordingServo) SetServo(on bool) error {
	s.states = append(s.states, on)
	return nil
}

type recordingObserver struct {
	snaps []protocol.Snapshot
}

func (o *recordingObserver) Publish(s protocol.Snapshot) {
	o.snaps = append(o.snaps, s.Clone())
}

func (o *recordingObserver) last() protocol.Snapshot {
	if len(o.snaps) == 0 {
		return protocol.Snapshot{}
	}
	return o.snaps[len(o.snaps)-1]
}

// fakeClock is a settable millisecond clock
type fakeClock struct {
	now uint32
}

func (c *fakeClock) Now() uint32 { return c.now }

const testStep = 100

// testPins numbers the drive pins 10+2i / 11+2i and the limits 30+i
func testPins(n int) []AxisPins {
	pins := make([]AxisPins, n)
	for i := range pins {
		pins[i] = AxisPins{
			Forward:  GPIOPin(10 + 2*i),
			Backward: GPIOPin(11 + 2*i),
			Limit:    GPIOPin(30 + i),
		}
	}
	return pins
}

type testRig struct {
	*Rig
	gpio    *fakeGPIO
	clock   *fakeClock
	display *recordingDisplay
	status  *recordingStatus
	servo   *recordingServo
	obs     *recordingObserver
}

func newTestRig() *testRig {
	tr := &testRig{
		gpio:    newFakeGPIO(),
		clock:   &fakeClock{},
		display: &recordingDisplay{},
		status:  &recordingStatus{},
		servo:   &recordingServo{},
		obs:     &recordingObserver{},
	}
	cfg := RigConfig{
		Axes:            testPins(NumAxes),
		MinDistance:     DefaultMinDistance,
		MaxDistance:     DefaultMaxDistance,
		StepDuration:    testStep,
		LimitActiveHigh: true,
		LimitSamples:    1,
	}
	rig, err := NewRig(cfg, Hardware{
		GPIO:    tr.gpio,
		Servo:   tr.servo,
		Display: tr.display,
		Status:  tr.status,
		Clock:   tr.clock.Now,
	})
	if err != nil {
		panic(err)
	}
	rig.Subscribe(tr.obs)
	tr.Rig = rig
	return tr
}

// advance moves the clock by ms and ticks the rig
func (tr *testRig) advance(ms uint32) {
	tr.clock.now += ms
	tr.Tick(tr.clock.now)
}

// driveLevels returns the forward and backward output levels of axis i
func (tr *testRig) driveLevels(i int) (fwd, bwd bool) {
	pins := tr.cfg.Axes[i]
	return tr.gpio.level(pins.Forward), tr.gpio.level(pins.Backward)
}

func (tr *testRig) axis(i int) Axis {
	a, err := tr.Axis(i)
	if err != nil {
		panic(err)
	}
	return a
}
