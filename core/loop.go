package core

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"axisrig/protocol"
)

// ErrInboxFull is returned by Submit when the loop is not keeping up
var ErrInboxFull = errors.New("command inbox full")

// LoopConfig sets the periods of the firmware loop's timers
type LoopConfig struct {
	TickIntervalMs   uint32 // motion tick
	LimitPollMs      uint32 // limit switch sampling
	ScrollIntervalMs uint32 // encoder consumption pacing
	InboxSize        int    // queued remote commands
}

// DefaultLoopConfig returns the timer periods used on the board
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		TickIntervalMs:   10,
		LimitPollMs:      10,
		ScrollIntervalMs: 40,
		InboxSize:        16,
	}
}

// Firmware is the cooperative main loop. Step runs on one goroutine and is
// the only caller of Rig entry points; Submit may be called from any
// goroutine, and the decoder and button are fed from interrupts.
type Firmware struct {
	Rig     *Rig
	Decoder *Decoder
	Button  *Button

	cfg   LoopConfig
	sched Scheduler
	inbox chan protocol.Command
	now   uint32

	tickTimer   Timer
	limitTimer  Timer
	scrollTimer Timer
	started     bool

	applied  atomic.Uint32
	rejected atomic.Uint32
	dropped  atomic.Uint32
}

// NewFirmware wires the rig and its inputs to a scheduler
func NewFirmware(rig *Rig, dec *Decoder, btn *Button, cfg LoopConfig) *Firmware {
	def := DefaultLoopConfig()
	if cfg.TickIntervalMs == 0 {
		cfg.TickIntervalMs = def.TickIntervalMs
	}
	if cfg.LimitPollMs == 0 {
		cfg.LimitPollMs = def.LimitPollMs
	}
	if cfg.ScrollIntervalMs == 0 {
		cfg.ScrollIntervalMs = def.ScrollIntervalMs
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = def.InboxSize
	}

	f := &Firmware{
		Rig:     rig,
		Decoder: dec,
		Button:  btn,
		cfg:     cfg,
		inbox:   make(chan protocol.Command, cfg.InboxSize),
	}

	f.tickTimer.Handler = func(t *Timer) uint8 {
		f.Rig.Tick(f.now)
		t.WakeTime = f.now + f.cfg.TickIntervalMs
		return SF_RESCHEDULE
	}
	f.limitTimer.Handler = func(t *Timer) uint8 {
		f.Rig.PollLimits()
		t.WakeTime = f.now + f.cfg.LimitPollMs
		return SF_RESCHEDULE
	}
	f.scrollTimer.Handler = func(t *Timer) uint8 {
		if f.Decoder != nil {
			if d := f.Decoder.Drain(); d != 0 {
				f.Rig.HandleEncoder(d)
			}
		}
		t.WakeTime = f.now + f.cfg.ScrollIntervalMs
		return SF_RESCHEDULE
	}
	return f
}

// Start schedules the periodic timers and broadcasts the boot state
func (f *Firmware) Start(now uint32) {
	if f.started {
		return
	}
	f.started = true
	f.now = now

	f.tickTimer.WakeTime = now
	f.limitTimer.WakeTime = now
	f.scrollTimer.WakeTime = now + f.cfg.ScrollIntervalMs
	f.sched.Schedule(&f.tickTimer)
	f.sched.Schedule(&f.limitTimer)
	f.sched.Schedule(&f.scrollTimer)

	f.Rig.Broadcast()
}

// Submit queues a command for the loop without blocking
func (f *Firmware) Submit(cmd protocol.Command) error {
	select {
	case f.inbox <- cmd:
		return nil
	default:
		f.dropped.Add(1)
		return ErrInboxFull
	}
}

// SubmitJSON decodes and queues one command message. Malformed messages are
// counted and rejected.
func (f *Firmware) SubmitJSON(b []byte) error {
	cmd, err := protocol.DecodeCommand(b)
	if err != nil {
		f.rejected.Add(1)
		return err
	}
	return f.Submit(cmd)
}

// Step runs one loop iteration at time now: queued commands, then a
// pending button press, then due timers.
func (f *Firmware) Step(now uint32) {
	if !f.started {
		f.Start(now)
	}
	f.now = now

	for done := false; !done; {
		select {
		case cmd := <-f.inbox:
			f.apply(cmd)
		default:
			done = true
		}
	}

	if f.Button != nil && f.Button.Take() {
		f.Rig.HandlePress()
	}

	f.sched.Dispatch(now)
}

func (f *Firmware) apply(cmd protocol.Command) {
	if err := f.Rig.Apply(cmd); err != nil {
		f.rejected.Add(1)
		DebugPrintln("[cmd] " + cmd.Type + " dropped: " + err.Error())
		return
	}
	f.applied.Add(1)
}

// Run steps the loop every interval until ctx is done. clock supplies the
// millisecond time for each step.
func (f *Firmware) Run(ctx context.Context, clock func() uint32, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer f.Stop()

	f.Step(clock())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f.Step(clock())
		}
	}
}

// Stop cancels the loop timers. The next Step starts the loop again.
func (f *Firmware) Stop() {
	f.sched.Cancel(&f.tickTimer)
	f.sched.Cancel(&f.limitTimer)
	f.sched.Cancel(&f.scrollTimer)
	f.started = false
}

// Idle returns how many ms the loop can sleep at now before a timer is
// due, capped at limit.
func (f *Firmware) Idle(now, limit uint32) uint32 {
	wake, ok := f.sched.NextWake()
	if !ok {
		return limit
	}
	if TimeReached(now, wake) {
		return 0
	}
	if d := wake - now; d < limit {
		return d
	}
	return limit
}

// LoopStats counts remote command outcomes
type LoopStats struct {
	Applied  uint32 // dispatched successfully
	Rejected uint32 // malformed, unknown, missing fields or bad axis
	Dropped  uint32 // inbox full
}

// Stats returns the command counters
func (f *Firmware) Stats() LoopStats {
	return LoopStats{
		Applied:  f.applied.Load(),
		Rejected: f.rejected.Load(),
		Dropped:  f.dropped.Load(),
	}
}
