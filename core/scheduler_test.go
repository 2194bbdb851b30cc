package core

import "testing"

func TestSchedulerOrder(t *testing.T) {
	var s Scheduler
	var fired []int

	mk := func(id int, wake uint32) *Timer {
		return &Timer{WakeTime: wake, Handler: func(*Timer) uint8 {
			fired = append(fired, id)
			return SF_DONE
		}}
	}

	s.Schedule(mk(3, 30))
	s.Schedule(mk(1, 10))
	s.Schedule(mk(2, 20))
	s.Schedule(mk(4, 20)) // same wake time as 2, runs after it

	if n := s.Dispatch(5); n != 0 {
		t.Errorf("Dispatch(5) ran %d timers", n)
	}
	if n := s.Dispatch(20); n != 3 {
		t.Errorf("Dispatch(20) ran %d timers, want 3", n)
	}
	want := []int{1, 2, 4}
	for i := range want {
		if i >= len(fired) || fired[i] != want[i] {
			t.Fatalf("fired %v, want %v", fired, want)
		}
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", s.Pending())
	}
}

func TestSchedulerReschedule(t *testing.T) {
	var s Scheduler
	count := 0
	timer := &Timer{WakeTime: 0}
	timer.Handler = func(t *Timer) uint8 {
		count++
		t.WakeTime += 10
		return SF_RESCHEDULE
	}
	s.Schedule(timer)

	for now := uint32(0); now <= 50; now += 10 {
		s.Dispatch(now)
	}
	if count != 6 {
		t.Errorf("periodic timer ran %d times, want 6", count)
	}

	// A timer that stays due runs once per Dispatch
	count = 0
	s.Dispatch(1000)
	if count != 1 {
		t.Errorf("overdue timer ran %d times in one Dispatch, want 1", count)
	}
	if wake, ok := s.NextWake(); !ok || wake != 70 {
		t.Errorf("NextWake = %d, %v; want 70", wake, ok)
	}
}

func TestSchedulerWrap(t *testing.T) {
	var s Scheduler
	var fired []string

	late := &Timer{WakeTime: 5, Handler: func(*Timer) uint8 {
		fired = append(fired, "after-wrap")
		return SF_DONE
	}}
	early := &Timer{WakeTime: 0xFFFFFFF0, Handler: func(*Timer) uint8 {
		fired = append(fired, "before-wrap")
		return SF_DONE
	}}
	s.Schedule(late)
	s.Schedule(early)

	s.Dispatch(0xFFFFFFF8)
	if len(fired) != 1 || fired[0] != "before-wrap" {
		t.Fatalf("fired %v before the wrap", fired)
	}
	s.Dispatch(10)
	if len(fired) != 2 || fired[1] != "after-wrap" {
		t.Errorf("fired %v after the wrap", fired)
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	ran := false
	timer := &Timer{WakeTime: 10, Handler: func(*Timer) uint8 {
		ran = true
		return SF_DONE
	}}
	s.Schedule(timer)

	if !s.Cancel(timer) {
		t.Fatal("Cancel = false for a pending timer")
	}
	if s.Cancel(timer) {
		t.Error("Cancel = true for a removed timer")
	}
	s.Dispatch(100)
	if ran {
		t.Error("cancelled timer ran")
	}
	if _, ok := s.NextWake(); ok {
		t.Error("NextWake reported a timer on an empty list")
	}
}

func TestTimeHelpers(t *testing.T) {
	if !TimeReached(5, 0xFFFFFFFF) {
		t.Error("TimeReached across the wrap = false")
	}
	if TimeReached(0xFFFFFFFF, 5) {
		t.Error("TimeReached before the wrap = true")
	}
	if got := Elapsed(3, 0xFFFFFFFE); got != 5 {
		t.Errorf("Elapsed across the wrap = %d, want 5", got)
	}

	SetTime(1234)
	if GetTime() != 1234 {
		t.Errorf("GetTime = %d, want 1234", GetTime())
	}
}
