package core

// Timer is a scheduled event. The handler returns SF_DONE to drop the timer
// or SF_RESCHEDULE after moving WakeTime forward to run it again.
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler keeps timers in a list sorted by wake time. It is owned by the
// firmware loop; Schedule and Cancel may also be called from interrupts.
type Scheduler struct {
	list *Timer
}

// Schedule adds t to the list. A timer must not be scheduled twice.
func (s *Scheduler) Schedule(t *Timer) {
	state := enterCritical()
	defer exitCritical(state)
	s.insert(t)
}

// Cancel removes t if it is pending and reports whether it was
func (s *Scheduler) Cancel(t *Timer) bool {
	state := enterCritical()
	defer exitCritical(state)

	for p := &s.list; *p != nil; p = &(*p).Next {
		if *p == t {
			*p = t.Next
			t.Next = nil
			return true
		}
	}
	return false
}

// NextWake returns the wake time of the earliest pending timer
func (s *Scheduler) NextWake() (uint32, bool) {
	state := enterCritical()
	defer exitCritical(state)

	if s.list == nil {
		return 0, false
	}
	return s.list.WakeTime, true
}

// Pending returns the number of scheduled timers
func (s *Scheduler) Pending() int {
	state := enterCritical()
	defer exitCritical(state)

	n := 0
	for t := s.list; t != nil; t = t.Next {
		n++
	}
	return n
}

// insert keeps equal wake times in FIFO order
func (s *Scheduler) insert(t *Timer) {
	if s.list == nil || timeBefore(t.WakeTime, s.list.WakeTime) {
		t.Next = s.list
		s.list = t
		return
	}

	cur := s.list
	for cur.Next != nil && !timeBefore(t.WakeTime, cur.Next.WakeTime) {
		cur = cur.Next
	}
	t.Next = cur.Next
	cur.Next = t
}

// Dispatch runs every timer due at now and returns how many ran.
// Handlers run with interrupts enabled. A rescheduled timer that is still
// due is not run again until the next Dispatch.
func (s *Scheduler) Dispatch(now uint32) int {
	var again *Timer
	ran := 0

	for {
		state := enterCritical()
		t := s.list
		if t == nil || !TimeReached(now, t.WakeTime) {
			exitCritical(state)
			break
		}
		s.list = t.Next
		t.Next = nil
		exitCritical(state)

		ran++
		if t.Handler(t) == SF_RESCHEDULE {
			if TimeReached(now, t.WakeTime) {
				t.Next = again
				again = t
				continue
			}
			s.Schedule(t)
		}
	}

	for again != nil {
		t := again
		again = t.Next
		t.Next = nil
		s.Schedule(t)
	}
	return ran
}
