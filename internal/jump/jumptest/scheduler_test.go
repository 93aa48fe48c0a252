package jumptest

import (
	"testing"
	"time"
)

func TestScheduler_TickRunsOnlyAlreadyQueued(t *testing.T) {
	s := New()
	var ran []string
	s.Post(func() {
		ran = append(ran, "a")
		s.Post(func() { ran = append(ran, "b") })
	})

	s.Tick()
	if len(ran) != 1 || s.Pending() != 1 {
		t.Fatalf("after first tick: ran=%v pending=%d", ran, s.Pending())
	}
	s.Tick()
	if len(ran) != 2 || ran[1] != "b" {
		t.Errorf("after second tick: ran=%v", ran)
	}
}

func TestScheduler_AdvanceRunsInTimeOrder(t *testing.T) {
	s := New()
	var ran []time.Duration
	s.AfterFunc(3*time.Second, func() { ran = append(ran, s.Now()) })
	s.AfterFunc(1*time.Second, func() {
		ran = append(ran, s.Now())
		s.AfterFunc(time.Second, func() { ran = append(ran, s.Now()) })
	})

	s.Advance(2500 * time.Millisecond)
	if len(ran) != 2 || ran[0] != time.Second || ran[1] != 2*time.Second {
		t.Fatalf("ran: got %v", ran)
	}
	if s.Now() != 2500*time.Millisecond {
		t.Errorf("Now: got %v", s.Now())
	}
	s.Advance(time.Second)
	if len(ran) != 3 || ran[2] != 3*time.Second {
		t.Errorf("ran: got %v", ran)
	}
}
