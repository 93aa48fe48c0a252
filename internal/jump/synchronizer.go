package jump

import "github.com/rs/zerolog"

// NoPage is the "none" value of the active page. Real pages start at 1.
const NoPage = 0

// Transition is one change of the active page.
type Transition struct {
	From int
	To   int
}

// Observer is notified of every active-page transition, in order.
type Observer func(Transition)

// Synchronizer turns "jump to page P" requests into active-page
// transitions. A repeat request for the already active page is expanded
// into P -> none -> P, with the second step deferred to the next scheduler
// turn so observers see the intermediate none and can re-run enter effects.
//
// A Synchronizer is owned by its scheduler's thread: Request and the
// deferred re-activation must run there.
type Synchronizer struct {
	sched     Scheduler
	log       zerolog.Logger
	active    int
	requests  uint64
	observers []Observer
}

// NewSynchronizer returns a synchronizer with no active page.
func NewSynchronizer(sched Scheduler, log zerolog.Logger) *Synchronizer {
	return &Synchronizer{sched: sched, log: log}
}

// Subscribe registers an observer for future transitions.
func (s *Synchronizer) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// Active returns the active page, or NoPage.
func (s *Synchronizer) Active() int {
	return s.active
}

// Request asks for page p to become active. Pages below 1 are ignored.
// Any newer request supersedes a pending deferred re-activation.
func (s *Synchronizer) Request(p int) {
	if p < 1 {
		s.log.Debug().Int("page", p).Msg("ignoring jump to invalid page")
		return
	}
	s.requests++
	if s.active != p {
		s.set(p)
		return
	}

	s.set(NoPage)
	req := s.requests
	s.sched.Post(func() {
		if s.requests != req {
			return
		}
		s.set(p)
	})
}

func (s *Synchronizer) set(p int) {
	if s.active == p {
		return
	}
	t := Transition{From: s.active, To: p}
	s.active = p
	s.log.Debug().Int("from", t.From).Int("to", t.To).Msg("active page changed")
	for _, o := range s.observers {
		o(t)
	}
}
