package viewer

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/claimview/internal/jump"
)

// DefaultEmphasisDuration is how long a jumped-to page stays highlighted.
const DefaultEmphasisDuration = 1500 * time.Millisecond

// PageCounter reports how many pages are currently rendered.
type PageCounter interface {
	PageCount() int
}

// Emphasis applies the viewer side of a page jump: when a page becomes
// active it is scrolled into view and highlighted for a fixed duration.
// Each activation supersedes earlier ones; a stale clear timer is a no-op.
// An activation for a page that is not rendered yet clears the highlight.
//
// Like the Synchronizer it observes, Emphasis runs on the scheduler thread.
type Emphasis struct {
	sched    jump.Scheduler
	pages    PageCounter
	duration time.Duration
	log      zerolog.Logger

	active      int
	highlighted int
	activation  uint64

	onScroll func(page int)
	onChange func(highlighted int)
}

// NewEmphasis returns an emphasis controller with nothing highlighted.
func NewEmphasis(sched jump.Scheduler, pages PageCounter, duration time.Duration, log zerolog.Logger) *Emphasis {
	if duration <= 0 {
		duration = DefaultEmphasisDuration
	}
	return &Emphasis{sched: sched, pages: pages, duration: duration, log: log}
}

// OnScroll sets the callback that brings a page into view.
func (e *Emphasis) OnScroll(fn func(page int)) { e.onScroll = fn }

// OnChange sets the callback invoked when the highlighted page changes.
func (e *Emphasis) OnChange(fn func(highlighted int)) { e.onChange = fn }

// Highlighted returns the emphasized page, or jump.NoPage.
func (e *Emphasis) Highlighted() int { return e.highlighted }

// Observe is a jump.Observer.
func (e *Emphasis) Observe(t jump.Transition) {
	e.active = t.To
	e.activate()
}

// Refresh re-applies the current activation, e.g. after the page count
// changed and a previously missing page became available.
func (e *Emphasis) Refresh() {
	e.activate()
}

func (e *Emphasis) activate() {
	e.activation++
	page := e.active
	if page == jump.NoPage {
		return
	}
	if page > e.pages.PageCount() {
		// The previous activation's clear timer is stale now.
		e.setHighlighted(jump.NoPage)
		e.log.Debug().Int("page", page).Msg("page not rendered yet, deferring emphasis")
		return
	}

	if e.onScroll != nil {
		e.onScroll(page)
	}
	e.setHighlighted(page)

	gen := e.activation
	e.sched.AfterFunc(e.duration, func() {
		if e.activation != gen || e.highlighted != page {
			return
		}
		e.setHighlighted(jump.NoPage)
	})
}

func (e *Emphasis) setHighlighted(page int) {
	if e.highlighted == page {
		return
	}
	e.highlighted = page
	if e.onChange != nil {
		e.onChange(page)
	}
}
