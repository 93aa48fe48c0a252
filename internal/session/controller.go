// Package session owns the review dashboard's application state: the
// loaded claim, its view model, and the page-jump and viewer state that the
// HTTP API and CLI read as snapshots.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/gyeh/claimview/internal/jump"
	"github.com/gyeh/claimview/internal/model"
	"github.com/gyeh/claimview/internal/normalize"
	"github.com/gyeh/claimview/internal/source"
	"github.com/gyeh/claimview/internal/viewer"
)

var (
	ErrRetryThrottled = errors.New("session: retry throttled")
	ErrNoDocument     = errors.New("session: no source document configured")
)

// Fetcher retrieves raw claim documents.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
	Invalidate(location string)
}

// Options configures a Controller.
type Options struct {
	DataURL          string
	Fetcher          Fetcher
	Document         *viewer.Document
	Scheduler        jump.Scheduler
	EmphasisDuration time.Duration
	RetryLimiter     *rate.Limiter
	Log              zerolog.Logger
}

// State is a serializable snapshot of the session.
type State struct {
	Loading         bool                  `json:"loading"`
	Error           string                `json:"error,omitempty"`
	Attempt         uint64                `json:"attempt"`
	ClaimID         string                `json:"claimId"`
	Title           string                `json:"title"`
	Model           *model.ClaimViewModel `json:"model,omitempty"`
	QuickStats      model.QuickStats      `json:"quickStats"`
	ActivePage      *int                  `json:"activePage"`
	HighlightedPage *int                  `json:"highlightedPage"`
	Viewer          *viewer.Status        `json:"viewer,omitempty"`
}

// Controller is the single owner of session state. Load and Retry may be
// called from any goroutine; page-jump state is mutated only on the
// scheduler and mirrored here for snapshots.
type Controller struct {
	dataURL string
	fetcher Fetcher
	doc     *viewer.Document
	sched   jump.Scheduler
	limiter *rate.Limiter
	log     zerolog.Logger

	jumps *jump.Synchronizer
	emph  *viewer.Emphasis

	mu          sync.RWMutex
	inflight    int
	attempt     uint64
	errMsg      string
	raw         *model.ClaimDocument
	view        *model.ClaimViewModel
	active      int
	highlighted int
}

// New wires a controller. Nothing is fetched until Load.
func New(opts Options) *Controller {
	limiter := opts.RetryLimiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	c := &Controller{
		dataURL: opts.DataURL,
		fetcher: opts.Fetcher,
		doc:     opts.Document,
		sched:   opts.Scheduler,
		limiter: limiter,
		log:     opts.Log,
	}

	var pages viewer.PageCounter = noPages{}
	if c.doc != nil {
		pages = c.doc
	}
	c.jumps = jump.NewSynchronizer(c.sched, c.log)
	c.emph = viewer.NewEmphasis(c.sched, pages, opts.EmphasisDuration, c.log)
	c.emph.OnScroll(func(page int) {
		c.log.Debug().Int("page", page).Msg("scroll page into view")
	})
	c.emph.OnChange(func(page int) {
		c.mu.Lock()
		c.highlighted = page
		c.mu.Unlock()
	})
	c.jumps.Subscribe(func(t jump.Transition) {
		c.mu.Lock()
		c.active = t.To
		c.mu.Unlock()
	})
	c.jumps.Subscribe(c.emph.Observe)
	return c
}

// Load fetches and normalizes the claim document. On failure the previous
// model, if any, is kept and the error is recorded for display. When
// several loads overlap the last one to finish wins.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.inflight++
	c.attempt++
	attempt := c.attempt
	c.errMsg = ""
	c.mu.Unlock()

	start := time.Now()
	doc, err := c.fetchDocument(ctx)

	var view *model.ClaimViewModel
	if err == nil {
		view = normalize.Claim(doc)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if err != nil {
		c.errMsg = "Unable to load claim data: " + err.Error()
		c.log.Error().Err(err).Str("url", c.dataURL).Uint64("attempt", attempt).Msg("claim load failed")
		return err
	}
	c.raw = doc
	c.view = view
	c.log.Info().
		Str("url", c.dataURL).
		Str("claim_id", view.ClaimSummary.ClaimID).
		Uint64("attempt", attempt).
		Dur("duration", time.Since(start)).
		Msg("claim loaded")
	return nil
}

func (c *Controller) fetchDocument(ctx context.Context) (*model.ClaimDocument, error) {
	data, err := c.fetcher.Fetch(ctx, c.dataURL)
	if err != nil {
		return nil, err
	}
	doc, err := source.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("invalid claim document: %w", err)
	}
	return doc, nil
}

// Retry bypasses the document cache and loads again. Retries beyond the
// configured rate return ErrRetryThrottled without fetching.
func (c *Controller) Retry(ctx context.Context) error {
	if !c.limiter.Allow() {
		return ErrRetryThrottled
	}
	c.fetcher.Invalidate(c.dataURL)
	return c.Load(ctx)
}

// Jump requests that page become active. The request runs on the scheduler.
func (c *Controller) Jump(page int) {
	c.sched.Post(func() { c.jumps.Request(page) })
}

// LoadPDF loads the source document and re-applies any pending emphasis.
func (c *Controller) LoadPDF() error {
	if c.doc == nil {
		return ErrNoDocument
	}
	err := c.doc.Load()
	c.sched.Post(c.emph.Refresh)
	return err
}

// RetryPDF resets the source document and loads it again.
func (c *Controller) RetryPDF() error {
	if c.doc == nil {
		return ErrNoDocument
	}
	err := c.doc.Retry()
	c.sched.Post(c.emph.Refresh)
	return err
}

// Document returns the source document, or nil when none is configured.
func (c *Controller) Document() *viewer.Document {
	return c.doc
}

// Raw returns the last successfully decoded document.
func (c *Controller) Raw() *model.ClaimDocument {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.raw
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := State{
		Loading:         c.inflight > 0,
		Error:           c.errMsg,
		Attempt:         c.attempt,
		Model:           c.view,
		ActivePage:      pagePtr(c.active),
		HighlightedPage: pagePtr(c.highlighted),
	}
	if c.view != nil {
		s.ClaimID = c.view.ClaimSummary.ClaimID
		s.QuickStats = normalize.Stats(c.view)
	}
	s.Title = normalize.PageTitle(s.ClaimID)
	if c.doc != nil {
		st := c.doc.Status()
		s.Viewer = &st
	}
	return s
}

func pagePtr(p int) *int {
	if p == jump.NoPage {
		return nil
	}
	return &p
}

type noPages struct{}

func (noPages) PageCount() int { return 0 }
