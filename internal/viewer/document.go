package viewer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
)

var (
	ErrNotLoaded      = errors.New("viewer: document not loaded")
	ErrPageOutOfRange = errors.New("viewer: page out of range")
)

// LoadState is the viewer-local load state of the source PDF.
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateLoaded  LoadState = "loaded"
	StateFailed  LoadState = "failed"
)

// Status is a snapshot of the document's viewer-local state.
type Status struct {
	State   LoadState `json:"state"`
	Pages   int       `json:"pages"`
	Error   string    `json:"error,omitempty"`
	Attempt int       `json:"attempt"`
}

// Render is one rendered page: the single-page PDF plus the width the
// client should draw it at.
type Render struct {
	Page  int
	Width int
	PDF   []byte
}

// Document is the source PDF shown next to the claim. Its state is
// independent of the claim view model; a failed load is recovered with Retry.
type Document struct {
	path   string
	widths WidthPolicy
	log    zerolog.Logger

	mu      sync.RWMutex
	data    []byte
	pages   int
	state   LoadState
	err     error
	attempt int
}

// NewDocument returns an unloaded document for the PDF at path.
func NewDocument(path string, widths WidthPolicy, log zerolog.Logger) *Document {
	return &Document{
		path:   path,
		widths: widths,
		log:    log.With().Str("pdf", path).Logger(),
		state:  StateIdle,
	}
}

// Load reads and validates the PDF and records its page count. A load that
// finishes after a Retry started is discarded.
func (d *Document) Load() error {
	d.mu.Lock()
	attempt := d.attempt
	d.state = StateLoading
	d.err = nil
	d.mu.Unlock()

	data, pages, err := readPDF(d.path)

	d.mu.Lock()
	defer d.mu.Unlock()
	if attempt != d.attempt {
		return nil
	}
	if err != nil {
		d.state = StateFailed
		d.err = err
		d.pages = 0
		d.log.Error().Err(err).Int("attempt", attempt).Msg("pdf load failed")
		return err
	}
	d.data = data
	d.pages = pages
	d.state = StateLoaded
	d.log.Info().Int("pages", pages).Int("attempt", attempt).Msg("pdf loaded")
	return nil
}

// Retry resets page count and load state, then loads again.
func (d *Document) Retry() error {
	d.mu.Lock()
	d.attempt++
	d.data = nil
	d.pages = 0
	d.err = nil
	d.state = StateIdle
	d.mu.Unlock()
	return d.Load()
}

// PageCount returns the number of pages, or 0 until the document is loaded.
func (d *Document) PageCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pages
}

// Status returns a snapshot of the load state.
func (d *Document) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s := Status{State: d.state, Pages: d.pages, Attempt: d.attempt}
	if d.err != nil {
		s.Error = "Unable to load PDF: " + d.err.Error()
	}
	return s
}

// RenderPage extracts page n as a standalone PDF sized for a container of
// the given width.
func (d *Document) RenderPage(n, containerWidth int) (*Render, error) {
	d.mu.RLock()
	data, pages, state := d.data, d.pages, d.state
	d.mu.RUnlock()

	if state != StateLoaded {
		return nil, ErrNotLoaded
	}
	if n < 1 || n > pages {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, n, pages)
	}

	var buf bytes.Buffer
	conf := pdfmodel.NewDefaultConfiguration()
	if err := api.Trim(bytes.NewReader(data), &buf, []string{strconv.Itoa(n)}, conf); err != nil {
		return nil, fmt.Errorf("extract page %d: %w", n, err)
	}
	return &Render{Page: n, Width: d.widths.PageWidth(containerWidth), PDF: buf.Bytes()}, nil
}

func readPDF(path string) ([]byte, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read pdf: %w", err)
	}
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, 0, fmt.Errorf("pdfcpu read: %w", err)
	}
	return data, ctx.PageCount, nil
}
