package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/gyeh/claimview/internal/model"
	"github.com/gyeh/claimview/internal/normalize"
	"github.com/gyeh/claimview/internal/session"
	"github.com/gyeh/claimview/internal/viewer"
)

type errorResponse struct {
	Error string `json:"error"`
}

// ViewerResponse is the viewer panel state.
type ViewerResponse struct {
	Configured      bool           `json:"configured"`
	Status          *viewer.Status `json:"status,omitempty"`
	ActivePage      *int           `json:"activePage"`
	HighlightedPage *int           `json:"highlightedPage"`
}

// JumpResponse acknowledges a page-jump request.
type JumpResponse struct {
	Requested int `json:"requested"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleClaim returns the full session snapshot. A failed load with no
// earlier model is reported as unavailable.
// GET /api/claim
func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	st := s.session.Snapshot()
	status := http.StatusOK
	if st.Model == nil && st.Error != "" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, st)
}

// POST /api/claim/reload
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	err := s.session.Retry(r.Context())
	switch {
	case errors.Is(err, session.ErrRetryThrottled):
		writeError(w, http.StatusTooManyRequests, "retry throttled, try again shortly")
	case err != nil:
		writeJSON(w, http.StatusBadGateway, s.session.Snapshot())
	default:
		writeJSON(w, http.StatusOK, s.session.Snapshot())
	}
}

// GET /api/claim/segments
func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	vm, ok := s.viewModel(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, normalize.SegmentViews(vm.Segments))
}

// GET /api/claim/bills
func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	vm, ok := s.viewModel(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, normalize.BillViews(vm.Bills))
}

// POST /api/jump/{page}
func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	s.session.Jump(page)
	writeJSON(w, http.StatusAccepted, JumpResponse{Requested: page})
}

// GET /api/viewer
func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	st := s.session.Snapshot()
	writeJSON(w, http.StatusOK, ViewerResponse{
		Configured:      st.Viewer != nil,
		Status:          st.Viewer,
		ActivePage:      st.ActivePage,
		HighlightedPage: st.HighlightedPage,
	})
}

// POST /api/viewer/retry
func (s *Server) handleViewerRetry(w http.ResponseWriter, r *http.Request) {
	err := s.session.RetryPDF()
	if errors.Is(err, session.ErrNoDocument) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	status := s.session.Document().Status()
	if err != nil {
		writeJSON(w, http.StatusBadGateway, status)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handleRenderPage streams one page of the source PDF. The optional width
// query parameter is the client's container width; the clamped page width
// is returned in X-Page-Width.
// GET /api/viewer/pages/{page}?width=W
func (s *Server) handleRenderPage(w http.ResponseWriter, r *http.Request) {
	doc := s.session.Document()
	if doc == nil {
		writeError(w, http.StatusNotFound, session.ErrNoDocument.Error())
		return
	}
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	width := 0
	if raw := r.URL.Query().Get("width"); raw != "" {
		if width, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "width must be an integer")
			return
		}
	}

	render, err := doc.RenderPage(page, width)
	switch {
	case errors.Is(err, viewer.ErrNotLoaded):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, viewer.ErrPageOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.log.Error().Err(err).Int("page", page).Msg("page render failed")
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	s.log.Debug().Int("page", render.Page).Int("width", render.Width).Msg("page rendered")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("X-Page-Width", strconv.Itoa(render.Width))
	w.WriteHeader(http.StatusOK)
	w.Write(render.PDF)
}

func (s *Server) viewModel(w http.ResponseWriter) (*model.ClaimViewModel, bool) {
	st := s.session.Snapshot()
	if st.Model == nil {
		msg := st.Error
		if msg == "" {
			msg = "claim not loaded"
		}
		writeError(w, http.StatusServiceUnavailable, msg)
		return nil, false
	}
	return st.Model, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
