package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimview/internal/jump/jumptest"
	"github.com/gyeh/claimview/internal/model"
	"github.com/gyeh/claimview/internal/session"
	"github.com/gyeh/claimview/internal/source"
	"github.com/gyeh/claimview/internal/viewer"
	"github.com/gyeh/claimview/internal/viewer/viewertest"
)

const claimJSON = `{
  "claim_id": "CLM-7",
  "edited_data": {
    "nme_analysis": {
      "bills": [
        {"bill": {"bill_id": "B1", "net_amount": 1234.5, "page_number": 2},
         "items": [{"item_id": "x", "item_name": "Gloves", "final_amount": 12, "is_nme": true}]}
      ]
    }
  },
  "segments": {"aggregated_segments": {"discharge_summary": {"page_ranges": [{"start": 1, "end": 2}]}}}
}`

type fixture struct {
	srv       *httptest.Server
	sched     *jumptest.Scheduler
	ctrl      *session.Controller
	claimPath string
}

func newFixture(t *testing.T, claim string, pdfPages int) *fixture {
	t.Helper()
	dir := t.TempDir()
	claimPath := filepath.Join(dir, "claim.json")
	if claim != "" {
		if err := os.WriteFile(claimPath, []byte(claim), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var doc *viewer.Document
	if pdfPages > 0 {
		pdfPath := filepath.Join(dir, "claim.pdf")
		if err := os.WriteFile(pdfPath, viewertest.MinimalPDF(pdfPages), 0o644); err != nil {
			t.Fatal(err)
		}
		doc = viewer.NewDocument(pdfPath, viewer.DefaultWidthPolicy(), zerolog.Nop())
	}

	sched := jumptest.New()
	ctrl := session.New(session.Options{
		DataURL:          claimPath,
		Fetcher:          source.NewFetcher(time.Second, 1<<20, nil, zerolog.Nop()),
		Document:         doc,
		Scheduler:        sched,
		EmphasisDuration: 1500 * time.Millisecond,
		Log:              zerolog.Nop(),
	})
	_ = ctrl.Load(context.Background())
	if doc != nil {
		if err := ctrl.LoadPDF(); err != nil {
			t.Fatalf("LoadPDF: %v", err)
		}
		sched.Tick()
	}

	srv := httptest.NewServer(NewRouter(ctrl, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, sched: sched, ctrl: ctrl, claimPath: claimPath}
}

func (f *fixture) do(t *testing.T, method, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, claimJSON, 0)
	if resp := f.do(t, http.MethodGet, "/healthz"); resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d", resp.StatusCode)
	}
}

func TestClaim(t *testing.T) {
	f := newFixture(t, claimJSON, 0)

	resp := f.do(t, http.MethodGet, "/api/claim")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	var st session.State
	decodeBody(t, resp, &st)
	if st.ClaimID != "CLM-7" || st.Model == nil {
		t.Fatalf("state: %+v", st)
	}
	if st.Model.ClaimSummary.ActualBillsTotal != 1234.5 {
		t.Errorf("ActualBillsTotal: got %v", st.Model.ClaimSummary.ActualBillsTotal)
	}
	if st.QuickStats.NMEItemCount != 1 {
		t.Errorf("NMEItemCount: got %d", st.QuickStats.NMEItemCount)
	}
}

func TestClaim_FailedLoad(t *testing.T) {
	f := newFixture(t, "", 0)

	resp := f.do(t, http.MethodGet, "/api/claim")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", resp.StatusCode)
	}
	var st session.State
	decodeBody(t, resp, &st)
	if st.Error == "" {
		t.Error("expected error message")
	}

	if resp := f.do(t, http.MethodGet, "/api/claim/bills"); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("bills status: got %d, want 503", resp.StatusCode)
	}
}

func TestReload_RecoversAfterFileAppears(t *testing.T) {
	f := newFixture(t, "", 0)
	if err := os.WriteFile(f.claimPath, []byte(claimJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	resp := f.do(t, http.MethodPost, "/api/claim/reload")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	var st session.State
	decodeBody(t, resp, &st)
	if st.Error != "" || st.ClaimID != "CLM-7" {
		t.Errorf("state: %+v", st)
	}
}

func TestSegmentsAndBills(t *testing.T) {
	f := newFixture(t, claimJSON, 0)

	var segs []model.SegmentView
	decodeBody(t, f.do(t, http.MethodGet, "/api/claim/segments"), &segs)
	if len(segs) != 1 || segs[0].Label != "Discharge Summary" || len(segs[0].Pages) != 2 {
		t.Errorf("segments: %+v", segs)
	}

	var bills []model.BillView
	decodeBody(t, f.do(t, http.MethodGet, "/api/claim/bills"), &bills)
	if len(bills) != 1 {
		t.Fatalf("bills: %+v", bills)
	}
	b := bills[0]
	if b.NetAmount != "$1,234.50" {
		t.Errorf("NetAmount: got %q", b.NetAmount)
	}
	if b.Page == nil || *b.Page != 2 {
		t.Errorf("Page: got %v, want 2", b.Page)
	}
	if len(b.Items) != 1 || b.Items[0].Key != "B1-x" || !b.Items[0].IsNME {
		t.Errorf("items: %+v", b.Items)
	}
}

func TestJumpAndViewer(t *testing.T) {
	f := newFixture(t, claimJSON, 3)

	resp := f.do(t, http.MethodPost, "/api/jump/2")
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("jump status: got %d", resp.StatusCode)
	}
	f.sched.Tick()

	var v ViewerResponse
	decodeBody(t, f.do(t, http.MethodGet, "/api/viewer"), &v)
	if !v.Configured || v.Status == nil || v.Status.Pages != 3 {
		t.Fatalf("viewer: %+v", v)
	}
	if v.ActivePage == nil || *v.ActivePage != 2 {
		t.Errorf("ActivePage: got %v", v.ActivePage)
	}
	if v.HighlightedPage == nil || *v.HighlightedPage != 2 {
		t.Errorf("HighlightedPage: got %v", v.HighlightedPage)
	}

	f.sched.Advance(2 * time.Second)
	v = ViewerResponse{}
	decodeBody(t, f.do(t, http.MethodGet, "/api/viewer"), &v)
	if v.HighlightedPage != nil {
		t.Errorf("highlight should have cleared, got %d", *v.HighlightedPage)
	}
	if v.ActivePage == nil || *v.ActivePage != 2 {
		t.Errorf("ActivePage after clear: got %v", v.ActivePage)
	}
}

func TestJump_BadPage(t *testing.T) {
	f := newFixture(t, claimJSON, 0)
	for _, p := range []string{"0", "-1", "two"} {
		if resp := f.do(t, http.MethodPost, "/api/jump/"+p); resp.StatusCode != http.StatusBadRequest {
			t.Errorf("jump %q: got %d, want 400", p, resp.StatusCode)
		}
	}
}

func TestRenderPage(t *testing.T) {
	f := newFixture(t, claimJSON, 2)

	resp := f.do(t, http.MethodGet, "/api/viewer/pages/1?width=500")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if w := resp.Header.Get("X-Page-Width"); w != "468" {
		t.Errorf("X-Page-Width: got %q", w)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}

	if resp := f.do(t, http.MethodGet, "/api/viewer/pages/9"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("out of range: got %d, want 404", resp.StatusCode)
	}
	if resp := f.do(t, http.MethodGet, "/api/viewer/pages/1?width=wide"); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad width: got %d, want 400", resp.StatusCode)
	}
}

func TestViewer_NoDocument(t *testing.T) {
	f := newFixture(t, claimJSON, 0)

	var v ViewerResponse
	decodeBody(t, f.do(t, http.MethodGet, "/api/viewer"), &v)
	if v.Configured {
		t.Errorf("viewer: %+v", v)
	}
	if resp := f.do(t, http.MethodPost, "/api/viewer/retry"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("retry: got %d, want 404", resp.StatusCode)
	}
	if resp := f.do(t, http.MethodGet, "/api/viewer/pages/1"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("render: got %d, want 404", resp.StatusCode)
	}
}

func TestViewerRetry(t *testing.T) {
	f := newFixture(t, claimJSON, 2)

	resp := f.do(t, http.MethodPost, "/api/viewer/retry")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	var st viewer.Status
	decodeBody(t, resp, &st)
	if st.Attempt != 1 || st.State != viewer.StateLoaded || st.Pages != 2 {
		t.Errorf("status: %+v", st)
	}
}
