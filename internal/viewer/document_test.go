package viewer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gyeh/claimview/internal/viewer/viewertest"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestPageWidth(t *testing.T) {
	w := DefaultWidthPolicy()
	tests := []struct {
		container int
		want      int
	}{
		{1000, 760},
		{792, 760},
		{500, 468},
		{280, 260},
		{100, 260},
		{0, 728},
	}
	for _, tt := range tests {
		if got := w.PageWidth(tt.container); got != tt.want {
			t.Errorf("PageWidth(%d): got %d, want %d", tt.container, got, tt.want)
		}
	}
}

func TestDocument_MissingFileFails(t *testing.T) {
	d := NewDocument(filepath.Join(t.TempDir(), "absent.pdf"), DefaultWidthPolicy(), zerolog.Nop())

	if err := d.Load(); err == nil {
		t.Fatal("expected error for missing file")
	}
	st := d.Status()
	if st.State != StateFailed {
		t.Errorf("State: got %q, want failed", st.State)
	}
	if !strings.HasPrefix(st.Error, "Unable to load PDF: ") {
		t.Errorf("Error: got %q", st.Error)
	}
	if d.PageCount() != 0 {
		t.Errorf("PageCount: got %d, want 0", d.PageCount())
	}
}

func TestDocument_InvalidBytesFail(t *testing.T) {
	path := writeFile(t, "junk.pdf", []byte("this is not a pdf"))
	d := NewDocument(path, DefaultWidthPolicy(), zerolog.Nop())

	if err := d.Load(); err == nil {
		t.Fatal("expected error for invalid pdf")
	}
	if st := d.Status(); st.State != StateFailed {
		t.Errorf("State: got %q, want failed", st.State)
	}
}

func TestDocument_RetryIncrementsAttempt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "later.pdf")
	d := NewDocument(path, DefaultWidthPolicy(), zerolog.Nop())

	_ = d.Load()
	if st := d.Status(); st.Attempt != 0 || st.State != StateFailed {
		t.Fatalf("first load: got %+v", st)
	}

	if err := os.WriteFile(path, viewertest.MinimalPDF(2), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := d.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	st := d.Status()
	if st.Attempt != 1 {
		t.Errorf("Attempt: got %d, want 1", st.Attempt)
	}
	if st.State != StateLoaded || st.Pages != 2 || st.Error != "" {
		t.Errorf("after retry: got %+v", st)
	}
}

func TestDocument_RenderPage(t *testing.T) {
	d := NewDocument(writeFile(t, "claim.pdf", viewertest.MinimalPDF(3)), DefaultWidthPolicy(), zerolog.Nop())

	if _, err := d.RenderPage(1, 800); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("before load: got %v, want ErrNotLoaded", err)
	}
	if err := d.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.PageCount() != 3 {
		t.Fatalf("PageCount: got %d, want 3", d.PageCount())
	}

	r, err := d.RenderPage(2, 500)
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if r.Page != 2 || r.Width != 468 {
		t.Errorf("render: got page %d width %d", r.Page, r.Width)
	}
	if !bytes.HasPrefix(r.PDF, []byte("%PDF")) {
		t.Errorf("render output is not a PDF")
	}

	for _, n := range []int{0, 4} {
		if _, err := d.RenderPage(n, 500); !errors.Is(err, ErrPageOutOfRange) {
			t.Errorf("RenderPage(%d): got %v, want ErrPageOutOfRange", n, err)
		}
	}
}
