package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimview/internal/model"
	"github.com/gyeh/claimview/internal/parquetread"
)

const fullClaim = `{
  "claim_id": "CLM-100",
  "claim_type": "reimbursement",
  "status": "under_review",
  "edited_data": {
    "nme_analysis": {
      "bills": [
        {"bill": {"bill_id": "B1", "net_amount": 300}, "items": [{"is_nme": true}, {"is_nme": true}]},
        {"bill": {"bill_id": "B2", "net_amount": 200}, "items": [{"is_nme": false}]}
      ]
    },
    "patient_summary": {"hospitalization_details": {"claimed_amount": 450}}
  },
  "audit_analysis": {"policy_violations": [{"rule_name": "room rent cap"}]},
  "segments": {"aggregated_segments": {
    "itemized_bill": {"page_ranges": [{"start": 2, "end": 4}]},
    "discharge_summary": {"page_ranges": [{"start": 1, "end": 2}]}
  }}
}`

func writeDocs(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDiscover(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"b.json":    "{}",
		"a.JSON":    "{}",
		"notes.txt": "skip",
	})
	os.Mkdir(filepath.Join(dir, "nested.json"), 0o755)

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.JSON" || filepath.Base(files[1]) != "b.json" {
		t.Errorf("files: %v", files)
	}

	if _, err := Discover(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing dir")
	}
}

func TestBuildFile(t *testing.T) {
	dir := writeDocs(t, map[string]string{"claim.json": fullClaim})
	batch := uuid.New()

	row, err := BuildFile(batch, filepath.Join(dir, "claim.json"))
	if err != nil {
		t.Fatalf("BuildFile: %v", err)
	}
	if row.BatchID != batch.String() || row.SourceFile != "claim.json" || len(row.DocumentSHA256) != 64 {
		t.Errorf("identity: %+v", row)
	}
	if row.ClaimID != "CLM-100" || row.ClaimType != "reimbursement" || row.Status != "under_review" {
		t.Errorf("claim fields: %+v", row)
	}
	if row.ClaimedAmount != 450 || row.ActualBillsTotal != 500 || row.DiscrepancyAmount != 50 {
		t.Errorf("amounts: claimed=%v total=%v discrepancy=%v", row.ClaimedAmount, row.ActualBillsTotal, row.DiscrepancyAmount)
	}
	if row.BillCount != 2 || row.NMEItemCount != 2 {
		t.Errorf("counts: bills=%d nme=%d", row.BillCount, row.NMEItemCount)
	}
	if row.ViolationCount != 1 || row.LegibilityCount != 0 {
		t.Errorf("audit: violations=%v legibility=%v", row.ViolationCount, row.LegibilityCount)
	}
	if row.SegmentCount != 2 || row.PageCount != 4 {
		t.Errorf("segments: count=%d pages=%d", row.SegmentCount, row.PageCount)
	}
}

func TestBuildFile_Invalid(t *testing.T) {
	dir := writeDocs(t, map[string]string{"bad.json": `{"claim_id":`})
	if _, err := BuildFile(uuid.New(), filepath.Join(dir, "bad.json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRun_Parquet(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"1.json": fullClaim,
		"2.json": `{}`,
		"3.json": `not json`,
	})
	out := filepath.Join(t.TempDir(), "summaries.parquet")

	summary, err := Run(context.Background(), NewParquetSink(out, zerolog.Nop()), zerolog.Nop(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.FilesFound != 3 || summary.RowsBuilt != 2 || summary.RowsWritten != 2 || summary.RowsRejected != 1 {
		t.Errorf("summary: %+v", summary)
	}
	if len(summary.Rejected) != 1 || filepath.Base(summary.Rejected[0]) != "3.json" {
		t.Errorf("rejected: %v", summary.Rejected)
	}
	if summary.Format != "parquet" {
		t.Errorf("Format: got %q", summary.Format)
	}

	r, err := parquetread.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer r.Close()
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0].ClaimID != "CLM-100" || rows[0].BatchID != summary.BatchID {
		t.Errorf("row 0: %+v", rows[0])
	}
	// An empty document still yields a fully defaulted row.
	if rows[1].ClaimID != "-" || rows[1].ClaimedSource != "default" {
		t.Errorf("row 1: %+v", rows[1])
	}
}

func TestRun_EmptyDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "none.parquet")
	summary, err := Run(context.Background(), NewParquetSink(out, zerolog.Nop()), zerolog.Nop(), t.TempDir())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.FilesFound != 0 || summary.RowsWritten != 0 {
		t.Errorf("summary: %+v", summary)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("no output file expected for an empty directory")
	}
}

func TestRun_DiscoverError(t *testing.T) {
	_, err := Run(context.Background(), NewParquetSink(filepath.Join(t.TempDir(), "x.parquet"), zerolog.Nop()),
		zerolog.Nop(), filepath.Join(t.TempDir(), "missing"))

	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Phase != "discover" {
		t.Fatalf("expected discover PipelineError, got %v", err)
	}
}

type failingSink struct{}

func (failingSink) Name() string { return "failing" }

func (failingSink) Write(ctx context.Context, batch uuid.UUID, rows <-chan *model.SummaryRow) (int64, error) {
	<-rows
	return 0, errors.New("disk full")
}

func TestRun_WriteError(t *testing.T) {
	docs := map[string]string{}
	for _, name := range []string{"a.json", "b.json", "c.json"} {
		docs[name] = fullClaim
	}
	_, err := Run(context.Background(), failingSink{}, zerolog.Nop(), writeDocs(t, docs))

	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Phase != "write" {
		t.Fatalf("expected write PipelineError, got %v", err)
	}
}

func TestParquetSink_RemovesPartialFileOnCancel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "partial.parquet")
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan *model.SummaryRow, 1)
	ch <- model.NewSummaryRow(uuid.New())
	close(ch)
	cancel()

	if _, err := NewParquetSink(out, zerolog.Nop()).Write(ctx, uuid.New(), ch); err == nil {
		t.Fatal("expected context error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("partial output should be removed")
	}
}
