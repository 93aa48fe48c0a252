package model

import "github.com/google/uuid"

// SummaryRow is the flattened, export-ready headline record of one claim
// document. The parquet tags define the file layout; CopyValues defines the
// Postgres COPY layout.
type SummaryRow struct {
	batch uuid.UUID

	BatchID           string  `parquet:"batch_id"`
	SourceFile        string  `parquet:"source_file"`
	DocumentSHA256    string  `parquet:"document_sha256"`
	ClaimID           string  `parquet:"claim_id"`
	ClaimType         string  `parquet:"claim_type"`
	Status            string  `parquet:"status"`
	ClaimedAmount     float64 `parquet:"claimed_amount"`
	ActualBillsTotal  float64 `parquet:"actual_bills_total"`
	DiscrepancyAmount float64 `parquet:"discrepancy_amount"`
	ClaimedSource     string  `parquet:"claimed_source"`
	TotalSource       string  `parquet:"total_source"`
	DiscrepancySource string  `parquet:"discrepancy_source"`
	LegibilityCount   float64 `parquet:"legibility_count"`
	ViolationCount    float64 `parquet:"violation_count"`
	BillCount         int64   `parquet:"bill_count"`
	NMEItemCount      int64   `parquet:"nme_item_count"`
	SegmentCount      int64   `parquet:"segment_count"`
	PageCount         int64   `parquet:"page_count"`
}

// NewSummaryRow returns a row bound to the given export batch.
func NewSummaryRow(batch uuid.UUID) *SummaryRow {
	return &SummaryRow{batch: batch, BatchID: batch.String()}
}

// SummaryColumns returns the ordered column names for COPY into review.claim_summaries.
func SummaryColumns() []string {
	return []string{
		"batch_id",
		"source_file",
		"document_sha256",
		"claim_id",
		"claim_type",
		"status",
		"claimed_amount",
		"actual_bills_total",
		"discrepancy_amount",
		"claimed_source",
		"total_source",
		"discrepancy_source",
		"legibility_count",
		"violation_count",
		"bill_count",
		"nme_item_count",
		"segment_count",
		"page_count",
	}
}

// CopyValues returns the row values in the same order as SummaryColumns(),
// suitable for pgx CopyFromSource.
func (r *SummaryRow) CopyValues() []any {
	return []any{
		r.batch,
		r.SourceFile,
		r.DocumentSHA256,
		r.ClaimID,
		r.ClaimType,
		r.Status,
		r.ClaimedAmount,
		r.ActualBillsTotal,
		r.DiscrepancyAmount,
		r.ClaimedSource,
		r.TotalSource,
		r.DiscrepancySource,
		r.LegibilityCount,
		r.ViolationCount,
		r.BillCount,
		r.NMEItemCount,
		r.SegmentCount,
		r.PageCount,
	}
}
