package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gyeh/claimview/internal/model"
	"github.com/gyeh/claimview/internal/normalize"
	"github.com/gyeh/claimview/internal/source"
)

// BuildFile reads, decodes and summarizes one claim document.
func BuildFile(batch uuid.UUID, path string) (*model.SummaryRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := source.Decode(data)
	if err != nil {
		return nil, err
	}
	row := BuildSummaryRow(batch, normalize.Claim(doc))
	row.SourceFile = filepath.Base(path)
	row.DocumentSHA256 = normalize.DocumentHash(data)
	return row, nil
}

// BuildSummaryRow flattens a view model into an export row.
func BuildSummaryRow(batch uuid.UUID, vm *model.ClaimViewModel) *model.SummaryRow {
	s := vm.ClaimSummary
	stats := normalize.Stats(vm)

	row := model.NewSummaryRow(batch)
	row.ClaimID = s.ClaimID
	row.ClaimType = s.ClaimType
	row.Status = s.Status
	row.ClaimedAmount = s.ClaimedAmount
	row.ActualBillsTotal = s.ActualBillsTotal
	row.DiscrepancyAmount = s.DiscrepancyAmount
	row.ClaimedSource = s.AmountSources.ClaimedAmount
	row.TotalSource = s.AmountSources.ActualBillsTotal
	row.DiscrepancySource = s.AmountSources.DiscrepancyAmount
	row.LegibilityCount = vm.AuditIssues.MedicalLegibilityCount
	row.ViolationCount = vm.AuditIssues.PolicyViolationCount
	row.BillCount = int64(stats.BillCount)
	row.NMEItemCount = int64(stats.NMEItemCount)
	row.SegmentCount = int64(len(vm.Segments))
	row.PageCount = int64(normalize.DistinctPages(vm.Segments))
	return row
}
