package model

import "time"

// ExportSummary captures metrics from a single batch export run.
type ExportSummary struct {
	Dir           string
	Format        string
	BatchID       string
	FilesFound    int64
	RowsBuilt     int64
	RowsRejected  int64
	RowsWritten   int64
	Rejected      []string
	DurationBuild time.Duration
	DurationWrite time.Duration
	DurationTotal time.Duration
}
