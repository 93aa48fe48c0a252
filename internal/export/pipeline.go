// Package export normalizes a directory of claim documents and writes one
// headline summary row per claim to Postgres or a Parquet file.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimview/internal/model"
)

const rowBufferSize = 256

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the export pipeline: discover → normalize → write.
// Documents that fail to decode are rejected and counted; they never abort
// the run.
func Run(ctx context.Context, sink Sink, log zerolog.Logger, dir string) (*model.ExportSummary, error) {
	totalStart := time.Now()
	batch := uuid.New()
	log = log.With().Str("batch_id", batch.String()).Str("sink", sink.Name()).Logger()

	// Phase 1: Discover
	log.Info().Str("dir", dir).Msg("discovering claim documents")
	files, err := Discover(dir)
	if err != nil {
		return nil, &PipelineError{Phase: "discover", Err: err}
	}
	summary := &model.ExportSummary{
		Dir:        dir,
		Format:     sink.Name(),
		BatchID:    batch.String(),
		FilesFound: int64(len(files)),
	}
	if len(files) == 0 {
		log.Warn().Msg("no claim documents found")
		summary.DurationTotal = time.Since(totalStart)
		return summary, nil
	}

	// Phase 2+3: Normalize feeds Write through a bounded channel.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan *model.SummaryRow, rowBufferSize)
	done := make(chan buildResult, 1)
	go func() {
		done <- build(ctx, log, batch, files, ch)
	}()

	writeStart := time.Now()
	written, writeErr := sink.Write(ctx, batch, ch)
	cancel()
	built := <-done

	summary.RowsBuilt = built.built
	summary.RowsRejected = int64(len(built.rejected))
	summary.Rejected = built.rejected
	summary.DurationBuild = built.duration
	summary.DurationWrite = time.Since(writeStart)

	if writeErr != nil {
		return summary, &PipelineError{Phase: "write", Err: writeErr}
	}
	if built.err != nil {
		return summary, &PipelineError{Phase: "normalize", Err: built.err}
	}
	summary.RowsWritten = written
	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Int64("files", summary.FilesFound).
		Int64("rows_written", summary.RowsWritten).
		Int64("rows_rejected", summary.RowsRejected).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("export pipeline complete")

	return summary, nil
}

type buildResult struct {
	built    int64
	rejected []string
	duration time.Duration
	err      error
}

// build is the producer side: read → decode → normalize → push to channel.
func build(ctx context.Context, log zerolog.Logger, batch uuid.UUID, files []string, ch chan<- *model.SummaryRow) buildResult {
	defer close(ch)
	start := time.Now()
	var res buildResult

	for _, path := range files {
		row, err := BuildFile(batch, path)
		if err != nil {
			res.rejected = append(res.rejected, path)
			log.Warn().Err(err).Str("file", path).Msg("document rejected")
			continue
		}
		select {
		case ch <- row:
			res.built++
		case <-ctx.Done():
			res.err = ctx.Err()
			res.duration = time.Since(start)
			return res
		}
	}
	res.duration = time.Since(start)
	return res
}
