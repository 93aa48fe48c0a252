package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/gyeh/claimview/internal/db"
	"github.com/gyeh/claimview/internal/model"
	embedsql "github.com/gyeh/claimview/internal/sql"
)

// Sink consumes summary rows until the channel closes and returns how many
// it persisted.
type Sink interface {
	Name() string
	Write(ctx context.Context, batch uuid.UUID, rows <-chan *model.SummaryRow) (int64, error)
}

// PostgresSink COPYs rows into review.claim_summaries.
type PostgresSink struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewPostgresSink(pool *pgxpool.Pool, log zerolog.Logger) *PostgresSink {
	return &PostgresSink{pool: pool, log: log}
}

func (s *PostgresSink) Name() string { return "postgres" }

// Write streams rows through COPY. A failed COPY leaves no partial batch behind.
func (s *PostgresSink) Write(ctx context.Context, batch uuid.UUID, rows <-chan *model.SummaryRow) (int64, error) {
	start := time.Now()
	n, err := db.CopyChannel(ctx, s.pool,
		pgx.Identifier{"review", "claim_summaries"},
		model.SummaryColumns(),
		rows,
	)
	if err != nil {
		if cerr := Cleanup(context.WithoutCancel(ctx), s.pool, s.log, batch); cerr != nil {
			s.log.Warn().Err(cerr).Msg("batch cleanup failed (non-fatal)")
		}
		return 0, fmt.Errorf("copy summaries: %w", err)
	}

	var stored int64
	if err := s.pool.QueryRow(ctx, embedsql.CountSummaryBatch, batch).Scan(&stored); err != nil {
		return n, fmt.Errorf("count batch: %w", err)
	}
	if stored != n {
		return n, fmt.Errorf("batch %s: copied %d rows but found %d", batch, n, stored)
	}

	dur := time.Since(start)
	s.log.Info().
		Int64("rows_copied", n).
		Str("duration", dur.String()).
		Msg("copy complete")
	return n, nil
}

// Cleanup deletes every row of the given batch.
func Cleanup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batch uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.DeleteSummaryBatch, batch)
	if err != nil {
		return err
	}

	log.Info().
		Int64("rows_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("batch cleanup complete")
	return nil
}

// ParquetSink writes rows to a single Parquet file.
type ParquetSink struct {
	path string
	log  zerolog.Logger
}

func NewParquetSink(path string, log zerolog.Logger) *ParquetSink {
	return &ParquetSink{path: path, log: log}
}

func (s *ParquetSink) Name() string { return "parquet" }

// Write creates the output file and writes every row. On failure the
// partial file is removed.
func (s *ParquetSink) Write(ctx context.Context, batch uuid.UUID, rows <-chan *model.SummaryRow) (n int64, err error) {
	f, err := os.Create(s.path)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(s.path)
		}
	}()

	w := parquet.NewGenericWriter[model.SummaryRow](f)
	buf := make([]model.SummaryRow, 0, rowBufferSize)
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write parquet rows: %w", err)
		}
		n += int64(len(buf))
		buf = buf[:0]
		return nil
	}

	for row := range rows {
		buf = append(buf, *row)
		if len(buf) == cap(buf) {
			if err := flush(); err != nil {
				return 0, err
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := flush(); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close output: %w", err)
	}

	s.log.Info().Int64("rows", n).Str("path", s.path).Msg("parquet file written")
	return n, nil
}
