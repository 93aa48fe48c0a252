package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CopyRow is a row that can hand COPY its column values.
type CopyRow interface {
	CopyValues() []any
}

// ChannelSource feeds COPY from a channel until it closes or ctx ends.
// The channel gives the producer backpressure from the COPY writer.
type ChannelSource[T CopyRow] struct {
	ctx     context.Context
	ch      <-chan T
	current T
	count   int64
	err     error
}

func NewChannelSource[T CopyRow](ctx context.Context, ch <-chan T) *ChannelSource[T] {
	return &ChannelSource[T]{ctx: ctx, ch: ch}
}

func (s *ChannelSource[T]) Next() bool {
	select {
	case <-s.ctx.Done():
		s.err = s.ctx.Err()
		return false
	case row, ok := <-s.ch:
		if !ok {
			return false
		}
		s.current = row
		s.count++
		return true
	}
}

func (s *ChannelSource[T]) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err is the context error when the source stopped before the channel closed.
func (s *ChannelSource[T]) Err() error {
	return s.err
}

// Count is the number of rows handed to COPY so far.
func (s *ChannelSource[T]) Count() int64 {
	return s.count
}

// CopyChannel COPYs every row from ch into table and checks that the server
// stored as many rows as the channel produced.
func CopyChannel[T CopyRow](ctx context.Context, pool *pgxpool.Pool, table pgx.Identifier, columns []string, ch <-chan T) (int64, error) {
	src := NewChannelSource(ctx, ch)
	n, err := pool.CopyFrom(ctx, table, columns, src)
	if err != nil {
		return 0, err
	}
	if n != src.Count() {
		return n, fmt.Errorf("copy %s: sent %d rows, server reported %d", table.Sanitize(), src.Count(), n)
	}
	return n, nil
}
