// Copyright 2018 Rob Marissen.
// SPDX-License-Identifier: MIT

package isoquant

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ResultRow is the quantification outcome of one identification row.
// Areas holds one integrated intensity per configured isotopologue, in
// request order. A failed row has Err set and no Areas, which keeps it
// distinguishable from a row that legitimately integrated to all
// zeros.
type ResultRow struct {
	Row   int
	PepID string
	Areas []float64
	Err   error
}

// BatchResult is the outcome of a batch run. Rows[i] holds the result
// of identification row i, regardless of worker completion order.
type BatchResult struct {
	RunID       string
	Rows        []ResultRow
	EmptyTraces int // successful rows whose trace had no samples
	Failed      int // rows with Err set
}

// QuantifyRow traces and integrates a single identification row. Row
// failures are returned inside the ResultRow, wrapped in a *RowError.
func (q *Quantifier) QuantifyRow(row int) ResultRow {
	res, _ := q.quantifyRow(row)
	return res
}

// quantifyRow additionally reports whether the row's trace was empty
func (q *Quantifier) quantifyRow(row int) (ResultRow, bool) {
	ident, err := q.idents.Ident(row)
	if err != nil {
		return ResultRow{Row: row, Err: &RowError{Row: row, Err: err}}, false
	}
	trace, err := q.Trace(ident)
	if err != nil {
		return ResultRow{
			Row:   row,
			PepID: ident.PepID,
			Err:   &RowError{Row: row, PepID: ident.PepID, Err: err},
		}, false
	}
	res := ResultRow{
		Row:   row,
		PepID: ident.PepID,
		Areas: Integrate(trace, q.cfg.Isotopologues),
	}
	return res, len(trace) == 0
}

// Run quantifies every identification row, fanning chunks of rows out
// over the configured number of workers. Each worker writes into its
// own disjoint range of the result slice, so per-row results are
// independent of completion order and of the worker count. A row
// failure is isolated to that row; Run itself only fails when the
// context is canceled before all rows are done.
func (q *Quantifier) Run(ctx context.Context) (*BatchResult, error) {
	total := q.idents.NumIdents()
	res := &BatchResult{
		RunID: uuid.NewString(),
		Rows:  make([]ResultRow, total),
	}
	logger := q.logger.With(zap.String("run_id", res.RunID))
	logger.Info("batch started",
		zap.Int("rows", total),
		zap.Int("workers", q.cfg.Workers),
		zap.Int("chunk_size", q.cfg.ChunkSize),
		zap.Ints("isotopologues", q.cfg.Isotopologues))
	start := time.Now()

	var done, empty, failed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(q.cfg.Workers)
	for lo := 0; lo < total; lo += q.cfg.ChunkSize {
		hi := min(lo+q.cfg.ChunkSize, total)
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			for i := lo; i < hi; i++ {
				row, emptyTrace := q.quantifyRow(i)
				if emptyTrace {
					empty.Add(1)
				}
				if row.Err != nil {
					failed.Add(1)
					logger.Warn("row failed",
						zap.Int("row", i),
						zap.String("pep_id", row.PepID),
						zap.Error(row.Err))
				}
				res.Rows[i] = row
			}
			if q.progress != nil {
				q.progress(int(done.Add(int64(hi-lo))), total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", res.RunID, err)
	}

	res.EmptyTraces = int(empty.Load())
	res.Failed = int(failed.Load())
	logger.Info("batch finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("rows", total),
		zap.Int("failed", res.Failed),
		zap.Int("empty_traces", res.EmptyTraces))
	if res.EmptyTraces > 0 {
		logger.Warn("some traces had no samples in the retention time window",
			zap.Int("empty_traces", res.EmptyTraces))
	}
	return res, nil
}
