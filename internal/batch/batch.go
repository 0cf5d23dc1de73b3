package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/optionform/internal/form"
	"github.com/guttosm/optionform/internal/logger"
)

const maxParallelLimit = 16

// Submitter starts one pricing submission.
type Submitter interface {
	Submit(ctx context.Context, src form.FieldSource) *form.Submission
}

// Summary counts the outcomes of one batch file.
type Summary struct {
	Rows      int
	Succeeded int
	Failed    int
}

// ProcessFile submits every row of a CSV batch file and waits for all of them.
//
// Parameters:
//   - path:      CSV file with header method,type,stockPrice,strikePrice,volatility,riskFreeRate,time.
//   - submitter: usually the form handler shared with the web frontend.
//   - parallel:  in-flight submissions; <=0 means min(8, NumCPU), capped at 16.
//
// Behavior:
//   - The whole file is validated before anything is submitted; a structural
//     error rejects the file.
//   - Pricing failures are reported by the submitter's diagnostic channel and
//     only counted here.
//   - Cancelling ctx stops waiting and starting rows; exchanges already in
//     flight still complete.
//
// Returns:
//   - Summary: row and outcome counts.
//   - error: I/O, CSV structure or context error.
func ProcessFile(ctx context.Context, path string, submitter Submitter, parallel int) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := readRows(f)
	if err != nil {
		return Summary{}, fmt.Errorf("file %s: %w", path, err)
	}

	maxParallel := resolveParallel(parallel)
	base := filepath.Base(path)
	logger.L().Info().Str("file", base).Int("rows", len(rows)).Int("max_parallel", maxParallel).Msg("batch start")
	start := time.Now()

	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

rowLoop:
	for i, row := range rows {
		if gctx.Err() != nil {
			break
		}
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			break rowLoop
		}

		g.Go(func() error {
			defer func() { <-sem }()
			sub := submitter.Submit(gctx, row)
			out, err := sub.Wait(gctx)
			if err != nil {
				return err
			}
			if out.Err != nil {
				failed.Add(1)
				return nil
			}
			succeeded.Add(1)
			logger.L().Debug().Int("row", i+1).Str("submission_id", sub.ID).Msg(out.Text)
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	sum := summarize(len(rows), &succeeded, &failed)
	if err != nil {
		return sum, err
	}

	logger.L().Info().
		Str("file", base).
		Int("rows", sum.Rows).
		Int("succeeded", sum.Succeeded).
		Int("failed", sum.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("batch done")
	return sum, nil
}

func resolveParallel(parallel int) int {
	if parallel > 0 {
		return min(parallel, maxParallelLimit)
	}
	return min(8, runtime.NumCPU())
}

func summarize(rows int, succeeded, failed *atomic.Int64) Summary {
	return Summary{Rows: rows, Succeeded: int(succeeded.Load()), Failed: int(failed.Load())}
}
