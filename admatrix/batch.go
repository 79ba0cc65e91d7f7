package admatrix

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// BatchOptions controls ClassifyBatch.
type BatchOptions struct {
	// Workers bounds concurrent classifications. Values below 1 mean 1.
	Workers int
	// Logger receives per-item failures and the batch summary. Nil disables logging.
	Logger *zerolog.Logger
	// Progress, when set, is called after every item. Calls are serialized.
	Progress func(done, total int)
}

// Outcome is the per-item result of a labeler call: exactly one of Labels
// or Err is meaningful.
type Outcome struct {
	Labels Labels
	Err    error
}

// ClassifyBatch labels texts and returns one Result per input in input
// order, with AdID set to the 1-based position. A failing item becomes an
// error row and never stops the batch; only ctx cancellation does.
func ClassifyBatch(ctx context.Context, labeler Labeler, texts []string, opts BatchOptions) ([]Result, error) {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]Outcome, len(texts))
	var (
		progressMu sync.Mutex
		done       int
	)
	report := func() {
		if opts.Progress == nil {
			return
		}
		progressMu.Lock()
		done++
		opts.Progress(done, len(texts))
		progressMu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = safeLabel(labeler, i+1, text)
			report()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]Result, len(texts))
	failed := 0
	for i, out := range outcomes {
		adID := i + 1
		if out.Err != nil {
			failed++
			logger.Warn().Int("ad_id", adID).Err(out.Err).Msg("classification failed")
			results[i] = newFailureResult(adID, texts[i], out.Err)
			continue
		}
		results[i] = newSuccessResult(adID, texts[i], out.Labels)
	}
	logger.Info().Int("total", len(texts)).Int("failed", failed).Int("workers", workers).Msg("batch classified")
	return results, nil
}

func safeLabel(labeler Labeler, adID int, text string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: &ItemError{AdID: adID, Cause: fmt.Errorf("panic: %v", r), Frame: panicFrame()}}
		}
	}()
	labels, err := labeler.Label(text)
	if err != nil {
		return Outcome{Err: &ItemError{AdID: adID, Cause: err}}
	}
	return Outcome{Labels: labels}
}

// panicFrame returns "func (file:line)" for the frame that panicked.
func panicFrame() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "runtime.") && !strings.Contains(f.Function, "safeLabel") {
			return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
		}
		if !more {
			return ""
		}
	}
}
