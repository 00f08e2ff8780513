package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Veraticus/finpilot/internal/model"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

// Recorder records one transaction. *budget.Engine satisfies it.
type Recorder interface {
	AddTransaction(ctx context.Context, categoryID string, amount float64, kind model.TransactionKind, description string) error
}

// Categorizer picks a category id for a draft description. ok is false when
// it has no opinion and the default category applies.
type Categorizer interface {
	Category(description string) (categoryID string, ok bool)
}

// Options configures an import run.
type Options struct {
	// Categorizer, if set, overrides CategoryID per draft.
	Categorizer Categorizer
	// Since drops drafts dated before it. Zero keeps everything.
	Since time.Time
	// Progress receives the progress bar. Nil disables it.
	Progress   io.Writer
	CategoryID string
	// Rate is the number of AddTransaction calls per second. Zero or
	// negative means unlimited.
	Rate  float64
	Burst int
}

// Result counts the outcome of an import run.
type Result struct {
	Total    int
	Recorded int
	Failed   int
	Skipped  int
}

// Summary renders r for terminal output.
func (r Result) Summary() string {
	return fmt.Sprintf("%d recorded, %d failed, %d skipped of %d", r.Recorded, r.Failed, r.Skipped, r.Total)
}

// Importer sends drafts through a Recorder one at a time. Failed drafts are
// counted and never retried.
type Importer struct {
	recorder Recorder
	limiter  *rate.Limiter
	logger   *slog.Logger
	opts     Options

	total    atomic.Int64
	recorded atomic.Int64
	failed   atomic.Int64
	skipped  atomic.Int64
}

// New creates an importer.
func New(recorder Recorder, opts Options) (*Importer, error) {
	if recorder == nil {
		return nil, errors.New("recorder cannot be nil")
	}
	if opts.CategoryID == "" {
		return nil, errors.New("category id is required")
	}

	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}

	return &Importer{
		recorder: recorder,
		limiter:  rate.NewLimiter(limit, burst),
		logger:   slog.Default().With("component", "importer"),
		opts:     opts,
	}, nil
}

// Progress returns the counts so far. It is safe to call while Run is in
// progress.
func (im *Importer) Progress() Result {
	return Result{
		Total:    int(im.total.Load()),
		Recorded: int(im.recorded.Load()),
		Failed:   int(im.failed.Load()),
		Skipped:  int(im.skipped.Load()),
	}
}

// Run records drafts in order. It stops early when ctx is cancelled and
// returns the counts reached along with ctx.Err().
func (im *Importer) Run(ctx context.Context, drafts []Draft) (Result, error) {
	im.total.Store(int64(len(drafts)))

	bar := im.newProgressBar(len(drafts))

	for _, d := range drafts {
		if err := ctx.Err(); err != nil {
			return im.Progress(), err
		}

		if d.Amount <= 0 || !d.Kind.Valid() || (!im.opts.Since.IsZero() && d.Date.Before(im.opts.Since)) {
			im.skipped.Add(1)
			im.advance(bar)
			continue
		}

		if err := im.limiter.Wait(ctx); err != nil {
			return im.Progress(), err
		}

		err := im.recorder.AddTransaction(ctx, im.categoryFor(d), d.Amount, d.Kind, d.Label())
		if err != nil {
			im.failed.Add(1)
			im.logger.Warn("Failed to record draft",
				"date", d.Date.Format("2006-01-02"),
				"amount", d.Amount,
				"error", err)
		} else {
			im.recorded.Add(1)
		}
		im.advance(bar)
	}

	res := im.Progress()
	im.logger.Info("Import finished",
		"recorded", res.Recorded,
		"failed", res.Failed,
		"skipped", res.Skipped)
	return res, nil
}

func (im *Importer) categoryFor(d Draft) string {
	if im.opts.Categorizer != nil {
		if id, ok := im.opts.Categorizer.Category(d.Description); ok {
			return id
		}
	}
	return im.opts.CategoryID
}

func (im *Importer) newProgressBar(total int) *progressbar.ProgressBar {
	if im.opts.Progress == nil || total == 0 {
		return nil
	}
	w := im.opts.Progress
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[magenta][bold]Recording transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[magenta]=[reset]",
			SaucerHead:    "[magenta]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func (im *Importer) advance(bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}
	if err := bar.Add(1); err != nil {
		im.logger.Warn("Failed to update progress bar", "error", err)
	}
}
