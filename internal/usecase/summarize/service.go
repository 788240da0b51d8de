// Package summarize orchestrates the summarization of extracted note
// units: per-unit eligibility filtering, concurrent dispatch under a
// global rate limit, bounded retry, and ordered collection of outcomes.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"deckbrief/internal/domain/entity"
	"deckbrief/internal/infra/summarizer"
	"deckbrief/internal/ratelimit"
	"deckbrief/internal/resilience/retry"
	"deckbrief/internal/utils/text"
)

// Options controls a single summarization run.
type Options struct {
	// Level is the target bullet-point count per unit.
	Level int

	// MinChars is the eligibility threshold: units shorter than this
	// are passed through without a provider call. A unit of exactly
	// MinChars characters is eligible.
	MinChars int

	// MaxRetries is the total attempt count per unit.
	MaxRetries int

	// ExtractOnly skips summarization entirely; every unit passes
	// through with its original text.
	ExtractOnly bool

	// SummaryOnly blanks the original text on summarized and failed
	// outcomes. Passed-through outcomes keep their text since they
	// carry no summary to stand in for it.
	SummaryOnly bool
}

// Service dispatches note units to a summarization provider.
// The rate limiter is the sole throttle on concurrent dispatch; output
// order is restored at collection time, not assumed from completion.
type Service struct {
	provider summarizer.Provider
	limiter  *ratelimit.Limiter
	retryCfg retry.Config
}

// NewService creates an orchestrator around the given provider and
// limiter. The retry configuration supplies the backoff unit and sleep
// function; its attempt count is overridden per run by Options.MaxRetries.
func NewService(provider summarizer.Provider, limiter *ratelimit.Limiter, retryCfg retry.Config) *Service {
	return &Service{
		provider: provider,
		limiter:  limiter,
		retryCfg: retryCfg,
	}
}

// SummarizeAll summarizes units and returns one outcome per unit in
// input order. A unit that exhausts its retries yields a failed outcome
// without affecting its siblings; only context cancellation aborts the
// run as a whole.
func (s *Service) SummarizeAll(ctx context.Context, units []entity.NoteUnit, opts Options) ([]entity.Outcome, error) {
	outcomes := make([]entity.Outcome, len(units))

	eg, egCtx := errgroup.WithContext(ctx)

	for i, unit := range units {
		if passed, ok := s.passThrough(unit, opts); ok {
			outcomes[i] = passed
			continue
		}

		i, unit := i, unit
		eg.Go(func() error {
			outcome, err := s.dispatch(egCtx, unit, opts)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("summarization run aborted: %w", err)
	}

	if opts.SummaryOnly {
		for i := range outcomes {
			if outcomes[i].Status != entity.StatusPassedThrough {
				outcomes[i].OriginalText = ""
			}
		}
	}

	return outcomes, nil
}

// passThrough evaluates the eligibility policy before any network call.
func (s *Service) passThrough(unit entity.NoteUnit, opts Options) (entity.Outcome, bool) {
	if opts.ExtractOnly {
		return entity.Outcome{
			Index:        unit.Index,
			Status:       entity.StatusPassedThrough,
			OriginalText: unit.Text,
		}, true
	}

	if unit.IsSentinel() {
		return entity.Outcome{
			Index:        unit.Index,
			Status:       entity.StatusPassedThrough,
			OriginalText: unit.Text,
		}, true
	}

	if text.CountRunes(unit.Text) < opts.MinChars {
		slog.Info("note too short for summarization, passing through",
			slog.Int("slide", unit.Index),
			slog.Int("characters", text.CountRunes(unit.Text)),
			slog.Int("min_characters", opts.MinChars))
		return entity.Outcome{
			Index:        unit.Index,
			Status:       entity.StatusPassedThrough,
			OriginalText: unit.Text,
		}, true
	}

	return entity.Outcome{}, false
}

// dispatch runs one unit through the rate limiter, retry policy, and
// provider. Provider failures degrade to a failed outcome; only context
// cancellation propagates as an error.
// A permit is acquired for every attempt, not once per unit: retried
// calls count against the global rate exactly like first calls, so a
// retry storm cannot exceed the configured call-start rate.
func (s *Service) dispatch(ctx context.Context, unit entity.NoteUnit, opts Options) (entity.Outcome, error) {
	retryCfg := s.retryCfg
	retryCfg.MaxAttempts = opts.MaxRetries

	var summary string
	err := retry.WithBackoff(ctx, retryCfg, func() error {
		if acqErr := s.limiter.Acquire(ctx); acqErr != nil {
			return acqErr
		}
		result, callErr := s.provider.Summarize(ctx, unit.Text, opts.Level)
		if callErr != nil {
			return callErr
		}
		summary = result
		return nil
	})

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return entity.Outcome{}, err
		}

		slog.Error("failed to summarize slide",
			slog.Int("slide", unit.Index),
			slog.Int("max_retries", opts.MaxRetries),
			slog.Any("error", err))

		return entity.Outcome{
			Index:        unit.Index,
			Status:       entity.StatusFailed,
			Summary:      fmt.Sprintf("Error in summarization: %v", err),
			OriginalText: unit.Text,
		}, nil
	}

	return entity.Outcome{
		Index:        unit.Index,
		Status:       entity.StatusSummarized,
		Summary:      summary,
		OriginalText: unit.Text,
	}, nil
}
