package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"mockupgen/internal/domain"
	"mockupgen/internal/domain/jsoncfg"
	"mockupgen/internal/imaging"
	"mockupgen/internal/providers/replicate"
)

// Runner executes one mockup generation end to end: prompt build, predict,
// poll, fetch, normalize, name. All failures are absorbed here and surface
// only as an error event plus a nil result, so sibling runners are never
// affected.
type Runner struct {
	api         replicate.API
	poller      *replicate.Poller
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      zerolog.Logger
	pollTimeout time.Duration
	now         func() time.Time
}

func NewRunner(api replicate.API, poller *replicate.Poller, httpClient *http.Client, limiter *rate.Limiter, pollTimeout time.Duration, logger zerolog.Logger) *Runner {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Runner{
		api:         api,
		poller:      poller,
		httpClient:  httpClient,
		limiter:     limiter,
		logger:      logger,
		pollTimeout: pollTimeout,
		now:         time.Now,
	}
}

// Run drives one mockup spec to completion. It returns nil on any failure
// after emitting exactly one error event for it.
func (r *Runner) Run(ctx context.Context, spec domain.MockupSpec, session domain.GenerationSession, emit func(domain.ProgressEvent)) *domain.JobResult {
	result, err := r.run(ctx, spec, session, emit)
	if err != nil {
		r.logger.Error().Err(err).
			Str("session_id", session.ID).
			Str("mockup", spec.Type).
			Msg("mockup generation failed")
		emit(domain.ErrorEvent(spec.Type, err.Error()))
		return nil
	}
	return result
}

func (r *Runner) run(ctx context.Context, spec domain.MockupSpec, session domain.GenerationSession, emit func(domain.ProgressEvent)) (*domain.JobResult, error) {
	prompt := strings.ReplaceAll(spec.Prompt, jsoncfg.PromptPlaceholder, session.Title)

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	created, err := r.api.Create(ctx, prompt)
	if err != nil {
		return nil, err
	}
	emit(domain.QueuedEvent(spec.Type, created.ID))
	r.logger.Debug().
		Str("session_id", session.ID).
		Str("mockup", spec.Type).
		Str("prediction_id", created.ID).
		Msg("prediction submitted")

	pollCtx := ctx
	if r.pollTimeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, r.pollTimeout)
		defer cancel()
	}
	final, err := r.poller.Wait(pollCtx, created.ID, func(p *replicate.Prediction) {
		emit(domain.TickEvent(spec.Type, string(p.Status), p.Logs, p.Metrics))
	})
	if err != nil {
		return nil, err
	}

	if len(final.Output) == 0 || strings.TrimSpace(final.Output[0]) == "" {
		return nil, fmt.Errorf("mockup %q: %w", spec.Type, domain.ErrMissingOutput)
	}

	raw, err := r.fetchOutput(ctx, final.Output[0])
	if err != nil {
		return nil, err
	}

	normalized, err := imaging.Normalize(raw, spec.Width(), spec.Height())
	if err != nil {
		return nil, fmt.Errorf("mockup %q: %w: %w", spec.Type, domain.ErrNormalizationFailed, err)
	}

	filename := BuildFilename(session.Collection, session.Title, spec.Type, r.now())
	preview := "data:image/png;base64," + base64.StdEncoding.EncodeToString(normalized)
	emit(domain.SucceededEvent(spec.Type, filename, preview))

	return &domain.JobResult{Filename: filename, Data: normalized}, nil
}

func (r *Runner) fetchOutput(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch output: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch output: %w: %w", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch output: http %d: %w", resp.StatusCode, domain.ErrFetchFailed)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch output: read body: %w: %w", domain.ErrFetchFailed, err)
	}
	return data, nil
}
