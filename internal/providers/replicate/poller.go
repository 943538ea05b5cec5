package replicate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mockupgen/internal/domain"
)

// DefaultPollInterval matches the provider's recommended cadence.
const DefaultPollInterval = 1200 * time.Millisecond

// Poller drives a prediction to a terminal state at a fixed cadence.
type Poller struct {
	api      API
	interval time.Duration
}

func NewPoller(api API, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{api: api, interval: interval}
}

// Wait polls the prediction until it reaches a terminal state. onTick runs
// on every observation, including the first and the terminal one, before
// the termination check — progress stays visible mid-flight. The caller
// bounds the loop through ctx; a deadline expiry surfaces as ErrPollTimeout.
func (p *Poller) Wait(ctx context.Context, id string, onTick func(*Prediction)) (*Prediction, error) {
	for {
		pred, err := p.api.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if onTick != nil {
			onTick(pred)
		}

		switch pred.Status {
		case StatusSucceeded:
			return pred, nil
		case StatusFailed, StatusCanceled:
			if pred.Error != "" {
				return nil, fmt.Errorf("replicate: prediction %s %s: %s: %w", id, pred.Status, pred.Error, domain.ErrGenerationFailed)
			}
			return nil, fmt.Errorf("replicate: prediction %s %s: %w", id, pred.Status, domain.ErrGenerationFailed)
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("replicate: prediction %s: %w", id, domain.ErrPollTimeout)
			}
			return nil, ctx.Err()
		case <-time.After(p.interval):
		}
	}
}
