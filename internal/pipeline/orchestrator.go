package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mockupgen/internal/domain"
	"mockupgen/internal/progress"
	"mockupgen/pkg/zip"
)

// Policy captures batch-level behavior that is configurable rather than
// fixed by the pipeline.
type Policy struct {
	// FailOnEmptyBatch turns a batch with zero successful jobs into an
	// error instead of an empty archive.
	FailOnEmptyBatch bool
}

// Orchestrator fans out one runner per configured mockup, publishes their
// progress under the session id, and archives the surviving results.
type Orchestrator struct {
	runner *Runner
	broker *progress.Broker
	specs  []domain.MockupSpec
	policy Policy
	logger zerolog.Logger
}

func NewOrchestrator(runner *Runner, broker *progress.Broker, specs []domain.MockupSpec, policy Policy, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		runner: runner,
		broker: broker,
		specs:  specs,
		policy: policy,
		logger: logger,
	}
}

// Specs returns the configured mockup list.
func (o *Orchestrator) Specs() []domain.MockupSpec {
	return o.specs
}

// RunBatch runs every configured mockup concurrently and returns the zip
// archive of all successful outputs. Individual job failures never abort
// the batch; they are reported through the session's progress channel and
// excluded from the archive. Only archive construction (or the configured
// empty-batch policy) fails the batch as a whole.
func (o *Orchestrator) RunBatch(ctx context.Context, session domain.GenerationSession) ([]byte, error) {
	emit := func(ev domain.ProgressEvent) { o.broker.Publish(session.ID, ev) }

	results := make([]*domain.JobResult, len(o.specs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, spec := range o.specs {
		eg.Go(func() error {
			// Runner absorbs its own failures; a nil slot marks them.
			results[i] = o.runner.Run(egCtx, spec, session, emit)
			return nil
		})
	}
	_ = eg.Wait()

	assets := make([]zip.Asset, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		assets = append(assets, zip.Asset{Filename: res.Filename, MIME: "image/png", Data: res.Data})
	}
	succeeded := len(assets)
	failed := len(o.specs) - succeeded

	if len(o.specs) > 0 {
		emit(domain.CompleteEvent(succeeded, failed))
	}
	o.logger.Info().
		Str("session_id", session.ID).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("batch finished")

	if succeeded == 0 && len(o.specs) > 0 && o.policy.FailOnEmptyBatch {
		return nil, domain.ErrEmptyBatch
	}

	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		return nil, fmt.Errorf("build archive: %w", err)
	}
	return archive, nil
}
