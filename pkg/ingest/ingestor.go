package ingest

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source feeds records into the pipeline until its context is cancelled.
type Source interface {
	Run(ctx context.Context) error
	Close() error
}

// Stage is a dispatch stage with start/stop lifecycle. It is satisfied by
// dispatch.Dispatcher.
type Stage interface {
	Start() error
	Stop() error
}

var (
	// ErrNilSource is returned when no source is provided
	ErrNilSource = errors.New("source is required")

	// ErrNoStages is returned when no dispatch stages are provided
	ErrNoStages = errors.New("at least one stage is required")
)

// Ingestor ties a record source to a chain of dispatch stages. Stages are
// started upstream-last so every stage has a running downstream before
// records flow, and stopped in reverse after the source is closed.
type Ingestor struct {
	source Source
	stages []Stage
	log    *zap.Logger
}

// New creates an ingestor. Stages are given in pipeline order, first
// stage receives the source's records. A nil logger disables logging.
func New(source Source, stages []Stage, log *zap.Logger) (*Ingestor, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Ingestor{source: source, stages: stages, log: log}, nil
}

// Run starts the stages and consumes the source until the context is
// cancelled or the source fails. It always tears the pipeline down in
// order: source first so no new records arrive, then stages from the
// front so each stage drains into a still-running downstream.
func (i *Ingestor) Run(ctx context.Context) error {
	for idx := len(i.stages) - 1; idx >= 0; idx-- {
		if err := i.stages[idx].Start(); err != nil {
			for j := idx + 1; j < len(i.stages); j++ {
				if stopErr := i.stages[j].Stop(); stopErr != nil {
					i.log.Error("stage stop failed during rollback", zap.Error(stopErr))
				}
			}
			return err
		}
	}
	i.log.Info("pipeline started", zap.Int("stages", len(i.stages)))

	g, runCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return i.source.Run(runCtx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if closeErr := i.source.Close(); closeErr != nil {
		i.log.Error("source close failed", zap.Error(closeErr))
		if err == nil {
			err = closeErr
		}
	}
	for _, stage := range i.stages {
		if stopErr := stage.Stop(); stopErr != nil {
			i.log.Error("stage stop failed", zap.Error(stopErr))
			if err == nil {
				err = stopErr
			}
		}
	}
	i.log.Info("pipeline stopped")
	return err
}
