package trainedstep

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/steps"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Store resolves and persists trained steps.
type Store interface {
	Get(ctx context.Context, id string) (steps.Step, error)
	Save(ctx context.Context, step steps.Step) (steps.Document, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	logger ectologger.Logger
	store  Store
}

func NewService(store Store, logger ectologger.Logger) *Service {
	return &Service{
		logger: logger,
		store:  store,
	}
}

// Prep trains the step described by doc on rows and stores the result.
func (s *Service) Prep(ctx context.Context, doc steps.Document, rows []map[string]any, outcomes []string) (steps.Document, error) {
	ctx, span := tracing.StartSpan(ctx, "trainedstep.Prep", tracing.StepAttributes(doc.ID, string(doc.Kind))...)
	defer span.End()

	trained, err := s.prep(ctx, doc, rows, outcomes)
	metrics.ObservePrep(string(doc.Kind), err)
	if err != nil {
		tracing.RecordError(span, err)
		return steps.Document{}, err
	}

	return s.store.Save(ctx, trained)
}

func (s *Service) prep(ctx context.Context, doc steps.Document, rows []map[string]any, outcomes []string) (steps.Step, error) {
	step, err := steps.FromDocument(doc)
	if err != nil {
		return nil, err
	}

	training, err := frame.FromRows(rows)
	if err != nil {
		return nil, errors.NewUsageError("invalid training rows: %v", err).AddStep(step.GetID())
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"step_id": step.GetID(),
		"kind":    step.GetKind(),
		"rows":    training.NumRows(),
		"columns": training.NumCols(),
	}).Info("training step")

	return step.Prep(training, training.Info(outcomes...))
}

// Bake applies the stored step to rows.
func (s *Service) Bake(ctx context.Context, id string, rows []map[string]any) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "trainedstep.Bake")
	defer span.End()

	step, err := s.store.Get(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	baked, err := bake(step, rows)
	metrics.ObserveBake(string(step.GetKind()), len(rows), start, err)
	if err != nil {
		tracing.RecordError(span, err)
		s.logger.WithContext(ctx).WithError(err).WithField("step_id", id).Warn("bake failed")
		return nil, err
	}

	return baked.Rows(), nil
}

func bake(step steps.Step, rows []map[string]any) (*frame.Frame, error) {
	data, err := frame.FromRows(rows)
	if err != nil {
		return nil, errors.NewUsageError("invalid rows: %v", err).AddStep(step.GetID())
	}

	data, err = steps.TypeInputs(step, data)
	if err != nil {
		return nil, err
	}

	return steps.Apply(step, data)
}

// Get returns the stored document.
func (s *Service) Get(ctx context.Context, id string) (steps.Document, error) {
	ctx, span := tracing.StartSpan(ctx, "trainedstep.Get")
	defer span.End()

	step, err := s.store.Get(ctx, id)
	if err != nil {
		return steps.Document{}, err
	}
	return steps.ToDocument(step), nil
}

// Tidy returns the step's tidy report as rows.
func (s *Service) Tidy(ctx context.Context, id string) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "trainedstep.Tidy")
	defer span.End()

	step, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return step.Tidy().Rows(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "trainedstep.Delete")
	defer span.End()

	s.logger.WithContext(ctx).WithField("step_id", id).Info("deleting trained step")
	return s.store.Delete(ctx, id)
}
