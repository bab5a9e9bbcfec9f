package trainedstep

import (
	"context"
	"database/sql"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/steps"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

type TrainedStepRepository interface {
	Upsert(ctx context.Context, doc steps.Document) error
	Get(ctx context.Context, id string) (steps.Document, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Upsert(ctx context.Context, doc steps.Document) error {
	ctx, span := tracing.StartSpan(ctx, "TrainedStepRepository.Upsert", tracing.StepAttributes(doc.ID, string(doc.Kind))...)
	defer span.End()

	now := time.Now().UTC()
	query, args := trainedSteps.Upsert(FromDocument(doc, now), "id", upsertColumns,
		database.Assignment{Column: "updated_at", Value: now})

	fields := map[string]any{
		"step_id": doc.ID,
		"kind":    doc.Kind,
		"trained": doc.Trained,
	}

	return database.WithTx(ctx, r.db, func(ctx context.Context, tx database.Tx) error {
		r.logger.WithContext(ctx).WithFields(fields).Info("Upserting trained step")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tracing.RecordError(span, err)
			r.logger.WithContext(ctx).WithError(err).WithFields(fields).Error("error upserting trained step")
			return httperror.NewHTTPError(http.StatusInternalServerError, "error upserting trained step")
		}
		return nil
	})
}

func (r *Repository) Get(ctx context.Context, id string) (steps.Document, error) {
	ctx, span := tracing.StartSpan(ctx, "TrainedStepRepository.Get")
	defer span.End()

	query, args := trainedSteps.SelectOne("id", id)

	var row TrainedStepRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			r.logger.WithContext(ctx).WithField("step_id", id).Warn("Trained step not found")
			return steps.Document{}, httperror.NewHTTPError(http.StatusNotFound, "trained step not found")
		}

		tracing.RecordError(span, err)
		r.logger.WithContext(ctx).WithError(err).WithField("step_id", id).Error("error getting trained step")
		return steps.Document{}, httperror.NewHTTPError(http.StatusInternalServerError, "error getting trained step")
	}

	return ToDocument(&row), nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "TrainedStepRepository.Delete")
	defer span.End()

	query, args := trainedSteps.DeleteWhere("id", id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		tracing.RecordError(span, err)
		r.logger.WithContext(ctx).WithError(err).WithField("step_id", id).Error("error deleting trained step")
		return httperror.NewHTTPError(http.StatusInternalServerError, "error deleting trained step")
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, "trained step not found")
	}

	r.logger.WithContext(ctx).WithField("step_id", id).Info("Deleted trained step")
	return nil
}
