package database

import (
	"context"
	"database/sql"

	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type txContextKey struct{}

type Tx interface {
	IsOpen() bool
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Transaction wraps sqlx.Tx. A transaction found on the context is shared:
// the borrowed handle ignores Commit and Rollback so only its owner ends it.
type Transaction struct {
	*sqlx.Tx
	logger   ectologger.Logger
	closed   bool
	borrowed bool
}

type txBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// GetTx joins the open transaction on ctx or begins a new one and stores it
// on the returned context.
func GetTx(ctx context.Context, logger ectologger.Logger, db txBeginner, opts *sql.TxOptions) (context.Context, Tx, error) {
	if owner, ok := ctx.Value(txContextKey{}).(*Transaction); ok && owner.IsOpen() {
		return ctx, &Transaction{Tx: owner.Tx, logger: logger, borrowed: true}, nil
	}

	sqlTx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("failed to begin transaction")
		return ctx, nil, errors.Wrap(err, "failed to begin transaction")
	}

	tx := &Transaction{Tx: sqlTx, logger: logger}
	return context.WithValue(ctx, txContextKey{}, tx), tx, nil
}

// WithTx runs fn in a transaction, committing when it returns nil and
// rolling back otherwise.
func WithTx(ctx context.Context, db DB, fn func(ctx context.Context, tx Tx) error) error {
	ctx, tx, err := db.GetTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

func (t *Transaction) IsOpen() bool {
	return !t.closed
}

func (t *Transaction) Rollback(ctx context.Context) error {
	return t.end(ctx, "rollback", t.Tx.Rollback)
}

func (t *Transaction) Commit(ctx context.Context) error {
	return t.end(ctx, "commit", t.Tx.Commit)
}

func (t *Transaction) end(ctx context.Context, action string, fn func() error) error {
	if t.closed || t.borrowed {
		return nil
	}

	if err := fn(); err != nil {
		t.logger.WithContext(ctx).WithError(err).Errorf("failed to %s transaction", action)
		return errors.Wrapf(err, "failed to %s transaction", action)
	}

	t.closed = true
	return nil
}
