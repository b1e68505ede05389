// Package builder provides a generic, type-safe SQL query builder.
//
// Queries run against a Source, which is either a *DB (pooled connection)
// or a *Tx (transaction), so the same query code serves both paths.
package builder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/strideworks/storefront/pkg/runtime"
)

// Executor is the subset of pgx execution methods queries need.
// Both *runtime.DB and pgx.Tx satisfy it.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Source supplies an Executor to queries.
type Source interface {
	executor() Executor
}

// DB wraps runtime.DB and provides query builder methods.
type DB struct {
	db *runtime.DB
}

// New creates a new query builder DB from a runtime DB.
func New(db *runtime.DB) *DB {
	return &DB{db: db}
}

// Runtime returns the underlying runtime.DB.
func (d *DB) Runtime() *runtime.DB {
	return d.db
}

func (d *DB) executor() Executor {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db
}

// Tx wraps a pgx transaction so queries can run inside it.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) executor() Executor {
	return t.tx
}

// Exec runs a raw statement inside the transaction.
func (t *Tx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.tx.Exec(ctx, sql, args...)
}

// Query runs a raw query inside the transaction.
func (t *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.tx.Query(ctx, sql, args...)
}

// QueryRow runs a raw single-row query inside the transaction.
func (t *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

// Begin starts a new transaction.
func (d *DB) Begin(ctx context.Context) (*Tx, error) {
	if d.db == nil {
		return nil, runtime.ErrNoConnection
	}
	tx, err := d.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the transaction. Safe to defer after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// InTx runs fn inside a transaction, committing on success and rolling
// back on error.
func (d *DB) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := d.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
