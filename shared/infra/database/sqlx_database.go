package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// sqlxDatabase adapts *sqlx.DB to the Database interface.
type sqlxDatabase struct {
	db *sqlx.DB
}

// NewSqlxDatabase wraps an already-opened *sqlx.DB. The caller owns pool
// construction (max open/idle connections, DSN) since that plumbing lives
// outside this pipeline's scope.
func NewSqlxDatabase(db *sqlx.DB) Database {
	return &sqlxDatabase{db: db}
}

func (d *sqlxDatabase) Query(query string, args ...interface{}) (Rows, error) {
	return d.db.Query(query, args...)
}

func (d *sqlxDatabase) QueryContext(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	return d.db.QueryContext(ctx, query, args...)
}

func (d *sqlxDatabase) QueryRow(query string, args ...interface{}) Row {
	return d.db.QueryRow(query, args...)
}

func (d *sqlxDatabase) QueryRowContext(ctx context.Context, query string, args ...interface{}) Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

func (d *sqlxDatabase) Exec(query string, args ...interface{}) (Result, error) {
	return d.db.Exec(query, args...)
}

func (d *sqlxDatabase) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	return d.db.ExecContext(ctx, query, args...)
}

func (d *sqlxDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return d.db.Get(dest, query, args...)
}

func (d *sqlxDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return d.db.Select(dest, query, args...)
}

func (d *sqlxDatabase) Begin() (Transaction, error) {
	tx, err := d.db.Beginx()
	if err != nil {
		return nil, err
	}
	return &sqlxTransaction{tx: tx}, nil
}

func (d *sqlxDatabase) BeginTx(ctx context.Context, opts *sql.TxOptions) (Transaction, error) {
	tx, err := d.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &sqlxTransaction{tx: tx}, nil
}

func (d *sqlxDatabase) Ping() error        { return d.db.Ping() }
func (d *sqlxDatabase) Close() error       { return d.db.Close() }
func (d *sqlxDatabase) Stats() sql.DBStats { return d.db.Stats() }

// sqlxTransaction adapts *sqlx.Tx to the Transaction interface.
type sqlxTransaction struct {
	tx *sqlx.Tx
}

func (t *sqlxTransaction) Query(query string, args ...interface{}) (Rows, error) {
	return t.tx.Query(query, args...)
}

func (t *sqlxTransaction) QueryContext(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *sqlxTransaction) QueryRow(query string, args ...interface{}) Row {
	return t.tx.QueryRow(query, args...)
}

func (t *sqlxTransaction) QueryRowContext(ctx context.Context, query string, args ...interface{}) Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *sqlxTransaction) Exec(query string, args ...interface{}) (Result, error) {
	return t.tx.Exec(query, args...)
}

func (t *sqlxTransaction) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *sqlxTransaction) Get(dest interface{}, query string, args ...interface{}) error {
	return t.tx.Get(dest, query, args...)
}

func (t *sqlxTransaction) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return t.tx.GetContext(ctx, dest, query, args...)
}

func (t *sqlxTransaction) Select(dest interface{}, query string, args ...interface{}) error {
	return t.tx.Select(dest, query, args...)
}

func (t *sqlxTransaction) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return t.tx.SelectContext(ctx, dest, query, args...)
}

func (t *sqlxTransaction) Commit() error   { return t.tx.Commit() }
func (t *sqlxTransaction) Rollback() error { return t.tx.Rollback() }
