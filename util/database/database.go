package database

import (
	"context"
	"fmt"
	"time"

	"webbooks/model"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQL builds PostgreSQL statements. Repositories always call
// Prepared(true) so values travel as $n arguments.
var SQL = goqu.Dialect("postgres")

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DB struct{ Pool *pgxpool.Pool }

type Options struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	Tracer          pgx.QueryTracer
}

func New(ctx context.Context, dsn string, opts Options) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	if opts.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.Tracer != nil {
		cfg.ConnConfig.Tracer = opts.Tracer
	}
	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{Pool: p}, nil
}

func (db *DB) Close() { db.Pool.Close() }

// InTx runs fn in a transaction, committing when fn returns nil.
func InTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) (err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Run renders a goqu statement and executes it on q.
func Run(ctx context.Context, q Querier, b interface{ ToSQL() (string, []any, error) }) (pgconn.CommandTag, error) {
	sql, args, err := b.ToSQL()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("build sql: %w", err)
	}
	return q.Exec(ctx, sql, args...)
}

// Rows renders a goqu statement and queries q.
func Rows(ctx context.Context, q Querier, b interface{ ToSQL() (string, []any, error) }) (pgx.Rows, error) {
	sql, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}
	return q.Query(ctx, sql, args...)
}

// Row renders a goqu statement and scans its single row into dest.
func Row(ctx context.Context, q Querier, b interface{ ToSQL() (string, []any, error) }, dest ...any) error {
	sql, args, err := b.ToSQL()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}
	return q.QueryRow(ctx, sql, args...).Scan(dest...)
}

// RunOne executes b and returns ErrNoRows when no row was affected.
func RunOne(ctx context.Context, q Querier, b interface{ ToSQL() (string, []any, error) }) error {
	tag, err := Run(ctx, q, b)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

// Count runs SELECT COUNT(*) over ds, ignoring its ordering and paging.
func Count(ctx context.Context, q Querier, ds *goqu.SelectDataset) (int64, error) {
	var n int64
	err := Row(ctx, q, ds.ClearOrder().ClearLimit().ClearOffset().Select(goqu.COUNT("*")), &n)
	return n, err
}

// DateArg turns a nullable calendar date into a statement argument.
func DateArg(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}
