package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration is one embedded schema step, applied once and in name order.
type Migration struct {
	Name string
	SQL  string
}

func Migrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := migrationFS.ReadFile(n)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: n[len("migrations/"):], SQL: string(b)})
	}
	return out, nil
}

// Migrate applies the migrations not yet recorded in schema_migrations.
// It returns the names it applied.
func (db *DB) Migrate(ctx context.Context) ([]string, error) {
	const ddl = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name       TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := db.Pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	ms, err := Migrations()
	if err != nil {
		return nil, err
	}
	var applied []string
	for _, m := range ms {
		err := InTx(ctx, db.Pool, func(tx pgx.Tx) error {
			var n int64
			q := SQL.From("schema_migrations").
				Select(goqu.COUNT("*")).
				Where(goqu.C("name").Eq(m.Name)).
				Prepared(true)
			if err := Row(ctx, tx, q, &n); err != nil {
				return err
			}
			if n > 0 {
				return nil
			}
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			ins := SQL.Insert("schema_migrations").Rows(goqu.Record{"name": m.Name}).Prepared(true)
			if _, err := Run(ctx, tx, ins); err != nil {
				return err
			}
			applied = append(applied, m.Name)
			return nil
		})
		if err != nil {
			return applied, fmt.Errorf("migration %s: %w", m.Name, err)
		}
	}
	return applied, nil
}
