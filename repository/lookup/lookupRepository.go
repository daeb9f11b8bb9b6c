package lookuprepo

import (
	"context"

	"webbooks/model"
	"webbooks/util/database"

	"github.com/doug-martin/goqu/v9"
)

// Table names a single-column lookup table.
type Table string

const (
	Genres    Table = "genres"
	Languages Table = "languages"
	Statuses  Table = "statuses"
)

type Repo interface {
	Table() Table
	List(ctx context.Context) ([]model.Named, error)
	Get(ctx context.Context, id int64) (*model.Named, error)
	ByName(ctx context.Context, name string) (*model.Named, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type repo struct {
	db    *database.DB
	table Table
}

func New(db *database.DB, t Table) Repo { return &repo{db: db, table: t} }

func (r *repo) Table() Table { return r.table }

func (r *repo) from() *goqu.SelectDataset {
	return database.SQL.From(string(r.table)).Prepared(true)
}

func (r *repo) List(ctx context.Context) ([]model.Named, error) {
	rows, err := database.Rows(ctx, r.db.Pool, r.from().Select("id", "name").Order(goqu.C("name").Asc(), goqu.C("id").Asc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Named{}
	for rows.Next() {
		var n model.Named
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Named, error) {
	return r.one(ctx, goqu.C("id").Eq(id))
}

// ByName matches case-insensitively.
func (r *repo) ByName(ctx context.Context, name string) (*model.Named, error) {
	return r.one(ctx, goqu.Func("lower", goqu.C("name")).Eq(goqu.Func("lower", name)))
}

func (r *repo) one(ctx context.Context, where goqu.Expression) (*model.Named, error) {
	var n model.Named
	if err := database.Row(ctx, r.db.Pool, r.from().Select("id", "name").Where(where).Limit(1), &n.ID, &n.Name); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repo) Create(ctx context.Context, name string) (int64, error) {
	q := database.SQL.Insert(string(r.table)).Prepared(true).
		Rows(goqu.Record{"name": name}).
		Returning("id")
	var id int64
	if err := database.Row(ctx, r.db.Pool, q, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Update(ctx context.Context, id int64, name string) error {
	q := database.SQL.Update(string(r.table)).Prepared(true).
		Set(goqu.Record{"name": name}).
		Where(goqu.C("id").Eq(id))
	return database.RunOne(ctx, r.db.Pool, q)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	q := database.SQL.Delete(string(r.table)).Prepared(true).Where(goqu.C("id").Eq(id))
	return database.RunOne(ctx, r.db.Pool, q)
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	return database.Count(ctx, r.db.Pool, r.from())
}
