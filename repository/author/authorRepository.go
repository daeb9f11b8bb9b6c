package authorrepo

import (
	"context"
	"time"

	"webbooks/model"
	"webbooks/util/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
)

type Repo interface {
	List(ctx context.Context, page model.PageReq) ([]model.Author, int64, error)
	All(ctx context.Context) ([]model.Author, error)
	Get(ctx context.Context, id int64) (*model.Author, error)
	Create(ctx context.Context, a *model.Author) error
	Update(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

var columns = []any{"id", "first_name", "last_name", "date_of_birth", "date_of_death"}

func selectAuthors() *goqu.SelectDataset {
	return database.SQL.From("authors").Prepared(true).
		Select(columns...).
		Order(goqu.C("last_name").Asc(), goqu.C("first_name").Asc(), goqu.C("id").Asc())
}

func (r *repo) List(ctx context.Context, page model.PageReq) ([]model.Author, int64, error) {
	total, err := database.Count(ctx, r.db.Pool, selectAuthors())
	if err != nil {
		return nil, 0, err
	}
	if page.Beyond(total) {
		return []model.Author{}, total, nil
	}
	q := selectAuthors().Limit(uint(page.Size)).Offset(uint(page.Offset()))
	out, err := r.query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repo) All(ctx context.Context) ([]model.Author, error) {
	return r.query(ctx, selectAuthors())
}

func (r *repo) query(ctx context.Context, q *goqu.SelectDataset) ([]model.Author, error) {
	rows, err := database.Rows(ctx, r.db.Pool, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Author, error) {
	sql, args, err := selectAuthors().Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return nil, err
	}
	return scanAuthor(r.db.Pool.QueryRow(ctx, sql, args...))
}

func (r *repo) Create(ctx context.Context, a *model.Author) error {
	q := database.SQL.Insert("authors").Prepared(true).
		Rows(record(a)).
		Returning("id")
	return database.Row(ctx, r.db.Pool, q, &a.ID)
}

func (r *repo) Update(ctx context.Context, a *model.Author) error {
	q := database.SQL.Update("authors").Prepared(true).
		Set(record(a)).
		Where(goqu.C("id").Eq(a.ID))
	return database.RunOne(ctx, r.db.Pool, q)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	q := database.SQL.Delete("authors").Prepared(true).Where(goqu.C("id").Eq(id))
	return database.RunOne(ctx, r.db.Pool, q)
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	return database.Count(ctx, r.db.Pool, selectAuthors())
}

func record(a *model.Author) goqu.Record {
	return goqu.Record{
		"first_name":    a.FirstName,
		"last_name":     a.LastName,
		"date_of_birth": database.DateArg(a.DateOfBirth),
		"date_of_death": database.DateArg(a.DateOfDeath),
	}
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var (
		a          model.Author
		born, died *time.Time
	)
	if err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &born, &died); err != nil {
		return nil, err
	}
	a.DateOfBirth = model.DateFromPtr(born)
	a.DateOfDeath = model.DateFromPtr(died)
	return &a, nil
}
