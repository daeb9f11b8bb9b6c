package authrepo

import (
	"context"

	"webbooks/model"
	"webbooks/util/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByUsername(ctx context.Context, username string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func selectUsers() *goqu.SelectDataset {
	return database.SQL.From("users").Prepared(true).
		Select("id", "first_name", "last_name", "email", "username", "role", "password_hash", "created_at")
}

func (r *repo) Create(ctx context.Context, u *model.User) error {
	q := database.SQL.Insert("users").Prepared(true).
		Rows(goqu.Record{
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"email":         u.Email,
			"username":      u.Username,
			"role":          u.Role,
			"password_hash": u.PasswordHash,
		}).
		Returning("id", "created_at")
	return database.Row(ctx, r.db.Pool, q, &u.ID, &u.CreatedAt)
}

// ByUsername matches case-insensitively, like the unique index.
func (r *repo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.one(ctx, selectUsers().Where(goqu.Func("lower", goqu.C("username")).Eq(goqu.Func("lower", username))))
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return r.one(ctx, selectUsers().Where(goqu.C("id").Eq(id)))
}

func (r *repo) one(ctx context.Context, q *goqu.SelectDataset) (*model.User, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.Pool.QueryRow(ctx, sql, args...))
}

// List returns every account ordered by username.
func (r *repo) List(ctx context.Context) ([]model.User, error) {
	rows, err := database.Rows(ctx, r.db.Pool, selectUsers().Order(goqu.I("username").Asc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *repo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	q := database.SQL.Update("users").Prepared(true).
		Set(goqu.Record{"password_hash": passwordHash}).
		Where(goqu.C("id").Eq(id))
	return database.RunOne(ctx, r.db.Pool, q)
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	return database.Count(ctx, r.db.Pool, selectUsers())
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}
