package instancerepo

import (
	"context"
	"errors"
	"time"

	"webbooks/model"
	"webbooks/util/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrOnLoan is returned by Lend when the copy already has a borrower.
	ErrOnLoan = errors.New("copy is already on loan")
	// ErrNotOnLoan is returned by Return when the copy has no borrower.
	ErrNotOnLoan = errors.New("copy is not on loan")
)

type Repo interface {
	List(ctx context.Context, f model.InstanceFilter, page model.PageReq) ([]model.BookInstance, int64, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.BookInstance, error)
	ListByBorrower(ctx context.Context, userID int64) ([]model.BookInstance, error)
	Get(ctx context.Context, id int64) (*model.BookInstance, error)
	Create(ctx context.Context, bi *model.BookInstance) error
	Update(ctx context.Context, bi *model.BookInstance) error
	Delete(ctx context.Context, id int64) error

	// Lend records a loan: borrower, due date and the On loan status.
	Lend(ctx context.Context, id, borrowerID int64, due model.Date) error
	// Return clears the loan and sets the Available status.
	Return(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountOverdue(ctx context.Context, today model.Date) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func baseQuery() *goqu.SelectDataset {
	return database.SQL.From(goqu.T("book_instances").As("bi")).Prepared(true).
		LeftJoin(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("bi.book_id")))).
		LeftJoin(goqu.T("statuses").As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("bi.status_id")))).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("bi.borrower_id"))))
}

func selectQuery() *goqu.SelectDataset {
	return baseQuery().Select(
		goqu.I("bi.id"), goqu.I("bi.book_id"), goqu.COALESCE(goqu.I("b.title"), "").As("book_title"),
		goqu.I("bi.inventory_number"), goqu.I("bi.imprint"),
		goqu.I("bi.status_id"), goqu.COALESCE(goqu.I("s.name"), "").As("status"),
		goqu.I("bi.due_back"), goqu.I("u.id"), goqu.I("u.username"),
	)
}

func filterWhere(f model.InstanceFilter) []exp.Expression {
	var w []exp.Expression
	if f.StatusID != nil {
		w = append(w, goqu.I("bi.status_id").Eq(*f.StatusID))
	}
	if f.BorrowerID != nil {
		w = append(w, goqu.I("bi.borrower_id").Eq(*f.BorrowerID))
	}
	if f.BookID != nil {
		w = append(w, goqu.I("bi.book_id").Eq(*f.BookID))
	}
	if f.OverdueOn != nil {
		w = append(w, goqu.I("bi.due_back").Lt(f.OverdueOn.Time))
	}
	return w
}

func (r *repo) List(ctx context.Context, f model.InstanceFilter, page model.PageReq) ([]model.BookInstance, int64, error) {
	where := filterWhere(f)
	total, err := database.Count(ctx, r.db.Pool, baseQuery().Where(where...))
	if err != nil {
		return nil, 0, err
	}
	if page.Beyond(total) {
		return []model.BookInstance{}, total, nil
	}
	q := selectQuery().Where(where...).
		Order(goqu.I("bi.due_back").Asc().NullsLast(), goqu.I("bi.id").Asc()).
		Limit(uint(page.Size)).Offset(uint(page.Offset()))
	out, err := r.query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repo) ListByBook(ctx context.Context, bookID int64) ([]model.BookInstance, error) {
	return r.query(ctx, selectQuery().
		Where(goqu.I("bi.book_id").Eq(bookID)).
		Order(goqu.I("bi.id").Asc()))
}

// ListByBorrower returns the user's copies, soonest due first.
func (r *repo) ListByBorrower(ctx context.Context, userID int64) ([]model.BookInstance, error) {
	return r.query(ctx, selectQuery().
		Where(goqu.I("bi.borrower_id").Eq(userID)).
		Order(goqu.I("bi.due_back").Asc().NullsLast(), goqu.I("bi.id").Asc()))
}

func (r *repo) query(ctx context.Context, q *goqu.SelectDataset) ([]model.BookInstance, error) {
	rows, err := database.Rows(ctx, r.db.Pool, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookInstance{}
	for rows.Next() {
		bi, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *bi)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.BookInstance, error) {
	sql, args, err := selectQuery().Where(goqu.I("bi.id").Eq(id)).ToSQL()
	if err != nil {
		return nil, err
	}
	return scanInstance(r.db.Pool.QueryRow(ctx, sql, args...))
}

func (r *repo) Create(ctx context.Context, bi *model.BookInstance) error {
	q := database.SQL.Insert("book_instances").Prepared(true).
		Rows(record(bi)).
		Returning("id")
	return database.Row(ctx, r.db.Pool, q, &bi.ID)
}

func (r *repo) Update(ctx context.Context, bi *model.BookInstance) error {
	q := database.SQL.Update("book_instances").Prepared(true).
		Set(record(bi)).
		Where(goqu.C("id").Eq(bi.ID))
	return database.RunOne(ctx, r.db.Pool, q)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	q := database.SQL.Delete("book_instances").Prepared(true).Where(goqu.C("id").Eq(id))
	return database.RunOne(ctx, r.db.Pool, q)
}

func (r *repo) Lend(ctx context.Context, id, borrowerID int64, due model.Date) error {
	return database.InTx(ctx, r.db.Pool, func(tx pgx.Tx) error {
		current, err := lockBorrower(ctx, tx, id)
		if err != nil {
			return err
		}
		if current != nil {
			return ErrOnLoan
		}
		q := database.SQL.Update("book_instances").Prepared(true).
			Set(goqu.Record{
				"borrower_id": borrowerID,
				"due_back":    due.Time,
				"status_id":   statusID(model.StatusOnLoan),
			}).
			Where(goqu.C("id").Eq(id))
		return database.RunOne(ctx, tx, q)
	})
}

func (r *repo) Return(ctx context.Context, id int64) error {
	return database.InTx(ctx, r.db.Pool, func(tx pgx.Tx) error {
		current, err := lockBorrower(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotOnLoan
		}
		q := database.SQL.Update("book_instances").Prepared(true).
			Set(goqu.Record{
				"borrower_id": nil,
				"due_back":    nil,
				"status_id":   statusID(model.StatusAvailable),
			}).
			Where(goqu.C("id").Eq(id))
		return database.RunOne(ctx, tx, q)
	})
}

// lockBorrower locks the copy row and returns its current borrower.
func lockBorrower(ctx context.Context, tx pgx.Tx, id int64) (*int64, error) {
	q := database.SQL.From("book_instances").Prepared(true).
		Select("borrower_id").
		Where(goqu.C("id").Eq(id)).
		ForUpdate(exp.Wait)
	var borrower *int64
	if err := database.Row(ctx, tx, q, &borrower); err != nil {
		return nil, err
	}
	return borrower, nil
}

func statusID(name string) *goqu.SelectDataset {
	return database.SQL.From("statuses").Prepared(true).
		Select("id").
		Where(goqu.C("name").Eq(name)).
		Order(goqu.C("id").Asc()).
		Limit(1)
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	return database.Count(ctx, r.db.Pool, baseQuery())
}

func (r *repo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return database.Count(ctx, r.db.Pool, baseQuery().Where(goqu.I("s.name").Eq(status)))
}

// CountOverdue counts copies due strictly before today.
func (r *repo) CountOverdue(ctx context.Context, today model.Date) (int64, error) {
	return database.Count(ctx, r.db.Pool, baseQuery().Where(goqu.I("bi.due_back").Lt(today.Time)))
}

func record(bi *model.BookInstance) goqu.Record {
	var borrower any
	if bi.Borrower != nil {
		borrower = bi.Borrower.ID
	}
	var inv any
	if bi.InventoryNumber != nil {
		inv = *bi.InventoryNumber
	}
	var book, status any
	if bi.BookID != nil {
		book = *bi.BookID
	}
	if bi.StatusID != nil {
		status = *bi.StatusID
	}
	return goqu.Record{
		"book_id":          book,
		"inventory_number": inv,
		"imprint":          bi.Imprint,
		"status_id":        status,
		"due_back":         database.DateArg(bi.DueBack),
		"borrower_id":      borrower,
	}
}

func scanInstance(row pgx.Row) (*model.BookInstance, error) {
	var (
		bi       model.BookInstance
		due      *time.Time
		userID   *int64
		userName *string
	)
	if err := row.Scan(
		&bi.ID, &bi.BookID, &bi.BookTitle, &bi.InventoryNumber, &bi.Imprint,
		&bi.StatusID, &bi.StatusName, &due, &userID, &userName,
	); err != nil {
		return nil, err
	}
	bi.DueBack = model.DateFromPtr(due)
	if userID != nil {
		bi.Borrower = &model.UserRef{ID: *userID}
		if userName != nil {
			bi.Borrower.Username = *userName
		}
	}
	return &bi, nil
}
