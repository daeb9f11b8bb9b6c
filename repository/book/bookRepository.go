package bookrepo

import (
	"context"

	"webbooks/model"
	"webbooks/util/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
)

type Repo interface {
	List(ctx context.Context, page model.PageReq) ([]model.BookSummary, int64, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Detail(ctx context.Context, id int64) (*model.BookDetail, error)
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func listQuery() *goqu.SelectDataset {
	return database.SQL.From(goqu.T("books").As("b")).Prepared(true).
		LeftJoin(goqu.T("genres").As("g"), goqu.On(goqu.I("g.id").Eq(goqu.I("b.genre_id")))).
		LeftJoin(goqu.T("languages").As("l"), goqu.On(goqu.I("l.id").Eq(goqu.I("b.language_id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.title"),
			goqu.COALESCE(goqu.I("g.name"), "").As("genre"),
			goqu.COALESCE(goqu.I("l.name"), "").As("language"),
		).
		Order(goqu.I("b.id").Asc())
}

func (r *repo) List(ctx context.Context, page model.PageReq) ([]model.BookSummary, int64, error) {
	total, err := database.Count(ctx, r.db.Pool, database.SQL.From("books").Prepared(true))
	if err != nil {
		return nil, 0, err
	}
	if page.Beyond(total) {
		return []model.BookSummary{}, total, nil
	}
	rows, err := database.Rows(ctx, r.db.Pool, listQuery().Limit(uint(page.Size)).Offset(uint(page.Offset())))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.BookSummary{}
	ids := []int64{}
	for rows.Next() {
		var b model.BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Genre, &b.Language); err != nil {
			return nil, 0, err
		}
		b.URL = model.BookURL(b.ID)
		out = append(out, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	authors, err := authorsOf(ctx, r.db.Pool, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Authors = nonNil(authors[out[i].ID])
		out[i].DisplayAuthor = model.DisplayAuthor(out[i].Authors)
	}
	return out, total, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Book, error) {
	q := database.SQL.From("books").Prepared(true).
		Select("id", "title", "genre_id", "language_id", "summary", "isbn").
		Where(goqu.C("id").Eq(id))
	var b model.Book
	if err := database.Row(ctx, r.db.Pool, q, &b.ID, &b.Title, &b.GenreID, &b.LanguageID, &b.Summary, &b.ISBN); err != nil {
		return nil, err
	}
	authors, err := authorsOf(ctx, r.db.Pool, []int64{id})
	if err != nil {
		return nil, err
	}
	b.AuthorIDs = []int64{}
	for _, a := range authors[id] {
		b.AuthorIDs = append(b.AuthorIDs, a.ID)
	}
	return &b, nil
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.BookDetail, error) {
	q := database.SQL.From(goqu.T("books").As("b")).Prepared(true).
		LeftJoin(goqu.T("genres").As("g"), goqu.On(goqu.I("g.id").Eq(goqu.I("b.genre_id")))).
		LeftJoin(goqu.T("languages").As("l"), goqu.On(goqu.I("l.id").Eq(goqu.I("b.language_id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.summary"), goqu.I("b.isbn"),
			goqu.I("g.id"), goqu.I("g.name"), goqu.I("l.id"), goqu.I("l.name"),
		).
		Where(goqu.I("b.id").Eq(id))

	var (
		d               model.BookDetail
		genreID, langID *int64
		genreNm, langNm *string
	)
	if err := database.Row(ctx, r.db.Pool, q,
		&d.ID, &d.Title, &d.Summary, &d.ISBN, &genreID, &genreNm, &langID, &langNm,
	); err != nil {
		return nil, err
	}
	if genreID != nil {
		d.Genre = &model.Genre{ID: *genreID, Name: deref(genreNm)}
	}
	if langID != nil {
		d.Language = &model.Language{ID: *langID, Name: deref(langNm)}
	}

	authors, err := authorsOf(ctx, r.db.Pool, []int64{id})
	if err != nil {
		return nil, err
	}
	d.Authors = nonNil(authors[id])
	d.DisplayAuthor = model.DisplayAuthor(d.Authors)
	d.Instances = []model.BookInstance{}
	return &d, nil
}

// Create inserts the book and its author links in one transaction.
func (r *repo) Create(ctx context.Context, b *model.Book) error {
	return database.InTx(ctx, r.db.Pool, func(tx pgx.Tx) error {
		q := database.SQL.Insert("books").Prepared(true).
			Rows(record(b)).
			Returning("id")
		if err := database.Row(ctx, tx, q, &b.ID); err != nil {
			return err
		}
		return linkAuthors(ctx, tx, b.ID, b.AuthorIDs)
	})
}

// Update rewrites the book row and replaces its author links.
func (r *repo) Update(ctx context.Context, b *model.Book) error {
	return database.InTx(ctx, r.db.Pool, func(tx pgx.Tx) error {
		q := database.SQL.Update("books").Prepared(true).
			Set(record(b)).
			Where(goqu.C("id").Eq(b.ID))
		if err := database.RunOne(ctx, tx, q); err != nil {
			return err
		}
		del := database.SQL.Delete("book_authors").Prepared(true).Where(goqu.C("book_id").Eq(b.ID))
		if _, err := database.Run(ctx, tx, del); err != nil {
			return err
		}
		return linkAuthors(ctx, tx, b.ID, b.AuthorIDs)
	})
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	q := database.SQL.Delete("books").Prepared(true).Where(goqu.C("id").Eq(id))
	return database.RunOne(ctx, r.db.Pool, q)
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	return database.Count(ctx, r.db.Pool, database.SQL.From("books").Prepared(true))
}

func record(b *model.Book) goqu.Record {
	return goqu.Record{
		"title":       b.Title,
		"genre_id":    idArg(b.GenreID),
		"language_id": idArg(b.LanguageID),
		"summary":     b.Summary,
		"isbn":        b.ISBN,
	}
}

func linkAuthors(ctx context.Context, q database.Querier, bookID int64, authorIDs []int64) error {
	ids := uniq(authorIDs)
	if len(ids) == 0 {
		return nil
	}
	rows := make([]any, 0, len(ids))
	for _, a := range ids {
		rows = append(rows, goqu.Record{"book_id": bookID, "author_id": a})
	}
	_, err := database.Run(ctx, q, database.SQL.Insert("book_authors").Prepared(true).Rows(rows...))
	return err
}

func authorsQuery(bookIDs []int64) *goqu.SelectDataset {
	return database.SQL.From(goqu.T("book_authors").As("ba")).Prepared(true).
		Join(goqu.T("authors").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("ba.author_id")))).
		Select(
			goqu.I("ba.book_id"), goqu.I("a.id"), goqu.I("a.first_name"), goqu.I("a.last_name"),
		).
		Where(goqu.I("ba.book_id").In(bookIDs)).
		Order(goqu.I("ba.book_id").Asc(), goqu.I("a.last_name").Asc(), goqu.I("a.id").Asc())
}

// authorsOf loads the authors of several books in one query.
func authorsOf(ctx context.Context, q database.Querier, bookIDs []int64) (map[int64][]model.Author, error) {
	out := map[int64][]model.Author{}
	if len(bookIDs) == 0 {
		return out, nil
	}
	rows, err := database.Rows(ctx, q, authorsQuery(bookIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			bookID int64
			a      model.Author
		)
		if err := rows.Scan(&bookID, &a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, err
		}
		out[bookID] = append(out[bookID], a)
	}
	return out, rows.Err()
}

func idArg(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(a []model.Author) []model.Author {
	if a == nil {
		return []model.Author{}
	}
	return a
}

func uniq(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
