//go:build integration

package dbtest

import (
	"context"
	"fmt"
	"testing"

	"webbooks/model"
	"webbooks/util/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/qawatake/fixify"
)

func Genre(name string) *fixify.Model[model.Genre] {
	return fixify.NewModel(&model.Genre{Name: name})
}

func Language(name string) *fixify.Model[model.Language] {
	return fixify.NewModel(&model.Language{Name: name})
}

func Author(first, last string) *fixify.Model[model.Author] {
	return fixify.NewModel(&model.Author{FirstName: first, LastName: last})
}

func User(username string) *fixify.Model[model.User] {
	return fixify.NewModel(&model.User{
		Username:     username,
		Email:        username + "@example.com",
		Role:         model.RoleReader,
		PasswordHash: "x",
	})
}

// Book connects to its genre, language and any number of authors.
func Book(title string) *fixify.Model[model.Book] {
	return fixify.NewModel(&model.Book{Title: title, Summary: title + " summary", ISBN: "9780000000000"},
		fixify.ConnectorFunc(func(_ testing.TB, b *model.Book, g *model.Genre) {
			b.GenreID = &g.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, b *model.Book, l *model.Language) {
			b.LanguageID = &l.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, b *model.Book, a *model.Author) {
			b.AuthorIDs = append(b.AuthorIDs, a.ID)
		}),
	)
}

// Instance connects to its book and, optionally, a borrower.
func Instance(imprint string, due *model.Date) *fixify.Model[model.BookInstance] {
	return fixify.NewModel(&model.BookInstance{Imprint: imprint, DueBack: due},
		fixify.ConnectorFunc(func(_ testing.TB, bi *model.BookInstance, b *model.Book) {
			bi.BookID = &b.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, bi *model.BookInstance, u *model.User) {
			bi.Borrower = &model.UserRef{ID: u.ID, Username: u.Username}
		}),
	)
}

// Insert writes the fixture graph parents first, filling generated ids.
func Insert(t *testing.T, db *database.DB, models ...fixify.IModel) {
	t.Helper()
	ctx := context.Background()
	fixify.New(t, models...).Iterate(func(v any) error {
		return insert(ctx, db, v)
	})
}

func insert(ctx context.Context, db *database.DB, v any) error {
	ins := func(table string, rec goqu.Record, id *int64) error {
		q := database.SQL.Insert(table).Prepared(true).Rows(rec).Returning("id")
		return database.Row(ctx, db.Pool, q, id)
	}
	switch m := v.(type) {
	case *model.Genre:
		return ins("genres", goqu.Record{"name": m.Name}, &m.ID)
	case *model.Language:
		return ins("languages", goqu.Record{"name": m.Name}, &m.ID)
	case *model.Author:
		return ins("authors", goqu.Record{
			"first_name":    m.FirstName,
			"last_name":     m.LastName,
			"date_of_birth": database.DateArg(m.DateOfBirth),
			"date_of_death": database.DateArg(m.DateOfDeath),
		}, &m.ID)
	case *model.User:
		return ins("users", goqu.Record{
			"username":      m.Username,
			"email":         m.Email,
			"role":          m.Role,
			"password_hash": m.PasswordHash,
		}, &m.ID)
	case *model.Book:
		if err := ins("books", goqu.Record{
			"title":       m.Title,
			"genre_id":    ptr(m.GenreID),
			"language_id": ptr(m.LanguageID),
			"summary":     m.Summary,
			"isbn":        m.ISBN,
		}, &m.ID); err != nil {
			return err
		}
		for _, a := range m.AuthorIDs {
			q := database.SQL.Insert("book_authors").Prepared(true).
				Rows(goqu.Record{"book_id": m.ID, "author_id": a})
			if _, err := database.Run(ctx, db.Pool, q); err != nil {
				return err
			}
		}
		return nil
	case *model.BookInstance:
		rec := goqu.Record{
			"book_id":  ptr(m.BookID),
			"imprint":  m.Imprint,
			"due_back": database.DateArg(m.DueBack),
		}
		if m.Borrower != nil {
			rec["borrower_id"] = m.Borrower.ID
		}
		return ins("book_instances", rec, &m.ID)
	default:
		return fmt.Errorf("dbtest: no insert for %T", v)
	}
}

func ptr(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
