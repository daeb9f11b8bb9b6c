package booksvc

import (
	"context"
	"time"

	"webbooks/model"
	"webbooks/util/apperr"
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

// Copies is the part of the copy store the catalog pages read.
type Copies interface {
	ListByBook(ctx context.Context, bookID int64) ([]model.BookInstance, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type Service interface {
	Index(ctx context.Context) (*model.CatalogCounts, error)
	List(ctx context.Context, page model.PageReq) (model.Page[model.BookSummary], error)
	Detail(ctx context.Context, id int64) (*model.BookDetail, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r       Repo
	copies  Copies
	authors Counter
	now     func() time.Time
}

func New(r Repo, copies Copies, authors Counter, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{r: r, copies: copies, authors: authors, now: now}
}

// Index returns the home page counters.
func (s *service) Index(ctx context.Context) (*model.CatalogCounts, error) {
	var (
		c   model.CatalogCounts
		err error
	)
	if c.NumBooks, err = s.r.Count(ctx); err != nil {
		return nil, err
	}
	if c.NumInstances, err = s.copies.Count(ctx); err != nil {
		return nil, err
	}
	if c.NumInstancesAvailable, err = s.copies.CountByStatus(ctx, model.StatusAvailable); err != nil {
		return nil, err
	}
	if c.NumAuthors, err = s.authors.Count(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *service) List(ctx context.Context, page model.PageReq) (model.Page[model.BookSummary], error) {
	if page.Number < 1 {
		return model.Page[model.BookSummary]{}, apperr.New(apperr.ErrInvalid, "invalid page")
	}
	rows, total, err := s.r.List(ctx, page)
	if err != nil {
		return model.Page[model.BookSummary]{}, err
	}
	if page.Beyond(total) {
		return model.Page[model.BookSummary]{}, apperr.New(apperr.ErrNotFound, "page not found")
	}
	return model.NewPage(rows, page, total), nil
}

// Detail returns the book with its copies, each stamped with is_overdue.
func (s *service) Detail(ctx context.Context, id int64) (*model.BookDetail, error) {
	d, err := s.r.Detail(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "book")
	}
	copies, err := s.copies.ListByBook(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range copies {
		copies[i].Stamp(now)
	}
	d.Instances = copies
	return d, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "book")
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, b *model.Book) error {
	if err := check(b); err != nil {
		return err
	}
	return apperr.FromDB(s.r.Create(ctx, b), "book")
}

func (s *service) Update(ctx context.Context, b *model.Book) error {
	if err := check(b); err != nil {
		return err
	}
	return apperr.FromDB(s.r.Update(ctx, b), "book")
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return apperr.FromDB(s.r.Delete(ctx, id), "book")
}

func check(b *model.Book) error {
	if b.Title == "" {
		return apperr.New(apperr.ErrInvalid, "title is required")
	}
	if len(b.AuthorIDs) == 0 {
		return apperr.New(apperr.ErrInvalid, "at least one author is required")
	}
	return nil
}
