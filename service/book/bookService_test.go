package booksvc_test

import (
	"context"
	"math"
	"errors"
	"testing"
	"time"

	"webbooks/model"
	booksvc "webbooks/service/book"
	"webbooks/util/apperr"
	"webbooks/util/database"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	listFn   func(ctx context.Context, page model.PageReq) ([]model.BookSummary, int64, error)
	getFn    func(ctx context.Context, id int64) (*model.Book, error)
	detailFn func(ctx context.Context, id int64) (*model.BookDetail, error)
	createFn func(ctx context.Context, b *model.Book) error
	updateFn func(ctx context.Context, b *model.Book) error
	deleteFn func(ctx context.Context, id int64) error
	countFn  func(ctx context.Context) (int64, error)
}

func (m *repoMock) List(ctx context.Context, page model.PageReq) ([]model.BookSummary, int64, error) {
	return m.listFn(ctx, page)
}
func (m *repoMock) Get(ctx context.Context, id int64) (*model.Book, error) { return m.getFn(ctx, id) }
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.BookDetail, error) {
	return m.detailFn(ctx, id)
}
func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) Update(ctx context.Context, b *model.Book) error { return m.updateFn(ctx, b) }
func (m *repoMock) Delete(ctx context.Context, id int64) error      { return m.deleteFn(ctx, id) }
func (m *repoMock) Count(ctx context.Context) (int64, error)        { return m.countFn(ctx) }

type copiesMock struct {
	byBookFn   func(ctx context.Context, bookID int64) ([]model.BookInstance, error)
	countFn    func(ctx context.Context) (int64, error)
	byStatusFn func(ctx context.Context, status string) (int64, error)
}

func (m *copiesMock) ListByBook(ctx context.Context, bookID int64) ([]model.BookInstance, error) {
	return m.byBookFn(ctx, bookID)
}
func (m *copiesMock) Count(ctx context.Context) (int64, error) { return m.countFn(ctx) }
func (m *copiesMock) CountByStatus(ctx context.Context, status string) (int64, error) {
	return m.byStatusFn(ctx, status)
}

type counterFunc func(ctx context.Context) (int64, error)

func (f counterFunc) Count(ctx context.Context) (int64, error) { return f(ctx) }

var fixedNow = func() time.Time { return time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC) }

func TestIndex(t *testing.T) {
	s := booksvc.New(
		&repoMock{countFn: func(ctx context.Context) (int64, error) { return 3, nil }},
		&copiesMock{
			countFn: func(ctx context.Context) (int64, error) { return 7, nil },
			byStatusFn: func(ctx context.Context, status string) (int64, error) {
				require.Equal(t, model.StatusAvailable, status)
				return 4, nil
			},
		},
		counterFunc(func(ctx context.Context) (int64, error) { return 2, nil }),
		fixedNow,
	)
	c, err := s.Index(context.Background())
	require.NoError(t, err)
	require.Equal(t, &model.CatalogCounts{NumBooks: 3, NumInstances: 7, NumInstancesAvailable: 4, NumAuthors: 2}, c)
}

func TestIndex_Error(t *testing.T) {
	boom := errors.New("boom")
	s := booksvc.New(&repoMock{countFn: func(ctx context.Context) (int64, error) { return 0, boom }}, nil, nil, fixedNow)
	_, err := s.Index(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{}, nil, nil, fixedNow)
	err := s.Create(context.Background(), &model.Book{Title: "Dune"})
	require.Equal(t, apperr.ErrInvalid, apperr.Code(err))
	err = s.Create(context.Background(), &model.Book{AuthorIDs: []int64{1}})
	require.Equal(t, apperr.ErrInvalid, apperr.Code(err))
}

func TestCreate_UnknownGenre(t *testing.T) {
	s := booksvc.New(&repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
		},
	}, nil, nil, fixedNow)
	err := s.Create(context.Background(), &model.Book{Title: "Dune", AuthorIDs: []int64{1}})
	require.Equal(t, apperr.ErrInvalid, apperr.Code(err))
}

func TestDetail_StampsOverdue(t *testing.T) {
	yesterday := model.NewDate(2025, time.June, 9)
	today := model.NewDate(2025, time.June, 10)
	s := booksvc.New(
		&repoMock{detailFn: func(ctx context.Context, id int64) (*model.BookDetail, error) {
			return &model.BookDetail{ID: id, Title: "Dune"}, nil
		}},
		&copiesMock{byBookFn: func(ctx context.Context, bookID int64) ([]model.BookInstance, error) {
			return []model.BookInstance{{ID: 1, DueBack: &yesterday}, {ID: 2, DueBack: &today}, {ID: 3}}, nil
		}},
		nil, fixedNow,
	)
	d, err := s.Detail(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, d.Instances, 3)
	require.True(t, d.Instances[0].Overdue)
	require.False(t, d.Instances[1].Overdue)
	require.False(t, d.Instances[2].Overdue)
}

func TestDetail_NotFound(t *testing.T) {
	s := booksvc.New(&repoMock{
		detailFn: func(ctx context.Context, id int64) (*model.BookDetail, error) { return nil, database.ErrNoRows },
	}, nil, nil, fixedNow)
	_, err := s.Detail(context.Background(), 9)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestList_PagePastTheEnd(t *testing.T) {
	s := booksvc.New(&repoMock{
		listFn: func(ctx context.Context, page model.PageReq) ([]model.BookSummary, int64, error) {
			return []model.BookSummary{}, 5, nil
		},
	}, nil, nil, fixedNow)
	_, err := s.List(context.Background(), model.PageReq{Number: math.MaxInt, Size: 10})
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestList(t *testing.T) {
	s := booksvc.New(&repoMock{
		listFn: func(ctx context.Context, page model.PageReq) ([]model.BookSummary, int64, error) {
			require.Equal(t, 10, page.Offset())
			return []model.BookSummary{{ID: 11}}, 11, nil
		},
	}, nil, nil, fixedNow)
	p, err := s.List(context.Background(), model.PageReq{Number: 2, Size: 10})
	require.NoError(t, err)
	require.Equal(t, 2, p.NumPages)
	require.True(t, p.HasPrevious)
	require.False(t, p.HasNext)
}
