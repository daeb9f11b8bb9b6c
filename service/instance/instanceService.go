package instancesvc

import (
	"context"
	"errors"
	"time"

	"webbooks/model"
	instancerepo "webbooks/repository/instance"
	"webbooks/util/apperr"
	"webbooks/util/metrics"
)

type Repo interface {
	List(ctx context.Context, f model.InstanceFilter, page model.PageReq) ([]model.BookInstance, int64, error)
	ListByBorrower(ctx context.Context, userID int64) ([]model.BookInstance, error)
	Get(ctx context.Context, id int64) (*model.BookInstance, error)
	Create(ctx context.Context, bi *model.BookInstance) error
	Update(ctx context.Context, bi *model.BookInstance) error
	Delete(ctx context.Context, id int64) error
	Lend(ctx context.Context, id, borrowerID int64, due model.Date) error
	Return(ctx context.Context, id int64) error
	CountOverdue(ctx context.Context, today model.Date) (int64, error)
}

// Query is the admin copy list filter as given by the caller. Overdue
// is resolved against the service clock.
type Query struct {
	StatusID   *int64
	BorrowerID *int64
	BookID     *int64
	Overdue    bool
}

type Service interface {
	List(ctx context.Context, q Query, page model.PageReq) (model.Page[model.BookInstance], error)
	Get(ctx context.Context, id int64) (*model.BookInstance, error)
	Create(ctx context.Context, bi *model.BookInstance) error
	Update(ctx context.Context, bi *model.BookInstance) error
	Delete(ctx context.Context, id int64) error

	Lend(ctx context.Context, id, borrowerID int64, due model.Date) (*model.BookInstance, error)
	Return(ctx context.Context, id int64) (*model.BookInstance, error)

	// MyBooks lists the copies on loan to userID, soonest due first.
	MyBooks(ctx context.Context, userID int64) ([]model.BookInstance, error)
	OverdueCount(ctx context.Context) (int64, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{r: r, now: now}
}

func (s *service) today() model.Date { return model.DateOf(s.now()) }

func (s *service) stamp(rows []model.BookInstance) []model.BookInstance {
	now := s.now()
	for i := range rows {
		rows[i].Stamp(now)
	}
	return rows
}

func (s *service) List(ctx context.Context, q Query, page model.PageReq) (model.Page[model.BookInstance], error) {
	if page.Number < 1 {
		return model.Page[model.BookInstance]{}, apperr.New(apperr.ErrInvalid, "invalid page")
	}
	f := model.InstanceFilter{StatusID: q.StatusID, BorrowerID: q.BorrowerID, BookID: q.BookID}
	if q.Overdue {
		today := s.today()
		f.OverdueOn = &today
	}
	rows, total, err := s.r.List(ctx, f, page)
	if err != nil {
		return model.Page[model.BookInstance]{}, err
	}
	if page.Beyond(total) {
		return model.Page[model.BookInstance]{}, apperr.New(apperr.ErrNotFound, "page not found")
	}
	return model.NewPage(s.stamp(rows), page, total), nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.BookInstance, error) {
	bi, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "book instance")
	}
	bi.Stamp(s.now())
	return bi, nil
}

func (s *service) Create(ctx context.Context, bi *model.BookInstance) error {
	if bi.Imprint == "" {
		return apperr.New(apperr.ErrInvalid, "imprint is required")
	}
	if err := s.r.Create(ctx, bi); err != nil {
		return apperr.FromDB(err, "book instance")
	}
	bi.Stamp(s.now())
	return nil
}

func (s *service) Update(ctx context.Context, bi *model.BookInstance) error {
	if bi.Imprint == "" {
		return apperr.New(apperr.ErrInvalid, "imprint is required")
	}
	if err := s.r.Update(ctx, bi); err != nil {
		return apperr.FromDB(err, "book instance")
	}
	bi.Stamp(s.now())
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return apperr.FromDB(s.r.Delete(ctx, id), "book instance")
}

func (s *service) Lend(ctx context.Context, id, borrowerID int64, due model.Date) (*model.BookInstance, error) {
	if due.Before(s.today()) {
		return nil, apperr.New(apperr.ErrInvalid, "due_back is in the past")
	}
	if err := s.r.Lend(ctx, id, borrowerID, due); err != nil {
		if errors.Is(err, instancerepo.ErrOnLoan) {
			return nil, apperr.Wrap(apperr.ErrNotAvailable, "book instance is already on loan", err)
		}
		return nil, apperr.FromDB(err, "book instance")
	}
	metrics.RecordLoanEvent("lend")
	return s.Get(ctx, id)
}

func (s *service) Return(ctx context.Context, id int64) (*model.BookInstance, error) {
	if err := s.r.Return(ctx, id); err != nil {
		if errors.Is(err, instancerepo.ErrNotOnLoan) {
			return nil, apperr.Wrap(apperr.ErrInvalid, "book instance is not on loan", err)
		}
		return nil, apperr.FromDB(err, "book instance")
	}
	metrics.RecordLoanEvent("return")
	return s.Get(ctx, id)
}

func (s *service) MyBooks(ctx context.Context, userID int64) ([]model.BookInstance, error) {
	rows, err := s.r.ListByBorrower(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.stamp(rows), nil
}

func (s *service) OverdueCount(ctx context.Context) (int64, error) {
	return s.r.CountOverdue(ctx, s.today())
}
