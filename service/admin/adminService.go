package adminsvc

import (
	"context"
	"fmt"
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Model is a registered model on the admin index.
type Model struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Count int64  `json:"count"`
}

type Entry struct {
	Name    string
	URL     string
	Counter Counter
}

type Service interface {
	Index(ctx context.Context) ([]Model, error)
}

type service struct{ entries []Entry }

func New(entries ...Entry) Service { return &service{entries: entries} }

func (s *service) Index(ctx context.Context) ([]Model, error) {
	out := make([]Model, 0, len(s.entries))
	for _, e := range s.entries {
		n, err := e.Counter.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", e.Name, err)
		}
		out = append(out, Model{Name: e.Name, URL: e.URL, Count: n})
	}
	return out, nil
}
