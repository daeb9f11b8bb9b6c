package model

// PageReq is a 1-based page request as used by the list views.
type PageReq struct {
	Number int
	Size   int
}

// Offset is only meaningful for pages that are not Beyond the total.
func (p PageReq) Offset() int { return (p.Number - 1) * p.Size }

// Page is one page of a paginated list.
type Page[T any] struct {
	Data        []T   `json:"data"`
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	Total       int64 `json:"total"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPage fills the paging metadata for rows fetched with req.
func NewPage[T any](rows []T, req PageReq, total int64) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	pages := 1
	if req.Size > 0 && total > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Data:        rows,
		Page:        req.Number,
		PageSize:    req.Size,
		Total:       total,
		NumPages:    pages,
		HasNext:     req.Number < pages,
		HasPrevious: req.Number > 1,
	}
}

// Beyond reports whether the page lies past the last page of total rows.
// The first page always exists, even when empty.
func (p PageReq) Beyond(total int64) bool {
	if p.Number <= 1 {
		return false
	}
	if p.Size <= 0 || total <= 0 {
		return true
	}
	pages := (total + int64(p.Size) - 1) / int64(p.Size)
	return int64(p.Number-1) >= pages
}
