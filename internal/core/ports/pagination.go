package ports

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery carries 1-based pagination parameters from the query string.
type PageQuery struct {
	Page  int `query:"page"  validate:"omitempty,gte=1"`
	Limit int `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

// Normalize fills defaults and clamps the limit.
func (p PageQuery) Normalize() PageQuery {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Skip is the number of rows preceding the page.
func (p PageQuery) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Page is one page of results.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage assembles a Page from a normalized query.
func NewPage[T any](items []T, total int64, q PageQuery) Page[T] {
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}
}
