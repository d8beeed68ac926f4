package kernel

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps page and size into the accepted range
func (p PaginationOptions) Normalize() PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset returns the number of rows to skip for the current page
func (p PaginationOptions) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

type Page struct {
	Number int   `json:"number"`
	Size   int   `json:"size"`
	Total  int64 `json:"total"`
	Pages  int   `json:"pages"`
}

type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// NewPaginated builds a page envelope from a result slice and the total row count
func NewPaginated[T any](items []T, opts PaginationOptions, total int64) Paginated[T] {
	opts = opts.Normalize()
	if items == nil {
		items = []T{}
	}

	pages := 0
	if total > 0 {
		pages = int((total + int64(opts.PageSize) - 1) / int64(opts.PageSize))
	}

	return Paginated[T]{
		Items: items,
		Page: Page{
			Number: opts.Page,
			Size:   opts.PageSize,
			Total:  total,
			Pages:  pages,
		},
		Empty: len(items) == 0,
	}
}

// MapPaginated converts the items of a page while keeping its metadata
func MapPaginated[T, R any](p Paginated[T], fn func(T) R) Paginated[R] {
	out := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return Paginated[R]{Items: out, Page: p.Page, Empty: p.Empty}
}
