package utils

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// PageParams resolves optional page/limit inputs to their defaults
func PageParams(page, limit *int) (int, int) {
	p, l := DefaultPage, DefaultLimit
	if page != nil {
		p = *page
	}
	if limit != nil {
		l = *limit
	}
	return p, l
}

// Paginate slices an already fetched, already ordered list. Pages past the
// end yield an empty slice.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	total := len(items)
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	// compare before multiplying so huge page numbers cannot overflow
	start := total
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}
	end := total
	if limit < total-start {
		end = start + limit
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return items[start:end], Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    end < total,
	}
}
