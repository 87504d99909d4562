package domain

// PaginationParams carries page/limit values from the HTTP layer to the feed.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=20).
// The limit is capped at 100 so a single feed response stays small.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Bounds returns the [start, end) slice bounds of the page within a
// collection of n items. Pages past the end, including pages whose offset
// would overflow an int, yield the empty range (n, n).
func (p PaginationParams) Bounds(n int) (start, end int) {
	if n <= 0 || p.Page < 1 || p.Limit < 1 || p.Page-1 > (n-1)/p.Limit {
		return n, n
	}
	start = (p.Page - 1) * p.Limit
	end = n
	if n-start > p.Limit {
		end = start + p.Limit
	}
	return start, end
}
