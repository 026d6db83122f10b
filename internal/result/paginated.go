package result

import (
	"math"
)

// Paginated holds one page of results, as well as the totals needed to navigate the rest
type Paginated[T any] struct {
	maxResultsPerPage int
	page              int
	hits              T
	totalHits         int
}

func NewPaginated[T any](maxResultsPerPage, page, totalHits int, hits T) Paginated[T] {
	return Paginated[T]{
		maxResultsPerPage: maxResultsPerPage,
		page:              page,
		totalHits:         totalHits,
		hits:              hits,
	}
}

func (p Paginated[T]) MaxResultsPerPage() int {
	return p.maxResultsPerPage
}

func (p Paginated[T]) Page() int {
	return p.page
}

func (p Paginated[T]) Hits() T {
	return p.hits
}

func (p Paginated[T]) TotalHits() int {
	return p.totalHits
}

// Offset returns the zero-based position of the first hit of the page in the whole result set
func (p Paginated[T]) Offset() int {
	if p.page < 1 {
		return 0
	}
	return (p.page - 1) * p.maxResultsPerPage
}

func (p Paginated[T]) TotalPages() int {
	return TotalPages(p.totalHits, p.maxResultsPerPage)
}

// TotalPages returns how many pages of size perPage are needed to show total results
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(perPage)))
}
