package view

import (
	"fmt"

	"github.com/docviewer/viewer/internal/result"
)

// Page holds the URL of a results page, and if that page is the current one being shown
type Page struct {
	Number    int    `json:"number"`
	Link      string `json:"link"`
	IsCurrent bool   `json:"isCurrent"`
}

// PagesNavigator contains the links to at most size pages around the current one, as well
// as links to the previous and next pages
type PagesNavigator struct {
	Pages        []Page `json:"pages"`
	PreviousLink string `json:"previousLink,omitempty"`
	NextLink     string `json:"nextLink,omitempty"`
}

func Pagination[T any](size int, results result.Paginated[T], params map[string]string) PagesNavigator {
	nav := PagesNavigator{Pages: []Page{}}
	start := 1
	end := results.TotalPages()
	if results.TotalPages() > size {
		end = size
		if results.Page() > size/2 {
			start = results.Page() - size/2
			end = results.Page() + size/2
			if end > results.TotalPages() {
				start = results.TotalPages() - size + 1
				end = results.TotalPages()
			}
		}
	}

	link := func(page int) string {
		args := make(map[string]string, len(params)+1)
		for k, v := range params {
			args[k] = v
		}
		args["page"] = fmt.Sprintf("%d", page)
		return "?" + ToQueryString(args)
	}

	for i := start; i <= end; i++ {
		p := Page{Number: i, Link: link(i)}
		if i == results.Page() {
			p.IsCurrent = true
			if i > 1 {
				nav.PreviousLink = link(i - 1)
			}
			if i < results.TotalPages() {
				nav.NextLink = link(i + 1)
			}
		}
		nav.Pages = append(nav.Pages, p)
	}
	return nav
}

// Results is the envelope of every paginated response
type Results[T any] struct {
	Hits       T              `json:"hits"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	TotalHits  int            `json:"totalHits"`
	Pagination PagesNavigator `json:"pagination"`
}

// NewResults wraps results with links to their neighbour pages
func NewResults[T any](size int, results result.Paginated[T], params map[string]string) Results[T] {
	return Results[T]{
		Hits:       results.Hits(),
		Page:       results.Page(),
		TotalPages: results.TotalPages(),
		TotalHits:  results.TotalHits(),
		Pagination: Pagination(size, results, params),
	}
}
