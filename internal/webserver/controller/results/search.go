package results

import (
	"fmt"
	"strconv"

	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/search"
	"github.com/docviewer/viewer/internal/solr"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/docviewer/viewer/internal/webserver/view"
	"github.com/gofiber/fiber/v2"
)

type response struct {
	State             string                       `json:"state"`
	Query             string                       `json:"query"`
	SearchString      string                       `json:"searchString"`
	Filter            string                       `json:"filter"`
	Info              string                       `json:"info,omitempty"`
	ExactSearchString string                       `json:"exactSearchString"`
	Sort              string                       `json:"sort"`
	SortFields        []string                     `json:"sortFields"`
	HitsPerPage       int                          `json:"hitsPerPage"`
	HitsPerPageOpts   []int                        `json:"hitsPerPageOptions"`
	CurrentHitIndex   int                          `json:"currentHitIndex"`
	Terms             map[string][]string          `json:"terms"`
	Facets            []search.FacetItem           `json:"facets"`
	FacetString       string                       `json:"facetString"`
	FacetCounts       map[string][]solr.FacetCount `json:"facetCounts"`
	Results           view.Results[[]search.Hit]   `json:"results"`
	Error             string                       `json:"error,omitempty"`
}

// Search runs a simple search if the q argument is present, otherwise it runs again the
// session search. Page, sort, hits per page and facets can be changed through query arguments.
func (s *Controller) Search(c *fiber.Ctx) error {
	nav := controller.State(c).Search

	kind := "results"
	if c.Query("q") != "" {
		nav.SetSearchString(c.Query("q"), c.Query("filter"))
		kind = "simple"
	}
	if err := s.applyArguments(c, nav); err != nil {
		return err
	}

	s.metrics.Search(kind)
	return s.run(c, nav)
}

// Exact runs the search encoded in the URL, as returned in exactSearchString, so that
// searches can be bookmarked and shared
func (s *Controller) Exact(c *fiber.Ctx) error {
	nav := controller.State(c).Search
	nav.SetExactSearchString(c.Params("query"))
	if c.Query("facets") == "" {
		nav.Facets().Clear()
	}
	if err := s.applyArguments(c, nav); err != nil {
		return err
	}

	s.metrics.Search("exact")
	return s.run(c, nav)
}

// ApplyFacet narrows down the session search with a facet value and goes back to the first page
func (s *Controller) ApplyFacet(c *fiber.Ctx) error {
	field, value := c.FormValue("field"), c.FormValue("value")
	if field == "" || value == "" {
		return fiber.ErrBadRequest
	}

	nav := controller.State(c).Search
	nav.Facets().Apply(field, value)
	nav.SetPage(1)

	s.metrics.Search("facet")
	return s.run(c, nav)
}

// RemoveFacet removes a facet value from the session search and goes back to the first page
func (s *Controller) RemoveFacet(c *fiber.Ctx) error {
	nav := controller.State(c).Search
	nav.Facets().Remove(c.Query("field"), c.Query("value"))
	nav.SetPage(1)

	s.metrics.Search("facet")
	return s.run(c, nav)
}

// Reset forgets the session search
func (s *Controller) Reset(c *fiber.Ctx) error {
	controller.State(c).Search.Reset()
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Controller) applyArguments(c *fiber.Ctx, nav *search.Navigator) error {
	if facets := c.Query("facets"); facets != "" {
		nav.Facets().SetString(facets)
	}
	if sort := c.Query("sort"); sort != "" {
		nav.SetSort(sort)
	}
	if hits := c.Query("hitsPerPage"); hits != "" {
		n, err := strconv.Atoi(hits)
		if err != nil {
			return fiber.ErrBadRequest
		}
		if err := nav.SetHitsPerPage(n); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	if c.Query("page") != "" {
		nav.SetPage(controller.Page(c))
	}
	return nil
}

func (s *Controller) run(c *fiber.Ctx, nav *search.Navigator) error {
	err := nav.Search(c.UserContext())

	state := controller.State(c)
	if nav.State() != search.StateNoSearch {
		state.Navigation = state.Navigation.Visit(navigation.ViewSearchResults, resultsURL(c, nav), navigation.WeightSearchResults)
	}

	return c.JSON(s.response(c, nav, err))
}

func (s *Controller) response(c *fiber.Ctx, nav *search.Navigator, err error) response {
	params := map[string]string{"sort": nav.Sort(), "hitsPerPage": strconv.Itoa(nav.HitsPerPage())}
	if !nav.Facets().IsEmpty() {
		params["facets"] = nav.Facets().String()
	}

	return response{
		State:             nav.State().String(),
		Query:             nav.Query(),
		SearchString:      nav.SearchString(),
		Filter:            nav.Filter(),
		Info:              nav.Info(),
		ExactSearchString: nav.ExactSearchString(),
		Sort:              nav.Sort(),
		SortFields:        s.config.SortFields,
		HitsPerPage:       nav.HitsPerPage(),
		HitsPerPageOpts:   s.config.HitsPerPageOptions,
		CurrentHitIndex:   nav.CurrentHitIndex(),
		Terms:             nav.Terms().Map(),
		Facets:            nav.Facets().Current(),
		FacetString:       nav.Facets().String(),
		FacetCounts:       nav.FacetCounts(),
		Results:           view.NewResults(model.MaxPagesNavigator, nav.Results(), params),
		Error:             controller.SearchFailure(err),
	}
}

func resultsURL(c *fiber.Ctx, nav *search.Navigator) string {
	params := map[string]string{"page": strconv.Itoa(nav.Page()), "facets": nav.Facets().String()}
	return fmt.Sprintf("/%s/search/exact/%s?%s", controller.Lang(c), nav.ExactSearchString(), view.ToQueryString(params))
}
