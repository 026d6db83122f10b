package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docviewer/viewer/internal/result"
	"github.com/docviewer/viewer/internal/solr"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// State of a navigator in its search lifecycle
type State int

const (
	StateNoSearch State = iota
	StateResultsLoaded
	StateHitSelected
)

func (s State) String() string {
	switch s {
	case StateResultsLoaded:
		return "results-loaded"
	case StateHitSelected:
		return "hit-selected"
	default:
		return "no-search-executed"
	}
}

// ErrNoSearch is returned by hit navigation operations when no search has been executed
var ErrNoSearch = errors.New("no search executed")

// Index runs queries against the search index
type Index interface {
	Search(ctx context.Context, q solr.Query) (solr.Response, error)
}

type Config struct {
	HitsPerPage        int
	HitsPerPageOptions []int
	DefaultSort        string
	BaseFilter         string
	FacetFields        []string
	HierarchicalFacets []string
	ResultFields       []string
	StopWords          []string
}

// Navigator keeps the search state of a session: the query, the applied facets, the current
// page of results and the hit currently opened in the viewer. It is not safe for concurrent
// use; callers serialise access per session.
type Navigator struct {
	index  Index
	config Config
	logger *zap.Logger

	state        State
	searchString string
	filter       string
	query        string
	info         string
	terms        Terms
	advanced     *AdvancedSearch
	facets       *Facets
	sort         string
	hitsPerPage  int
	page         int

	hits            []Hit
	hitsCount       int
	facetCounts     map[string][]solr.FacetCount
	currentHitIndex int
	currentHit      Hit
}

func NewNavigator(index Index, cfg Config, logger *zap.Logger) *Navigator {
	if cfg.HitsPerPage < 1 {
		cfg.HitsPerPage = 10
	}
	if len(cfg.ResultFields) == 0 {
		cfg.ResultFields = DefaultResultFields
	}
	n := &Navigator{
		index:  index,
		config: cfg,
		logger: logger,
		facets: NewFacets(cfg.HierarchicalFacets...),
	}
	n.Reset()
	return n
}

// Reset forgets the query, facets and results
func (n *Navigator) Reset() {
	n.state = StateNoSearch
	n.searchString = ""
	n.filter = ""
	n.query = ""
	n.info = ""
	n.terms = NewTerms()
	n.advanced = nil
	n.facets.Clear()
	n.sort = n.config.DefaultSort
	n.hitsPerPage = n.config.HitsPerPage
	n.page = 1
	n.resetResults()
}

func (n *Navigator) resetResults() {
	n.hits = nil
	n.hitsCount = 0
	n.facetCounts = map[string][]solr.FacetCount{}
	n.currentHitIndex = -1
	n.currentHit = Hit{}
}

// SetSearchString compiles the text typed in the search box, restricted to filter if not
// empty, and goes back to the first page
func (n *Navigator) SetSearchString(s, filter string) {
	n.searchString = s
	n.filter = filter
	n.query, n.terms = CompileSimple(s, filter, n.config.StopWords)
	n.info = ""
	n.advanced = nil
	n.page = 1
}

// SetAdvancedSearch compiles an advanced search and goes back to the first page.
// Hierarchical items replace the applied collection facets.
func (n *Navigator) SetAdvancedSearch(adv AdvancedSearch, t Translator) Compiled {
	compiled := CompileAdvanced(adv, t)
	n.advanced = &adv
	n.searchString = ""
	n.filter = ""
	n.query = compiled.Query
	n.info = compiled.Info
	n.terms = compiled.Terms
	n.facets.SetCurrentCollection(compiled.Collections)
	n.page = 1
	return compiled
}

// ExactSearchString returns the current query encoded for use in URLs
func (n *Navigator) ExactSearchString() string {
	return ExactSearchString(n.query)
}

// SetExactSearchString sets the query from its URL encoded form, as produced by
// ExactSearchString, recovers its search terms and goes back to the first page
func (n *Navigator) SetExactSearchString(s string) {
	n.query = ParseExactSearchString(s)
	n.searchString = ""
	n.filter = ""
	n.terms = ExtractTerms(n.query)
	n.advanced = nil
	n.info = ""
	n.page = 1
}

// SetPage sets the results page to show; values below 1 mean the first page
func (n *Navigator) SetPage(page int) {
	n.page = max(page, 1)
}

func (n *Navigator) SetSort(sort string) {
	if sort == "" || sort == "-" {
		sort = n.config.DefaultSort
	}
	n.sort = sort
}

// SetHitsPerPage changes the page size, which must be one of the configured options
func (n *Navigator) SetHitsPerPage(hitsPerPage int) error {
	if len(n.config.HitsPerPageOptions) > 0 && !slices.Contains(n.config.HitsPerPageOptions, hitsPerPage) {
		return fmt.Errorf("%d hits per page not allowed", hitsPerPage)
	}
	if hitsPerPage < 1 {
		return fmt.Errorf("%d hits per page not allowed", hitsPerPage)
	}
	n.hitsPerPage = hitsPerPage
	return nil
}

func (n *Navigator) State() State              { return n.state }
func (n *Navigator) Query() string             { return n.query }
func (n *Navigator) SearchString() string      { return n.searchString }
func (n *Navigator) Filter() string            { return n.filter }
func (n *Navigator) Info() string              { return n.info }
func (n *Navigator) Terms() Terms              { return n.terms }
func (n *Navigator) Facets() *Facets           { return n.facets }
func (n *Navigator) Sort() string              { return n.sort }
func (n *Navigator) Page() int                 { return n.page }
func (n *Navigator) HitsPerPage() int          { return n.hitsPerPage }
func (n *Navigator) HitsCount() int            { return n.hitsCount }
func (n *Navigator) CurrentHitIndex() int      { return n.currentHitIndex }
func (n *Navigator) Advanced() *AdvancedSearch { return n.advanced }

// FacetCounts returns the value counts of the configured facet fields for the last search
func (n *Navigator) FacetCounts() map[string][]solr.FacetCount {
	return n.facetCounts
}

// Results returns the current page of hits
func (n *Navigator) Results() result.Paginated[[]Hit] {
	return result.NewPaginated(n.hitsPerPage, n.page, n.hitsCount, slices.Clone(n.hits))
}

// IsBlank reports whether there is nothing to search for
func (n *Navigator) IsBlank() bool {
	return strings.TrimSpace(n.query) == "" && n.facets.IsEmpty()
}

func (n *Navigator) filterQueries() []string {
	fqs := make([]string, 0, len(n.facets.current)+1)
	if n.config.BaseFilter != "" {
		fqs = append(fqs, n.config.BaseFilter)
	}
	return append(fqs, n.facets.FilterQueries()...)
}

func (n *Navigator) request(start, rows int, withFacets bool) solr.Query {
	q := solr.Query{
		Q:             n.query,
		FilterQueries: n.filterQueries(),
		Fields:        n.config.ResultFields,
		Sort:          ParseSort(n.sort),
		Start:         start,
		Rows:          rows,
	}
	if withFacets {
		q.FacetFields = n.config.FacetFields
	}
	return q
}

// Search runs the current query and loads the current page of hits. A blank query with no
// facets is not sent to the index. If the page is beyond the last one, the last page is
// loaded instead. On failure the results are emptied and the error returned.
func (n *Navigator) Search(ctx context.Context) error {
	n.resetResults()
	if n.IsBlank() {
		n.state = StateNoSearch
		return nil
	}
	n.state = StateResultsLoaded

	res, err := n.index.Search(ctx, n.request((n.page-1)*n.hitsPerPage, n.hitsPerPage, true))
	if err != nil {
		n.logger.Debug("search failed", zap.String("query", n.query), zap.Error(err))
		return err
	}

	if totalPages := result.TotalPages(res.NumFound, n.hitsPerPage); totalPages > 0 && n.page > totalPages {
		n.page = totalPages
		res, err = n.index.Search(ctx, n.request((n.page-1)*n.hitsPerPage, n.hitsPerPage, true))
		if err != nil {
			n.logger.Debug("search failed", zap.String("query", n.query), zap.Error(err))
			return err
		}
	}

	n.hitsCount = res.NumFound
	n.facetCounts = res.Facets
	n.hits = make([]Hit, len(res.Docs))
	for i, doc := range res.Docs {
		n.hits[i] = HitFromDocument(doc)
	}
	return nil
}

// FindCurrentHitIndex locates the hit for record pi at page and makes it the current one.
// The hit last reached with NextHit or PreviousHit is found even if it is not part of the
// loaded page. It returns its position in the whole result set, or -1.
func (n *Navigator) FindCurrentHitIndex(pi string, page int) int {
	if n.state == StateNoSearch {
		n.currentHitIndex = -1
		return -1
	}
	if n.state == StateHitSelected && n.currentHitIndex >= 0 && n.currentHit.PI == pi && n.currentHit.PageNo == page {
		return n.currentHitIndex
	}

	n.currentHitIndex = -1
	n.currentHit = Hit{}
	offset := (n.page - 1) * n.hitsPerPage
	for i, hit := range n.hits {
		if hit.PI == pi && hit.PageNo == page {
			n.currentHitIndex = offset + i
			n.currentHit = hit
			n.state = StateHitSelected
			return n.currentHitIndex
		}
	}
	return -1
}

// IncreaseCurrentHitIndex moves to the next hit, stopping at the last one
func (n *Navigator) IncreaseCurrentHitIndex() {
	if n.hitsCount == 0 {
		return
	}
	if n.currentHitIndex < n.hitsCount-1 {
		n.currentHitIndex++
	}
}

// DecreaseCurrentHitIndex moves to the previous hit, stopping at the first one
func (n *Navigator) DecreaseCurrentHitIndex() {
	if n.hitsCount == 0 {
		return
	}
	if n.currentHitIndex > 0 {
		n.currentHitIndex--
	}
	if n.currentHitIndex < 0 {
		n.currentHitIndex = 0
	}
}

// NextHit moves to the next hit and returns it
func (n *Navigator) NextHit(ctx context.Context) (Hit, error) {
	if n.state == StateNoSearch {
		return Hit{}, ErrNoSearch
	}
	n.IncreaseCurrentHitIndex()
	return n.selectCurrentHit(ctx)
}

// PreviousHit moves to the previous hit and returns it
func (n *Navigator) PreviousHit(ctx context.Context) (Hit, error) {
	if n.state == StateNoSearch {
		return Hit{}, ErrNoSearch
	}
	n.DecreaseCurrentHitIndex()
	return n.selectCurrentHit(ctx)
}

func (n *Navigator) selectCurrentHit(ctx context.Context) (Hit, error) {
	if n.hitsCount == 0 || n.currentHitIndex < 0 {
		return Hit{}, ErrNoSearch
	}
	hit, err := n.HitAt(ctx, n.currentHitIndex)
	if err != nil {
		return Hit{}, err
	}
	n.currentHit = hit
	n.state = StateHitSelected
	return hit, nil
}

// HitAt returns the hit at position index of the whole result set, querying the index
// when it is not part of the loaded page
func (n *Navigator) HitAt(ctx context.Context, index int) (Hit, error) {
	offset := (n.page - 1) * n.hitsPerPage
	if index >= offset && index < offset+len(n.hits) {
		return n.hits[index-offset], nil
	}

	res, err := n.index.Search(ctx, n.request(index, 1, false))
	if err != nil {
		n.logger.Debug("hit lookup failed", zap.Int("index", index), zap.Error(err))
		return Hit{}, err
	}
	if len(res.Docs) == 0 {
		return Hit{}, fmt.Errorf("no hit at position %d", index)
	}
	return HitFromDocument(res.Docs[0]), nil
}

// Walker returns a copy of the current search that can walk all of its hits independently
// of later changes to the navigator
func (n *Navigator) Walker() Walker {
	return Walker{index: n.index, query: n.request(0, 0, false), blank: n.IsBlank()}
}

// Walker walks the hits of a search
type Walker struct {
	index Index
	query solr.Query
	blank bool
}

// Each calls fn for every hit, up to limit, fetching them in batches of batchSize.
// It stops as soon as ctx is done or fn returns an error.
func (w Walker) Each(ctx context.Context, limit, batchSize int, fn func(Hit) error) error {
	if w.blank {
		return nil
	}
	if batchSize < 1 {
		batchSize = 100
	}
	for start := 0; start < limit; start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		q := w.query
		q.Start, q.Rows = start, min(batchSize, limit-start)
		res, err := w.index.Search(ctx, q)
		if err != nil {
			return err
		}
		for _, doc := range res.Docs {
			if err := fn(HitFromDocument(doc)); err != nil {
				return err
			}
		}
		if start+batchSize >= res.NumFound {
			return nil
		}
	}
	return nil
}

// Snapshot captures what is needed to run the current search again later
type Snapshot struct {
	Query        string
	SearchString string
	Filter       string
	Page         int
	Sort         string
	Facets       string
}

func (n *Navigator) Snapshot() Snapshot {
	return Snapshot{
		Query:        n.query,
		SearchString: n.searchString,
		Filter:       n.filter,
		Page:         n.page,
		Sort:         n.sort,
		Facets:       n.facets.String(),
	}
}

// Restore replaces the current search with the one in s. Results must be reloaded with Search.
func (n *Navigator) Restore(s Snapshot) {
	n.Reset()
	n.searchString = s.SearchString
	n.filter = s.Filter
	n.query = s.Query
	n.terms = ExtractTerms(s.Query)
	n.facets.SetString(s.Facets)
	n.SetSort(s.Sort)
	n.SetPage(s.Page)
}
