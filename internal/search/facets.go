package search

import (
	"net/url"
	"strings"

	"github.com/docviewer/viewer/internal/solr"
	"golang.org/x/exp/slices"
)

const facetSeparator = ";;"

// FacetItem is a field value used to narrow down search results
type FacetItem struct {
	Field        string `json:"field"`
	Value        string `json:"value"`
	Hierarchical bool   `json:"hierarchical"`
}

// Link returns the item in the FIELD:value form used in facet strings
func (f FacetItem) Link() string {
	return f.Field + ":" + f.Value
}

// FilterQuery renders the item as a filter clause. A hierarchical value also matches
// all its descendants, e.g. "a.b" matches "a.b.c".
func (f FacetItem) FilterQuery() string {
	if f.Hierarchical {
		value := solr.Escape(f.Value)
		return "(" + f.Field + ":" + value + " OR " + f.Field + ":" + value + ".*)"
	}
	return f.Field + ":" + solr.Phrase(f.Value)
}

// Facets holds the facets currently applied to a search
type Facets struct {
	hierarchical []string
	current      []FacetItem
}

// NewFacets returns an empty facet set. Values of the given fields are treated as
// hierarchical, with levels separated by dots.
func NewFacets(hierarchicalFields ...string) *Facets {
	return &Facets{hierarchical: hierarchicalFields}
}

// Current returns the applied facets in the order they were applied
func (f *Facets) Current() []FacetItem {
	return slices.Clone(f.current)
}

// Apply adds a facet for field and value, unless already applied
func (f *Facets) Apply(field, value string) {
	field, value = strings.TrimSpace(field), strings.TrimSpace(value)
	if field == "" || value == "" {
		return
	}
	item := FacetItem{Field: field, Value: value, Hierarchical: f.IsHierarchical(field)}
	if slices.Contains(f.current, item) {
		return
	}
	f.current = append(f.current, item)
}

// Remove drops the facet for field and value
func (f *Facets) Remove(field, value string) {
	f.current = slices.DeleteFunc(f.current, func(item FacetItem) bool {
		return item.Field == field && item.Value == value
	})
}

func (f *Facets) Clear() {
	f.current = nil
}

func (f *Facets) IsEmpty() bool {
	return len(f.current) == 0
}

func (f *Facets) IsHierarchical(field string) bool {
	return slices.Contains(f.hierarchical, field)
}

// String renders the applied facets as a facet string, e.g. "DC:a;;YEAR:1900;;",
// or "-" when there are none
func (f *Facets) String() string {
	if len(f.current) == 0 {
		return "-"
	}
	var sb strings.Builder
	for _, item := range f.current {
		sb.WriteString(item.Link())
		sb.WriteString(facetSeparator)
	}
	return sb.String()
}

// SetString replaces the applied facets with those in the facet string s.
// Malformed percent-encoding is ignored and the input used as is.
func (f *Facets) SetString(s string) {
	f.current = nil
	f.apply(s)
}

// SetCurrentCollection replaces the applied hierarchical facets with those in s, keeping
// the flat ones
func (f *Facets) SetCurrentCollection(s string) {
	f.current = slices.DeleteFunc(f.current, func(item FacetItem) bool {
		return item.Hierarchical
	})
	f.apply(s)
}

// CurrentCollection returns the applied hierarchical facets as a facet string
func (f *Facets) CurrentCollection() string {
	var links []string
	for _, item := range f.current {
		if item.Hierarchical {
			links = append(links, item.Link())
		}
	}
	return strings.Join(links, facetSeparator)
}

// FilterQueries returns one filter clause per applied facet
func (f *Facets) FilterQueries() []string {
	fqs := make([]string, len(f.current))
	for i, item := range f.current {
		fqs[i] = item.FilterQuery()
	}
	return fqs
}

func (f *Facets) apply(s string) {
	if s == "" || s == "-" {
		return
	}
	if decoded, err := url.QueryUnescape(s); err == nil {
		s = decoded
	}
	for _, link := range strings.Split(s, facetSeparator) {
		field, value, found := strings.Cut(link, ":")
		if !found {
			continue
		}
		f.Apply(field, value)
	}
}
