package search

import "golang.org/x/exp/slices"

// Index fields the query compiler knows about
const (
	FieldAll           = "ALL"
	FieldDefault       = "DEFAULT"
	FieldFulltext      = "FULLTEXT"
	FieldNormdataTerms = "NORMDATATERMS"
	FieldUGCTerms      = "UGCTERMS"
	FieldCMSText       = "CMS_TEXT_ALL"
)

// AllFields is the set of fields queried when no field filter is active
var AllFields = []string{FieldDefault, FieldFulltext, FieldNormdataTerms, FieldUGCTerms, FieldCMSText}

// targetFields returns the index fields a query on field must hit
func targetFields(field string) []string {
	if field == "" || field == FieldAll {
		return AllFields
	}
	return []string{field}
}

// highlightFields returns the fields whose terms are kept for highlighting matches
// of a query on field
func highlightFields(field string) []string {
	if field == "" || field == FieldAll {
		return []string{FieldDefault, FieldFulltext}
	}
	return []string{field}
}

// Terms holds the search terms extracted from a query, keyed by index field
type Terms struct {
	byField map[string][]string
}

func NewTerms() Terms {
	return Terms{byField: map[string][]string{}}
}

// Add records term for field, ignoring blanks and duplicates
func (t *Terms) Add(field, term string) {
	if term == "" {
		return
	}
	if t.byField == nil {
		t.byField = map[string][]string{}
	}
	if slices.Contains(t.byField[field], term) {
		return
	}
	t.byField[field] = append(t.byField[field], term)
}

// Get returns the terms recorded for field
func (t Terms) Get(field string) []string {
	return t.byField[field]
}

// Fields returns the fields having at least one term, sorted
func (t Terms) Fields() []string {
	fields := make([]string, 0, len(t.byField))
	for f := range t.byField {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// Map returns a copy of the terms as a plain map, suitable for serialisation
func (t Terms) Map() map[string][]string {
	m := make(map[string][]string, len(t.byField))
	for f, terms := range t.byField {
		m[f] = slices.Clone(terms)
	}
	return m
}

func (t Terms) IsEmpty() bool {
	return len(t.byField) == 0
}
