package solr

import (
	"net/url"
	"strconv"
	"strings"
)

// SortField sorts results by an index field
type SortField struct {
	Field      string
	Descending bool
}

// Query holds the parameters of a request to the select handler of the index
type Query struct {
	Q             string
	FilterQueries []string
	Fields        []string
	Sort          []SortField
	Start         int
	Rows          int
	FacetFields   []string
	FacetPrefix   map[string]string
	FacetLimit    int
	FacetMinCount int
}

// Params encodes the query as select handler parameters
func (q Query) Params() url.Values {
	params := url.Values{}
	query := q.Q
	if strings.TrimSpace(query) == "" {
		query = "*:*"
	}
	params.Set("q", query)
	params.Set("wt", "json")
	params.Set("start", strconv.Itoa(q.Start))
	params.Set("rows", strconv.Itoa(q.Rows))

	for _, fq := range q.FilterQueries {
		if fq != "" {
			params.Add("fq", fq)
		}
	}

	if len(q.Fields) > 0 {
		params.Set("fl", strings.Join(q.Fields, ","))
	}

	if len(q.Sort) > 0 {
		sorts := make([]string, len(q.Sort))
		for i, s := range q.Sort {
			direction := "asc"
			if s.Descending {
				direction = "desc"
			}
			sorts[i] = s.Field + " " + direction
		}
		params.Set("sort", strings.Join(sorts, ","))
	}

	if len(q.FacetFields) > 0 {
		params.Set("facet", "true")
		for _, f := range q.FacetFields {
			params.Add("facet.field", f)
		}
		limit := q.FacetLimit
		if limit == 0 {
			limit = -1
		}
		params.Set("facet.limit", strconv.Itoa(limit))
		params.Set("facet.mincount", strconv.Itoa(max(q.FacetMinCount, 1)))
		for field, prefix := range q.FacetPrefix {
			params.Set("f."+field+".facet.prefix", prefix)
		}
	}

	return params
}

// Escape backslash-escapes every character with a meaning in the query syntax, as well as
// whitespace, so the value is matched literally.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', '+', '-', '!', '(', ')', ':', '^', '[', ']', '"', '{', '}', '~', '*', '?', '|', '&', ';', '/', ' ', '\t', '\n', '\r':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Phrase wraps s in double quotes, escaping quotes and backslashes inside it
func Phrase(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
