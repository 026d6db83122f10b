package search

import (
	"net/url"
	"strings"

	"github.com/docviewer/viewer/internal/solr"
)

// CompileSimple turns the string typed in the search box into a query. Terms are ANDed,
// except those around a literal OR, which are grouped together. When filter is empty or
// ALL the query hits every field in AllFields, otherwise only filter.
func CompileSimple(raw, filter string, stopWords []string) (string, Terms) {
	terms := NewTerms()

	if decoded, err := url.QueryUnescape(raw); err == nil {
		raw = decoded
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return "", terms
	}

	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	var (
		groups  [][]string
		pending bool
	)
	add := func(rendered string) {
		if pending && len(groups) > 0 {
			groups[len(groups)-1] = append(groups[len(groups)-1], rendered)
		} else {
			groups = append(groups, []string{rendered})
		}
		pending = false
	}

	for _, t := range tokenize(raw) {
		if t.phrase {
			add(solr.Phrase(t.text))
			for _, f := range highlightFields(filter) {
				terms.Add(f, t.text)
			}
			continue
		}

		if t.text == "OR" {
			pending = len(groups) > 0
			continue
		}

		cleaned := CleanUpSearchTerm(t.text)
		if cleaned == "" {
			continue
		}
		if _, ok := stop[strings.ToLower(bareTerm(cleaned))]; ok {
			continue
		}
		add(escapeTerm(cleaned))
		if !strings.HasPrefix(cleaned, "-") {
			for _, f := range highlightFields(filter) {
				terms.Add(f, bareTerm(cleaned))
			}
		}
	}

	if len(groups) == 0 {
		return "", terms
	}

	rendered := make([]string, len(groups))
	for i, g := range groups {
		if len(g) == 1 {
			rendered[i] = g[0]
			continue
		}
		rendered[i] = "(" + strings.Join(g, " OR ") + ")"
	}
	inner := strings.Join(rendered, " AND ")

	fields := targetFields(filter)
	clauses := make([]string, len(fields))
	for i, f := range fields {
		clauses[i] = f + ":(" + inner + ")"
	}

	return strings.Join(clauses, " OR "), terms
}
