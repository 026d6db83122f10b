package search

import (
	"strings"

	"github.com/docviewer/viewer/internal/solr"
)

// SortRelevance sorts hits by score, the index default
const SortRelevance = "RELEVANCE"

// ParseSort converts a sort string into sort fields. Fields are comma separated and a
// leading "!" sorts descending, e.g. "!SORT_YEARPUBLISH,SORT_TITLE".
func ParseSort(s string) []solr.SortField {
	if s == "" || s == "-" || strings.EqualFold(s, SortRelevance) {
		return nil
	}
	var fields []solr.SortField
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		descending := strings.HasPrefix(part, "!")
		part = strings.TrimPrefix(part, "!")
		if part == "" {
			continue
		}
		fields = append(fields, solr.SortField{Field: part, Descending: descending})
	}
	return fields
}
