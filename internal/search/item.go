package search

import (
	"strings"

	"github.com/docviewer/viewer/internal/solr"
)

// QueryItem is a single row of the advanced search form
type QueryItem struct {
	Field        string   `json:"field"`
	Operator     Operator `json:"operator"`
	Value        string   `json:"value"`
	Hierarchical bool     `json:"hierarchical"`
}

// IsEmpty reports whether the item carries no usable value
func (i QueryItem) IsEmpty() bool {
	return strings.TrimSpace(i.Value) == "" || i.Field == ""
}

// clause renders the item as a query clause and records its terms. It returns "" when
// nothing is left to search for after cleaning up the value.
func (i QueryItem) clause(terms *Terms) string {
	if i.IsEmpty() {
		return ""
	}
	value := strings.TrimSpace(i.Value)

	var body string
	switch i.Operator {
	case OperatorPhrase:
		phrase := strings.TrimSpace(strings.Trim(value, `"`))
		if phrase == "" {
			return ""
		}
		body = "(" + solr.Phrase(phrase) + ")"
		i.collect(terms, phrase)
	case OperatorIs:
		body = solr.Phrase(value)
		i.collect(terms, value)
	default:
		rendered := make([]string, 0)
		for _, t := range tokenize(value) {
			if t.phrase {
				rendered = append(rendered, solr.Phrase(t.text))
				if i.Operator != OperatorNot {
					i.collect(terms, t.text)
				}
				continue
			}
			cleaned := CleanUpSearchTerm(t.text)
			if cleaned == "" {
				continue
			}
			rendered = append(rendered, escapeTerm(cleaned))
			if i.Operator != OperatorNot && !strings.HasPrefix(cleaned, "-") {
				i.collect(terms, bareTerm(cleaned))
			}
		}
		if len(rendered) == 0 {
			return ""
		}
		sep := " AND "
		switch i.Operator {
		case OperatorOr:
			sep = " OR "
		case OperatorNot:
			sep = " "
		}
		body = "(" + strings.Join(rendered, sep) + ")"
	}

	fields := targetFields(i.Field)
	parts := make([]string, len(fields))
	for n, f := range fields {
		parts[n] = f + ":" + body
	}
	clause := parts[0]
	if len(parts) > 1 {
		clause = "(" + strings.Join(parts, " OR ") + ")"
	}

	if i.Operator == OperatorNot {
		return "-" + clause
	}
	return clause
}

func (i QueryItem) collect(terms *Terms, term string) {
	for _, f := range highlightFields(i.Field) {
		terms.Add(f, term)
	}
}

// QueryGroup is a set of query items joined by the same operator
type QueryGroup struct {
	Operator GroupOperator `json:"operator"`
	Items    []QueryItem   `json:"items"`
}

// IsEmpty reports whether every item of the group is empty
func (g QueryGroup) IsEmpty() bool {
	for _, item := range g.Items {
		if !item.IsEmpty() {
			return false
		}
	}
	return true
}

// AdvancedSearch is the whole advanced search form: groups joined by a global operator
type AdvancedSearch struct {
	Operator GroupOperator `json:"operator"`
	Groups   []QueryGroup  `json:"groups"`
}

// NewAdvancedSearch returns a form with the given number of empty groups and items per group
func NewAdvancedSearch(groups, itemsPerGroup int) AdvancedSearch {
	adv := AdvancedSearch{Groups: make([]QueryGroup, groups)}
	for i := range adv.Groups {
		adv.Groups[i].Items = make([]QueryItem, itemsPerGroup)
		for j := range adv.Groups[i].Items {
			adv.Groups[i].Items[j].Field = FieldAll
		}
	}
	return adv
}
