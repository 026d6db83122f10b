package search

import (
	"strings"
)

// Translator returns the localised text for key
type Translator func(key string) string

// Compiled is the outcome of compiling an advanced search
type Compiled struct {
	// Query is the boolean query sent to the index, "" if nothing is left to search for
	Query string
	// Info describes the query in the user's language
	Info string
	// Terms holds the positive search terms per field, used to highlight matches
	Terms Terms
	// Collections is the facet string built from the hierarchical items, e.g. "DC:a;;DC:b"
	Collections string
}

// CompileAdvanced turns an advanced search into a single query. Items inside a group are
// joined by the group's operator and groups by the global one. Empty items and groups are
// skipped, so the result never starts or ends with a connective. Hierarchical items are not
// part of the query; they are returned as a collection facet string instead.
func CompileAdvanced(adv AdvancedSearch, t Translator) Compiled {
	if t == nil {
		t = func(key string) string { return key }
	}

	res := Compiled{Terms: NewTerms()}
	var (
		groupClauses []string
		groupInfos   []string
		collections  []string
	)

	for _, group := range adv.Groups {
		var (
			clauses  []string
			infos    []string
			negative = true
		)

		for _, item := range group.Items {
			if item.IsEmpty() {
				continue
			}

			if item.Hierarchical {
				collections = append(collections, item.Field+":"+strings.TrimSpace(item.Value))
				infos = append(infos, itemInfo(item, t))
				continue
			}

			clause := item.clause(&res.Terms)
			if clause == "" {
				continue
			}
			if !strings.HasPrefix(clause, "-") {
				negative = false
			}
			clauses = append(clauses, clause)
			infos = append(infos, itemInfo(item, t))
		}

		if len(infos) > 0 {
			groupInfos = append(groupInfos, "("+strings.Join(infos, " "+t("searchOperator_"+group.Operator.String())+" ")+")")
		}
		if len(clauses) == 0 {
			continue
		}

		joined := strings.Join(clauses, group.Operator.connective())
		// a purely negative clause matches nothing on its own
		if negative {
			joined = "*:* " + joined
		}
		groupClauses = append(groupClauses, "("+joined+")")
	}

	res.Query = strings.Join(groupClauses, adv.Operator.connective())
	res.Info = strings.Join(groupInfos, " "+t("searchOperator_"+adv.Operator.String())+" ")
	res.Collections = strings.Join(collections, ";;")

	return res
}

func itemInfo(item QueryItem, t Translator) string {
	var sb strings.Builder
	sb.WriteString(t(item.Field))
	sb.WriteString(": ")
	value := strings.TrimSpace(item.Value)
	switch item.Operator {
	case OperatorNot:
		sb.WriteString(t("searchOperator_NOT"))
		sb.WriteString(" ")
		sb.WriteString(value)
	case OperatorPhrase, OperatorIs:
		sb.WriteString(`"` + strings.Trim(value, `"`) + `"`)
	default:
		sb.WriteString(value)
	}
	return sb.String()
}
