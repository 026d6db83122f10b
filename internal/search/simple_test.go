package search_test

import (
	"reflect"
	"testing"

	"github.com/docviewer/viewer/internal/search"
)

func TestCompileSimple(t *testing.T) {
	var cases = []struct {
		name          string
		raw           string
		filter        string
		stopWords     []string
		expectedQuery string
		expectedTerms map[string][]string
	}{
		{"Empty", "", "TITLE", nil, "", map[string][]string{}},
		{"Wildcard only", "*", "TITLE", nil, "", map[string][]string{}},
		{"Single term", "berlin", "TITLE", nil, "TITLE:(berlin)", map[string][]string{"TITLE": {"berlin"}}},
		{"Terms are ANDed", "berlin wall", "TITLE", nil, "TITLE:(berlin AND wall)", map[string][]string{"TITLE": {"berlin", "wall"}}},
		{"Terms around OR are grouped", "berlin OR paris wall", "TITLE", nil, "TITLE:((berlin OR paris) AND wall)", map[string][]string{"TITLE": {"berlin", "paris", "wall"}}},
		{"Leading OR is ignored", "OR berlin", "TITLE", nil, "TITLE:(berlin)", map[string][]string{"TITLE": {"berlin"}}},
		{"Phrase", `"die zeit" berlin`, "TITLE", nil, `TITLE:("die zeit" AND berlin)`, map[string][]string{"TITLE": {"die zeit", "berlin"}}},
		{"Stop words are dropped", "The berlin", "TITLE", []string{"the"}, "TITLE:(berlin)", map[string][]string{"TITLE": {"berlin"}}},
		{"Only stop words", "the", "TITLE", []string{"the"}, "", map[string][]string{}},
		{"Negated terms are not highlighted", "berlin -wall", "TITLE", nil, "TITLE:(berlin AND -wall)", map[string][]string{"TITLE": {"berlin"}}},
		{"Truncation", "berl*", "TITLE", nil, "TITLE:(berl*)", map[string][]string{"TITLE": {"berl"}}},
		{"Url encoded", "berlin%20wall", "TITLE", nil, "TITLE:(berlin AND wall)", map[string][]string{"TITLE": {"berlin", "wall"}}},
		{
			"All fields",
			"berlin", "",
			nil,
			"DEFAULT:(berlin) OR FULLTEXT:(berlin) OR NORMDATATERMS:(berlin) OR UGCTERMS:(berlin) OR CMS_TEXT_ALL:(berlin)",
			map[string][]string{"DEFAULT": {"berlin"}, "FULLTEXT": {"berlin"}},
		},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			query, terms := search.CompileSimple(tcase.raw, tcase.filter, tcase.stopWords)
			if query != tcase.expectedQuery {
				t.Errorf("Wrong query, expected\n %s\n got\n %s", tcase.expectedQuery, query)
			}
			if !reflect.DeepEqual(terms.Map(), tcase.expectedTerms) {
				t.Errorf("Wrong terms, expected %v, got %v", tcase.expectedTerms, terms.Map())
			}
		})
	}
}
