package solr_test

import (
	"testing"

	"github.com/docviewer/viewer/internal/solr"
)

func TestParams(t *testing.T) {
	params := solr.Query{
		Start:       20,
		Rows:        10,
		FacetFields: []string{"YEARMONTHDAY"},
		FacetPrefix: map[string]string{"YEARMONTHDAY": "190003"},
	}.Params()

	if params.Get("q") != "*:*" {
		t.Errorf("Expected match-all query for a blank query, got %q", params.Get("q"))
	}
	if params.Get("start") != "20" || params.Get("rows") != "10" {
		t.Errorf("Wrong paging parameters: %v", params)
	}
	if params.Get("facet") != "true" || params.Get("facet.limit") != "-1" || params.Get("facet.mincount") != "1" {
		t.Errorf("Wrong facet parameters: %v", params)
	}
	if params.Get("f.YEARMONTHDAY.facet.prefix") != "190003" {
		t.Errorf("Wrong facet prefix: %v", params)
	}
}

func TestEscape(t *testing.T) {
	var cases = []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"a:b", `a\:b`},
		{"(x)", `\(x\)`},
		{"two words", `two\ words`},
		{"1/2", `1\/2`},
	}

	for _, tcase := range cases {
		t.Run(tcase.input, func(t *testing.T) {
			if got := solr.Escape(tcase.input); got != tcase.expected {
				t.Errorf("Expected %q, got %q", tcase.expected, got)
			}
		})
	}
}

func TestPhrase(t *testing.T) {
	if got := solr.Phrase(`say "hi"`); got != `"say \"hi\""` {
		t.Errorf("Wrong phrase, got %s", got)
	}
}
