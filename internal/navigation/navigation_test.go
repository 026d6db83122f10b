package navigation_test

import (
	"testing"

	"github.com/docviewer/viewer/internal/navigation"
	"golang.org/x/text/language"
)

func labels(c navigation.Context) []string {
	res := make([]string, len(c.Breadcrumbs))
	for i, b := range c.Breadcrumbs {
		res[i] = b.Label
	}
	return res
}

func TestWithBreadcrumb(t *testing.T) {
	var cases = []struct {
		name     string
		visits   []navigation.Breadcrumb
		expected []string
	}{
		{
			"Heavier breadcrumbs are appended",
			[]navigation.Breadcrumb{{Label: "search", Weight: navigation.WeightSearch}, {Label: "searchResults", Weight: navigation.WeightSearchResults}, {Label: "record", Weight: navigation.WeightRecord}},
			[]string{"home", "search", "searchResults", "record"},
		},
		{
			"Same weight replaces",
			[]navigation.Breadcrumb{{Label: "search", Weight: navigation.WeightSearch}, {Label: "browse", Weight: navigation.WeightBrowse}},
			[]string{"home", "browse"},
		},
		{
			"Lighter breadcrumb drops heavier ones",
			[]navigation.Breadcrumb{{Label: "search", Weight: navigation.WeightSearch}, {Label: "record", Weight: navigation.WeightRecord}, {Label: "calendar", Weight: navigation.WeightCalendar}},
			[]string{"home", "calendar"},
		},
		{
			"Home resets the trail",
			[]navigation.Breadcrumb{{Label: "search", Weight: navigation.WeightSearch}, {Label: "home", Weight: navigation.WeightHome}},
			[]string{"home"},
		},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			c := navigation.New(language.English, "/")
			for _, b := range tcase.visits {
				c = c.WithBreadcrumb(b)
			}
			got := labels(c)
			if len(got) != len(tcase.expected) {
				t.Fatalf("Expected %v, got %v", tcase.expected, got)
			}
			for i := range got {
				if got[i] != tcase.expected[i] {
					t.Errorf("Expected %v, got %v", tcase.expected, got)
				}
			}
		})
	}
}

func TestContextIsNotModifiedInPlace(t *testing.T) {
	c := navigation.New(language.English, "/").Visit(navigation.ViewSearch, "/search", navigation.WeightSearch)
	next := c.Visit(navigation.ViewCalendar, "/calendar", navigation.WeightCalendar)

	if c.View != navigation.ViewSearch || labels(c)[1] != "search" {
		t.Errorf("Original context was modified: %+v", c)
	}
	if next.View != navigation.ViewCalendar {
		t.Errorf("Expected view %s, got %s", navigation.ViewCalendar, next.View)
	}
}

func TestNegotiate(t *testing.T) {
	var cases = []struct {
		header   string
		expected string
	}{
		{"de-DE,de;q=0.9,en;q=0.8", "de"},
		{"en-US", "en"},
		{"fr-FR", "en"},
		{"", "en"},
	}

	for _, tcase := range cases {
		t.Run(tcase.header, func(t *testing.T) {
			c := navigation.New(navigation.Negotiate(tcase.header, []string{"en", "de"}), "/")
			if c.Language() != tcase.expected {
				t.Errorf("Expected %s, got %s", tcase.expected, c.Language())
			}
		})
	}
}
