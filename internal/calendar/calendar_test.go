package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/docviewer/viewer/internal/calendar"
	"github.com/docviewer/viewer/internal/solr"
	"go.uber.org/zap"
)

type indexStub struct {
	facets  map[string][]solr.FacetCount
	queries []solr.Query
}

func (s *indexStub) Search(_ context.Context, q solr.Query) (solr.Response, error) {
	s.queries = append(s.queries, q)
	return solr.Response{Facets: s.facets}, nil
}

type memoryCache struct {
	values map[string][]byte
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.values[key] = value
	return nil
}

func newCalendar(index calendar.Index, cache calendar.Cache) *calendar.Calendar {
	return calendar.New(index, cache, calendar.Config{
		DateField:          "YEARMONTHDAY",
		YearField:          "YEAR",
		HierarchicalFacets: []string{"DC"},
	}, zap.NewNop())
}

func TestYears(t *testing.T) {
	index := &indexStub{facets: map[string][]solr.FacetCount{
		"YEAR": {{Value: "1901", Count: 4}, {Value: "1899", Count: 2}, {Value: "unknown", Count: 1}},
	}}
	cache := &memoryCache{values: map[string][]byte{}}
	cal := newCalendar(index, cache)

	for i := 0; i < 2; i++ {
		years, err := cal.Years(context.Background(), "DC:newspaper")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(years) != 2 || years[0].Year != 1899 || years[1].Hits != 4 {
			t.Errorf("Wrong years returned: %v", years)
		}
	}

	if len(index.queries) != 1 {
		t.Errorf("Expected the second call to be served from cache, got %d queries", len(index.queries))
	}
	fqs := index.queries[0].FilterQueries
	if fqs[len(fqs)-1] != "(DC:newspaper OR DC:newspaper.*)" {
		t.Errorf("Expected collection filter, got %v", fqs)
	}
}

func TestMonths(t *testing.T) {
	index := &indexStub{facets: map[string][]solr.FacetCount{
		"YEARMONTHDAY": {{Value: "19000105", Count: 2}, {Value: "19000120", Count: 1}, {Value: "19001224", Count: 5}},
	}}
	months, err := newCalendar(index, nil).Months(context.Background(), 1900, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("Expected 12 months, got %d", len(months))
	}
	if months[0].Hits != 3 || months[11].Hits != 5 || months[5].Hits != 0 {
		t.Errorf("Wrong month counts: %v", months)
	}
	found := false
	for _, fq := range index.queries[0].FilterQueries {
		if fq == "YEARMONTHDAY:[19000101 TO 19001231]" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected date range filter, got %v", index.queries[0].FilterQueries)
	}
}

func TestMonthGrid(t *testing.T) {
	var cases = []struct {
		name           string
		year           int
		month          time.Month
		expectedWeeks  int
		expectedColumn int
	}{
		{"Month starting on Monday", 2024, time.January, 5, 0},
		{"Four full weeks", 2021, time.February, 4, 0},
		{"Month starting on Friday", 2024, time.March, 5, 4},
		{"Month starting on Sunday", 2020, time.March, 6, 6},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			weeks := calendar.MonthGrid(tcase.year, tcase.month, nil)
			if len(weeks) != tcase.expectedWeeks {
				t.Errorf("Expected %d weeks, got %d", tcase.expectedWeeks, len(weeks))
			}
			if weeks[0][tcase.expectedColumn].Day != 1 {
				t.Errorf("Expected day 1 at column %d, got %v", tcase.expectedColumn, weeks[0])
			}
		})
	}
}

func TestWeeks(t *testing.T) {
	index := &indexStub{facets: map[string][]solr.FacetCount{
		"YEARMONTHDAY": {{Value: "20240304", Count: 7}},
	}}
	weeks, err := newCalendar(index, nil).Weeks(context.Background(), 2024, time.March, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if day := weeks[1][0]; day.Day != 4 || day.Hits != 7 || day.Date != "2024-03-04" {
		t.Errorf("Expected 7 hits on Monday 4th, got %+v", day)
	}

	if _, err := newCalendar(index, nil).Weeks(context.Background(), 2024, 13, ""); err == nil {
		t.Errorf("Expected error for invalid month")
	}
}
