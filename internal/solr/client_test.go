package solr_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docviewer/viewer/internal/solr"
)

const selectResponse = `{
  "responseHeader": {"status": 0, "QTime": 1},
  "response": {"numFound": 2, "start": 0, "docs": [
    {"PI": "PPN123", "LABEL": ["First"], "NUMPAGES": 12, "ISWORK": true},
    {"PI": "PPN456", "LABEL": ["Second"], "NUMPAGES": 3, "ISWORK": true}
  ]},
  "facet_counts": {"facet_fields": {"DC": ["newspaper", 2, "newspaper.daily", 1]}}
}`

func TestSearch(t *testing.T) {
	var received http.Header
	var params map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header
		params = r.URL.Query()
		if r.URL.Path != "/solr/core/select" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(selectResponse))
	}))
	defer server.Close()

	observed := 0
	client := solr.NewClient(server.URL+"/solr/core/", time.Second, solr.WithObserver(func(time.Duration, error) {
		observed++
	}))

	res, err := client.Search(context.Background(), solr.Query{
		Q:             "DC:(newspaper)",
		FilterQueries: []string{"ISWORK:true"},
		Rows:          10,
		Sort:          []solr.SortField{{Field: "SORT_TITLE", Descending: true}},
		FacetFields:   []string{"DC"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if received.Get("Accept") != "application/json" {
		t.Errorf("Expected JSON accept header, got %q", received.Get("Accept"))
	}
	if params["q"][0] != "DC:(newspaper)" {
		t.Errorf("Wrong query sent: %v", params["q"])
	}
	if params["sort"][0] != "SORT_TITLE desc" {
		t.Errorf("Wrong sort sent: %v", params["sort"])
	}
	if params["fq"][0] != "ISWORK:true" {
		t.Errorf("Wrong filter query sent: %v", params["fq"])
	}
	if res.NumFound != 2 || len(res.Docs) != 2 {
		t.Fatalf("Expected 2 documents, got %d (%d)", len(res.Docs), res.NumFound)
	}
	if res.Docs[0].String("LABEL") != "First" {
		t.Errorf("Expected label First, got %q", res.Docs[0].String("LABEL"))
	}
	if res.Docs[0].Int("NUMPAGES") != 12 {
		t.Errorf("Expected 12 pages, got %d", res.Docs[0].Int("NUMPAGES"))
	}
	if !res.Docs[1].Bool("ISWORK") {
		t.Errorf("Expected ISWORK to be true")
	}
	if facets := res.Facets["DC"]; len(facets) != 2 || facets[1].Value != "newspaper.daily" || facets[1].Count != 1 {
		t.Errorf("Wrong facets: %#v", facets)
	}
	if observed != 1 {
		t.Errorf("Expected observer to be called once, got %d", observed)
	}
}

func TestSearchErrors(t *testing.T) {
	var cases = []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{"Bad request means malformed query", http.StatusBadRequest, `{"error":{"msg":"undefined field FOO","code":400}}`, solr.ErrQueryMalformed},
		{"Server error means index unreachable", http.StatusInternalServerError, ``, solr.ErrIndexUnreachable},
		{"Garbage body means index unreachable", http.StatusOK, `<html>`, solr.ErrIndexUnreachable},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tcase.status)
				w.Write([]byte(tcase.body))
			}))
			defer server.Close()

			client := solr.NewClient(server.URL, time.Second)
			if _, err := client.Search(context.Background(), solr.Query{Q: "foo"}); !errors.Is(err, tcase.expected) {
				t.Errorf("Expected error %v, got %v", tcase.expected, err)
			}
		})
	}
}

func TestSearchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := solr.NewClient(url, time.Second)
	if _, err := client.Search(context.Background(), solr.Query{}); !errors.Is(err, solr.ErrIndexUnreachable) {
		t.Errorf("Expected index unreachable error, got %v", err)
	}
}

func TestSearchCancelledContext(t *testing.T) {
	client := solr.NewClient("http://127.0.0.1:1", time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Search(ctx, solr.Query{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context cancelled error, got %v", err)
	}
}
