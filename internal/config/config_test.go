package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docviewer/viewer/internal/config"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.yml")
	content := `
solr:
  url: http://solr.example.com/solr/viewer
search:
  hits-per-page: 20
  stop-words: [the, a]
  facets:
    - field: DC
      hierarchical: true
export:
  timeout: 30s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Solr.URL != "http://solr.example.com/solr/viewer" {
		t.Errorf("Wrong Solr URL, got %s", cfg.Solr.URL)
	}
	if cfg.Search.HitsPerPage != 20 {
		t.Errorf("Expected 20 hits per page, got %d", cfg.Search.HitsPerPage)
	}
	if len(cfg.Search.StopWords) != 2 {
		t.Errorf("Expected 2 stop words, got %v", cfg.Search.StopWords)
	}
	if len(cfg.Search.Facets) != 1 || !cfg.Search.Facets[0].Hierarchical {
		t.Errorf("Wrong facets, got %#v", cfg.Search.Facets)
	}
	if cfg.Export.Timeout != 30*time.Second {
		t.Errorf("Expected export timeout of 30s, got %s", cfg.Export.Timeout)
	}
	if cfg.Calendar.DateField != "YEARMONTHDAY" {
		t.Errorf("Expected default calendar field, got %s", cfg.Calendar.DateField)
	}
	if len(cfg.Search.AdvancedFields) == 0 {
		t.Errorf("Expected default advanced search fields")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.yml")
	if err := os.WriteFile(path, []byte("search:\n  hits-per-page: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(path); err == nil {
		t.Errorf("Expected an error for negative hits per page")
	}
}
