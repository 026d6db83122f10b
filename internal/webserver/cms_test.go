package webserver_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

type cmsPage struct {
	Slug      string
	Title     string
	Content   string
	Published bool
}

func TestCMSPages(t *testing.T) {
	app, _ := bootstrapApp(t)
	admin := newClient(app)
	admin.signIn(t, "admin@example.com", "admin")
	visitor := newClient(app)

	var created cmsPage
	decode(t, admin.form(t, http.MethodPost, "/en/cms", url.Values{
		"title":     {"About the collection"},
		"content":   {`<p>Digitized <b>newspapers</b></p><script>alert("x")</script>`},
		"language":  {"en"},
		"published": {"on"},
	}, http.StatusCreated), &created)

	if created.Slug != "about-the-collection" {
		t.Errorf("Wrong slug: %s", created.Slug)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(created.Content))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if doc.Find("script").Length() != 0 {
		t.Errorf("Expected scripts to be removed from content: %s", created.Content)
	}
	if doc.Find("b").Text() != "newspapers" {
		t.Errorf("Expected formatting to be kept: %s", created.Content)
	}

	var again cmsPage
	decode(t, admin.form(t, http.MethodPost, "/en/cms", url.Values{
		"title":    {"About the collection"},
		"content":  {"Draft"},
		"language": {"en"},
	}, http.StatusCreated), &again)
	if again.Slug != "about-the-collection-2" {
		t.Errorf("Expected a unique slug, got %s", again.Slug)
	}

	visitor.mustGet(t, "/en/cms/about-the-collection", http.StatusOK)
	visitor.mustGet(t, "/en/cms/about-the-collection-2", http.StatusNotFound)
	admin.mustGet(t, "/en/cms/about-the-collection-2", http.StatusOK)

	var list struct{ TotalHits int }
	visitor.getJSON(t, "/en/cms", &list)
	if list.TotalHits != 1 {
		t.Errorf("Expected visitors to see 1 page, got %d", list.TotalHits)
	}
	admin.getJSON(t, "/en/cms", &list)
	if list.TotalHits != 2 {
		t.Errorf("Expected admins to see 2 pages, got %d", list.TotalHits)
	}

	var hits struct {
		TotalHits int
		Hits      []struct{ Slug string }
	}
	visitor.getJSON(t, "/en/cms/search?q=newspapers", &hits)
	if hits.TotalHits != 1 || hits.Hits[0].Slug != "about-the-collection" {
		t.Errorf("Wrong search results: %+v", hits)
	}
	visitor.getJSON(t, "/en/cms/search?q=draft", &hits)
	if hits.TotalHits != 0 {
		t.Errorf("Expected unpublished pages not to be searchable, got %+v", hits)
	}

	admin.form(t, http.MethodPut, "/en/cms/about-the-collection-2", url.Values{
		"title":     {"Imprint"},
		"content":   {"Draft no more"},
		"language":  {"en"},
		"published": {"true"},
	}, http.StatusOK)
	visitor.getJSON(t, "/en/cms/search?q=draft", &hits)
	if hits.TotalHits != 1 {
		t.Errorf("Expected published pages to be searchable, got %+v", hits)
	}

	req, _ := http.NewRequest(http.MethodDelete, "/en/cms/about-the-collection", nil)
	expectStatus(t, admin.do(t, req), http.StatusNoContent)
	visitor.mustGet(t, "/en/cms/about-the-collection", http.StatusNotFound)
	visitor.getJSON(t, "/en/cms/search?q=newspapers", &hits)
	if hits.TotalHits != 0 {
		t.Errorf("Expected deleted pages not to be searchable, got %+v", hits)
	}
}

func TestCMSPageLanguageIsDetected(t *testing.T) {
	app, _ := bootstrapApp(t)
	admin := newClient(app)
	admin.signIn(t, "admin@example.com", "admin")

	var created struct{ Language string }
	decode(t, admin.form(t, http.MethodPost, "/en/cms", url.Values{
		"title":     {"Über die Sammlung"},
		"content":   {"Die Zeitungen dieser Sammlung wurden aus den Beständen der Stadtbibliothek digitalisiert."},
		"published": {"on"},
	}, http.StatusCreated), &created)
	if created.Language != "de" {
		t.Errorf("Expected page language to be detected, got '%s'", created.Language)
	}

	var list struct{ TotalHits int }
	admin.getJSON(t, "/de/cms", &list)
	if list.TotalHits != 1 {
		t.Errorf("Expected page to be listed in German, got %d", list.TotalHits)
	}
}

func TestCMSEditionRequiresAdmin(t *testing.T) {
	app, _ := bootstrapApp(t)

	newClient(app).form(t, http.MethodPost, "/en/cms", url.Values{"title": {"Hack"}}, http.StatusForbidden)
}

func TestCMSValidation(t *testing.T) {
	app, _ := bootstrapApp(t)
	admin := newClient(app)
	admin.signIn(t, "admin@example.com", "admin")

	var res struct{ Errors map[string]string }
	decode(t, admin.form(t, http.MethodPost, "/en/cms", url.Values{"title": {""}}, http.StatusBadRequest), &res)
	if _, ok := res.Errors["title"]; !ok {
		t.Errorf("Expected a title error, got %+v", res.Errors)
	}
}
