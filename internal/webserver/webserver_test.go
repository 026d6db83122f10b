package webserver_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/docviewer/viewer/internal/calendar"
	"github.com/docviewer/viewer/internal/cmsindex"
	"github.com/docviewer/viewer/internal/config"
	"github.com/docviewer/viewer/internal/i18n"
	"github.com/docviewer/viewer/internal/metrics"
	"github.com/docviewer/viewer/internal/solr"
	"github.com/docviewer/viewer/internal/webserver"
	"github.com/docviewer/viewer/internal/webserver/infrastructure"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const totalHits = 25

func TestGET(t *testing.T) {
	var cases = []struct {
		name           string
		url            string
		expectedStatus int
	}{
		{"Redirect if the user tries to access to the root URL", "/", http.StatusFound},
		{"Page loads successfully if the user tries to access the german version", "/de", http.StatusOK},
		{"Page loads successfully if the user tries to access the english version", "/en", http.StatusOK},
		{"Server returns not found if the user tries to access a non-existent URL", "/xx", http.StatusNotFound},
		{"Metrics are exposed", "/metrics", http.StatusOK},
	}

	app, _ := bootstrapApp(t)

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, tcase.url, nil)

			response, err := app.Test(req)
			if err != nil {
				t.Errorf("Unexpected error: %v", err.Error())
			}
			if response.StatusCode != tcase.expectedStatus {
				t.Errorf("Wrong status code received, expected %d, got %d", tcase.expectedStatus, response.StatusCode)
			}
		})
	}
}

func TestRootNegotiatesLanguage(t *testing.T) {
	app, _ := bootstrapApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAcceptLanguage, "de-DE,de;q=0.9,en;q=0.8")
	response, err := app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err.Error())
	}
	if location := response.Header.Get(fiber.HeaderLocation); location != "/de" {
		t.Errorf("Expected redirection to /de, got %s", location)
	}
}

func TestBreadcrumbs(t *testing.T) {
	app, _ := bootstrapApp(t)
	client := newClient(app)

	client.mustGet(t, "/en/search?q=news", http.StatusOK)
	client.mustGet(t, "/en/records/PPN1", http.StatusOK)
	client.mustGet(t, "/en/calendar", http.StatusOK)

	var nav struct {
		Language string
		View     string
		Breadcrumbs []struct {
			Label  string
			Weight int
		}
	}
	client.getJSON(t, "/de/navigation", &nav)

	if nav.Language != "de" {
		t.Errorf("Expected language de, got %s", nav.Language)
	}
	if nav.View != "calendar" {
		t.Errorf("Expected calendar view, got %s", nav.View)
	}
	// calendar replaces the search results and record breadcrumbs, which weigh more
	if len(nav.Breadcrumbs) != 2 || nav.Breadcrumbs[1].Label != "Kalender" {
		t.Errorf("Wrong breadcrumbs: %+v", nav.Breadcrumbs)
	}
}

// bootstrapApp returns an application backed by an in-memory database and a fake search index
func bootstrapApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	index := solrStub()
	t.Cleanup(index.Close)

	logger := zap.NewNop()
	db, err := infrastructure.Connect("file::memory:", logger)
	if err != nil {
		log.Fatal(err)
	}

	viewerCfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	viewerCfg.Solr.URL = index.URL
	viewerCfg.Export.Timeout = 5 * time.Second

	cat, langs, err := i18n.NewCatalog("en")
	if err != nil {
		log.Fatal(err)
	}

	mapping, err := cmsindex.Mapping()
	if err != nil {
		log.Fatal(err)
	}
	cmsFile, err := bleve.NewMemOnly(mapping)
	if err != nil {
		log.Fatal(err)
	}

	webserverConfig := webserver.Config{
		Version:            "test",
		SessionTimeout:     24 * time.Hour,
		MinPasswordLength:  5,
		JwtSecret:          []byte("secret"),
		SupportedLanguages: []string{"en", "de"},
		Viewer:             viewerCfg,
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	solrClient := solr.NewClient(viewerCfg.Solr.URL, time.Second, solr.WithObserver(m.ObserveSolr))

	deps := webserver.Dependencies{
		DB:            db,
		Index:         solrClient,
		CalendarCache: calendar.NoCache{},
		CMSIndex:      cmsindex.NewBleve(cmsFile),
		Registry:      webserver.NewRegistry(webserverConfig, solrClient, logger),
		Metrics:       m,
		Gatherer:      registry,
		Printers:      i18n.Printers(cat, langs),
		Logger:        logger,
	}

	controllers := webserver.SetupControllers(webserverConfig, deps)
	return webserver.New(webserverConfig, controllers, deps), db
}

// solrStub answers like a select handler holding totalHits works PPN0..PPN24, among them
// PPN1 (with a table of contents), plus PPNRESTRICTED and the deleted PPNDELETED. Queries
// containing "unreachable" or "malformed" fail.
func solrStub() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		q := params.Get("q")
		start, _ := strconv.Atoi(params.Get("start"))
		rows, _ := strconv.Atoi(params.Get("rows"))

		var (
			docs     []map[string]any
			numFound int
			facets   = map[string][]any{}
		)

		switch {
		case strings.Contains(q, "unreachable"):
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		case strings.Contains(q, "malformed"):
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": {"msg": "syntax error", "code": 400}}`)
			return
		case strings.HasPrefix(q, `PI:"`):
			switch strings.Trim(strings.TrimPrefix(q, "PI:"), `"`) {
			case "PPN1":
				docs = append(docs, map[string]any{"PI": "PPN1", "IDDOC": "1", "LABEL": "Daily news", "DOCSTRCT": "monograph", "NUMPAGES": 10, "ISWORK": true, "THUMBPAGENO": 2, "ACCESSCONDITION": []string{"OPENACCESS"}})
			case "PPNRESTRICTED":
				docs = append(docs, map[string]any{"PI": "PPNRESTRICTED", "IDDOC": "7", "LABEL": "Letters", "NUMPAGES": 3, "ISWORK": true, "ACCESSCONDITION": []string{"RESTRICTED"}})
			case "PPNDELETED":
				docs = append(docs, map[string]any{"PI": "PPNDELETED", "DATEDELETED": 1700000000})
			default:
				pi := strings.Trim(strings.TrimPrefix(q, "PI:"), `"`)
				if n, err := strconv.Atoi(strings.TrimPrefix(pi, "PPN")); err == nil && n < totalHits {
					docs = append(docs, map[string]any{"PI": pi, "IDDOC": strconv.Itoa(100 + n), "LABEL": fmt.Sprintf("Work %d", n), "NUMPAGES": 5, "ISWORK": true, "THUMBPAGENO": 1, "ACCESSCONDITION": []string{"OPENACCESS"}})
				}
			}
			numFound = len(docs)
		case strings.HasPrefix(q, `PI_TOPSTRUCT:"`):
			docs = []map[string]any{
				{"IDDOC": "1", "LABEL": "Daily news", "DOCSTRCT": "monograph", "THUMBPAGENO": 1, "LOGID": "LOG_0000"},
				{"IDDOC": "2", "IDDOC_PARENT": "1", "LABEL": "Chapter 1", "DOCSTRCT": "chapter", "THUMBPAGENO": 3, "LOGID": "LOG_0001"},
			}
			numFound = len(docs)
		default:
			numFound = totalHits
			for i := start; i < totalHits && i < start+rows; i++ {
				docs = append(docs, map[string]any{"PI": fmt.Sprintf("PPN%d", i), "IDDOC": strconv.Itoa(100 + i), "LABEL": fmt.Sprintf("Work %d", i), "DOCSTRCT": "monograph", "THUMBPAGENO": 1})
			}
			for _, field := range params["facet.field"] {
				switch field {
				case "DC":
					facets[field] = []any{"newspaper", 20, "newspaper.daily", 5}
				case "YEARMONTHDAY":
					facets[field] = []any{"19140728", 3, "19140801", 2}
				case "YEAR":
					facets[field] = []any{"1914", 5}
				}
			}
		}

		if docs == nil {
			docs = []map[string]any{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"response":     map[string]any{"numFound": numFound, "start": start, "docs": docs},
			"facet_counts": map[string]any{"facet_fields": facets},
		})
	}))
}

// client sends requests to an app keeping the cookies it receives, like a browser
type client struct {
	app     *fiber.App
	cookies map[string]*http.Cookie
}

func newClient(app *fiber.App) *client {
	return &client{app: app, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	response, err := c.app.Test(req, -1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err.Error())
	}
	for _, cookie := range response.Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return response
}

func (c *client) mustGet(t *testing.T, target string, expectedStatus int) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	return expectStatus(t, c.do(t, req), expectedStatus)
}

func (c *client) getJSON(t *testing.T, target string, dst any) {
	t.Helper()
	decode(t, c.mustGet(t, target, http.StatusOK), dst)
}

func (c *client) form(t *testing.T, method, target string, data url.Values, expectedStatus int) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(method, target, strings.NewReader(data.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return expectStatus(t, c.do(t, req), expectedStatus)
}

func (c *client) signIn(t *testing.T, email, password string) {
	t.Helper()
	c.form(t, http.MethodPost, "/en/sessions", url.Values{"email": {email}, "password": {password}}, http.StatusOK)
}

func expectStatus(t *testing.T, response *http.Response, expectedStatus int) *http.Response {
	t.Helper()
	if response.StatusCode != expectedStatus {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("Wrong status code received for %s, expected %d, got %d: %s", response.Request.URL, expectedStatus, response.StatusCode, body)
	}
	return response
}

func decode(t *testing.T, response *http.Response, dst any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(dst); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
}
