package navigation

import (
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
)

// Views a session can be on
const (
	ViewHome           = "home"
	ViewSearch         = "search"
	ViewSearchAdvanced = "searchAdvanced"
	ViewSearchResults  = "searchResults"
	ViewBrowse         = "browse"
	ViewCalendar       = "calendar"
	ViewRecord         = "record"
	ViewTOC            = "tableOfContents"
	ViewCMS            = "cms"
	ViewAccount        = "account"
	ViewUsers          = "users"
	ViewSavedSearches  = "savedSearches"
)

// Breadcrumb weights. Adding a breadcrumb drops all those with the same or a greater weight,
// so lighter breadcrumbs stay in front of heavier ones.
// Search, browse, calendar and CMS pages share weight 1 and replace each other.
const (
	WeightHome          = 0
	WeightSearch        = 1
	WeightBrowse        = 1
	WeightCalendar      = 1
	WeightCMS           = 1
	WeightUser          = 1
	WeightSearchResults = 2
	WeightCollection    = 2
	WeightRecord        = 3
	WeightTOC           = 3
)

// Breadcrumb is a step of the trail leading to the current view
type Breadcrumb struct {
	Label  string `json:"label"`
	URL    string `json:"url"`
	Weight int    `json:"weight"`
}

// Context is the navigation state of a session. Values are never modified in place; every
// change returns a new Context.
type Context struct {
	Locale      language.Tag `json:"-"`
	View        string       `json:"view"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
}

// New returns a context on the home view, with the home breadcrumb
func New(locale language.Tag, homeURL string) Context {
	return Context{
		Locale:      locale,
		View:        ViewHome,
		Breadcrumbs: []Breadcrumb{{Label: ViewHome, URL: homeURL, Weight: WeightHome}},
	}
}

func (c Context) Language() string {
	base, _ := c.Locale.Base()
	return base.String()
}

func (c Context) WithLocale(locale language.Tag) Context {
	c.Locale = locale
	return c
}

func (c Context) WithView(view string) Context {
	c.View = view
	return c
}

// WithBreadcrumb drops the breadcrumbs weighing as much as b or more, then appends b
func (c Context) WithBreadcrumb(b Breadcrumb) Context {
	kept := make([]Breadcrumb, 0, len(c.Breadcrumbs)+1)
	for _, crumb := range c.Breadcrumbs {
		if crumb.Weight < b.Weight {
			kept = append(kept, crumb)
		}
	}
	c.Breadcrumbs = append(kept, b)
	return c
}

// Visit moves to view, adding a breadcrumb for it
func (c Context) Visit(view, url string, weight int) Context {
	return c.WithView(view).WithBreadcrumb(Breadcrumb{Label: view, URL: url, Weight: weight})
}

// Negotiate picks the supported language best matching an Accept-Language header.
// The first supported language is the fallback.
func Negotiate(acceptLanguage string, supported []string) language.Tag {
	tags := make([]language.Tag, len(supported))
	for i, lang := range supported {
		tags[i] = language.Make(lang)
	}
	matcher := language.NewMatcher(tags)

	t, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	_, index, _ := matcher.Match(t...)
	return tags[index]
}

// Supported reports whether lang is one of supported
func Supported(lang string, supported []string) bool {
	return slices.Contains(supported, lang)
}
