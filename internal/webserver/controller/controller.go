package controller

import (
	"errors"
	"strconv"

	"github.com/docviewer/viewer/internal/session"
	"github.com/docviewer/viewer/internal/solr"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/gofiber/fiber/v2"
)

// State returns the session state acquired for the request
func State(c *fiber.Ctx) *session.State {
	return c.Locals("State").(*session.State)
}

// UserSession returns the data of the signed in user, or the zero value for anonymous users
func UserSession(c *fiber.Ctx) model.Session {
	if s, ok := c.Locals("Session").(model.Session); ok {
		return s
	}
	return model.Session{}
}

// Lang returns the language of the request
func Lang(c *fiber.Ctx) string {
	if lang, ok := c.Locals("Lang").(string); ok {
		return lang
	}
	return "en"
}

// Page returns the page requested in the query string, 1 if missing or wrong
func Page(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// SearchFailure returns the message sent along the empty results of a failed search,
// "" if err is nil
func SearchFailure(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, solr.ErrQueryMalformed):
		return "Malformed query"
	default:
		return "Search index unreachable"
	}
}
