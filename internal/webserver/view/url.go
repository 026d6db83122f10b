package view

import (
	"github.com/gofiber/fiber/v2"
)

// URL returns the current URL along with the query string
func URL(c *fiber.Ctx) string {
	url := c.Path()
	qs := string(c.Request().URI().QueryString())
	if qs != "" {
		url += "?" + qs
	}
	return url
}

// Queries returns the query string arguments of the request but the given keys
func Queries(c *fiber.Ctx, keys ...string) map[string]string {
	queries := c.Queries()
	for _, key := range keys {
		delete(queries, key)
	}
	return queries
}
