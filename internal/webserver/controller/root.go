package controller

import (
	"fmt"

	"github.com/docviewer/viewer/internal/navigation"
	"github.com/gofiber/fiber/v2"
)

// Root redirects to the home of the supported language best matching the browser preferences
func Root(c *fiber.Ctx, supportedLanguages []string) error {
	tag := navigation.Negotiate(c.Get(fiber.HeaderAcceptLanguage), supportedLanguages)
	baseLang, _ := tag.Base()
	return c.Redirect(fmt.Sprintf("/%s", baseLang.String()))
}
