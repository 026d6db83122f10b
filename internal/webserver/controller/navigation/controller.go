package navigation

import (
	"fmt"

	"github.com/docviewer/viewer/internal/i18n"
	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/message"
)

// Controller exposes the navigation context of a session
type Controller struct {
	printers map[string]*message.Printer
}

func NewController(printers map[string]*message.Printer) *Controller {
	return &Controller{printers: printers}
}

// Home moves the session to the home view, dropping every breadcrumb but the first one
func (n *Controller) Home(c *fiber.Ctx) error {
	state := controller.State(c)
	state.Navigation = state.Navigation.Visit(navigation.ViewHome, fmt.Sprintf("/%s", controller.Lang(c)), navigation.WeightHome)
	return n.Context(c)
}

// Context returns the language, current view and breadcrumb trail of the session, with
// the breadcrumb labels translated
func (n *Controller) Context(c *fiber.Ctx) error {
	nav := controller.State(c).Navigation

	t := func(key string) string { return key }
	if p, ok := n.printers[nav.Language()]; ok {
		t = i18n.Translator(p)
	}

	breadcrumbs := make([]navigation.Breadcrumb, len(nav.Breadcrumbs))
	for i, b := range nav.Breadcrumbs {
		b.Label = t(b.Label)
		breadcrumbs[i] = b
	}

	return c.JSON(fiber.Map{
		"language":    nav.Language(),
		"view":        nav.View,
		"breadcrumbs": breadcrumbs,
	})
}
