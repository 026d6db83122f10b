package cms

import (
	"fmt"

	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/docviewer/viewer/internal/webserver/view"
	"github.com/gofiber/fiber/v2"
)

// List returns the pages in the language of the request, newest first. Admins also get
// the unpublished ones.
func (cc *Controller) List(c *fiber.Ctx) error {
	pages, err := cc.repository.List(controller.Page(c), model.ResultsPerPage, controller.Lang(c), controller.UserSession(c).IsAdmin())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	state := controller.State(c)
	state.Navigation = state.Navigation.Visit(navigation.ViewCMS, fmt.Sprintf("/%s/cms", controller.Lang(c)), navigation.WeightCMS)
	return c.JSON(view.NewResults(model.MaxPagesNavigator, pages, view.Queries(c, "page")))
}

// Show returns the page identified by the slug parameter. Unpublished pages are only
// visible to admins.
func (cc *Controller) Show(c *fiber.Ctx) error {
	page, err := cc.repository.FindBySlug(c.Params("slug"))
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if page == nil || (!page.Published && !controller.UserSession(c).IsAdmin()) {
		return fiber.ErrNotFound
	}

	state := controller.State(c)
	state.Navigation = state.Navigation.Visit(navigation.ViewCMS, c.Path(), navigation.WeightCMS)
	return c.JSON(page)
}

// Search looks for the keywords in the q argument among the published pages in the language
// of the request
func (cc *Controller) Search(c *fiber.Ctx) error {
	hits, err := cc.index.Search(c.Query("q"), controller.Lang(c), controller.Page(c), model.ResultsPerPage)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(view.NewResults(model.MaxPagesNavigator, hits, view.Queries(c, "page")))
}
