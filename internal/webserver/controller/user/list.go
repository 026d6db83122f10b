package user

import (
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/docviewer/viewer/internal/webserver/view"
	"github.com/gofiber/fiber/v2"
)

// List lists the users registered in the database, optionally filtered by name, username or email
func (u *Controller) List(c *fiber.Ctx) error {
	users, err := u.repository.List(controller.Page(c), model.ResultsPerPage, c.Query("filter"))
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"users":  view.NewResults(model.MaxPagesNavigator, users, view.Queries(c, "page")),
		"admins": u.repository.Admins(),
	})
}
