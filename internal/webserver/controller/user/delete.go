package user

import (
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/gofiber/fiber/v2"
)

// Delete removes a user from the database. The last administrator cannot be removed.
func (u *Controller) Delete(c *fiber.Ctx) error {
	user, err := u.repository.FindByUuid(c.Params("uuid"))
	if err != nil {
		return fiber.ErrInternalServerError
	}

	if user == nil {
		return fiber.ErrNotFound
	}

	if u.repository.Admins() == 1 && user.Role == model.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "The last administrator cannot be removed")
	}

	if err = u.repository.Delete(user.Uuid); err != nil {
		return fiber.ErrInternalServerError
	}

	return c.SendStatus(fiber.StatusNoContent)
}
