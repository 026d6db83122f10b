package user

import (
	"strings"
	"time"

	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/docviewer/viewer/internal/webserver/controller/auth"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/gofiber/fiber/v2"
)

// Account returns the data of the signed in user
func (u *Controller) Account(c *fiber.Ctx) error {
	user, err := u.current(c)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateAccount updates name, username and email of the signed in user
func (u *Controller) UpdateAccount(c *fiber.Ctx) error {
	user, err := u.current(c)
	if err != nil {
		return err
	}

	user.Name = strings.TrimSpace(c.FormValue("name"))
	user.Username = strings.ToLower(c.FormValue("username"))
	user.Email = c.FormValue("email")

	errs := user.Validate(u.config.MinPasswordLength)
	if exist, err := u.repository.FindByEmail(user.Email); err != nil {
		return fiber.ErrInternalServerError
	} else if exist != nil && exist.Uuid != user.Uuid {
		errs["email"] = "A user with this email address already exists"
	}
	if exist, err := u.repository.FindByUsername(user.Username); err != nil {
		return fiber.ErrInternalServerError
	} else if exist != nil && exist.Uuid != user.Uuid {
		errs["username"] = "A user with this username already exists"
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	if err := u.repository.Update(user); err != nil {
		return fiber.ErrInternalServerError
	}
	if err := u.refreshSession(c, user); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(user)
}

// UpdatePassword changes the password of the signed in user, who must enter the current one
// and confirm the new one
func (u *Controller) UpdatePassword(c *fiber.Ctx) error {
	user, err := u.current(c)
	if err != nil {
		return err
	}

	errs := map[string]string{}
	if user.Password != model.Hash(c.FormValue("old-password")) {
		errs["oldpassword"] = "The current password is not correct"
	}
	if errs = model.ValidatePassword(c.FormValue("password"), c.FormValue("confirm-password"), u.config.MinPasswordLength, errs); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	user.Password = model.Hash(c.FormValue("password"))
	if err := u.repository.Update(user); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (u *Controller) current(c *fiber.Ctx) (*model.User, error) {
	user, err := u.repository.FindByUuid(controller.UserSession(c).Uuid)
	if err != nil {
		return nil, fiber.ErrInternalServerError
	}
	if user == nil {
		return nil, fiber.ErrNotFound
	}
	return user, nil
}

// refreshSession issues a new token so that it carries the updated user data
func (u *Controller) refreshSession(c *fiber.Ctx, user *model.User) error {
	expiration := time.Now().Add(u.config.SessionTimeout)
	if exp := controller.UserSession(c).Exp; exp > 0 {
		expiration = time.Unix(int64(exp), 0)
	}
	signedToken, err := auth.GenerateToken(user, expiration, u.config.Secret)
	if err != nil {
		return err
	}

	auth.SetCookie(c, signedToken, expiration)
	return nil
}
