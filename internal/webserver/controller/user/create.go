package user

import (
	"strconv"
	"strings"

	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Create gathers information coming from the new user form and creates a new user
func (u *Controller) Create(c *fiber.Ctx) error {
	role, _ := strconv.Atoi(c.FormValue("role"))
	user := model.User{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Username: strings.ToLower(c.FormValue("username")),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Role:     role,
		Uuid:     uuid.NewString(),
	}

	errs := user.Validate(u.config.MinPasswordLength)
	if exist, _ := u.repository.FindByEmail(user.Email); exist != nil {
		errs["email"] = "A user with this email address already exists"
	}

	if exist, _ := u.repository.FindByUsername(user.Username); exist != nil {
		errs["username"] = "A user with this username already exists"
	}

	if errs = model.ValidatePassword(user.Password, c.FormValue("confirm-password"), u.config.MinPasswordLength, errs); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	user.Password = model.Hash(user.Password)
	if err := u.repository.Create(&user); err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}
