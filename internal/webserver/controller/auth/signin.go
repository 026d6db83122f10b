package auth

import (
	"time"

	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// CookieName is the name of the cookie holding the session token
const CookieName = "session"

// SignIn checks the user credentials and gives them a JWT
func (a *Controller) SignIn(c *fiber.Ctx) error {
	user, err := a.repository.FindByEmail(c.FormValue("email"))
	if err != nil {
		return fiber.ErrInternalServerError
	}

	if user == nil || user.Password != model.Hash(c.FormValue("password")) {
		return fiber.NewError(fiber.StatusUnauthorized, "Wrong username or password")
	}

	expiration := time.Now().Add(a.config.SessionTimeout)
	signedToken, err := GenerateToken(user, expiration, a.config.Secret)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	SetCookie(c, signedToken, expiration)
	return c.JSON(user)
}

// GenerateToken signs a token carrying the user data, valid until expiration
func GenerateToken(user *model.User, expiration time.Time, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userdata": model.Session{
			ID:       user.ID,
			Uuid:     user.Uuid,
			Name:     user.Name,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
		"exp": jwt.NewNumericDate(expiration),
	})

	return token.SignedString(secret)
}

func SetCookie(c *fiber.Ctx, signedToken string, expiration time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    signedToken,
		Path:     "/",
		Expires:  expiration,
		Secure:   false,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
