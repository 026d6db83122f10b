package webserver

import (
	"github.com/docviewer/viewer/internal/metrics"
	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/session"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/docviewer/viewer/internal/webserver/controller/auth"
	"github.com/docviewer/viewer/internal/webserver/jwtclaimsreader"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// SessionCookie is the name of the cookie identifying the session of a browser
const SessionCookie = "viewer_session"

// Session acquires the state of the session of the request for as long as the request is
// processed, so requests of the same session are served one at a time. Browsers without a
// valid session cookie get a new session.
func Session(registry *session.Registry, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = session.NewID()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		state := registry.Acquire(id)
		defer state.Release()
		m.SetSessions(registry.Len())

		c.Locals("State", state)
		return c.Next()
	}
}

// SetLanguage stores the language of the path in the request and in the navigation context
// of the session
func SetLanguage(supportedLanguages []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := c.Params("lang")
		if !navigation.Supported(lang, supportedLanguages) {
			return fiber.ErrNotFound
		}
		c.Locals("Lang", lang)

		state := controller.State(c)
		if state.Navigation.Language() != lang {
			state.Navigation = state.Navigation.WithLocale(language.Make(lang))
		}
		return c.Next()
	}
}

// OptionalAuthentication reads the user data from the session token, if there is a valid one
func OptionalAuthentication(jwtSecret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    jwtSecret,
		SigningMethod: "HS256",
		TokenLookup:   "cookie:" + auth.CookieName,
		SuccessHandler: func(c *fiber.Ctx) error {
			c.Locals("Session", jwtclaimsreader.SessionData(c))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Next()
		},
	})
}

// AllowIfNotLoggedIn only allows processing the request if there is no session
func AllowIfNotLoggedIn(jwtSecret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    jwtSecret,
		SigningMethod: "HS256",
		TokenLookup:   "cookie:" + auth.CookieName,
		SuccessHandler: func(c *fiber.Ctx) error {
			return fiber.ErrForbidden
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Next()
		},
	})
}

// RequireAuthentication returns HTTP unauthorized if the user has not signed in.
// It must run after OptionalAuthentication.
func RequireAuthentication(c *fiber.Ctx) error {
	if _, ok := c.Locals("Session").(model.Session); !ok {
		return fiber.ErrUnauthorized
	}
	return c.Next()
}

// RequireAdmin returns HTTP forbidden if the user requesting access
// is not an admin
func RequireAdmin(c *fiber.Ctx) error {
	if c.Locals("Session") == nil {
		return fiber.ErrForbidden
	}

	session := c.Locals("Session").(model.Session)

	if session.Role != model.RoleAdmin {
		return fiber.ErrForbidden
	}

	return c.Next()
}
