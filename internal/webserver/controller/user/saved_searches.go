package user

import (
	"strings"
	"unicode/utf8"

	"github.com/docviewer/viewer/internal/search"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/docviewer/viewer/internal/webserver/view"
	"github.com/gofiber/fiber/v2"
)

// SavedSearches lists the searches saved by the signed in user
func (u *Controller) SavedSearches(c *fiber.Ctx) error {
	searches, err := u.savedSearches.List(controller.UserSession(c).ID, controller.Page(c), model.ResultsPerPage)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(view.NewResults(model.MaxPagesNavigator, searches, view.Queries(c, "page")))
}

// SaveSearch stores the search of the session under the given name
func (u *Controller) SaveSearch(c *fiber.Ctx) error {
	nav := controller.State(c).Search
	if nav.State() == search.StateNoSearch {
		return fiber.NewError(fiber.StatusConflict, "No search to save")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = nav.SearchString()
	}
	if name == "" {
		name = nav.Query()
	}
	name = truncate(name, 255)

	saved := model.NewSavedSearch(
		controller.UserSession(c).ID,
		name,
		nav.Snapshot(),
		nav.HitsCount(),
		c.FormValue("notify") == "on" || c.FormValue("notify") == "true",
	)
	if err := u.savedSearches.Create(&saved); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// DeleteSavedSearch removes one of the searches of the signed in user
func (u *Controller) DeleteSavedSearch(c *fiber.Ctx) error {
	saved, err := u.savedSearch(c)
	if err != nil {
		return err
	}
	if err := u.savedSearches.Delete(saved.UserID, saved.ID); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RunSavedSearch restores a saved search into the session and executes it
func (u *Controller) RunSavedSearch(c *fiber.Ctx) error {
	saved, err := u.savedSearch(c)
	if err != nil {
		return err
	}

	nav := controller.State(c).Search
	nav.Restore(saved.Snapshot())
	err = nav.Search(c.UserContext())

	if err == nil && saved.LastHitsCount != nav.HitsCount() {
		saved.LastHitsCount = nav.HitsCount()
		if err := u.savedSearches.Update(saved); err != nil {
			return fiber.ErrInternalServerError
		}
	}

	return c.JSON(fiber.Map{
		"savedSearch": saved,
		"results":     view.NewResults(model.MaxPagesNavigator, nav.Results(), nil),
		"error":       controller.SearchFailure(err),
	})
}

func (u *Controller) savedSearch(c *fiber.Ctx) (*model.SavedSearch, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, fiber.ErrBadRequest
	}
	saved, err := u.savedSearches.Find(controller.UserSession(c).ID, uint(id))
	if err != nil {
		return nil, fiber.ErrInternalServerError
	}
	if saved == nil {
		return nil, fiber.ErrNotFound
	}
	return saved, nil
}

// truncate cuts s down to at most n characters
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
