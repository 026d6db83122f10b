package cms

import (
	"fmt"

	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
)

// Create adds a page from the form values title, content, language and published.
// The slug is derived from the title. Pages without language get the one their text is
// written in, or else the one of the request.
func (cc *Controller) Create(c *fiber.Ctx) error {
	page := model.CMSPage{}
	cc.fill(c, &page)

	if errs := page.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	var err error
	if page.Slug, err = cc.uniqueSlug(page); err != nil {
		return fiber.ErrInternalServerError
	}
	if err := cc.repository.Create(&page); err != nil {
		return fiber.ErrInternalServerError
	}

	cc.sync(page)
	return c.Status(fiber.StatusCreated).JSON(page)
}

// Update replaces the page identified by the slug parameter with the form values. The slug
// does not change, so links to the page keep working.
func (cc *Controller) Update(c *fiber.Ctx) error {
	page, err := cc.repository.FindBySlug(c.Params("slug"))
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if page == nil {
		return fiber.ErrNotFound
	}

	cc.fill(c, page)
	if errs := page.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}
	if err := cc.repository.Update(page); err != nil {
		return fiber.ErrInternalServerError
	}

	cc.sync(*page)
	return c.JSON(page)
}

// Delete removes the page identified by the slug parameter
func (cc *Controller) Delete(c *fiber.Ctx) error {
	page, err := cc.repository.FindBySlug(c.Params("slug"))
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if page == nil {
		return fiber.ErrNotFound
	}

	if err := cc.repository.Delete(page.ID); err != nil {
		return fiber.ErrInternalServerError
	}

	page.Published = false
	cc.sync(*page)
	return c.SendStatus(fiber.StatusNoContent)
}

func (cc *Controller) fill(c *fiber.Ctx, page *model.CMSPage) {
	page.Title = c.FormValue("title")
	page.Content = c.FormValue("content")
	page.Language = c.FormValue("language")
	if page.Language == "" {
		page.Language = cc.detector.Detect(page.Title + "\n" + page.Content)
	}
	if page.Language == "" {
		page.Language = controller.Lang(c)
	}
	page.Published = c.FormValue("published") == "on" || c.FormValue("published") == "true"
	page.Sanitize()
}

// uniqueSlug derives a slug from the page title, adding a numeric suffix if another page
// already uses it
func (cc *Controller) uniqueSlug(page model.CMSPage) (string, error) {
	base := slug.MakeLang(page.Title, page.Language)
	if base == "" {
		base = "page"
	}
	candidate := base
	for i := 2; ; i++ {
		exists, err := cc.repository.SlugExists(candidate, page.ID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
