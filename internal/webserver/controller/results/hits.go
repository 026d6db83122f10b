package results

import (
	"errors"
	"fmt"

	"github.com/docviewer/viewer/internal/search"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
)

type hitResponse struct {
	search.Hit
	Index int    `json:"index"`
	Total int    `json:"total"`
	Link  string `json:"link"`
}

// CurrentHit marks the hit of record pi at the given page as the one open in the viewer
// and returns its position in the whole result set, -1 if it is not on the current page
func (s *Controller) CurrentHit(c *fiber.Ctx) error {
	nav := controller.State(c).Search
	page, err := c.ParamsInt("page", 1)
	if err != nil {
		return fiber.ErrBadRequest
	}
	index := nav.FindCurrentHitIndex(c.Params("pi"), page)
	return c.JSON(fiber.Map{"index": index, "total": nav.HitsCount()})
}

// NextHit moves to the hit after the current one and returns it
func (s *Controller) NextHit(c *fiber.Ctx) error {
	nav := controller.State(c).Search
	hit, err := nav.NextHit(c.UserContext())
	return s.hit(c, nav, hit, err)
}

// PreviousHit moves to the hit before the current one and returns it
func (s *Controller) PreviousHit(c *fiber.Ctx) error {
	nav := controller.State(c).Search
	hit, err := nav.PreviousHit(c.UserContext())
	return s.hit(c, nav, hit, err)
}

func (s *Controller) hit(c *fiber.Ctx, nav *search.Navigator, hit search.Hit, err error) error {
	if errors.Is(err, search.ErrNoSearch) {
		return fiber.NewError(fiber.StatusConflict, "No search executed")
	}
	if err != nil {
		return err
	}
	return c.JSON(hitResponse{
		Hit:   hit,
		Index: nav.CurrentHitIndex(),
		Total: nav.HitsCount(),
		Link:  fmt.Sprintf("/%s/records/%s/%d", controller.Lang(c), hit.PI, hit.PageNo),
	})
}
