package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/docviewer/viewer/internal/calendar"
	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
)

type dateFacets interface {
	Years(ctx context.Context, collection string) ([]calendar.Year, error)
	Months(ctx context.Context, year int, collection string) ([]calendar.Month, error)
	Weeks(ctx context.Context, year int, month time.Month, collection string) ([]calendar.Week, error)
}

// Controller browses search hits by date
type Controller struct {
	calendar dateFacets
}

func NewController(cal dateFacets) *Controller {
	return &Controller{calendar: cal}
}

// Years lists the years having hits
func (cc *Controller) Years(c *fiber.Ctx) error {
	years, err := cc.calendar.Years(c.UserContext(), cc.collection(c))
	if err != nil {
		return err
	}

	cc.visit(c)
	return c.JSON(fiber.Map{"collection": cc.collection(c), "years": years})
}

// Months lists the twelve months of the year parameter with their hits
func (cc *Controller) Months(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return fiber.ErrBadRequest
	}

	months, err := cc.calendar.Months(c.UserContext(), year, cc.collection(c))
	if err != nil {
		return err
	}

	cc.visit(c)
	return c.JSON(fiber.Map{"year": year, "months": months})
}

// Weeks returns the grid of the month parameter, Monday first, with the hits of every day
func (cc *Controller) Weeks(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return fiber.ErrBadRequest
	}
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return fiber.ErrBadRequest
	}

	weeks, err := cc.calendar.Weeks(c.UserContext(), year, time.Month(month), cc.collection(c))
	if err != nil {
		return err
	}

	cc.visit(c)
	return c.JSON(fiber.Map{"year": year, "month": month, "weeks": weeks})
}

// collection returns the collection argument, or the collection the session search is
// restricted to
func (cc *Controller) collection(c *fiber.Ctx) string {
	if collection := c.Query("collection"); collection != "" {
		return collection
	}
	return controller.State(c).Search.Facets().CurrentCollection()
}

func (cc *Controller) visit(c *fiber.Ctx) {
	state := controller.State(c)
	state.Navigation = state.Navigation.Visit(navigation.ViewCalendar, fmt.Sprintf("/%s/calendar", controller.Lang(c)), navigation.WeightCalendar)
}
