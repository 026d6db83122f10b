package document

import (
	"fmt"

	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/record"
	"github.com/docviewer/viewer/internal/search"
	"github.com/docviewer/viewer/internal/session"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
)

type recordResponse struct {
	Record      record.Record `json:"record"`
	Page        int           `json:"page"`
	NumPages    int           `json:"numPages"`
	HasPrevious bool          `json:"hasPrevious"`
	HasNext     bool          `json:"hasNext"`
	PDF         bool          `json:"pdfDownload"`
	EPUB        bool          `json:"epubDownload"`
	HitIndex    int           `json:"hitIndex"`
	HitsCount   int           `json:"hitsCount"`
	TOCLink     string        `json:"tocLink"`
	TOCPDFLink  string        `json:"tocPdfLink"`
}

// Record opens the record identified by the pi parameter in the viewer of the session, at the
// page parameter if given or at its representative page otherwise. If the record is among the
// loaded search results, it becomes the current hit.
func (d *Controller) Record(c *fiber.Ctx) error {
	rec, err := d.records.Load(c.UserContext(), c.Params("pi"))
	if err != nil {
		return err
	}

	user := controller.UserSession(c)
	if !d.access.Granted(rec, record.PrivilegeViewImages, user.IsAdmin()) {
		return fiber.ErrForbidden
	}

	page := rec.ThumbPageNo
	if c.Params("page") != "" {
		if page, err = c.ParamsInt("page"); err != nil {
			return fiber.ErrBadRequest
		}
	}

	state := controller.State(c)
	state.Record = &rec
	state.Pager = record.NewPager(rec.NumPages, page)
	if state.Search.State() != search.StateNoSearch {
		state.Search.FindCurrentHitIndex(rec.PI, state.Pager.Page())
	}
	state.Navigation = state.Navigation.Visit(navigation.ViewRecord, fmt.Sprintf("/%s/records/%s", controller.Lang(c), rec.PI), navigation.WeightRecord)

	return c.JSON(d.response(c, state))
}

// Navigate moves the viewer of the session to the first, previous, next or last page
func (d *Controller) Navigate(c *fiber.Ctx) error {
	state := controller.State(c)
	if state.Record == nil {
		return fiber.NewError(fiber.StatusConflict, "No record open")
	}

	switch c.Params("action") {
	case "first":
		state.Pager = state.Pager.First()
	case "previous":
		state.Pager = state.Pager.Previous()
	case "next":
		state.Pager = state.Pager.Next()
	case "last":
		state.Pager = state.Pager.Last()
	default:
		if page, err := c.ParamsInt("action"); err == nil {
			state.Pager = state.Pager.Set(page)
		} else {
			return fiber.ErrNotFound
		}
	}

	return c.JSON(d.response(c, state))
}

func (d *Controller) response(c *fiber.Ctx, state *session.State) recordResponse {
	rec := *state.Record
	admin := controller.UserSession(c).IsAdmin()
	return recordResponse{
		Record:      rec,
		Page:        state.Pager.Page(),
		NumPages:    state.Pager.NumPages(),
		HasPrevious: state.Pager.HasPrevious(),
		HasNext:     state.Pager.HasNext(),
		PDF:         d.access.PDF(rec, admin),
		EPUB:        d.access.EPUB(rec, admin),
		HitIndex:    state.Search.CurrentHitIndex(),
		HitsCount:   state.Search.HitsCount(),
		TOCLink:     fmt.Sprintf("/%s/records/%s/toc", controller.Lang(c), rec.PI),
		TOCPDFLink:  fmt.Sprintf("/%s/records/%s/toc.pdf", controller.Lang(c), rec.PI),
	}
}
