package document

import (
	"fmt"

	"github.com/docviewer/viewer/internal/export"
	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/record"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
)

// TOC returns the table of contents of the record identified by the pi parameter
func (d *Controller) TOC(c *fiber.Ctx) error {
	toc, err := d.toc(c)
	if err != nil {
		return err
	}

	state := controller.State(c)
	state.Navigation = state.Navigation.Visit(navigation.ViewTOC, c.Path(), navigation.WeightTOC)
	return c.JSON(toc)
}

// TOCPDF sends the table of contents of the record identified by the pi parameter as a PDF
func (d *Controller) TOCPDF(c *fiber.Ctx) error {
	toc, err := d.toc(c)
	if err != nil {
		return err
	}

	data, err := export.TOCPDF(toc, d.translator(c)("tableOfContents"))
	if err != nil {
		return err
	}

	name := slug.Make(toc.PI)
	if name == "" {
		name = "toc"
	}
	c.Attachment(fmt.Sprintf("%s-toc.pdf", name))
	return c.Send(data)
}

func (d *Controller) toc(c *fiber.Ctx) (record.TOC, error) {
	rec, err := d.records.Load(c.UserContext(), c.Params("pi"))
	if err != nil {
		return record.TOC{}, err
	}
	if !d.access.Granted(rec, record.PrivilegeViewImages, controller.UserSession(c).IsAdmin()) {
		return record.TOC{}, fiber.ErrForbidden
	}
	return d.records.TOC(c.UserContext(), rec)
}
