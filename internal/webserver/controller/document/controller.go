package document

import (
	"context"

	"github.com/docviewer/viewer/internal/i18n"
	"github.com/docviewer/viewer/internal/record"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/message"
)

type recordsRepository interface {
	Load(ctx context.Context, pi string) (record.Record, error)
	TOC(ctx context.Context, rec record.Record) (record.TOC, error)
}

// Controller serves the record open in the viewer of a session
type Controller struct {
	records  recordsRepository
	access   record.Access
	printers map[string]*message.Printer
}

func NewController(records recordsRepository, access record.Access, printers map[string]*message.Printer) *Controller {
	return &Controller{
		records:  records,
		access:   access,
		printers: printers,
	}
}

func (d *Controller) translator(c *fiber.Ctx) func(string) string {
	if p, ok := d.printers[controller.Lang(c)]; ok {
		return i18n.Translator(p)
	}
	return func(key string) string { return key }
}
