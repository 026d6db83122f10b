package results

import (
	"errors"

	"github.com/docviewer/viewer/internal/export"
	"github.com/docviewer/viewer/internal/search"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Export sends all the hits of the session search as a spreadsheet
func (s *Controller) Export(c *fiber.Ctx) error {
	nav := controller.State(c).Search
	if nav.State() == search.StateNoSearch {
		return fiber.NewError(fiber.StatusConflict, "No search executed")
	}

	data, err := s.exporter.XLSX(c.UserContext(), nav.Walker(), s.translator(c))
	switch {
	case errors.Is(err, export.ErrTimeout):
		s.metrics.Export("timeout")
		return fiber.NewError(fiber.StatusGatewayTimeout, "Export took too long")
	case err != nil:
		s.metrics.Export("error")
		s.logger.Error("error exporting search results", zap.String("query", nav.Query()), zap.Error(err))
		return err
	}

	s.metrics.Export("ok")
	c.Attachment("search-results.xlsx")
	return c.Send(data)
}
