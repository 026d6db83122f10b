package results

import (
	"github.com/docviewer/viewer/internal/config"
	"github.com/docviewer/viewer/internal/export"
	"github.com/docviewer/viewer/internal/i18n"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

type searchMetrics interface {
	Search(kind string)
	Export(outcome string)
}

type Config struct {
	AdvancedGroups     int
	AdvancedItems      int
	AdvancedFields     []config.AdvancedField
	SortFields         []string
	HitsPerPageOptions []int
}

// Controller runs the searches of a session and navigates their results
type Controller struct {
	config   Config
	exporter *export.Exporter
	printers map[string]*message.Printer
	metrics  searchMetrics
	logger   *zap.Logger
}

func NewController(cfg Config, exporter *export.Exporter, printers map[string]*message.Printer, metrics searchMetrics, logger *zap.Logger) *Controller {
	return &Controller{
		config:   cfg,
		exporter: exporter,
		printers: printers,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *Controller) translator(c *fiber.Ctx) func(string) string {
	if p, ok := s.printers[controller.Lang(c)]; ok {
		return i18n.Translator(p)
	}
	return func(key string) string { return key }
}
