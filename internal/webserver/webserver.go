package webserver

import (
	"time"

	"github.com/docviewer/viewer/internal/calendar"
	"github.com/docviewer/viewer/internal/cmsindex"
	"github.com/docviewer/viewer/internal/config"
	"github.com/docviewer/viewer/internal/metrics"
	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/record"
	"github.com/docviewer/viewer/internal/search"
	"github.com/docviewer/viewer/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

type Config struct {
	Version            string
	SessionTimeout     time.Duration
	IdleTimeout        time.Duration
	MinPasswordLength  int
	JwtSecret          []byte
	SupportedLanguages []string
	Viewer             config.Viewer
}

// Index runs queries against the search index of the digitized records
type Index interface {
	search.Index
	record.Index
}

// Dependencies are the services shared by all sessions
type Dependencies struct {
	DB            *gorm.DB
	Index         Index
	CalendarCache calendar.Cache
	CMSIndex      *cmsindex.BleveIndexer
	Registry      *session.Registry
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	Printers      map[string]*message.Printer
	Logger        *zap.Logger
}

// New builds a new Fiber application and sets up the required routes
func New(cfg Config, controllers Controllers, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Version,
		ErrorHandler:          controllers.ErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             4 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Output: zap.NewStdLog(deps.Logger).Writer(),
		Format: "${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(deps.Metrics.Middleware())

	routes(app, controllers, deps, cfg.SupportedLanguages)
	return app
}

// DefaultIdleTimeout is the inactivity after which the state of a browser session is dropped
const DefaultIdleTimeout = 30 * time.Minute

// NewRegistry returns a session registry whose sessions search index with the given
// configuration
func NewRegistry(cfg Config, index search.Index, logger *zap.Logger) *session.Registry {
	searchCfg := SearchConfig(cfg.Viewer)
	timeout := cfg.IdleTimeout
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	return session.NewRegistry(timeout, func() *session.State {
		return &session.State{
			Search:     search.NewNavigator(index, searchCfg, logger),
			Navigation: navigation.New(language.Make(cfg.SupportedLanguages[0]), "/"+cfg.SupportedLanguages[0]),
		}
	})
}

// SearchConfig extracts the navigator settings from the viewer configuration
func SearchConfig(v config.Viewer) search.Config {
	facetFields := make([]string, 0, len(v.Search.Facets))
	hierarchical := make([]string, 0)
	for _, f := range v.Search.Facets {
		facetFields = append(facetFields, f.Field)
		if f.Hierarchical {
			hierarchical = append(hierarchical, f.Field)
		}
	}
	for _, f := range v.Search.AdvancedFields {
		if f.Hierarchical && !slices.Contains(hierarchical, f.Field) {
			hierarchical = append(hierarchical, f.Field)
		}
	}

	return search.Config{
		HitsPerPage:        v.Search.HitsPerPage,
		HitsPerPageOptions: v.Search.HitsPerPageOptions,
		DefaultSort:        v.Search.DefaultSort,
		BaseFilter:         v.Search.BaseFilter,
		FacetFields:        facetFields,
		HierarchicalFacets: hierarchical,
		StopWords:          v.Search.StopWords,
	}
}
