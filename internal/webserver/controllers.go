package webserver

import (
	"context"
	"errors"

	"github.com/docviewer/viewer/internal/calendar"
	"github.com/docviewer/viewer/internal/export"
	"github.com/docviewer/viewer/internal/i18n"
	"github.com/docviewer/viewer/internal/language"
	"github.com/docviewer/viewer/internal/record"
	"github.com/docviewer/viewer/internal/solr"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/docviewer/viewer/internal/webserver/controller/auth"
	calendarcontroller "github.com/docviewer/viewer/internal/webserver/controller/calendar"
	"github.com/docviewer/viewer/internal/webserver/controller/cms"
	"github.com/docviewer/viewer/internal/webserver/controller/document"
	navigationcontroller "github.com/docviewer/viewer/internal/webserver/controller/navigation"
	"github.com/docviewer/viewer/internal/webserver/controller/results"
	"github.com/docviewer/viewer/internal/webserver/controller/user"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

type Controllers struct {
	Auth                            *auth.Controller
	Users                           *user.Controller
	Results                         *results.Controller
	Documents                       *document.Controller
	Calendar                        *calendarcontroller.Controller
	CMS                             *cms.Controller
	Navigation                      *navigationcontroller.Controller
	SessionMiddleware               fiber.Handler
	OptionalAuthentication          fiber.Handler
	AllowIfNotLoggedInMiddleware    fiber.Handler
	RequireAuthenticationMiddleware fiber.Handler
	ErrorHandler                    fiber.ErrorHandler
}

func SetupControllers(cfg Config, deps Dependencies) Controllers {
	usersRepository := &model.UserRepository{DB: deps.DB, Logger: deps.Logger}
	savedSearchesRepository := &model.SavedSearchRepository{DB: deps.DB, Logger: deps.Logger}
	pagesRepository := &model.CMSPageRepository{DB: deps.DB, Logger: deps.Logger}

	authCfg := auth.Config{
		Secret:         cfg.JwtSecret,
		SessionTimeout: cfg.SessionTimeout,
	}

	usersCfg := user.Config{
		MinPasswordLength: cfg.MinPasswordLength,
		Secret:            cfg.JwtSecret,
		SessionTimeout:    cfg.SessionTimeout,
	}

	resultsCfg := results.Config{
		AdvancedGroups:     cfg.Viewer.Search.AdvancedGroups,
		AdvancedItems:      cfg.Viewer.Search.AdvancedItems,
		AdvancedFields:     cfg.Viewer.Search.AdvancedFields,
		SortFields:         cfg.Viewer.Search.SortFields,
		HitsPerPageOptions: cfg.Viewer.Search.HitsPerPageOptions,
	}

	exporter := export.NewExporter(cfg.Viewer.Export.Timeout, cfg.Viewer.Export.MaxHits, cfg.Viewer.Export.Fields, deps.Logger)
	access := record.NewAccess(cfg.Viewer.Downloads.OpenAccessConditions, cfg.Viewer.Downloads.PDFAccessConditions)
	cal := calendar.New(deps.Index, deps.CalendarCache, calendar.Config{
		DateField:          cfg.Viewer.Calendar.DateField,
		YearField:          cfg.Viewer.Calendar.YearField,
		BaseFilter:         cfg.Viewer.Calendar.BaseFilter,
		HierarchicalFacets: SearchConfig(cfg.Viewer).HierarchicalFacets,
		TTL:                cfg.Viewer.Cache.TTL,
	}, deps.Logger)

	return Controllers{
		Auth:                            auth.NewController(usersRepository, authCfg),
		Users:                           user.NewController(usersRepository, savedSearchesRepository, usersCfg),
		Results:                         results.NewController(resultsCfg, exporter, deps.Printers, deps.Metrics, deps.Logger),
		Documents:                       document.NewController(record.NewRepository(deps.Index), access, deps.Printers),
		Calendar:                        calendarcontroller.NewController(cal),
		CMS:                             cms.NewController(pagesRepository, deps.CMSIndex, language.NewDetector(cfg.SupportedLanguages), deps.Logger),
		Navigation:                      navigationcontroller.NewController(deps.Printers),
		SessionMiddleware:               Session(deps.Registry, deps.Metrics),
		OptionalAuthentication:          OptionalAuthentication(cfg.JwtSecret),
		AllowIfNotLoggedInMiddleware:    AllowIfNotLoggedIn(cfg.JwtSecret),
		RequireAuthenticationMiddleware: RequireAuthentication,
		ErrorHandler:                    ErrorHandler(deps.Printers, deps.Logger),
	}
}

// ErrorHandler renders errors as {"error": message}, translating domain errors into
// HTTP status codes. Messages of internal errors are not disclosed.
func ErrorHandler(printers map[string]*message.Printer, logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// Status code defaults to 500
		code := fiber.StatusInternalServerError
		msg := "Internal error"

		var e *fiber.Error
		switch {
		case errors.As(err, &e):
			code, msg = e.Code, e.Message
		case errors.Is(err, record.ErrMalformedPI):
			code, msg = fiber.StatusBadRequest, "Malformed identifier"
		case errors.Is(err, record.ErrRecordNotFound):
			code, msg = fiber.StatusNotFound, "Record not found"
		case errors.Is(err, record.ErrRecordDeleted):
			code, msg = fiber.StatusGone, "Record has been deleted"
		case errors.Is(err, solr.ErrQueryMalformed):
			code, msg = fiber.StatusBadRequest, "Malformed query"
		case errors.Is(err, solr.ErrIndexUnreachable):
			code, msg = fiber.StatusServiceUnavailable, "Search index unreachable"
		case errors.Is(err, export.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
			code, msg = fiber.StatusGatewayTimeout, "Export took too long"
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", zap.String("path", c.Path()), zap.Int("status", code), zap.Error(err))
		}
		if code == fiber.StatusInternalServerError {
			msg = "Internal error"
		}

		if p, ok := printers[controller.Lang(c)]; ok {
			msg = i18n.Translator(p)(msg)
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}
