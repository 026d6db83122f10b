package webserver

import (
	"fmt"
	"strings"

	"github.com/docviewer/viewer/internal/metrics"
	"github.com/docviewer/viewer/internal/webserver/controller"
	"github.com/gofiber/fiber/v2"
)

func routes(app *fiber.App, controllers Controllers, deps Dependencies, supportedLanguages []string) {
	app.Get("/metrics", metrics.Handler(deps.Gatherer))

	app.Get("/", func(c *fiber.Ctx) error {
		return controller.Root(c, supportedLanguages)
	})

	langGroup := app.Group(
		fmt.Sprintf("/:lang<regex(%s)>", strings.Join(supportedLanguages, "|")),
		controllers.SessionMiddleware,
		SetLanguage(supportedLanguages),
		controllers.OptionalAuthentication,
	)

	langGroup.Get("/", controllers.Navigation.Home)
	langGroup.Get("/navigation", controllers.Navigation.Context)

	langGroup.Post("/sessions", controllers.AllowIfNotLoggedInMiddleware, controllers.Auth.SignIn)
	langGroup.Delete("/sessions", controllers.Auth.SignOut)

	langGroup.Get("/search", controllers.Results.Search)
	langGroup.Delete("/search", controllers.Results.Reset)
	langGroup.Get("/search/advanced", controllers.Results.AdvancedForm)
	langGroup.Post("/search/advanced", controllers.Results.Advanced)
	langGroup.Get("/search/exact/:query", controllers.Results.Exact)
	langGroup.Post("/search/facets", controllers.Results.ApplyFacet)
	langGroup.Delete("/search/facets", controllers.Results.RemoveFacet)
	langGroup.Get("/search/hits/next", controllers.Results.NextHit)
	langGroup.Get("/search/hits/previous", controllers.Results.PreviousHit)
	langGroup.Put("/search/hits/:pi/:page<int>", controllers.Results.CurrentHit)
	langGroup.Get("/search/export.xlsx", controllers.Results.Export)

	langGroup.Get("/records/:pi/toc", controllers.Documents.TOC)
	langGroup.Get("/records/:pi/toc.pdf", controllers.Documents.TOCPDF)
	langGroup.Get("/records/:pi/:page<int>?", controllers.Documents.Record)
	langGroup.Post("/viewer/:action", controllers.Documents.Navigate)

	langGroup.Get("/calendar", controllers.Calendar.Years)
	langGroup.Get("/calendar/:year<int>", controllers.Calendar.Months)
	langGroup.Get("/calendar/:year<int>/:month<int>", controllers.Calendar.Weeks)

	langGroup.Get("/cms", controllers.CMS.List)
	langGroup.Get("/cms/search", controllers.CMS.Search)
	langGroup.Get("/cms/:slug", controllers.CMS.Show)
	langGroup.Post("/cms", RequireAdmin, controllers.CMS.Create)
	langGroup.Put("/cms/:slug", RequireAdmin, controllers.CMS.Update)
	langGroup.Delete("/cms/:slug", RequireAdmin, controllers.CMS.Delete)

	accountGroup := langGroup.Group("/account", controllers.RequireAuthenticationMiddleware)

	accountGroup.Get("/", controllers.Users.Account)
	accountGroup.Put("/", controllers.Users.UpdateAccount)
	accountGroup.Put("/password", controllers.Users.UpdatePassword)
	accountGroup.Get("/searches", controllers.Users.SavedSearches)
	accountGroup.Post("/searches", controllers.Users.SaveSearch)
	accountGroup.Get("/searches/:id<int>", controllers.Users.RunSavedSearch)
	accountGroup.Delete("/searches/:id<int>", controllers.Users.DeleteSavedSearch)

	usersGroup := langGroup.Group("/users", controllers.RequireAuthenticationMiddleware, RequireAdmin)

	usersGroup.Get("/", controllers.Users.List)
	usersGroup.Post("/", controllers.Users.Create)
	usersGroup.Delete("/:uuid<guid>", controllers.Users.Delete)
}
