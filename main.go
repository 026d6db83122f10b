package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/blevesearch/bleve/v2"
	"github.com/docviewer/viewer/internal/calendar"
	"github.com/docviewer/viewer/internal/cmsindex"
	"github.com/docviewer/viewer/internal/config"
	"github.com/docviewer/viewer/internal/i18n"
	"github.com/docviewer/viewer/internal/logger"
	"github.com/docviewer/viewer/internal/metrics"
	"github.com/docviewer/viewer/internal/solr"
	"github.com/docviewer/viewer/internal/webserver"
	"github.com/docviewer/viewer/internal/webserver/controller/cms"
	"github.com/docviewer/viewer/internal/webserver/infrastructure"
	"github.com/docviewer/viewer/internal/webserver/model"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var version string = "unknown"

func main() {
	var input CLIInput
	kong.Parse(&input, kong.Vars{"version": version})

	l, err := logger.New(input.LogEnv, input.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()

	if err := run(input, l); err != nil {
		l.Fatal("viewer stopped", zap.Error(err))
	}
}

func run(input CLIInput, l *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewerCfg, err := config.Load(input.ConfigFile)
	if err != nil {
		return err
	}

	db, err := infrastructure.Connect(input.DBPath, l)
	if err != nil {
		return err
	}

	cat, langs, err := i18n.NewCatalog("en")
	if err != nil {
		return err
	}

	pagesIndex, err := openPagesIndex(input.PagesIndexPath, &model.CMSPageRepository{DB: db, Logger: l}, l)
	if err != nil {
		return err
	}
	defer pagesIndex.Close()

	cache, err := calendarCache(ctx, viewerCfg.Cache.RedisAddr, l)
	if err != nil {
		return err
	}

	if input.JwtSecret == "" {
		input.JwtSecret = uuid.NewString()
		l.Warn("no JWT secret set, sessions will not survive a restart")
	}

	webserverConfig := webserver.Config{
		Version:            version,
		SessionTimeout:     time.Duration(input.SessionTimeout * float64(time.Hour)),
		IdleTimeout:        time.Duration(input.BrowserSessionTimeout * float64(time.Minute)),
		MinPasswordLength:  input.MinPasswordLength,
		JwtSecret:          []byte(input.JwtSecret),
		SupportedLanguages: input.Languages,
		Viewer:             viewerCfg,
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	solrClient := solr.NewClient(viewerCfg.Solr.URL, viewerCfg.Solr.Timeout, solr.WithObserver(m.ObserveSolr))

	sessions := webserver.NewRegistry(webserverConfig, solrClient, l)
	go sessions.Run(ctx, time.Minute, m.SetSessions)

	deps := webserver.Dependencies{
		DB:            db,
		Index:         solrClient,
		CalendarCache: cache,
		CMSIndex:      pagesIndex,
		Registry:      sessions,
		Metrics:       m,
		Gatherer:      registry,
		Printers:      i18n.Printers(cat, langs),
		Logger:        l,
	}

	app := webserver.New(webserverConfig, webserver.SetupControllers(webserverConfig, deps), deps)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			l.Error("error shutting down webserver", zap.Error(err))
		}
	}()

	l.Info("viewer started", zap.String("version", version), zap.Int("port", input.Port), zap.String("solr", viewerCfg.Solr.URL))
	return app.Listen(fmt.Sprintf(":%d", input.Port))
}

// openPagesIndex opens the search index of the editorial pages, creating it from the
// published pages of the database if it does not exist yet
func openPagesIndex(path string, pages *model.CMSPageRepository, l *zap.Logger) (*cmsindex.BleveIndexer, error) {
	file, err := bleve.Open(path)
	if err == nil {
		return cmsindex.NewBleve(file), nil
	}
	if !errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		return nil, fmt.Errorf("opening pages index at %s: %w", path, err)
	}

	l.Info("no pages index found, creating a new one", zap.String("path", path))
	mapping, err := cmsindex.Mapping()
	if err != nil {
		return nil, err
	}
	if file, err = bleve.New(path, mapping); err != nil {
		return nil, fmt.Errorf("creating pages index at %s: %w", path, err)
	}
	idx := cmsindex.NewBleve(file)

	all, err := pages.All()
	if err != nil {
		return nil, err
	}
	var published []cmsindex.Page
	for _, page := range all {
		if page.Published {
			published = append(published, cms.Indexable(page))
		}
	}
	if err := idx.AddAll(published, 100); err != nil {
		return nil, fmt.Errorf("indexing pages: %w", err)
	}
	return idx, nil
}

func calendarCache(ctx context.Context, redisAddr string, l *zap.Logger) (calendar.Cache, error) {
	if redisAddr == "" {
		return calendar.NoCache{}, nil
	}
	client, err := calendar.NewRedisClient(ctx, redisAddr)
	if err != nil {
		return nil, err
	}
	l.Info("caching calendar facets", zap.String("redis", redisAddr))
	return calendar.NewRedisCache(client), nil
}
