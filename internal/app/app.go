// Package app wires the theme service, the client stores and their data
// sources into the dependency set the HTTP layer consumes.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dsfs/internal/auth"
	"dsfs/internal/config"
	"dsfs/internal/fixtures"
	"dsfs/internal/handlers"
	"dsfs/internal/kv"
	applog "dsfs/internal/log"
	"dsfs/internal/metrics"
	"dsfs/internal/remote"
	"dsfs/internal/stellar"
	"dsfs/internal/store"
	"dsfs/internal/theme"
	"dsfs/models"
)

// App holds the long-lived services for one process.
type App struct {
	Theme    *theme.Service
	Session  *store.Session
	Feed     *store.Feed
	Students *store.Students
	Catalog  *fixtures.Source
	Payments *stellar.Client
	Registry *prometheus.Registry
}

// Build constructs every service on top of db and primes the collection
// stores so the first request sees data.
func Build(ctx context.Context, cfg config.Config, db *gorm.DB) (*App, error) {
	if db == nil {
		return nil, errors.New("app: database is required")
	}

	// 1. metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 2. durable storage and the theme service
	storage, err := preferenceStore(cfg.Database, db)
	if err != nil {
		return nil, fmt.Errorf("kv storage: %w", err)
	}
	themeService := theme.NewService(storage, theme.WithRecorder(collector))
	pref := themeService.Load(ctx)
	applog.Info(ctx, "theme preference restored", "preference", pref)

	// 3. data sources
	source, err := fixtures.New(db)
	if err != nil {
		return nil, fmt.Errorf("fixture source: %w", err)
	}
	api := remote.New("")

	// 4. stores
	session := store.NewSession(store.SessionConfig{
		Auth:    api,
		Tokens:  auth.NewService(storage),
		Latency: store.Sleep(cfg.Latency.Login),
	})

	feed, err := store.NewFeed(store.FeedConfig{
		Posts:    source,
		Users:    source,
		Latency:  store.Sleep(cfg.Latency.Feed),
		Recorder: collector,
	})
	if err != nil {
		return nil, err
	}

	students, err := store.NewStudents(store.StudentsConfig{
		Source:    source,
		Registrar: api,
		Latency:   store.Sleep(cfg.Latency.Students),
		Recorder:  collector,
	})
	if err != nil {
		return nil, err
	}

	// 5. initial contents
	if err := feed.Prime(ctx); err != nil {
		return nil, fmt.Errorf("prime feed: %w", err)
	}
	if err := students.Prime(ctx); err != nil {
		return nil, fmt.Errorf("prime students: %w", err)
	}
	applog.Info(ctx, "stores primed",
		"posts", len(feed.State().Posts),
		"students", len(students.State().Students),
	)

	return &App{
		Theme:    themeService,
		Session:  session,
		Feed:     feed,
		Students: students,
		Catalog:  source,
		Payments: stellar.New(),
		Registry: registry,
	}, nil
}

// preferenceStore picks where the theme preference and auth tokens live. The
// mock database is in memory, so a configured PreferencesPath moves the
// kv_entries table into a sqlite file that outlives the process.
func preferenceStore(cfg config.DatabaseConfig, db *gorm.DB) (*kv.GormStore, error) {
	if !cfg.UseMock || cfg.PreferencesPath == "" {
		return kv.NewGormStore(db)
	}
	file, err := gorm.Open(sqlite.Open(cfg.PreferencesPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open preferences file %q: %w", cfg.PreferencesPath, err)
	}
	if err := file.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate preferences file: %w", err)
	}
	return kv.NewGormStore(file)
}

// Dependencies returns the handler dependency set. The session manager is
// left for the server to supply.
func (a *App) Dependencies() handlers.Dependencies {
	return handlers.Dependencies{
		Theme:    a.Theme,
		Session:  a.Session,
		Feed:     a.Feed,
		Students: a.Students,
		Catalog:  a.Catalog,
		Payments: a.Payments,
	}
}
