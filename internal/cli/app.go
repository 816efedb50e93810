package cli

import (
	"context"
	"fmt"

	"github.com/example/sozluk/internal/config"
	"github.com/example/sozluk/internal/database"
	"github.com/example/sozluk/internal/dataset"
	"github.com/example/sozluk/internal/dictionary"
	"github.com/example/sozluk/internal/excel"
	"github.com/example/sozluk/internal/library"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// app holds the components every command shares.
type app struct {
	cfg      *config.Config
	db       *sqlx.DB
	words    *database.WordRepository
	dict     *dictionary.Service
	library  *library.Library
	importer *excel.Importer
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !verbose {
		logrus.SetLevel(cfg.LogLevel)
	}

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	words := database.NewWordRepository(db)
	dict := dictionary.New(words,
		database.NewCatalogRepository(db),
		database.NewStatisticsRepository(db),
		dictionary.Options{
			Location: cfg.Location,
			Fallback: dataset.Words(),
		})

	return &app{
		cfg:      cfg,
		db:       db,
		words:    words,
		dict:     dict,
		library:  library.New(database.NewKVStore(db)),
		importer: excel.NewImporter(words),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		logrus.WithError(err).Warn("Error closing database")
	}
}

// seedIfEmpty loads the built-in dataset into an empty database.
func (a *app) seedIfEmpty(ctx context.Context) error {
	existing, err := a.words.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	result, err := a.importer.Seed(ctx, dataset.Words())
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	logrus.WithField("created", result.Created).Info("Seeded empty database with the built-in dictionary")
	return nil
}
