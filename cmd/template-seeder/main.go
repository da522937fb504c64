package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/partnerhub-backend/internal/documents"
	"github.com/angelmondragon/partnerhub-backend/internal/partners"
	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/db"
	"github.com/angelmondragon/partnerhub-backend/pkg/docuseal"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

// template-seeder registers every document template with DocuSeal once.
// Per-type failures are reported but do not fail the run.
func main() {
	logg := logger.New(logger.Options{ServiceName: "template-seeder"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.FromConfig("template-seeder", cfg.App)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	provider, err := docuseal.NewClient(ctx, cfg.DocuSeal, logg)
	if err != nil {
		logg.Error(ctx, "failed to create docuseal client", err)
		os.Exit(1)
	}

	svc, err := documents.NewService(documents.ServiceParams{
		Repo:     documents.NewRepository(dbClient.DB()),
		Partners: partners.NewRepository(dbClient.DB()),
		Provider: provider,
		Tx:       dbClient,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create document service", err)
		os.Exit(1)
	}

	summary := documents.Summarize(svc.CreateAll(ctx))
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logg.Error(ctx, "failed to encode summary", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
