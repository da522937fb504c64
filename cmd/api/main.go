package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/partnerhub-backend/api/routes"
	"github.com/angelmondragon/partnerhub-backend/internal/articles"
	"github.com/angelmondragon/partnerhub-backend/internal/checkout"
	"github.com/angelmondragon/partnerhub-backend/internal/documents"
	"github.com/angelmondragon/partnerhub-backend/internal/partners"
	"github.com/angelmondragon/partnerhub-backend/internal/portal"
	"github.com/angelmondragon/partnerhub-backend/internal/products"
	"github.com/angelmondragon/partnerhub-backend/internal/prospects"
	"github.com/angelmondragon/partnerhub-backend/internal/venues"
	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/db"
	"github.com/angelmondragon/partnerhub-backend/pkg/docuseal"
	"github.com/angelmondragon/partnerhub-backend/pkg/email"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
	"github.com/angelmondragon/partnerhub-backend/pkg/metrics"
	"github.com/angelmondragon/partnerhub-backend/pkg/migrate"
	"github.com/angelmondragon/partnerhub-backend/pkg/redis"
	"github.com/angelmondragon/partnerhub-backend/pkg/stripe"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.FromConfig("api", cfg.App)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	docusealClient, err := docuseal.NewClient(ctx, cfg.DocuSeal, logg)
	if err != nil {
		logg.Error(ctx, "failed to create docuseal client", err)
		os.Exit(1)
	}

	stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
	if err != nil {
		logg.Error(ctx, "failed to create stripe client", err)
		os.Exit(1)
	}

	var sender email.Sender = email.NewLogSender(logg)
	if cfg.Email.Enabled() {
		ses, err := email.NewSESSender(ctx, cfg.Email, logg)
		if err != nil {
			logg.Error(ctx, "failed to create ses sender", err)
			os.Exit(1)
		}
		sender = ses
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gdb := dbClient.DB()
	partnersRepo := partners.NewRepository(gdb)
	venuesRepo := venues.NewRepository(gdb)
	productsRepo := products.NewRepository(gdb)

	partnerService, err := partners.NewService(partnersRepo, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create partner service", err)
		os.Exit(1)
	}

	documentService, err := documents.NewService(documents.ServiceParams{
		Repo:     documents.NewRepository(gdb),
		Partners: partnersRepo,
		Provider: docusealClient,
		Tx:       dbClient,
		Metrics:  metrics.NewTemplateMetrics(reg),
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create document service", err)
		os.Exit(1)
	}

	venueService, err := venues.NewService(venuesRepo, partnersRepo)
	if err != nil {
		logg.Error(ctx, "failed to create venue service", err)
		os.Exit(1)
	}

	portalService, err := portal.NewService(partnersRepo, venuesRepo, portal.NewRepository(gdb))
	if err != nil {
		logg.Error(ctx, "failed to create portal service", err)
		os.Exit(1)
	}

	articleService, err := articles.NewService(articles.NewRepository(gdb))
	if err != nil {
		logg.Error(ctx, "failed to create article service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productsRepo)
	if err != nil {
		logg.Error(ctx, "failed to create product service", err)
		os.Exit(1)
	}

	prospectService, err := prospects.NewService(prospects.ServiceParams{
		Repo:      prospects.NewRepository(gdb),
		Partners:  partnersRepo,
		Tx:        dbClient,
		Sender:    sender,
		InviteURL: cfg.Email.PortalInviteURL,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create prospect service", err)
		os.Exit(1)
	}

	checkoutSettings := stripeClient.Checkout()
	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Products:   productsRepo,
		Partners:   partnersRepo,
		Sessions:   checkout.NewStripeSessions(stripeClient),
		Currency:   checkoutSettings.Currency,
		SuccessURL: checkoutSettings.SuccessURL,
		CancelURL:  checkoutSettings.CancelURL,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"stripe_env": stripeClient.Environment(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(cfg, logg, routes.Dependencies{
			DB:        dbClient,
			Redis:     redisClient,
			Metrics:   metrics.NewHTTPMetrics(reg),
			Gatherer:  reg,
			Partners:  partnerService,
			Documents: documentService,
			Portal:    portalService,
			Venues:    venueService,
			Articles:  articleService,
			Products:  productService,
			Prospects: prospectService,
			Checkout:  checkoutService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
