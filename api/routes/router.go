package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/partnerhub-backend/api/controllers"
	"github.com/angelmondragon/partnerhub-backend/api/middleware"
	"github.com/angelmondragon/partnerhub-backend/internal/articles"
	"github.com/angelmondragon/partnerhub-backend/internal/checkout"
	"github.com/angelmondragon/partnerhub-backend/internal/documents"
	"github.com/angelmondragon/partnerhub-backend/internal/partners"
	"github.com/angelmondragon/partnerhub-backend/internal/portal"
	"github.com/angelmondragon/partnerhub-backend/internal/products"
	"github.com/angelmondragon/partnerhub-backend/internal/prospects"
	"github.com/angelmondragon/partnerhub-backend/internal/venues"
	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
	"github.com/angelmondragon/partnerhub-backend/pkg/metrics"
	"github.com/angelmondragon/partnerhub-backend/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	DB        controllers.Pinger
	Redis     *redis.Client
	Metrics   *metrics.HTTPMetrics
	Gatherer  prometheus.Gatherer
	Partners  partners.Service
	Documents documents.Service
	Portal    portal.Service
	Venues    venues.Service
	Articles  articles.Service
	Products  products.Service
	Prospects prospects.Service
	Checkout  checkout.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	// typed nils would slip past the middleware nil checks
	var (
		idemStore redis.IdempotencyStore
		guard     controllers.ReplayGuard
	)
	readyDeps := map[string]controllers.Pinger{}
	applyLimit := func(next http.Handler) http.Handler { return next }
	if deps.Redis != nil {
		idemStore = deps.Redis
		guard = deps.Redis
		readyDeps["redis"] = deps.Redis
		applyLimit = middleware.RateLimit(middleware.NewRateLimitPolicy(
			"applications",
			cfg.RateLimit.ApplicationWindow,
			cfg.RateLimit.ApplicationIPLimit,
			cfg.RateLimit.ApplicationEmailLimit,
		), deps.Redis, logg)
	}
	if deps.DB != nil {
		readyDeps["db"] = deps.DB
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/articles", controllers.PublicArticleList(deps.Articles, logg))
		r.Get("/products", controllers.PublicProductList(deps.Products, logg))
		r.With(applyLimit).Post("/applications", controllers.PublicApplication(deps.Partners, logg))
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/docuseal", controllers.DocuSealWebhook(deps.Documents, guard, cfg.DocuSeal.WebhookSecret, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth, logg))
		r.Use(middleware.RequireRole(logg, enums.ActorRoleAdmin))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/pipeline/stages", controllers.PipelineStages())

		r.Route("/partners", func(r chi.Router) {
			r.Get("/", controllers.AdminPartnerList(deps.Partners, logg))
			r.Get("/{id}", controllers.AdminPartnerGet(deps.Partners, logg))
			r.Put("/{id}", controllers.AdminPartnerUpdate(deps.Partners, logg))
			r.Post("/{id}/approve", controllers.AdminPartnerApprove(deps.Partners, logg))
			r.Post("/{id}/deny", controllers.AdminPartnerDeny(deps.Partners, logg))
			r.Post("/{id}/stage", controllers.AdminPartnerSetStage(deps.Partners, logg))
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/templates", controllers.AdminTemplateList(deps.Documents, logg))
			r.Post("/templates", controllers.AdminTemplateCreate(deps.Documents, logg))
			r.Post("/templates/batch", controllers.AdminTemplateCreateAll(deps.Documents, logg))
			r.Get("/templates/{type}/preview", controllers.AdminTemplatePreview(deps.Documents, logg))
			r.Post("/send", controllers.AdminDocumentSend(deps.Documents, logg))
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", controllers.AdminArticleList(deps.Articles, logg))
			r.Put("/", controllers.AdminArticleUpdate(deps.Articles, logg))
			r.Delete("/", controllers.AdminArticleDelete(deps.Articles, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(deps.Products, logg))
			r.Post("/", controllers.AdminProductCreate(deps.Products, logg))
			r.Post("/import", controllers.AdminProductImport(deps.Products, logg))
			r.Put("/{id}", controllers.AdminProductUpdate(deps.Products, logg))
			r.Delete("/{id}", controllers.AdminProductDelete(deps.Products, logg))
			r.Post("/{id}/approval", controllers.AdminProductApproval(deps.Products, logg))
		})

		r.Route("/prospects", func(r chi.Router) {
			r.Get("/", controllers.AdminProspectList(deps.Prospects, logg))
			r.Post("/", controllers.AdminProspectCreate(deps.Prospects, logg))
			r.Get("/{id}", controllers.AdminProspectGet(deps.Prospects, logg))
			r.Patch("/{id}", controllers.AdminProspectPatch(deps.Prospects, logg))
			r.Post("/{id}/activity", controllers.AdminProspectActivity(deps.Prospects, logg))
			r.Post("/{id}/invite", controllers.AdminProspectInvite(deps.Prospects, logg))
			r.Post("/{id}/convert", controllers.AdminProspectConvert(deps.Prospects, logg))
		})
	})

	r.Route("/api/v1/portal", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth, logg))
		r.Use(middleware.RequireRole(logg, enums.ActorRolePartner))
		r.Use(middleware.RequirePartner(logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/dashboard", controllers.PortalDashboard(deps.Portal, logg))
		r.Get("/venues", controllers.PortalVenueList(deps.Venues, logg))
		r.Post("/venues", controllers.PortalVenueCreate(deps.Venues, logg))
		r.Post("/articles", controllers.PortalArticleSubmit(deps.Articles, logg))
		r.Get("/products", controllers.PortalProductList(deps.Products, logg))
		r.Post("/checkout", controllers.PortalCheckout(deps.Checkout, logg))
	})

	return r
}
