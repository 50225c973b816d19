package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storelane/storelane-backend/api/controllers"
	"github.com/storelane/storelane-backend/api/middleware"
	"github.com/storelane/storelane-backend/internal/assets"
	"github.com/storelane/storelane-backend/internal/geo"
	"github.com/storelane/storelane-backend/internal/stores"
	"github.com/storelane/storelane-backend/pkg/config"
	"github.com/storelane/storelane-backend/pkg/db"
	"github.com/storelane/storelane-backend/pkg/logger"
	"github.com/storelane/storelane-backend/pkg/metrics"
	"github.com/storelane/storelane-backend/pkg/pubsub"
	"github.com/storelane/storelane-backend/pkg/redis"
	"github.com/storelane/storelane-backend/pkg/storage/gcs"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gcsClient *gcs.Client,
	pubsubClient *pubsub.Client,
	requestMetrics *metrics.RequestMetrics,
	metricsHandler http.Handler,
	geoService geo.Service,
	storeService stores.Service,
	filterResolver *stores.FilterResolver,
	assetService assets.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(requestMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadyDeps(dbP, redisClient, gcsClient, pubsubClient)))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1/geo", func(r chi.Router) {
		r.Get("/cities", controllers.GeoCities(geoService, logg))
		r.Get("/areas", controllers.GeoAreas(geoService, logg))
		r.Get("/colonies", controllers.GeoColonies(geoService, logg))
		r.Get("/categories", controllers.GeoCategories(geoService, logg))
		r.Post("/entities", controllers.GeoAddEntity(geoService, logg))
	})

	maxUploadBytes := int64(cfg.Directory.MaxUploadMB) << 20

	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/", controllers.StoreList(filterResolver, storeService, logg))
		r.Post("/", controllers.StoreCreate(storeService, logg))

		r.Route("/{storeID}", func(r chi.Router) {
			r.Get("/", controllers.StoreGet(storeService, logg))
			r.Patch("/", controllers.StoreUpdate(storeService, logg))
			r.Post("/status", controllers.StoreSetStatus(storeService, logg))
			r.Put("/image", controllers.StoreReplaceImage(assetService, logg, maxUploadBytes))
			r.Delete("/image", controllers.StoreClearImage(assetService, logg))
		})
	})

	return r
}
