package handler

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"compliance-hub-backend/pkg/compliance"
	"compliance-hub-backend/pkg/config"
	"compliance-hub-backend/pkg/database"
	"compliance-hub-backend/pkg/handlers"
	"compliance-hub-backend/pkg/metrics"
	customMiddleware "compliance-hub-backend/pkg/middleware"
	"compliance-hub-backend/pkg/storage"
	"compliance-hub-backend/pkg/utils"
)

// Handler is the serverless entry point. All endpoints are served by one
// chi router; config, store, and object-store handles are cached per cold
// start and reused across warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	cfg := config.GetCached()

	if err := cfg.Validate(); err != nil {
		utils.WriteInternalServerErrorResponse(w, "Configuration error: "+err.Error())
		return
	}

	store := database.GetStore(database.StoreConfig{
		PostgresDSN: cfg.PostgresDSN,
		SupabaseURL: cfg.SupabaseURL,
		SupabaseKey: cfg.SupabaseKey,
		Development: cfg.IsDevelopment(),
		Debug:       cfg.Debug,
	})

	router := chi.NewRouter()
	setupMiddleware(router, cfg)
	setupRoutes(router, cfg, store)

	router.ServeHTTP(w, r)
}

// setupMiddleware installs the global middleware stack.
func setupMiddleware(router *chi.Mux, cfg *config.Config) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	// Normalize path and restore scheme/host before logging and routing
	router.Use(customMiddleware.Normalize())
	router.Use(customMiddleware.Logger(cfg))
	router.Use(customMiddleware.Recovery(cfg))

	router.Use(customMiddleware.CORS(cfg))

	// Serverless functions have a hard time limit; keep a buffer
	router.Use(middleware.Timeout(25 * time.Second))

	router.Use(middleware.Compress(5))
	router.Use(customMiddleware.MaxBodySize(64 << 20))

	if cfg.IsDevelopment() {
		router.Use(middleware.Heartbeat("/ping"))
	}
}

// Cached object store (initialized once per cold start). Development
// without Supabase falls back to the in-memory store so uploads still work
// against the same process.
var (
	objectStore     storage.ObjectStore
	objectStoreOnce sync.Once
)

func getObjectStore(cfg *config.Config) storage.ObjectStore {
	objectStoreOnce.Do(func() {
		if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
			objectStore = storage.NewSupabaseObjectStore(cfg.SupabaseURL, cfg.SupabaseKey)
			return
		}
		fmt.Printf("⚠️  No object storage configured, using in-memory store (uploads are not persisted)\n")
		objectStore = storage.NewMemoryObjectStore()
	})
	return objectStore
}

// setupRoutes wires every endpoint.
func setupRoutes(router *chi.Mux, cfg *config.Config, store database.Store) {
	log := customMiddleware.RequestLogger(cfg)
	objects := getObjectStore(cfg)
	service := compliance.NewService(store, objects, cfg.EvidenceBucket, cfg.AvatarBucket, metrics.Default(), log)

	healthHandler := handlers.NewHealthHandler(cfg, store)
	recordsHandler := handlers.NewRecordsHandler(cfg, store, service)
	standardsHandler := handlers.NewStandardsHandler(cfg, store)
	teamHandler := handlers.NewTeamHandler(cfg, store)
	profileHandler := handlers.NewProfileHandler(cfg, store, service)
	analyticsHandler := handlers.NewAnalyticsHandler(cfg, store)

	router.Get("/", healthHandler.HealthCheck)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.AuthMiddleware(cfg, store, log))

			r.Route("/records", func(r chi.Router) {
				r.Get("/", recordsHandler.ListRecords)
				r.Post("/", recordsHandler.CreateRecord)
			})

			r.Get("/standards", standardsHandler.ListStandards)
			r.Get("/team", teamHandler.ListMembers)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.With(customMiddleware.ContentTypeJSON).Put("/", profileHandler.UpdateProfile)
				r.Post("/avatar", profileHandler.UploadAvatar)
			})

			r.Get("/analytics/summary", analyticsHandler.Summary)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteNotFoundResponse(w, fmt.Sprintf("Route not found: %s %s", r.Method, r.URL.Path))
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponseWithCode(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path), "")
	})
}
