package router

import (
	"context"
	_ "embed"
	"net/http"
	"strings"
	"time"

	_ "husbandry-tracker/docs"

	"husbandry-tracker/internal/adapters/storage/sqlstore"
	"husbandry-tracker/internal/domain/animals"
	"husbandry-tracker/internal/domain/breedings"
	"husbandry-tracker/internal/domain/hatchings"
	"husbandry-tracker/internal/domain/media"
	"husbandry-tracker/internal/domain/stats"
	"husbandry-tracker/internal/middleware"
	"husbandry-tracker/internal/platform/logger"
	"husbandry-tracker/internal/platform/metrics"
	"husbandry-tracker/internal/platform/respond"
	mediaport "husbandry-tracker/internal/ports/media"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed web/index.html
var indexHTML []byte

const defaultMaxUploadBytes = 50 << 20

type Options struct {
	// Store es obligatorio: el router no abre conexiones por su cuenta.
	Store *sqlstore.Store

	// Media puede ser nil: sin store de imágenes no se montan /api/uploads ni /uploads/*.
	Media          mediaport.Store
	MaxUploadBytes int64

	Logger   logger.Logger
	Metrics  *metrics.HTTPMetrics // nil = sin /metrics
	StatsTTL time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observe(log, opts.Metrics))
	r.Use(chimw.Recoverer)

	// Repos sobre el mismo Store (sqlite o postgres)
	animalRepo := sqlstore.NewAnimalsRepo(opts.Store)
	breedingRepo := sqlstore.NewBreedingsRepo(opts.Store)
	hatchingRepo := sqlstore.NewHatchingsRepo(opts.Store)
	statsRepo := sqlstore.NewStatsRepo(opts.Store)

	// Services por módulo
	var (
		mediaSvc *media.Service
		images   animals.ImageRemover
	)
	if opts.Media != nil {
		mediaSvc = media.NewService(opts.Media, log)
		images = mediaSvc
	}

	animalsSvc := animals.NewService(animalRepo, images, log)
	breedingsSvc := breedings.NewService(breedingRepo, log)
	hatchingsSvc := hatchings.NewService(hatchingRepo, log)
	statsSvc := stats.NewService(statsRepo, opts.StatsTTL)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.AfterWrite(statsSvc.Invalidate))

		api.Get("/health", healthHandler(opts.Store, log))

		animals.RegisterRoutes(api, animalsSvc)
		breedings.RegisterRoutes(api, breedingsSvc)
		hatchings.RegisterRoutes(api, hatchingsSvc)
		stats.RegisterRoutes(api, statsSvc)
		if mediaSvc != nil {
			media.RegisterRoutes(api, mediaSvc, maxUpload)
		}

		api.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			respond.Error(w, http.StatusNotFound, "Not found")
		})
	})

	if mediaSvc != nil {
		media.ServeRoutes(r, mediaSvc)
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Todo lo demás es la UI (single page)
	r.NotFound(uiHandler)

	return r
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler godoc
// @Summary Health check
// @Description Hace ping a la base; si no responde devuelve 503.
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func healthHandler(db pinger, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		now := time.Now().UTC()
		if err := db.Ping(ctx); err != nil {
			log.Error("health check: database ping failed", map[string]any{"error": err.Error()})
			respond.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "ERROR", Timestamp: now, Error: "database unavailable"})
			return
		}
		respond.JSON(w, http.StatusOK, healthResponse{Status: "OK", Timestamp: now})
	}
}

func uiHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}
