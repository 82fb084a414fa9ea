package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"registry/internal/http/handlers"
	"registry/internal/middleware"
)

// RouterConfig holds the cross-cutting settings of the router.
type RouterConfig struct {
	JWTSecret       string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	ExportPerMinute int
}

func NewRouter(app *handlers.App, cfg RouterConfig, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(logger),
		chimw.Recoverer,
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/donor", func(r chi.Router) {
		r.Use(
			middleware.AuthJWT(cfg.JWTSecret),
			middleware.I18N(cfg.DefaultLocale, cfg.CountryLookup),
		)

		r.Get("/overrides", app.OverridesList)
		r.Get("/detail/{rc}", app.DonorDetail)

		r.Route("/overview", func(r chi.Router) {
			r.Get("/", app.OverviewPage)
			r.Get("/data", app.OverviewData)
			r.Get("/{page}/redraw", app.OverviewRedraw)
			r.With(middleware.RateLimit(exportLimit(cfg.ExportPerMinute), time.Minute)).
				Get("/export", app.OverviewExport)
		})
	})

	return r
}

func exportLimit(n int) int {
	if n <= 0 {
		return 30
	}
	return n
}
