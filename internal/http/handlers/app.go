package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"registry/internal/domain"
	"registry/internal/overview"
)

// DefaultRedrawWait bounds one redraw long-poll.
const DefaultRedrawWait = 25 * time.Second

// App carries the dependencies of the donor overview handlers.
type App struct {
	Overviews domain.OverviewRepository
	Overrides domain.OverrideRepository
	// Source feeds page highlighters. Nil means Overrides is used.
	Source     overview.OverrideSource
	Table      overview.Options
	Pages      *overview.PageRegistry
	RedrawWait time.Duration
	Logger     zerolog.Logger
}

// NewApp wires the handlers. Pages must be set before serving the overview
// page, usually with NewPageRegistry(ctx, ttl, app.NewController, logger).
func NewApp(overviews domain.OverviewRepository, overrides domain.OverrideRepository, table overview.Options, logger zerolog.Logger) *App {
	return &App{
		Overviews:  overviews,
		Overrides:  overrides,
		Table:      table,
		RedrawWait: DefaultRedrawWait,
		Logger:     logger,
	}
}

// NewController builds the controller of one page: the data URL carries the
// page id and the highlighter fetches from the configured source.
func (a *App) NewController(pageID string) *overview.Controller {
	opts := a.Table
	opts.DataURL = withQuery(opts.DataURL, "page", pageID)

	var source overview.OverrideSource = a.Source
	if source == nil && a.Overrides != nil {
		source = a.Overrides
	}
	highlighter := overview.NewHighlighter(source, opts.Catalogue.WatchedColumns, a.Logger)
	return overview.NewController(opts, highlighter, a.Logger.With().Str("page", pageID).Logger())
}

// plainController renders cells without highlighting, for requests that
// are not tied to a live page.
func (a *App) plainController() *overview.Controller {
	return overview.NewController(a.Table, nil, a.Logger)
}

func withQuery(raw, key, value string) string {
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}
