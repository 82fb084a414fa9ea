package handlers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"registry/internal/datatables"
	"registry/internal/domain"
	"registry/internal/middleware"
	"registry/internal/overview"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/overview.html"))

var pageTitles = map[string]string{
	middleware.LocaleCzech:   "Přehled dárců",
	middleware.LocaleEnglish: "Donor overview",
}

type pageView struct {
	Locale    string
	Title     string
	PageID    string
	RedrawURL string
	Options   overview.TableOptions
}

// OverviewPage opens a page session and renders the grid bootstrap.
func (a *App) OverviewPage(w http.ResponseWriter, r *http.Request) {
	if a.Pages == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "page sessions are not configured")
		return
	}
	page := a.Pages.Open()
	locale := middleware.LocaleFromContext(r.Context())
	view := pageView{
		Locale:    locale,
		Title:     pageTitles[locale],
		PageID:    page.ID,
		RedrawURL: "/donor/overview/" + page.ID + "/redraw",
		Options:   page.Controller.Options(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, view); err != nil {
		a.Logger.Error().Err(err).Str("page", page.ID).Msg("overview: render page")
	}
}

// OverviewData answers one server-side processing request of the grid.
func (a *App) OverviewData(w http.ResponseWriter, r *http.Request) {
	ctrl := a.plainController()
	if id := r.URL.Query().Get("page"); id != "" && a.Pages != nil {
		if page, ok := a.Pages.Get(id); ok {
			ctrl = page.Controller
		} else {
			w.Header().Set("X-Page-Expired", "1")
		}
	}

	req, err := datatables.ParseRequest(r.URL.Query(), ctrl.Catalogue().Names(), ctrl)
	if err != nil {
		a.validationError(w, req.Draw, err)
		return
	}

	result, err := a.Overviews.Query(r.Context(), req.Query())
	if err != nil {
		if errors.Is(err, domain.ErrUnknownColumn) {
			a.json(w, http.StatusBadRequest, datatables.Response{Draw: req.Draw, Data: []any{}, Error: err.Error()})
			return
		}
		a.Logger.Error().Err(err).Msg("overview: query donors")
		a.json(w, http.StatusInternalServerError, datatables.Response{Draw: req.Draw, Data: []any{}, Error: "failed to load donors"})
		return
	}

	a.json(w, http.StatusOK, datatables.Response{
		Draw:            req.Draw,
		RecordsTotal:    result.Total,
		RecordsFiltered: result.Filtered,
		Data:            ctrl.RenderRows(result.Rows),
	})
}

func (a *App) validationError(w http.ResponseWriter, draw int, err error) {
	var verr *datatables.ValidationError
	if errors.As(err, &verr) {
		a.json(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Code:    "invalid_request",
			Message: "invalid grid parameters",
			Details: verr.Details,
		}})
		return
	}
	a.json(w, http.StatusBadRequest, datatables.Response{Draw: draw, Data: []any{}, Error: err.Error()})
}

type redrawResponse struct {
	Redraw bool              `json:"redraw"`
	Mode   overview.DrawMode `json:"mode,omitempty"`
}

// OverviewRedraw long-polls until the page grid is asked to redraw or the
// wait times out.
func (a *App) OverviewRedraw(w http.ResponseWriter, r *http.Request) {
	if a.Pages == nil {
		a.error(w, http.StatusNotFound, "not_found", "page not found")
		return
	}
	page, ok := a.Pages.Get(chi.URLParam(r, "page"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "page not found")
		return
	}
	wait := a.RedrawWait
	if wait <= 0 {
		wait = DefaultRedrawWait
	}
	ctx, cancel := context.WithTimeout(r.Context(), wait)
	defer cancel()

	mode, redraw := page.Grid.Wait(ctx)
	if r.Context().Err() != nil {
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	a.json(w, http.StatusOK, redrawResponse{Redraw: redraw, Mode: mode})
}

// OverridesList serves the override map keyed by rodne cislo.
func (a *App) OverridesList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	m, err := a.Overrides.Overrides(ctx)
	if err != nil {
		a.Logger.Error().Err(err).Msg("overview: list overrides")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load overrides")
		return
	}
	a.json(w, http.StatusOK, m)
}

// DonorDetail returns one donor as JSON.
func (a *App) DonorDetail(w http.ResponseWriter, r *http.Request) {
	rc := chi.URLParam(r, "rc")
	if !domain.IsValidRC(rc) {
		a.error(w, http.StatusBadRequest, "invalid_identifier", "invalid rodne cislo")
		return
	}
	donor, err := a.Overviews.Get(r.Context(), rc)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "donor not found")
			return
		}
		a.Logger.Error().Err(err).Msg("overview: get donor")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donor")
		return
	}
	a.json(w, http.StatusOK, donor)
}
