package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"registry/internal/datatables"
	"registry/internal/domain"
	"registry/internal/export"
	"registry/internal/overview"
)

// OverviewExport writes every donor matching the grid search and order as
// an xlsx workbook.
func (a *App) OverviewExport(w http.ResponseWriter, r *http.Request) {
	ctrl := a.plainController()
	req, err := datatables.ParseRequest(r.URL.Query(), ctrl.Catalogue().Names(), ctrl)
	if err != nil {
		a.validationError(w, req.Draw, err)
		return
	}
	q := req.Query()
	q.Start = 0
	q.Length = -1

	result, err := a.Overviews.Query(r.Context(), q)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownColumn) {
			a.error(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("overview: export query")
		a.error(w, http.StatusInternalServerError, "internal", "failed to export donors")
		return
	}

	var buf bytes.Buffer
	value := func(row domain.Overview, column string) string {
		return ctrl.Cell(row, column, overview.ModeFilter)
	}
	if err := export.WriteXLSX(&buf, ctrl.Catalogue().Columns, result.Rows, value); err != nil {
		a.Logger.Error().Err(err).Msg("overview: export workbook")
		a.error(w, http.StatusInternalServerError, "internal", "failed to export donors")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
	a.Logger.Info().Int("rows", len(result.Rows)).Msg("overview: exported")
}
