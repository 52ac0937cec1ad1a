package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medstock/medstock/internal/inventory"
	"github.com/medstock/medstock/internal/report"
)

// ReportHandler serves the PDF management report.
type ReportHandler struct {
	Repo *inventory.Repository
}

// Get handles GET /api/report.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	items := h.Repo.List(inventory.Filter{})

	now := time.Now()
	data, err := report.Generate(items, now)
	if err != nil {
		log.Error().Err(err).Msg("generating report failed")
		jsonError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=stock_report_%s.pdf", now.Format("2006-01-02")))
	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("writing report response failed")
	}
}
