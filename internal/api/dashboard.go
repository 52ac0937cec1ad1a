package api

import (
	"net/http"

	"github.com/medstock/medstock/internal/inventory"
	"github.com/medstock/medstock/internal/stock"
)

// DashboardHandler serves the aggregated dashboard payload.
type DashboardHandler struct {
	Repo *inventory.Repository
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	items := h.Repo.List(inventory.Filter{})

	jsonResponse(w, http.StatusOK, map[string]any{
		"summary":                         stock.Summarize(items),
		"items_by_category":               stock.CountByCategory(items),
		"value_by_category":               stock.ValueByCategory(items),
		"monthly_consumption_by_category": stock.MonthlyConsumptionByCategory(items),
		"status_by_category":              stock.StatusTallyByCategory(items),
		"shortages":                       stock.PrioritizedShortageList(items, 5),
	})
}
