package api

import (
	"errors"
	"net/http"

	"github.com/medstock/medstock/internal/inventory"
	"github.com/medstock/medstock/internal/model"
	"github.com/medstock/medstock/internal/stock"
)

// ItemsHandler handles the item endpoints.
type ItemsHandler struct {
	Repo *inventory.Repository
}

// List handles GET /api/items with optional q, category and status filters.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := inventory.Filter{Search: query.Get("q")}

	if c := query.Get("category"); c != "" {
		cat := model.Category(c)
		if !cat.Valid() {
			jsonError(w, http.StatusBadRequest, "invalid category")
			return
		}
		filter.Category = cat
	}
	if s := query.Get("status"); s != "" {
		status := stock.Status(s)
		if !status.Valid() {
			jsonError(w, http.StatusBadRequest, "invalid status")
			return
		}
		filter.Status = status
	}

	jsonResponse(w, http.StatusOK, h.Repo.List(filter))
}

// Upsert handles POST /api/items. An existing code is replaced in full; a
// fresh code is appended.
func (h *ItemsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var it model.Item
	if err := decodeJSON(r, &it); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.Repo.Upsert(r.Context(), it)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			jsonError(w, http.StatusBadRequest, verr.Error())
			return
		}
		var perr *inventory.PersistenceError
		if errors.As(err, &perr) {
			jsonError(w, http.StatusBadGateway, "failed to store item")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to store item")
		return
	}

	jsonResponse(w, http.StatusOK, stored)
}

// Get handles GET /api/items/{code} and includes the full projection block.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, ok := h.Repo.FindByCode(r.PathValue("code"))
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"item":       it,
		"projection": itemProjection(it),
	})
}

// Delete handles DELETE /api/items/{code}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Repo.Delete(r.Context(), r.PathValue("code"))
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		var perr *inventory.PersistenceError
		if errors.As(err, &perr) {
			jsonError(w, http.StatusBadGateway, "failed to delete item")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

type periodProjection struct {
	Days          int     `json:"days"`
	Needed        float64 `json:"needed"`
	EstimatedCost float64 `json:"estimated_cost"`
}

type itemProjectionResponse struct {
	DaysOfStock        *int               `json:"days_of_stock"` // null when consumption is zero
	Status             stock.Status       `json:"status"`
	StatusByMinStock   stock.Status       `json:"status_by_min_stock"`
	MonthlyConsumption float64            `json:"monthly_consumption"`
	StockValue         float64            `json:"stock_value"`
	Periods            []periodProjection `json:"periods"`
	SuggestedQuantity  int                `json:"suggested_purchase_quantity"`
	SuggestedCost      float64            `json:"suggested_purchase_cost"`
}

// itemProjection computes every derived display field for one item.
func itemProjection(it model.Item) itemProjectionResponse {
	resp := itemProjectionResponse{
		Status:             stock.StatusByDaysOfStock(it),
		StatusByMinStock:   stock.StatusByMinStockRatio(it),
		MonthlyConsumption: stock.MonthlyConsumption(it),
		StockValue:         stock.EstimatedCost(it.Stock, it.Price),
	}
	if days := stock.DaysOfStock(it); days != stock.DaysInfinite {
		resp.DaysOfStock = &days
	}
	for _, d := range []int{30, 45, 60} {
		needed := stock.NeededForPeriod(it, float64(d))
		resp.Periods = append(resp.Periods, periodProjection{
			Days:          d,
			Needed:        needed,
			EstimatedCost: stock.EstimatedCost(needed, it.Price),
		})
	}
	qty := stock.SuggestedPurchaseQuantity(it)
	resp.SuggestedQuantity = qty
	resp.SuggestedCost = stock.EstimatedCost(float64(qty), it.Price)
	return resp
}
