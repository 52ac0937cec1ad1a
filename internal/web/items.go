package web

import (
	"net/http"

	"github.com/medstock/medstock/internal/inventory"
	"github.com/medstock/medstock/internal/model"
	"github.com/medstock/medstock/internal/stock"
)

// itemRow pairs an item with its derived table columns.
type itemRow struct {
	model.Item
	Days       int
	Status     stock.Status
	StockValue float64
}

// Inventory handles GET /inventory with optional q, category and status
// query parameters. Unknown filter values are treated as unset.
func (s *Server) Inventory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := inventory.Filter{Search: query.Get("q")}
	if c := model.Category(query.Get("category")); c.Valid() {
		filter.Category = c
	}
	if st := stock.Status(query.Get("status")); st.Valid() {
		filter.Status = st
	}

	items := s.Repo.List(filter)
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{
			Item:       it,
			Days:       stock.DaysOfStock(it),
			Status:     stock.StatusByDaysOfStock(it),
			StockValue: stock.EstimatedCost(it.Stock, it.Price),
		})
	}

	s.Templates.Render(w, "inventory.html", &struct {
		PageData
		Rows       []itemRow
		Categories []model.Category
		Search     string
		Category   model.Category
		Status     stock.Status
	}{
		PageData:   PageData{Title: "Inventory", Active: "inventory"},
		Rows:       rows,
		Categories: model.Categories(),
		Search:     filter.Search,
		Category:   filter.Category,
		Status:     filter.Status,
	})
}

// Register handles GET /register. With a code parameter the form is
// prefilled from the matching item for editing.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var editing *model.Item
	if code := r.URL.Query().Get("code"); code != "" {
		if it, ok := s.Repo.FindByCode(code); ok {
			editing = &it
		}
	}

	s.Templates.Render(w, "register.html", &struct {
		PageData
		Categories []model.Category
		Item       *model.Item
	}{
		PageData:   PageData{Title: "Register Item", Active: "register"},
		Categories: model.Categories(),
		Item:       editing,
	})
}
