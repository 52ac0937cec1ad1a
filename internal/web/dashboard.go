package web

import (
	"net/http"

	"github.com/medstock/medstock/internal/inventory"
	"github.com/medstock/medstock/internal/model"
	"github.com/medstock/medstock/internal/stock"
)

// categoryCharts holds one aligned series per chart, in category display
// order, ready to inject into the Chart.js setup script.
type categoryCharts struct {
	Labels      []string  `json:"labels"`
	Counts      []int     `json:"counts"`
	Values      []float64 `json:"values"`
	Normal      []int     `json:"normal"`
	Low         []int     `json:"low"`
	Critical    []int     `json:"critical"`
	Consumption []float64 `json:"consumption"`
}

type shortageRow struct {
	model.Item
	Days int
}

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	items := s.Repo.List(inventory.Filter{})

	counts := stock.CountByCategory(items)
	values := stock.ValueByCategory(items)
	tallies := stock.StatusTallyByCategory(items)
	consumption := stock.MonthlyConsumptionByCategory(items)

	charts := categoryCharts{}
	for _, c := range model.Categories() {
		charts.Labels = append(charts.Labels, c.DisplayName())
		charts.Counts = append(charts.Counts, counts[c])
		charts.Values = append(charts.Values, values[c])
		charts.Normal = append(charts.Normal, tallies[c].Normal)
		charts.Low = append(charts.Low, tallies[c].Low)
		charts.Critical = append(charts.Critical, tallies[c].Critical)
		charts.Consumption = append(charts.Consumption, consumption[c])
	}

	var shortages []shortageRow
	for _, it := range stock.PrioritizedShortageList(items, 5) {
		shortages = append(shortages, shortageRow{Item: it, Days: stock.DaysOfStock(it)})
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Summary   stock.Summary
		Charts    categoryCharts
		Shortages []shortageRow
	}{
		PageData:  PageData{Title: "Dashboard", Active: "dashboard"},
		Summary:   stock.Summarize(items),
		Charts:    charts,
		Shortages: shortages,
	})
}
