package api

import (
	"net/http"

	"github.com/medstock/medstock/internal/inventory"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(repo *inventory.Repository) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Repo: repo}
	dashboardHandler := &DashboardHandler{Repo: repo}
	reportHandler := &ReportHandler{Repo: repo}

	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Upsert)
	mux.HandleFunc("GET /api/items/{code}", itemsHandler.Get)
	mux.HandleFunc("DELETE /api/items/{code}", itemsHandler.Delete)

	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Get)
	mux.HandleFunc("GET /api/report", reportHandler.Get)

	return mux
}
