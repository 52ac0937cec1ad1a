package web

import (
	"net/http"

	"github.com/medstock/medstock/internal/inventory"
)

// Server holds the dependencies for the HTML pages.
type Server struct {
	Repo      *inventory.Repository
	Templates *Templates
}

// PageData carries the fields every page layout needs.
type PageData struct {
	Title  string
	Active string
}

// NewRouter creates the web page router with all page routes registered.
func NewRouter(repo *inventory.Repository) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{Repo: repo, Templates: templates}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.Dashboard)
	mux.HandleFunc("GET /inventory", s.Inventory)
	mux.HandleFunc("GET /register", s.Register)

	return mux, nil
}
