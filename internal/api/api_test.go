package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medstock/medstock/internal/db"
	"github.com/medstock/medstock/internal/inventory"
	"github.com/medstock/medstock/internal/model"
	"github.com/medstock/medstock/internal/store"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	backend := store.NewSQLite(db.NewTestDB(t))
	repo := inventory.New(backend, zerolog.Nop())

	server := httptest.NewServer(NewRouter(repo))
	t.Cleanup(server.Close)
	return server
}

func postItem(t *testing.T, server *httptest.Server, it model.Item) *http.Response {
	t.Helper()
	data, _ := json.Marshal(it)
	resp, err := http.Post(server.URL+"/api/items", "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST /api/items: %v", err)
	}
	return resp
}

func apiItem(code string, stock, daily, price float64) model.Item {
	return model.Item{
		Code:             code,
		Name:             "Item " + code,
		Category:         model.CategoryGeneral,
		Unit:             "tablet",
		Stock:            stock,
		MinStock:         50,
		DailyConsumption: daily,
		Price:            price,
		Supplier:         "Farmex",
	}
}

func TestItemsAPIFlow(t *testing.T) {
	server := setupTestServer(t)

	// Create item.
	resp := postItem(t, server, apiItem("A1", 100, 10, 2.00))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var stored model.Item
	json.NewDecoder(resp.Body).Decode(&stored)
	resp.Body.Close()
	if stored.LastUpdated.IsZero() {
		t.Error("stored item should have LastUpdated set")
	}

	// List items.
	resp, _ = http.Get(server.URL + "/api/items")
	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 || items[0].Code != "A1" {
		t.Fatalf("unexpected list: %+v", items)
	}

	// Item detail includes the projection.
	resp, _ = http.Get(server.URL + "/api/items/A1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var detail struct {
		Item       model.Item             `json:"item"`
		Projection itemProjectionResponse `json:"projection"`
	}
	json.NewDecoder(resp.Body).Decode(&detail)
	resp.Body.Close()
	if detail.Projection.DaysOfStock == nil || *detail.Projection.DaysOfStock != 10 {
		t.Errorf("days_of_stock = %v, want 10", detail.Projection.DaysOfStock)
	}
	if detail.Projection.Status != "critical" {
		t.Errorf("status = %q, want critical", detail.Projection.Status)
	}
	if detail.Projection.SuggestedQuantity != 550 {
		t.Errorf("suggested quantity = %d, want 550", detail.Projection.SuggestedQuantity)
	}

	// Delete.
	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/items/A1", nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, _ = http.Get(server.URL + "/api/items/A1")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUpsertByCodeReplaces(t *testing.T) {
	server := setupTestServer(t)

	postItem(t, server, apiItem("B1", 100, 10, 1.00)).Body.Close()

	updated := apiItem("B1", 100, 10, 1.50)
	postItem(t, server, updated).Body.Close()

	resp, _ := http.Get(server.URL + "/api/items")
	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()

	if len(items) != 1 {
		t.Fatalf("expected 1 item after double upsert, got %d", len(items))
	}
	if items[0].Price != 1.50 {
		t.Errorf("price = %v, want 1.50", items[0].Price)
	}
}

func TestUpsertValidation(t *testing.T) {
	server := setupTestServer(t)

	bad := apiItem("", 100, 10, 1.00)
	resp := postItem(t, server, bad)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing code, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !bytes.Contains(body, []byte("code")) {
		t.Errorf("error should name the failing field, got %s", body)
	}

	negative := apiItem("N1", -5, 10, 1.00)
	resp = postItem(t, server, negative)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for negative stock, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDeleteUnknownCode(t *testing.T) {
	server := setupTestServer(t)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/items/ZZZ", nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestListFilters(t *testing.T) {
	server := setupTestServer(t)

	critical := apiItem("CRIT", 100, 10, 1.00) // 10 days
	postItem(t, server, critical).Body.Close()
	normal := apiItem("SAFE", 600, 10, 1.00) // 60 days
	postItem(t, server, normal).Body.Close()

	cases := []struct {
		query string
		want  []string
	}{
		{"", []string{"CRIT", "SAFE"}},
		{"?q=crit", []string{"CRIT"}},
		{"?status=critical", []string{"CRIT"}},
		{"?status=normal", []string{"SAFE"}},
		{"?category=general", []string{"CRIT", "SAFE"}},
		{"?category=diets", nil},
	}

	for _, tc := range cases {
		resp, _ := http.Get(server.URL + "/api/items" + tc.query)
		var items []model.Item
		json.NewDecoder(resp.Body).Decode(&items)
		resp.Body.Close()

		if len(items) != len(tc.want) {
			t.Errorf("%q: got %d items, want %d", tc.query, len(items), len(tc.want))
			continue
		}
		for i, code := range tc.want {
			if items[i].Code != code {
				t.Errorf("%q position %d: got %q, want %q", tc.query, i, items[i].Code, code)
			}
		}
	}

	// Unknown filter values are rejected, not ignored.
	resp, _ := http.Get(server.URL + "/api/items?status=bogus")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad status, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestDashboard(t *testing.T) {
	server := setupTestServer(t)

	postItem(t, server, apiItem("CRIT", 100, 10, 2.00)).Body.Close()
	postItem(t, server, apiItem("SAFE", 600, 10, 1.00)).Body.Close()

	resp, _ := http.Get(server.URL + "/api/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		Summary struct {
			TotalItems    int     `json:"total_items"`
			CriticalItems int     `json:"critical_items"`
			StockValue    float64 `json:"stock_value"`
		} `json:"summary"`
		ItemsByCategory map[string]int `json:"items_by_category"`
		Shortages       []model.Item   `json:"shortages"`
	}
	json.NewDecoder(resp.Body).Decode(&payload)
	resp.Body.Close()

	if payload.Summary.TotalItems != 2 {
		t.Errorf("total_items = %d, want 2", payload.Summary.TotalItems)
	}
	if payload.Summary.CriticalItems != 1 {
		t.Errorf("critical_items = %d, want 1", payload.Summary.CriticalItems)
	}
	if payload.Summary.StockValue != 800 {
		t.Errorf("stock_value = %v, want 800", payload.Summary.StockValue)
	}
	if len(payload.ItemsByCategory) != 6 {
		t.Errorf("expected all 6 categories, got %d", len(payload.ItemsByCategory))
	}
	if len(payload.Shortages) != 1 || payload.Shortages[0].Code != "CRIT" {
		t.Errorf("unexpected shortages: %+v", payload.Shortages)
	}
}

func TestReportEndpoint(t *testing.T) {
	server := setupTestServer(t)
	postItem(t, server, apiItem("A1", 100, 10, 2.00)).Body.Close()

	resp, _ := http.Get(server.URL + "/api/report")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("report body is not a PDF")
	}
}

func TestJSONErrorShape(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/items/NOPE")
	if err != nil {
		t.Fatalf("GET /api/items/NOPE: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] == "" {
		t.Error("error responses must carry an error message")
	}
	if got := fmt.Sprintf("%d", resp.StatusCode); got != "404" {
		t.Errorf("status = %s, want 404", got)
	}
}
