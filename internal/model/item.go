package model

import (
	"fmt"
	"math"
	"time"
)

// Category of a stock item. The set is closed: dashboards, charts and the
// report aggregate over exactly these six buckets.
type Category string

const (
	CategoryPsychotropics Category = "psychotropics"
	CategoryAntibiotics   Category = "antibiotics"
	CategoryVasoactive    Category = "vasoactive"
	CategoryGeneral       Category = "general"
	CategoryMaterials     Category = "materials"
	CategoryDiets         Category = "diets"
)

// categories in display order.
var categories = []Category{
	CategoryPsychotropics,
	CategoryAntibiotics,
	CategoryVasoactive,
	CategoryGeneral,
	CategoryMaterials,
	CategoryDiets,
}

// Categories returns all item categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable category label.
func (c Category) DisplayName() string {
	switch c {
	case CategoryPsychotropics:
		return "Psychotropics"
	case CategoryAntibiotics:
		return "Antibiotics"
	case CategoryVasoactive:
		return "Vasoactive Drugs"
	case CategoryGeneral:
		return "General Medicines"
	case CategoryMaterials:
		return "Materials"
	case CategoryDiets:
		return "Diets"
	default:
		return string(c)
	}
}

// Item is a tracked pharmacy stock item, identified by its code.
type Item struct {
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Category         Category  `json:"category"`
	Unit             string    `json:"unit"`
	Stock            float64   `json:"stock"`
	MinStock         float64   `json:"min_stock"`
	DailyConsumption float64   `json:"daily_consumption"`
	Price            float64   `json:"price"`
	Supplier         string    `json:"supplier,omitempty"`
	Description      string    `json:"description,omitempty"`
	LastUpdated      time.Time `json:"last_updated"`
}

// ValidationError reports the field that caused an item to be rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid item: %s %s", e.Field, e.Reason)
}

// Validate checks that every required field is present and every numeric
// field is a finite, non-negative number. An item is never stored partially
// constructed: the first failing field aborts the whole operation.
func (it *Item) Validate() error {
	if it.Code == "" {
		return &ValidationError{Field: "code", Reason: "is required"}
	}
	if it.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if it.Category == "" {
		return &ValidationError{Field: "category", Reason: "is required"}
	}
	if !it.Category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("%q is not a known category", it.Category)}
	}
	if it.Unit == "" {
		return &ValidationError{Field: "unit", Reason: "is required"}
	}

	numbers := []struct {
		field string
		value float64
	}{
		{"stock", it.Stock},
		{"min_stock", it.MinStock},
		{"daily_consumption", it.DailyConsumption},
		{"price", it.Price},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return &ValidationError{Field: n.field, Reason: "must be a finite number"}
		}
		if n.value < 0 {
			return &ValidationError{Field: n.field, Reason: "must not be negative"}
		}
	}

	return nil
}
