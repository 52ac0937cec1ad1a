// Package stock computes derived stock metrics from inventory items:
// days of stock, status classification, consumption projections, purchase
// suggestions and the per-category aggregates the dashboard charts consume.
// Every function is pure and total over validated items.
package stock

import (
	"math"

	"github.com/medstock/medstock/internal/model"
)

// Status buckets shown on the dashboard and accepted by list filters.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusLow      Status = "low"
	StatusCritical Status = "critical"
)

// Valid reports whether s is one of the known status buckets.
func (s Status) Valid() bool {
	return s == StatusNormal || s == StatusLow || s == StatusCritical
}

// DaysInfinite is returned by DaysOfStock for items with no measurable
// consumption. Callers must check for it before comparing day counts.
const DaysInfinite = -1

// daysMax caps the day projection. An extreme stock-to-consumption ratio
// must stay representable as an int; converting an out-of-range float is
// implementation-defined.
const daysMax = math.MaxInt32

// DaysOfStock returns the projected number of days until the item's stock
// depletes at the current consumption rate, rounded to the nearest day.
func DaysOfStock(it model.Item) int {
	if it.DailyConsumption <= 0 {
		return DaysInfinite
	}
	days := math.Round(it.Stock / it.DailyConsumption)
	if days > daysMax {
		return daysMax
	}
	return int(days)
}

// StatusByDaysOfStock classifies an item by projected days until depletion.
// The 15- and 20-day thresholds are fixed policy, independent of MinStock.
// Items with infinite runway are always normal.
func StatusByDaysOfStock(it model.Item) Status {
	days := DaysOfStock(it)
	switch {
	case days == DaysInfinite:
		return StatusNormal
	case days < 15:
		return StatusCritical
	case days <= 20:
		return StatusLow
	default:
		return StatusNormal
	}
}

// StatusByMinStockRatio classifies an item by how far its stock sits below
// the reorder threshold. This is deliberately a separate signal from
// StatusByDaysOfStock: the category status chart reads this one, the
// inventory table reads the other, and the two can disagree for the same
// item. Items without a minimum stock are normal.
func StatusByMinStockRatio(it model.Item) Status {
	if it.MinStock <= 0 {
		return StatusNormal
	}
	ratio := it.Stock / it.MinStock
	switch {
	case ratio <= 0.5:
		return StatusCritical
	case ratio <= 1:
		return StatusLow
	default:
		return StatusNormal
	}
}

// MonthlyConsumption returns the item's average consumption over 30 days.
func MonthlyConsumption(it model.Item) float64 {
	return it.DailyConsumption * 30
}

// NeededForPeriod returns the shortfall to cover the given number of days at
// the current consumption rate, floored at zero: a well-stocked item never
// yields a negative purchase.
func NeededForPeriod(it model.Item, days float64) float64 {
	return math.Max(0, it.DailyConsumption*days-it.Stock)
}

// EstimatedCost returns quantity times unit price, rounded to two decimal
// places for display.
func EstimatedCost(quantity, price float64) float64 {
	return math.Round(quantity*price*100) / 100
}

// SuggestedPurchaseQuantity covers 60 days of consumption plus a 10% safety
// buffer, rounded up so the order never falls short.
func SuggestedPurchaseQuantity(it model.Item) int {
	return int(math.Ceil(NeededForPeriod(it, 60) * 1.1))
}

// TotalStockValue sums stock times unit price over all items.
func TotalStockValue(items []model.Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Stock * it.Price
	}
	return total
}
