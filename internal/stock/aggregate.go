package stock

import (
	"sort"

	"github.com/medstock/medstock/internal/model"
)

// AggregateByCategory folds items into one value per category. Every
// category appears in the result, zero-valued when no item matches, so chart
// series always cover the full keyspace.
func AggregateByCategory[V any](items []model.Item, fold func(V, model.Item) V) map[model.Category]V {
	out := make(map[model.Category]V, 6)
	for _, c := range model.Categories() {
		var zero V
		out[c] = zero
	}
	for _, it := range items {
		if !it.Category.Valid() {
			continue
		}
		out[it.Category] = fold(out[it.Category], it)
	}
	return out
}

// CountByCategory counts items per category.
func CountByCategory(items []model.Item) map[model.Category]int {
	return AggregateByCategory(items, func(n int, _ model.Item) int {
		return n + 1
	})
}

// ValueByCategory sums stock value per category.
func ValueByCategory(items []model.Item) map[model.Category]float64 {
	return AggregateByCategory(items, func(v float64, it model.Item) float64 {
		return v + it.Stock*it.Price
	})
}

// MonthlyConsumptionByCategory sums 30-day consumption per category.
func MonthlyConsumptionByCategory(items []model.Item) map[model.Category]float64 {
	return AggregateByCategory(items, func(v float64, it model.Item) float64 {
		return v + MonthlyConsumption(it)
	})
}

// StatusTally counts items per status bucket.
type StatusTally struct {
	Normal   int `json:"normal"`
	Low      int `json:"low"`
	Critical int `json:"critical"`
}

// StatusTallyByCategory tallies item statuses per category using the
// min-stock ratio classifier, which is the signal the category status chart
// wants (not the days-of-stock classifier the item table shows).
func StatusTallyByCategory(items []model.Item) map[model.Category]StatusTally {
	return AggregateByCategory(items, func(t StatusTally, it model.Item) StatusTally {
		switch StatusByMinStockRatio(it) {
		case StatusCritical:
			t.Critical++
		case StatusLow:
			t.Low++
		default:
			t.Normal++
		}
		return t
	})
}

// PrioritizedShortageList returns up to limit critical items, smallest
// runway first. The sort is stable, so ties keep their original order.
// Items with no measurable consumption never classify as critical and are
// therefore never part of the list.
func PrioritizedShortageList(items []model.Item, limit int) []model.Item {
	var critical []model.Item
	for _, it := range items {
		if StatusByDaysOfStock(it) == StatusCritical {
			critical = append(critical, it)
		}
	}

	// Critical implies DailyConsumption > 0, so the runway quotient is safe.
	sort.SliceStable(critical, func(i, j int) bool {
		return critical[i].Stock/critical[i].DailyConsumption <
			critical[j].Stock/critical[j].DailyConsumption
	})

	if limit >= 0 && len(critical) > limit {
		critical = critical[:limit]
	}
	return critical
}

// Summary holds the dashboard overview cards.
type Summary struct {
	TotalItems           int     `json:"total_items"`
	CriticalItems        int     `json:"critical_items"`
	StockValue           float64 `json:"stock_value"`
	RecommendedPurchases int     `json:"recommended_purchases"`
}

// Summarize computes the dashboard overview. The recommended-purchase card
// counts every item with strictly under 20 days of cover, which also sweeps
// in the whole critical bucket but not an item sitting exactly at 20 days.
func Summarize(items []model.Item) Summary {
	s := Summary{TotalItems: len(items), StockValue: TotalStockValue(items)}
	for _, it := range items {
		if StatusByDaysOfStock(it) == StatusCritical {
			s.CriticalItems++
		}
		if days := DaysOfStock(it); days != DaysInfinite && days < 20 {
			s.RecommendedPurchases++
		}
	}
	return s
}
