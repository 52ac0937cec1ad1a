// Package report renders the PDF management report: executive summary,
// critical item analysis, purchase prioritization, minimum-stock review and
// supplier breakdown.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/medstock/medstock/internal/model"
	"github.com/medstock/medstock/internal/stock"
)

// Generate renders the report for the given items as a PDF document.
func Generate(items []model.Item, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(231, 76, 60)
	pdf.Cell(0, 10, "Stock Management Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, "Date: "+now.Format("2006-01-02"))
	pdf.Ln(12)

	var critical, low []model.Item
	for _, it := range items {
		switch stock.StatusByDaysOfStock(it) {
		case stock.StatusCritical:
			critical = append(critical, it)
		case stock.StatusLow:
			low = append(low, it)
		}
	}

	sectionTitle(pdf, "1. Executive Summary")
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Total items: %d", len(items)),
		fmt.Sprintf("Critical items: %d", len(critical)),
		fmt.Sprintf("Low-stock items: %d", len(low)),
		fmt.Sprintf("Total stock value: $ %.2f", stock.TotalStockValue(items)),
	} {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	sectionTitle(pdf, "2. Critical Item Analysis")
	criticalRows := make([][]string, 0, len(critical))
	for _, it := range critical {
		needed := stock.NeededForPeriod(it, 30)
		criticalRows = append(criticalRows, []string{
			it.Code,
			it.Name,
			fmt.Sprintf("%d", stock.DaysOfStock(it)),
			it.Category.DisplayName(),
			fmt.Sprintf("$ %.2f", stock.EstimatedCost(needed, it.Price)),
		})
	}
	table(pdf,
		[]float64{25, 60, 25, 45, 30},
		[]string{"Code", "Name", "Days Left", "Category", "Needed Value"},
		criticalRows,
	)

	pdf.AddPage()
	sectionTitle(pdf, "3. Recommendations and Priority Actions")

	subTitle(pdf, "3.1 Purchase Prioritization")
	priority := stock.PrioritizedShortageList(items, 5)
	priorityRows := make([][]string, 0, len(priority))
	for _, it := range priority {
		qty := stock.SuggestedPurchaseQuantity(it)
		priorityRows = append(priorityRows, []string{
			it.Code,
			it.Name,
			fmt.Sprintf("%d", stock.DaysOfStock(it)),
			fmt.Sprintf("%.0f %s", it.Stock, it.Unit),
			fmt.Sprintf("%.1f %s/day", it.DailyConsumption, it.Unit),
			fmt.Sprintf("%d %s", qty, it.Unit),
			fmt.Sprintf("$ %.2f", stock.EstimatedCost(float64(qty), it.Price)),
		})
	}
	table(pdf,
		[]float64{20, 45, 18, 25, 30, 25, 25},
		[]string{"Code", "Name", "Days", "Stock", "Consumption", "Suggested", "Investment"},
		priorityRows,
	)
	pdf.Ln(5)

	noteList(pdf, []string{
		"Purchase notes:",
		"- Suggested quantities cover 60 days of consumption plus a 10% safety margin",
		"- Check supplier minimum order sizes before committing",
		"- Confirm available storage conditions",
		"- Check product expiry dates",
		"- Account for seasonal swings in consumption",
	})

	subTitle(pdf, "3.2 Minimum Stock Review")
	var review []model.Item
	for _, it := range items {
		if it.Stock < it.MinStock && it.DailyConsumption > 0 {
			review = append(review, it)
		}
	}
	if len(review) > 5 {
		review = review[:5]
	}
	reviewRows := make([][]string, 0, len(review))
	for _, it := range review {
		reviewRows = append(reviewRows, []string{
			it.Code,
			it.Name,
			fmt.Sprintf("%.0f %s", it.MinStock, it.Unit),
			fmt.Sprintf("%.0f %s", it.Stock, it.Unit),
			fmt.Sprintf("%.0f%%", it.Stock/it.MinStock*100),
		})
	}
	table(pdf,
		[]float64{25, 60, 35, 35, 30},
		[]string{"Code", "Name", "Minimum", "Current", "% of Min"},
		reviewRows,
	)
	pdf.Ln(5)

	subTitle(pdf, "3.3 Supplier Analysis")
	table(pdf,
		[]float64{80, 40, 40},
		[]string{"Supplier", "Critical Items", "% of Total"},
		supplierRows(critical),
	)

	pdf.AddPage()
	subTitle(pdf, "3.4 Recommended Alert System")
	noteList(pdf, []string{
		"Daily alerts:",
		"- Items with under 5 days of stock",
		"- Items below minimum stock",
		"Weekly alerts:",
		"- Projected consumption vs. available stock",
		"- Significant swings in average consumption",
		"Monthly alerts:",
		"- Consumption trend analysis",
		"- Review of stock parameters",
	})

	subTitle(pdf, "3.5 Seasonality Analysis")
	noteList(pdf, []string{
		"- Start collecting historical consumption data",
		"- Analyze consumption patterns per period",
		"- Identify external factors driving demand",
		"- Adjust minimum stock levels to the season",
		"- Plan purchases around periods of high demand",
	})

	sectionTitle(pdf, "4. Conclusions and Next Steps")
	noteList(pdf, []string{
		fmt.Sprintf("- %d items require immediate action", len(critical)),
		fmt.Sprintf("- Total investment needed: $ %.2f", totalInvestment(critical)),
		"- Review contracts with the main suppliers",
		"- Automate the stock alerts",
		"- Schedule periodic reviews of the stock parameters",
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

// totalInvestment sums the cost of covering every critical item's 30-day
// shortfall at the current consumption rate.
func totalInvestment(critical []model.Item) float64 {
	var total float64
	for _, it := range critical {
		total += stock.NeededForPeriod(it, 30) * it.Price
	}
	return total
}

// supplierRows tallies critical items per supplier, largest share first.
func supplierRows(critical []model.Item) [][]string {
	if len(critical) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, it := range critical {
		counts[it.Supplier]++
	}

	suppliers := make([]string, 0, len(counts))
	for s := range counts {
		suppliers = append(suppliers, s)
	}
	sort.Slice(suppliers, func(i, j int) bool {
		if counts[suppliers[i]] != counts[suppliers[j]] {
			return counts[suppliers[i]] > counts[suppliers[j]]
		}
		return suppliers[i] < suppliers[j]
	})

	rows := make([][]string, 0, len(suppliers))
	for _, s := range suppliers {
		name := s
		if name == "" {
			name = "Not specified"
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", counts[s]),
			fmt.Sprintf("%.1f%%", float64(counts[s])/float64(len(critical))*100),
		})
	}
	return rows
}

func noteList(pdf *fpdf.Fpdf, lines []string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(52, 73, 94)
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(5)
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(52, 73, 94)
	pdf.Cell(0, 9, title)
	pdf.Ln(11)
}

func subTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(52, 73, 94)
	pdf.Cell(0, 8, title)
	pdf.Ln(10)
}

// table renders a simple striped table. An empty row set renders a single
// "none" line instead.
func table(pdf *fpdf.Fpdf, widths []float64, head []string, rows [][]string) {
	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(100, 100, 100)
		pdf.Cell(0, 7, "No items in this section.")
		pdf.Ln(10)
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(52, 73, 94)
	for i, h := range head {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for r, row := range rows {
		fill := r%2 == 1
		pdf.SetFillColor(240, 240, 240)
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}
