package dataset

import (
	"sort"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// CategoryRollup groups rows by category and sums quantity and value per
// group. Rows without a category form their own group under the empty string.
// Output is sorted ascending by category name so the order is deterministic
// regardless of fetch order.
func CategoryRollup(rows []models.Row) []models.CategoryTotal {
	totals := make(map[string]*models.CategoryTotal)
	for _, row := range rows {
		total, ok := totals[row.Category]
		if !ok {
			total = &models.CategoryTotal{Category: row.Category}
			totals[row.Category] = total
		}
		total.TotalQuantity += row.Quantity
		total.TotalValue += row.Value
	}

	out := make([]models.CategoryTotal, 0, len(totals))
	for _, total := range totals {
		out = append(out, *total)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// TopByValue returns the n most valuable rows, descending. The sort is stable,
// so rows with equal value keep their fetch order.
func TopByValue(rows []models.Row, n int) []models.Row {
	sorted := make([]models.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// LowStock returns the rows at or below the quantity threshold, ascending by
// quantity with fetch order preserved among equals, capped at limit. A
// non-positive limit returns every matching row.
func LowStock(rows []models.Row, threshold, limit int) []models.Row {
	low := make([]models.Row, 0)
	for _, row := range rows {
		if row.Quantity <= threshold {
			low = append(low, row)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })

	if limit > 0 && len(low) > limit {
		low = low[:limit]
	}
	return low
}

// PriceHistogram distributes row prices over equal-width buckets spanning
// [min, max]. When every price is identical a single bucket holds all rows.
func PriceHistogram(rows []models.Row, bins int) []models.PriceBucket {
	if bins <= 0 || len(rows) == 0 {
		return []models.PriceBucket{}
	}

	lo, hi := rows[0].Price, rows[0].Price
	for _, row := range rows[1:] {
		if row.Price < lo {
			lo = row.Price
		}
		if row.Price > hi {
			hi = row.Price
		}
	}

	if lo == hi {
		return []models.PriceBucket{{Low: lo, High: hi, Count: len(rows)}}
	}

	width := (hi - lo) / float64(bins)
	buckets := make([]models.PriceBucket, bins)
	for i := range buckets {
		buckets[i].Low = lo + width*float64(i)
		buckets[i].High = lo + width*float64(i+1)
	}
	// Pin the last edge to the true maximum so float drift cannot lose it.
	buckets[bins-1].High = hi

	for _, row := range rows {
		idx := int((row.Price - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		buckets[idx].Count++
	}
	return buckets
}

// RestockTimeline sums restocked quantity per calendar month, ascending.
// Rows with an unknown restock date are skipped.
func RestockTimeline(rows []models.Row) []models.MonthlyRestock {
	totals := make(map[string]int)
	for _, row := range rows {
		if row.LastRestock.IsZero() {
			continue
		}
		totals[row.LastRestock.Format("2006-01")] += row.Quantity
	}

	out := make([]models.MonthlyRestock, 0, len(totals))
	for month, qty := range totals {
		out = append(out, models.MonthlyRestock{Month: month, TotalQuantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Summarize computes the headline metrics over the given rows.
func Summarize(rows []models.Row) models.Summary {
	summary := models.Summary{Products: len(rows)}
	for _, row := range rows {
		summary.TotalQuantity += row.Quantity
		summary.TotalValue += row.Value
	}
	return summary
}
