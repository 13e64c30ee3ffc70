package dataset

import (
	"time"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// Enrich appends the derived columns to normalized rows: Value is exactly
// quantity times price, DaysSinceRestock the whole-day distance between the
// restock date and today. Rows with an unknown restock date get the
// models.UnknownDays sentinel; future-dated restocks clamp to zero so the
// sentinel can never collide with a computed count. The input slice is left
// untouched.
func Enrich(rows []models.Row, today time.Time) []models.Row {
	out := make([]models.Row, len(rows))
	for i, row := range rows {
		row.Value = float64(row.Quantity) * row.Price
		row.DaysSinceRestock = daysSince(row.LastRestock, today)
		out[i] = row
	}
	return out
}

// daysSince counts calendar days between two instants, comparing dates rather
// than clock times so partial days never skew the count.
func daysSince(restock, today time.Time) int {
	if restock.IsZero() {
		return models.UnknownDays
	}

	days := int(dateOnly(today).Sub(dateOnly(restock)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
