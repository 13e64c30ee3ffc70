package models

import "time"

// UnknownDays is the DaysSinceRestock sentinel for rows whose restock date is
// unknown. Valid day counts are always zero or positive.
const UnknownDays = -1

// Row is the uniform tabular shape every stored document is coerced into
// before enrichment, aggregation or export. A zero LastRestock means the
// restock date is unknown; DaysSinceRestock then carries the -1 sentinel so
// numeric sorts keep working for consumers that rely on it.
type Row struct {
	ID               string    `json:"id"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Quantity         int       `json:"quantity"`
	Price            float64   `json:"price"`
	Supplier         string    `json:"supplier"`
	LastRestock      time.Time `json:"last_restock,omitzero"`
	Value            float64   `json:"value"`
	DaysSinceRestock int       `json:"days_since_restock"`
}

// CategoryTotal is one row of the per-category rollup.
type CategoryTotal struct {
	Category      string  `json:"category"`
	TotalQuantity int     `json:"total_quantity"`
	TotalValue    float64 `json:"total_value"`
}

// PriceBucket is one bar of the price distribution histogram. The last bucket
// is closed on both ends; every other bucket is half-open [Low, High).
type PriceBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// MonthlyRestock aggregates restocked quantity for one calendar month.
type MonthlyRestock struct {
	Month         string `json:"month"`
	TotalQuantity int    `json:"total_quantity"`
}

// Summary carries the headline metrics for the current view.
type Summary struct {
	Products      int     `json:"products"`
	TotalQuantity int     `json:"total_quantity"`
	TotalValue    float64 `json:"total_value"`
}
