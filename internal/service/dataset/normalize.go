package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Normalize converts raw store documents into the uniform Row shape. It never
// fails: missing or malformed fields are coerced to their documented defaults
// (quantity 0, price 0.0, name "Unknown", sku "", unknown restock date).
// Fetch order is preserved and the input is left untouched.
func Normalize(docs []models.RawProduct) []models.Row {
	rows := make([]models.Row, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, normalizeOne(doc))
	}
	return rows
}

func normalizeOne(doc models.RawProduct) models.Row {
	row := models.Row{
		ID:          coerceString(doc[models.FieldID]),
		SKU:         coerceString(doc[models.FieldSKU]),
		Name:        coerceString(doc[models.FieldName]),
		Category:    coerceString(doc[models.FieldCategory]),
		Supplier:    coerceString(doc[models.FieldSupplier]),
		Quantity:    coerceQuantity(doc[models.FieldQuantity]),
		Price:       coercePrice(doc[models.FieldPrice]),
		LastRestock: coerceDate(doc[models.FieldLastRestock]),
	}

	// Only a genuinely absent name defaults to "Unknown"; an empty string is a
	// value the user stored and passes through.
	if value, ok := doc[models.FieldName]; !ok || value == nil {
		row.Name = "Unknown"
	}

	return row
}

// coerceQuantity parses any stored representation of a quantity into a
// non-negative int. Unparseable values collapse to zero.
func coerceQuantity(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return clampQuantity(v)
	case int32:
		return clampQuantity(int(v))
	case int64:
		return clampQuantity(int(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return clampQuantity(int(v))
	case float32:
		return coerceQuantity(float64(v))
	case string:
		return clampQuantity(parseIntString(v))
	default:
		return clampQuantity(parseIntString(fmt.Sprint(value)))
	}
}

// coercePrice parses any stored representation of a price into a non-negative
// float64. Unparseable, NaN and infinite values collapse to zero.
func coercePrice(value any) float64 {
	var price float64
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		price = v
	case float32:
		price = float64(v)
	case int:
		price = float64(v)
	case int32:
		price = float64(v)
	case int64:
		price = float64(v)
	case primitive.Decimal128:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0
		}
		price = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		price = parsed
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(value)), 64)
		if err != nil {
			return 0
		}
		price = parsed
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

// coerceDate parses a stored restock date down to calendar-date precision,
// whatever representation the collection holds. Anything unparseable maps to
// the zero time, the "unknown" marker.
func coerceDate(value any) time.Time {
	switch v := value.(type) {
	case nil:
		return time.Time{}
	case time.Time:
		if v.IsZero() {
			return time.Time{}
		}
		return dateOnly(v)
	case primitive.DateTime:
		return dateOnly(v.Time().UTC())
	case string:
		return parseDateString(v)
	default:
		return time.Time{}
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(value)
	}
}

func parseIntString(value string) int {
	str := strings.TrimSpace(value)
	if str == "" {
		return 0
	}
	if parsed, err := strconv.Atoi(str); err == nil {
		return parsed
	}
	// Numeric text like "5.0" still counts as a quantity.
	if parsed, err := strconv.ParseFloat(str, 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
		return int(parsed)
	}
	return 0
}

func parseDateString(value string) time.Time {
	str := strings.TrimSpace(value)
	if str == "" {
		return time.Time{}
	}
	if len(str) > len(dateLayout) {
		str = str[:len(dateLayout)]
	}
	parsed, err := time.Parse(dateLayout, str)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func clampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}
