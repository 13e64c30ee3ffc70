package models

// Field names shared by the store documents, the dataset pipeline and the
// CSV exporter.
const (
	FieldID          = "id"
	FieldSKU         = "sku"
	FieldName        = "name"
	FieldCategory    = "category"
	FieldQuantity    = "quantity"
	FieldPrice       = "price"
	FieldSupplier    = "supplier"
	FieldLastRestock = "last_restock"
)

// Product is the typed document shape used for writes. Restock dates travel as
// ISO-8601 date strings (YYYY-MM-DD), matching what the collection holds.
type Product struct {
	SKU         string  `bson:"sku" json:"sku"`
	Name        string  `bson:"name" json:"name"`
	Category    string  `bson:"category" json:"category"`
	Quantity    int     `bson:"quantity" json:"quantity" binding:"gte=0"`
	Price       float64 `bson:"price" json:"price" binding:"gte=0"`
	Supplier    string  `bson:"supplier" json:"supplier"`
	LastRestock string  `bson:"last_restock" json:"last_restock"`
}

// RawProduct is a stored document exactly as fetched: neither the field set nor
// the value types are guaranteed. The repository stringifies the Mongo _id
// under the "id" key before handing documents to the pipeline.
type RawProduct map[string]any

// UpdatableFields enumerates the fields a single-field update may touch.
var UpdatableFields = []string{
	FieldSKU,
	FieldName,
	FieldCategory,
	FieldQuantity,
	FieldPrice,
	FieldSupplier,
	FieldLastRestock,
}

// IsUpdatableField reports whether a single-field update may target name.
func IsUpdatableField(name string) bool {
	for _, f := range UpdatableFields {
		if f == name {
			return true
		}
	}
	return false
}

// UpdateFieldRequest is the payload for single-field product updates. The new
// value always travels as text; the inventory service coerces it per field
// before the write is attempted.
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdateResult reports how many documents an update matched and modified.
// Both counts are zero when the id matched nothing; that is not an error.
type UpdateResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// SeedResult describes the outcome of a bulk seed run.
type SeedResult struct {
	Existing int64 `json:"existing"`
	Inserted int   `json:"inserted"`
	Skipped  bool  `json:"skipped"`
}
