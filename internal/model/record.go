package model

import "time"

// DefaultCategory is assigned when a record is created without a category.
const DefaultCategory = "Other"

// Record is one tracked inventory item.
// The JSON field names are the persisted slot format and must stay stable.
type Record struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Qty          int       `json:"qty"`
	Category     string    `json:"category"`
	PurchaseDate string    `json:"purchaseDate"`
	ExpiryDate   string    `json:"expiryDate"`
	Consumed     bool      `json:"consumed"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RecordInput carries raw values for a new record as a form or CLI delivers them.
// Qty is a string so that absent and non-numeric input can both fall back to 1.
type RecordInput struct {
	Name         string `json:"name"`
	Qty          string `json:"qty"`
	Category     string `json:"category"`
	PurchaseDate string `json:"purchaseDate"`
	ExpiryDate   string `json:"expiryDate"`
}

// RecordPatch lists the fields of an edit. A nil field was not provided.
type RecordPatch struct {
	Name         *string `json:"name,omitempty"`
	Qty          *string `json:"qty,omitempty"`
	Category     *string `json:"category,omitempty"`
	PurchaseDate *string `json:"purchaseDate,omitempty"`
	ExpiryDate   *string `json:"expiryDate,omitempty"`
}

// Clone returns a copy of the collection that shares no backing array with src.
func Clone(src []Record) []Record {
	out := make([]Record, len(src))
	copy(out, src)
	return out
}
