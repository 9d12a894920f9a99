package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"pantry/internal/model"
)

// Encode serializes a collection to the slot format: a JSON array of records.
// A nil collection is written as an empty array.
func Encode(records []model.Record) ([]byte, error) {
	if records == nil {
		records = []model.Record{}
	}
	return json.Marshal(records)
}

// Decode parses slot bytes. Empty input (or JSON null) is an empty collection.
// Records with a quantity below one are clamped so the invariant holds after load.
func Decode(data []byte) ([]model.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []model.Record{}, nil
	}
	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSlotCorrupt, err)
	}
	for i := range records {
		if records[i].Qty < 1 {
			records[i].Qty = 1
		}
	}
	return records, nil
}
