package handler

import (
	"bytes"
	"encoding/json"

	"pantry/internal/model"
)

// flexString accepts a JSON string or a bare JSON number, so that clients may
// send "qty": 2 as well as "qty": "2".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type createItemRequest struct {
	Name         string     `json:"name"`
	Qty          flexString `json:"qty"`
	Category     string     `json:"category"`
	PurchaseDate string     `json:"purchaseDate"`
	ExpiryDate   string     `json:"expiryDate"`
}

func (r createItemRequest) input() model.RecordInput {
	return model.RecordInput{
		Name:         r.Name,
		Qty:          string(r.Qty),
		Category:     r.Category,
		PurchaseDate: r.PurchaseDate,
		ExpiryDate:   r.ExpiryDate,
	}
}

type updateItemRequest struct {
	Name         *string     `json:"name"`
	Qty          *flexString `json:"qty"`
	Category     *string     `json:"category"`
	PurchaseDate *string     `json:"purchaseDate"`
	ExpiryDate   *string     `json:"expiryDate"`
}

func (r updateItemRequest) patch() model.RecordPatch {
	p := model.RecordPatch{
		Name:         r.Name,
		Category:     r.Category,
		PurchaseDate: r.PurchaseDate,
		ExpiryDate:   r.ExpiryDate,
	}
	if r.Qty != nil {
		q := string(*r.Qty)
		p.Qty = &q
	}
	return p
}

// createItemResponse carries the new item and, when it expires soon, a
// short notice for the client to display.
type createItemResponse struct {
	Item   *model.Record `json:"item"`
	Notice string        `json:"notice,omitempty"`
}

type shareResponse struct {
	URL       string `json:"url"`
	ExpiresIn string `json:"expiresIn"`
}
