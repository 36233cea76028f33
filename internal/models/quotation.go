package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// QuotationSummary is one row of the quotation list used for search suggestions
type QuotationSummary struct {
	QuotationNumber string `json:"quotation_number"`
	Date            Date   `json:"date"`
}

// Quotation is a dated collection of items. Item order is the server order and
// the position + 1 is the serial number shown to users.
type Quotation struct {
	QuotationNumber string `json:"quotation_number"`
	Date            Date   `json:"date"`
	Items           []Item `json:"items"`
}

// IndexOf returns the position of the item with itemCode, or -1
func (q *Quotation) IndexOf(itemCode string) int {
	for i := range q.Items {
		if q.Items[i].ItemCode == itemCode {
			return i
		}
	}
	return -1
}

// Clone returns a copy whose item slice can be modified independently
func (q *Quotation) Clone() *Quotation {
	if q == nil {
		return nil
	}
	c := *q
	c.Items = append([]Item(nil), q.Items...)
	return &c
}

// FieldValue is a tier value on the wire. It accepts a JSON string, a JSON number
// or null, and keeps the raw text for validation.
type FieldValue string

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("field value must be a string, number or null: %w", err)
	}
	*v = FieldValue(n.String())
	return nil
}

// TierUpdateRequest is the body of PUT /items/{quotation_number}/{item_code}/{tier}
type TierUpdateRequest struct {
	Packing      FieldValue `json:"packing"`
	ProfitMargin FieldValue `json:"profit_margin"`
	Discount     FieldValue `json:"discount"`
}

// Values returns the request as plain tier values
func (r TierUpdateRequest) Values() TierValues {
	return TierValues{
		Packing:      string(r.Packing),
		ProfitMargin: string(r.ProfitMargin),
		Discount:     string(r.Discount),
	}
}

// ItemUpdatedEvent is pushed to live subscribers after a tier update is stored
type ItemUpdatedEvent struct {
	Type            string    `json:"type"`
	QuotationNumber string    `json:"quotation_number"`
	ItemCode        string    `json:"item_code"`
	Tier            Tier      `json:"tier"`
	Item            Item      `json:"item"`
	At              time.Time `json:"at"`
}

// EventItemUpdated is the Type of ItemUpdatedEvent
const EventItemUpdated = "item.updated"
