package models

import "errors"

var (
	// ErrNotFound is returned when a quotation or item does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidTier is returned for a tier outside high/medium/economical
	ErrInvalidTier = errors.New("invalid category")

	// ErrInvalidField is returned for a field outside packing/profit_margin/discount
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidAmount is returned when a tier value is not a non-negative decimal
	ErrInvalidAmount = errors.New("invalid amount")
)
