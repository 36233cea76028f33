package quotation

import (
	"errors"
	"fmt"

	"quotation-backend/internal/models"
)

// ErrItemNotLoaded is returned by View.Commit when the item code is not part of
// the displayed quotation
var ErrItemNotLoaded = errors.New("item is not part of the loaded quotation")

// ErrNoEditor is returned when committing without an open editor
var ErrNoEditor = errors.New("no item is open for editing")

// FetchError reports a failed quotation or quotation-list retrieval
type FetchError struct {
	QuotationNumber string // empty for the list
	Err             error
}

func (e *FetchError) Error() string {
	if e.QuotationNumber == "" {
		return fmt.Sprintf("fetch quotations: %v", e.Err)
	}
	return fmt.Sprintf("fetch quotation %s: %v", e.QuotationNumber, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotFound reports whether the store answered that the quotation does not exist
func (e *FetchError) NotFound() bool {
	return errors.Is(e.Err, models.ErrNotFound)
}

// UpdateError reports that at least one tier PUT of a commit failed. Tiers that
// succeeded are not rolled back.
type UpdateError struct {
	QuotationNumber string
	ItemCode        string
	Tier            models.Tier // first tier observed failing
	Err             error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s/%s (%s tier): %v", e.QuotationNumber, e.ItemCode, e.Tier, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }
