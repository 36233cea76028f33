package quotation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"quotation-backend/internal/models"
	"quotation-backend/internal/pricing"

	"golang.org/x/sync/errgroup"
)

// TierUpdater persists one tier of one item in the remote store
type TierUpdater interface {
	UpdateTier(ctx context.Context, number, itemCode string, tier models.Tier, values models.TierValues) (*models.Item, error)
}

// Committer persists an edited Record tier by tier
type Committer struct {
	Updater TierUpdater
}

func NewCommitter(updater TierUpdater) *Committer {
	return &Committer{Updater: updater}
}

// Commit issues one PUT per tier concurrently and waits for all three. If any
// fails the result is an *UpdateError and base is returned unchanged; tiers that
// were already stored stay stored. On success the returned item is base with the
// nine tier fields taken from rec. prices_<tier> keep their previous values until
// the quotation is fetched again.
func (c *Committer) Commit(ctx context.Context, quotationNumber, itemCode string, base models.Item, rec pricing.Record) (models.Item, error) {
	var g errgroup.Group

	for _, tier := range models.Tiers {
		tier := tier
		values := rec.Tier(tier)
		g.Go(func() error {
			if _, err := c.Updater.UpdateTier(ctx, quotationNumber, itemCode, tier, values); err != nil {
				return &tierError{tier: tier, err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("[Quotation] Update of %s/%s failed: %v", quotationNumber, itemCode, err)
		uerr := &UpdateError{QuotationNumber: quotationNumber, ItemCode: itemCode, Err: err}
		var te *tierError
		if errors.As(err, &te) {
			uerr.Tier = te.tier
			uerr.Err = te.err
		}
		return base, uerr
	}

	return rec.Apply(base), nil
}

type tierError struct {
	tier models.Tier
	err  error
}

func (e *tierError) Error() string { return fmt.Sprintf("%s tier: %v", e.tier, e.err) }

func (e *tierError) Unwrap() error { return e.err }

// Reconcile returns a copy of items where the entry whose item_code matches
// updated is replaced by updated. Order and length never change; an unknown
// code returns an unchanged copy.
func Reconcile(items []models.Item, updated models.Item) []models.Item {
	out := append([]models.Item(nil), items...)
	for i := range out {
		if out[i].ItemCode == updated.ItemCode {
			out[i] = updated
			break
		}
	}
	return out
}
