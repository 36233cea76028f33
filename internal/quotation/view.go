package quotation

import (
	"context"
	"errors"
	"log"
	"sync"

	"quotation-backend/internal/models"
	"quotation-backend/internal/pricing"
)

// Fetcher loads a quotation with its items
type Fetcher interface {
	FetchQuotation(ctx context.Context, number string) (*models.Quotation, error)
}

// State of a View
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateNoData
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateNoData:
		return "no data"
	}
	return "unknown"
}

// Snapshot is what observers and callers see of a View at one point in time.
// Quotation is a private copy.
type Snapshot struct {
	State           State
	QuotationNumber string
	Quotation       *models.Quotation
	Err             error

	// EditingItem is the item code of the open editor, empty when closed
	EditingItem string

	// StaleTotals lists item codes whose tier fields were merged locally after a
	// commit; their prices_<tier> still reflect the last fetch
	StaleTotals []string
}

// Editor is the open editable snapshot of one item
type Editor struct {
	QuotationNumber string
	Item            models.Item
	Record          pricing.Record
}

// Set forwards a keystroke to the record; rejected input keeps the old value
func (e *Editor) Set(tier models.Tier, field models.Field, raw string) error {
	return e.Record.SetField(tier, field, raw)
}

// View holds the displayed quotation. All editor state is scoped to the view.
type View struct {
	fetcher   Fetcher
	committer *Committer

	mu        sync.Mutex
	state     State
	number    string
	quotation *models.Quotation
	err       error
	editor    *Editor
	stale     map[string]bool
	observers []func(Snapshot)
}

func NewView(fetcher Fetcher, committer *Committer) *View {
	return &View{
		fetcher:   fetcher,
		committer: committer,
		stale:     make(map[string]bool),
	}
}

// Subscribe registers fn to be called after every state change
func (v *View) Subscribe(fn func(Snapshot)) {
	v.mu.Lock()
	v.observers = append(v.observers, fn)
	v.mu.Unlock()
}

// Snapshot returns the current state
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Select fetches number and replaces the displayed quotation. Failures, including
// an unknown number, end in StateNoData rather than an error. In-flight fetches
// are not cancelled; whichever fetch completes last is displayed.
func (v *View) Select(ctx context.Context, number string) Snapshot {
	v.update(func() {
		v.number = number
		v.state = StateLoading
		v.err = nil
	})

	q, err := v.fetcher.FetchQuotation(ctx, number)

	return v.update(func() {
		v.number = number
		v.editor = nil
		v.stale = make(map[string]bool)
		if err != nil {
			ferr := &FetchError{QuotationNumber: number, Err: err}
			if !ferr.NotFound() {
				log.Printf("[Quotation] %v", ferr)
			}
			v.state = StateNoData
			v.quotation = nil
			v.err = ferr
			return
		}
		v.state = StateLoaded
		v.quotation = q.Clone()
		v.err = nil
	})
}

// Refresh fetches the displayed quotation again, picking up server totals
func (v *View) Refresh(ctx context.Context) Snapshot {
	v.mu.Lock()
	number := v.number
	v.mu.Unlock()
	if number == "" {
		return v.Snapshot()
	}
	return v.Select(ctx, number)
}

// Open starts editing the item with itemCode and returns its editor
func (v *View) Open(itemCode string) (*Editor, error) {
	var (
		ed  *Editor
		err error
	)
	v.update(func() {
		if v.quotation == nil {
			err = ErrItemNotLoaded
			return
		}
		idx := v.quotation.IndexOf(itemCode)
		if idx < 0 {
			err = ErrItemNotLoaded
			return
		}
		item := v.quotation.Items[idx]
		ed = &Editor{
			QuotationNumber: v.quotation.QuotationNumber,
			Item:            item,
			Record:          pricing.Initialize(item),
		}
		v.editor = ed
	})
	return ed, err
}

// Close discards the open editor
func (v *View) Close() {
	v.update(func() { v.editor = nil })
}

// Editor returns the open editor or nil
func (v *View) Editor() *Editor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editor
}

// CommitEditor commits the open editor and closes it on success. On failure the
// editor stays open and the displayed items are untouched.
func (v *View) CommitEditor(ctx context.Context) (models.Item, error) {
	ed := v.Editor()
	if ed == nil {
		return models.Item{}, ErrNoEditor
	}
	merged, err := v.commit(ctx, ed.QuotationNumber, ed.Item, ed.Record)
	if err != nil {
		return models.Item{}, err
	}
	v.update(func() {
		if v.editor == ed {
			v.editor = nil
		}
	})
	return merged, nil
}

// Commit persists rec for itemCode of the displayed quotation and merges the
// result into the item list
func (v *View) Commit(ctx context.Context, quotationNumber, itemCode string, rec pricing.Record) (models.Item, error) {
	v.mu.Lock()
	var (
		base  models.Item
		found bool
	)
	if v.quotation != nil && v.quotation.QuotationNumber == quotationNumber {
		if idx := v.quotation.IndexOf(itemCode); idx >= 0 {
			base, found = v.quotation.Items[idx], true
		}
	}
	v.mu.Unlock()

	if !found {
		return models.Item{}, ErrItemNotLoaded
	}
	return v.commit(ctx, quotationNumber, base, rec)
}

func (v *View) commit(ctx context.Context, quotationNumber string, base models.Item, rec pricing.Record) (models.Item, error) {
	if v.committer == nil {
		return models.Item{}, errors.New("view has no committer")
	}
	merged, err := v.committer.Commit(ctx, quotationNumber, base.ItemCode, base, rec)
	if err != nil {
		return models.Item{}, err
	}

	v.update(func() {
		// The displayed quotation may have changed while the PUTs were in flight
		if v.quotation == nil || v.quotation.QuotationNumber != quotationNumber {
			return
		}
		if v.quotation.IndexOf(merged.ItemCode) < 0 {
			return
		}
		v.quotation.Items = Reconcile(v.quotation.Items, merged)
		v.stale[merged.ItemCode] = true
	})
	return merged, nil
}

// update applies fn under the lock and notifies observers afterwards
func (v *View) update(fn func()) Snapshot {
	v.mu.Lock()
	fn()
	snap := v.snapshotLocked()
	observers := append(([]func(Snapshot))(nil), v.observers...)
	v.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
	return snap
}

func (v *View) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:           v.state,
		QuotationNumber: v.number,
		Quotation:       v.quotation.Clone(),
		Err:             v.err,
	}
	if v.editor != nil {
		snap.EditingItem = v.editor.Item.ItemCode
	}
	if v.quotation != nil {
		for _, item := range v.quotation.Items {
			if v.stale[item.ItemCode] {
				snap.StaleTotals = append(snap.StaleTotals, item.ItemCode)
			}
		}
	}
	return snap
}
