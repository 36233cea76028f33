package quotation

import (
	"context"
	"log"
	"strings"
	"sync"

	"quotation-backend/internal/models"
)

// Lister returns every quotation number for search suggestions
type Lister interface {
	ListQuotations(ctx context.Context) ([]models.QuotationSummary, error)
}

// Shell resolves a typed quotation number to the View it owns
type Shell struct {
	lister Lister
	view   *View

	mu      sync.Mutex
	numbers []string
}

func NewShell(lister Lister, view *View) *Shell {
	return &Shell{lister: lister, view: view}
}

// View returns the quotation view driven by the shell
func (s *Shell) View() *View {
	return s.view
}

// LoadSuggestions fetches the quotation list once. On failure the suggestion list
// is left empty and a *FetchError is returned for the caller to log.
func (s *Shell) LoadSuggestions(ctx context.Context) error {
	list, err := s.lister.ListQuotations(ctx)
	if err != nil {
		ferr := &FetchError{Err: err}
		log.Printf("[Quotation] %v", ferr)
		s.mu.Lock()
		s.numbers = nil
		s.mu.Unlock()
		return ferr
	}

	numbers := make([]string, 0, len(list))
	for _, q := range list {
		numbers = append(numbers, q.QuotationNumber)
	}
	s.mu.Lock()
	s.numbers = numbers
	s.mu.Unlock()
	return nil
}

// Suggest returns the known quotation numbers containing term, ignoring case,
// in list order. A blank term yields no suggestions.
func (s *Shell) Suggest(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, n := range s.numbers {
		if strings.Contains(strings.ToLower(n), term) {
			out = append(out, n)
		}
	}
	return out
}

// Open shows the quotation for a submitted search term. A blank term leaves the
// view untouched.
func (s *Shell) Open(ctx context.Context, term string) Snapshot {
	number := strings.TrimSpace(term)
	if number == "" {
		return s.view.Snapshot()
	}
	return s.view.Select(ctx, number)
}
