// Package builder implements the four step quote wizard as a pure state
// machine. It holds everything the user has entered so far; nothing is
// persisted until BuildRequest hands the accumulated state to the quote
// service.
package builder

import (
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
	"github.com/shopspring/decimal"
)

// Step is the wizard position.
type Step int

const (
	StepClientInfo Step = 1
	StepLineItems  Step = 2
	StepTerms      Step = 3
	StepReview     Step = 4
)

// LineItemInput is one row as entered in step 2.
type LineItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// State is the wizard's accumulated input. Zero value is a fresh builder on
// step 1 for a new quote.
type State struct {
	step Step

	// QuoteID is set in edit mode only.
	QuoteID string

	ClientID     string
	Title        string
	Currency     types.Currency
	Items        []LineItemInput
	TaxRate      decimal.Decimal
	TaxExempt    bool
	ValidityDays int
	Terms        string
}

// New starts a fresh builder on step 1 seeded with the profile's quote
// defaults.
func New(currency types.Currency, taxRate decimal.Decimal, validityDays int, terms string) *State {
	return &State{
		step:         StepClientInfo,
		Currency:     currency,
		TaxRate:      taxRate,
		ValidityDays: validityDays,
		Terms:        terms,
	}
}

// Load starts the builder in edit mode from an existing draft. Loading a
// quote in any other status is a terminal error: sent and later quotes are
// frozen.
func Load(quoteID string, status types.QuoteStatus, clientID, title string, currency types.Currency, items []LineItemInput, taxRate decimal.Decimal, taxExempt bool, validityDays int, terms string) (*State, error) {
	if status != types.QuoteStatusDraft {
		return nil, ierr.NewError("only draft quotes can be edited").
			WithHint("This quote has already been sent and can no longer be edited").
			WithReportableDetails(map[string]any{
				"quote_id": quoteID,
				"status":   status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return &State{
		step:         StepClientInfo,
		QuoteID:      quoteID,
		ClientID:     clientID,
		Title:        title,
		Currency:     currency,
		Items:        items,
		TaxRate:      taxRate,
		TaxExempt:    taxExempt,
		ValidityDays: validityDays,
		Terms:        terms,
	}, nil
}

// Step returns the current wizard position.
func (s *State) Step() Step {
	return s.step
}

// CanAdvance reports whether Next would move forward from the current step.
// Step 1 requires a client and a non-empty title; later steps advance
// unconditionally.
func (s *State) CanAdvance() bool {
	switch s.step {
	case StepClientInfo:
		return s.ClientID != "" && s.Title != ""
	case StepLineItems, StepTerms:
		return true
	default:
		return false
	}
}

// Next moves forward one step when the current step's precondition holds.
// An invalid advance is a no-op, never an error and never a reset.
func (s *State) Next() {
	if s.CanAdvance() {
		s.step++
	}
}

// Back moves one step backward, keeping all accumulated input. Already on
// step 1 it is a no-op.
func (s *State) Back() {
	if s.step > StepClientInfo {
		s.step--
	}
}

// SetClient records the step 1 selection.
func (s *State) SetClient(clientID, title string) {
	s.ClientID = clientID
	s.Title = title
}

// AddItem appends a line item row.
func (s *State) AddItem(item LineItemInput) {
	s.Items = append(s.Items, item)
}

// RemoveItem deletes the row at index, ignoring out-of-range indexes.
func (s *State) RemoveItem(i int) {
	if i < 0 || i >= len(s.Items) {
		return
	}
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
}

// SetTerms records the step 3 fields.
func (s *State) SetTerms(taxRate decimal.Decimal, taxExempt bool, validityDays int, terms string) {
	s.TaxRate = taxRate
	s.TaxExempt = taxExempt
	s.ValidityDays = validityDays
	s.Terms = terms
}

// ApplyTemplate replaces the tax rate, terms, and every line item with the
// template's in one operation. The client selection and title are untouched.
func (s *State) ApplyTemplate(taxRate decimal.Decimal, terms string, items []LineItemInput) {
	s.TaxRate = taxRate
	s.Terms = terms
	s.Items = make([]LineItemInput, len(items))
	copy(s.Items, items)
}

// Request is the create/update payload the wizard produces on step 4.
type Request struct {
	QuoteID      string
	ClientID     string
	Title        string
	Currency     types.Currency
	Items        []LineItemInput
	TaxRate      decimal.Decimal
	TaxExempt    bool
	ValidityDays int
	Terms        string
}

// IsEdit reports whether the request updates an existing draft rather than
// creating a new quote.
func (r *Request) IsEdit() bool {
	return r.QuoteID != ""
}

// BuildRequest emits the accumulated state as a submission payload. It is
// only valid on the review step. The builder state is left intact so a failed
// submission keeps the user on step 4 with nothing lost.
func (s *State) BuildRequest() (*Request, error) {
	if s.step != StepReview {
		return nil, ierr.NewError("quote is not ready to submit").
			WithHint("Complete all steps before submitting").
			WithReportableDetails(map[string]any{
				"step": s.step,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	items := make([]LineItemInput, len(s.Items))
	copy(items, s.Items)
	return &Request{
		QuoteID:      s.QuoteID,
		ClientID:     s.ClientID,
		Title:        s.Title,
		Currency:     s.Currency,
		Items:        items,
		TaxRate:      s.TaxRate,
		TaxExempt:    s.TaxExempt,
		ValidityDays: s.ValidityDays,
		Terms:        s.Terms,
	}, nil
}
