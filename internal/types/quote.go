package types

import (
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/samber/lo"
)

// QuoteStatus tracks a quote through its lifecycle. Transitions are monotonic:
// there is no un-send and no un-accept.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusExpired  QuoteStatus = "expired"
	QuoteStatusDeclined QuoteStatus = "declined"
)

func (s QuoteStatus) String() string {
	return string(s)
}

func (s QuoteStatus) Validate() error {
	allowed := []QuoteStatus{
		QuoteStatusDraft,
		QuoteStatusSent,
		QuoteStatusAccepted,
		QuoteStatusExpired,
		QuoteStatusDeclined,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid quote status").
			WithHint("Please provide a valid quote status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminal reports whether the status admits no further transitions.
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusAccepted || s == QuoteStatusExpired || s == QuoteStatusDeclined
}

// Badge is the display label and style class for a quote's status.
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

var statusBadges = map[QuoteStatus]Badge{
	QuoteStatusDraft:    {Label: "Draft", Class: "badge-draft"},
	QuoteStatusSent:     {Label: "Sent", Class: "badge-sent"},
	QuoteStatusAccepted: {Label: "Accepted", Class: "badge-accepted"},
	QuoteStatusExpired:  {Label: "Expired", Class: "badge-expired"},
	// declined has no dedicated style yet and shares the expired one
	QuoteStatusDeclined: {Label: "Declined", Class: "badge-expired"},
}

// ResolveBadge maps a persisted status plus the paid flag to its display
// badge. A paid accepted quote shows "Paid" instead of "Accepted".
func ResolveBadge(status QuoteStatus, paid bool) Badge {
	if paid && status == QuoteStatusAccepted {
		return Badge{Label: "Paid", Class: "badge-paid"}
	}
	if b, ok := statusBadges[status]; ok {
		return b
	}
	return statusBadges[QuoteStatusDraft]
}
