package types

// QuoteFilter narrows quote listings. Zero values mean "no filter"; the UI's
// "all" tab maps to an empty status.
type QuoteFilter struct {
	Status   QuoteStatus `form:"status" json:"status,omitempty"`
	Currency Currency    `form:"currency" json:"currency,omitempty"`
}

func (f *QuoteFilter) Validate() error {
	if f.Status != "" && f.Status != "all" {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if f.Currency != "" {
		if err := f.Currency.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// StatusOrEmpty resolves the UI's "all" pseudo-status to no filter.
func (f *QuoteFilter) StatusOrEmpty() QuoteStatus {
	if f.Status == "all" {
		return ""
	}
	return f.Status
}
