package types

import (
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/samber/lo"
)

// SendChannel is how a quote link is delivered to the client.
type SendChannel string

const (
	SendChannelEmail    SendChannel = "email"
	SendChannelWhatsApp SendChannel = "whatsapp"
	SendChannelLink     SendChannel = "link"
)

func (c SendChannel) String() string {
	return string(c)
}

func (c SendChannel) Validate() error {
	allowed := []SendChannel{SendChannelEmail, SendChannelWhatsApp, SendChannelLink}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid send channel").
			WithHint("Please provide a valid send channel").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
