package types

import (
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/samber/lo"
)

// NoteAuthorType identifies which party wrote a quote note.
type NoteAuthorType string

const (
	NoteAuthorClient     NoteAuthorType = "client"
	NoteAuthorFreelancer NoteAuthorType = "freelancer"
)

// NoteType distinguishes plain messages from change requests, which flag the
// owner to revise and resend.
type NoteType string

const (
	NoteTypeMessage       NoteType = "message"
	NoteTypeChangeRequest NoteType = "change_request"
)

func (t NoteType) Validate() error {
	allowed := []NoteType{NoteTypeMessage, NoteTypeChangeRequest}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid note type").
			WithHint("Please provide a valid note type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
