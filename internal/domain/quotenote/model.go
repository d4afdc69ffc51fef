package quotenote

import (
	"github.com/quoteflow/quote-service/internal/types"
)

// Note is a message on a quote's public thread. Clients post from the share
// page without an account; the freelancer replies from the dashboard.
type Note struct {
	ID         string               `db:"id" json:"id"`
	QuoteID    string               `db:"quote_id" json:"quote_id"`
	AuthorType types.NoteAuthorType `db:"author_type" json:"author_type"`
	AuthorName string               `db:"author_name" json:"author_name"`
	NoteType   types.NoteType       `db:"note_type" json:"note_type"`
	Body       string               `db:"body" json:"body"`
	// Read marks freelancer-side acknowledgement; client notes start unread.
	Read bool `db:"read" json:"read"`

	types.BaseModel
}
