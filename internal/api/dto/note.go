package dto

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/quoteflow/quote-service/internal/domain/quotenote"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

// CreateNoteRequest covers both the owner reply and the public client note.
// The author type is decided by the endpoint, never by the caller.
type CreateNoteRequest struct {
	AuthorName string         `json:"author_name" validate:"omitempty,max=200"`
	NoteType   types.NoteType `json:"note_type" validate:"required"`
	Body       string         `json:"body" validate:"required,max=2000"`
}

type NoteResponse struct {
	*quotenote.Note
}

func (r *CreateNoteRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please check the note fields").
			Mark(ierr.ErrValidation)
	}
	return r.NoteType.Validate()
}

func (r *CreateNoteRequest) ToNote(ctx context.Context, quoteID string, author types.NoteAuthorType) *quotenote.Note {
	name := r.AuthorName
	if author == types.NoteAuthorFreelancer && name == "" {
		name = "You"
	}
	return &quotenote.Note{
		ID:         types.GenerateUUIDWithPrefix(types.PrefixNote),
		QuoteID:    quoteID,
		AuthorType: author,
		AuthorName: name,
		NoteType:   r.NoteType,
		Body:       r.Body,
		// owner replies are read by definition
		Read:      author == types.NoteAuthorFreelancer,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
