package service

import (
	"context"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type NoteService interface {
	// ListNotes returns the thread for a quote the caller owns.
	ListNotes(ctx context.Context, quoteID string) ([]*dto.NoteResponse, error)
	// CreateOwnerNote posts a freelancer reply on the thread.
	CreateOwnerNote(ctx context.Context, quoteID string, req dto.CreateNoteRequest) (*dto.NoteResponse, error)
	// MarkRead acknowledges all client notes on a quote.
	MarkRead(ctx context.Context, quoteID string) error
}

type noteService struct {
	ServiceParams
}

func NewNoteService(params ServiceParams) NoteService {
	return &noteService{ServiceParams: params}
}

func (s *noteService) ListNotes(ctx context.Context, quoteID string) ([]*dto.NoteResponse, error) {
	if err := s.checkOwnership(ctx, quoteID); err != nil {
		return nil, err
	}

	notes, err := s.NoteRepo.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, &dto.NoteResponse{Note: n})
	}
	return out, nil
}

func (s *noteService) CreateOwnerNote(ctx context.Context, quoteID string, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, quoteID); err != nil {
		return nil, err
	}

	n := req.ToNote(ctx, quoteID, types.NoteAuthorFreelancer)
	if err := s.NoteRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	return &dto.NoteResponse{Note: n}, nil
}

func (s *noteService) MarkRead(ctx context.Context, quoteID string) error {
	if err := s.checkOwnership(ctx, quoteID); err != nil {
		return err
	}
	return s.NoteRepo.MarkRead(ctx, quoteID)
}

func (s *noteService) checkOwnership(ctx context.Context, quoteID string) error {
	q, err := s.QuoteRepo.Get(ctx, quoteID)
	if err != nil {
		return err
	}
	if q.UserID != types.GetUserID(ctx) {
		return ierr.NewError("quote not found").
			WithHint("Quote not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
