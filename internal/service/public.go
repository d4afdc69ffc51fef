package service

import (
	"context"
	"fmt"
	"time"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/profile"
	"github.com/quoteflow/quote-service/internal/domain/quote"
	"github.com/quoteflow/quote-service/internal/email"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

// PublicService backs the unauthenticated /q/:token surface: the share page,
// acceptance, and the client side of the note thread.
type PublicService interface {
	GetQuoteByToken(ctx context.Context, token string) (*dto.PublicQuoteResponse, error)
	AcceptQuote(ctx context.Context, token string, req dto.AcceptQuoteRequest) (*dto.AcceptQuoteResponse, error)
	ListNotes(ctx context.Context, token string) ([]*dto.NoteResponse, error)
	CreateClientNote(ctx context.Context, token string, req dto.CreateNoteRequest) (*dto.NoteResponse, error)
}

type publicService struct {
	ServiceParams
}

func NewPublicService(params ServiceParams) PublicService {
	return &publicService{ServiceParams: params}
}

func (s *publicService) GetQuoteByToken(ctx context.Context, token string) (*dto.PublicQuoteResponse, error) {
	q, err := s.QuoteRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}

	items, err := s.QuoteRepo.ListLineItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.LineItems = items

	owner, err := s.ProfileRepo.Get(ctx, q.UserID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	// view tracking only counts when the owner's plan carries it and the
	// quote has it switched on
	if owner != nil && owner.IsPro() && q.TrackViews {
		if err := s.QuoteRepo.RecordView(ctx, q.ID, time.Now().UTC()); err != nil {
			s.Logger.Warnw("failed to record view", "quote_id", q.ID, "error", err)
		}
	}

	resp := &dto.PublicQuoteResponse{
		QuoteNumber:  q.QuoteNumber,
		Title:        q.Title,
		Status:       q.Status,
		Badge:        q.Badge(),
		Currency:     q.Currency,
		TaxRate:      q.TaxRate,
		TaxExempt:    q.TaxExempt,
		Subtotal:     q.Subtotal,
		TaxAmount:    q.TaxAmount,
		Total:        q.Total,
		ExpiresAt:    q.ExpiresAt,
		Terms:            q.Terms,
		Deposit:          q.Deposit,
		PaymentMethod:    q.PaymentMethod,
		DeliveryTimeline: q.DeliveryTimeline,
		Revisions:        q.Revisions,
		LineItems:        q.LineItems,
		AcceptedAt:       q.AcceptedAt,
		AcceptedName:     q.AcceptedName,
		RequireSignature: q.RequireSignature,
	}
	if q.Status == types.QuoteStatusSent {
		banner := q.ExpiryBanner(time.Now(), time.Local)
		resp.ExpiryBanner = &banner
	}
	if owner != nil {
		resp.BusinessName = owner.BusinessName
		resp.BrandColor = owner.BrandColor
		resp.LogoURL = owner.LogoURL
	}
	return resp, nil
}

func (s *publicService) AcceptQuote(ctx context.Context, token string, req dto.AcceptQuoteRequest) (*dto.AcceptQuoteResponse, error) {
	q, err := s.QuoteRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}

	// repeat accepts succeed with the same payload, so a client that lost the
	// first response can safely retry
	if q.Status == types.QuoteStatusAccepted {
		return acceptedResponse(q), nil
	}

	if q.Status != types.QuoteStatusSent {
		return nil, ierr.NewError("quote cannot be accepted").
			WithHint("This quote is not open for acceptance").
			WithReportableDetails(map[string]any{"status": q.Status}).
			Mark(ierr.ErrInvalidOperation)
	}

	if q.IsExpired(time.Now(), time.Local) {
		return nil, ierr.NewError("quote has expired").
			WithHint("This quote has expired. Ask the sender for a new one.").
			Mark(ierr.ErrQuoteExpired)
	}

	owner, err := s.ProfileRepo.Get(ctx, q.UserID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if q.RequireSignature && req.SignatureName == "" {
		return nil, ierr.NewError("signature is required").
			WithHint("Please type your name to accept this quote").
			Mark(ierr.ErrValidation)
	}

	won, err := s.QuoteRepo.Accept(ctx, q.ID, req.SignatureName, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !won {
		// another accept landed between our read and the update; treat it as
		// the same success
		fresh, err := s.QuoteRepo.Get(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		if fresh.Status == types.QuoteStatusAccepted {
			return acceptedResponse(fresh), nil
		}
		return nil, ierr.NewError("quote cannot be accepted").
			WithHint("This quote is not open for acceptance").
			Mark(ierr.ErrInvalidOperation)
	}

	s.Logger.Infow("quote accepted", "quote_id", q.ID, "accepted_name", req.SignatureName)
	s.notifyOwner(ctx, q, owner, req.SignatureName)

	q.Status = types.QuoteStatusAccepted
	return acceptedResponse(q), nil
}

func (s *publicService) notifyOwner(ctx context.Context, q *quote.Quote, owner *profile.Profile, acceptedName string) {
	if owner == nil || owner.Email == "" {
		return
	}
	subject, html := email.AcceptedEmail(q.QuoteNumber, acceptedName)
	if err := s.Email.Send(ctx, owner.Email, subject, html); err != nil {
		s.Logger.Warnw("failed to notify owner", "quote_id", q.ID, "error", err)
	}
}

func acceptedResponse(q *quote.Quote) *dto.AcceptQuoteResponse {
	return &dto.AcceptQuoteResponse{
		Accepted:    true,
		QuoteNumber: q.QuoteNumber,
		Message:     fmt.Sprintf("Quote %s accepted", q.QuoteNumber),
	}
}

func (s *publicService) ListNotes(ctx context.Context, token string) ([]*dto.NoteResponse, error) {
	q, err := s.QuoteRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	notes, err := s.NoteRepo.ListByQuote(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, &dto.NoteResponse{Note: n})
	}
	return out, nil
}

func (s *publicService) CreateClientNote(ctx context.Context, token string, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q, err := s.QuoteRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}

	// notes never transition quote state; change requests included
	n := req.ToNote(ctx, q.ID, types.NoteAuthorClient)
	if err := s.NoteRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	return &dto.NoteResponse{Note: n}, nil
}
