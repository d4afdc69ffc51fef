package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/quote"
	"github.com/quoteflow/quote-service/internal/email"
	"github.com/quoteflow/quote-service/internal/entitlement"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type QuoteService interface {
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error)
	GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error)
	ListQuotes(ctx context.Context, filter *types.QuoteFilter) ([]*dto.QuoteResponse, error)
	UpdateQuote(ctx context.Context, id string, req dto.UpdateQuoteRequest) (*dto.QuoteResponse, error)
	DeleteQuote(ctx context.Context, id string) error
	DuplicateQuote(ctx context.Context, id string) (*dto.QuoteResponse, error)
	MarkPaid(ctx context.Context, id string) (*dto.QuoteResponse, error)
	SendQuote(ctx context.Context, id string, req dto.SendQuoteRequest) (*dto.SendQuoteResponse, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

type quoteService struct {
	ServiceParams
}

func NewQuoteService(params ServiceParams) QuoteService {
	return &quoteService{ServiceParams: params}
}

func (s *quoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID := types.GetUserID(ctx)

	prof, err := NewProfileService(s.ServiceParams).GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	used, err := s.QuoteRepo.CountCreatedSince(ctx, userID, types.MonthStart(time.Now()))
	if err != nil {
		return nil, err
	}
	if err := entitlement.CheckQuoteCreation(prof.Plan, used); err != nil {
		return nil, err
	}

	c, err := s.ClientRepo.Get(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}

	q := req.ToQuote(ctx)
	q.QuoteNumber = types.GenerateQuoteNumber()

	validity := req.ValidityDays
	if validity == 0 {
		validity = prof.DefaultValidityDays
	}
	q.ValidityDays = validity
	q.ExpiresAt = q.CreatedAt.AddDate(0, 0, validity)
	if req.Terms == "" {
		q.Terms = prof.DefaultTerms
	}

	// Per-quote toggles fall back to the profile defaults when omitted.
	q.RequireSignature = prof.RequireSignature
	if req.RequireSignature != nil {
		q.RequireSignature = *req.RequireSignature
	}
	q.TrackViews = prof.TrackViews
	if req.TrackViews != nil {
		q.TrackViews = *req.TrackViews
	}
	q.ApplyTotals()

	if err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.QuoteRepo.Create(ctx, q); err != nil {
			return err
		}
		return s.QuoteRepo.ReplaceLineItems(ctx, q.ID, q.LineItems)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("quote created", "quote_id", q.ID, "quote_number", q.QuoteNumber, "user_id", userID)
	return dto.NewQuoteResponse(q, time.Now(), time.Local), nil
}

func (s *quoteService) GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := s.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	s.reconcileExpiry(ctx, q)

	items, err := s.QuoteRepo.ListLineItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.LineItems = items

	resp := dto.NewQuoteResponse(q, time.Now(), time.Local)
	if c, err := s.ClientRepo.Get(ctx, q.ClientID); err == nil {
		resp.Client = c
	}
	return resp, nil
}

func (s *quoteService) ListQuotes(ctx context.Context, filter *types.QuoteFilter) ([]*dto.QuoteResponse, error) {
	if filter != nil {
		if err := filter.Validate(); err != nil {
			return nil, err
		}
	}

	quotes, err := s.QuoteRepo.List(ctx, types.GetUserID(ctx), filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]*dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		s.reconcileExpiry(ctx, q)
		out = append(out, dto.NewQuoteResponse(q, now, time.Local))
	}
	return out, nil
}

func (s *quoteService) UpdateQuote(ctx context.Context, id string, req dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q, err := s.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.IsEditable() {
		return nil, ierr.NewError("only draft quotes can be edited").
			WithHint("This quote has already been sent and can no longer be edited").
			WithReportableDetails(map[string]any{"status": q.Status}).
			Mark(ierr.ErrInvalidOperation)
	}

	if req.ClientID != nil {
		c, err := s.ClientRepo.Get(ctx, *req.ClientID)
		if err != nil {
			return nil, err
		}
		if c.UserID != types.GetUserID(ctx) {
			return nil, ierr.NewError("client not found").
				WithHint("Client not found").
				Mark(ierr.ErrNotFound)
		}
		q.ClientID = *req.ClientID
	}
	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Currency != nil {
		q.Currency = *req.Currency
	}
	if req.TaxRate != nil {
		q.TaxRate = *req.TaxRate
	}
	if req.TaxExempt != nil {
		q.TaxExempt = *req.TaxExempt
	}
	if req.ValidityDays != nil {
		q.ValidityDays = *req.ValidityDays
		q.ExpiresAt = q.CreatedAt.AddDate(0, 0, *req.ValidityDays)
	}
	if req.Terms != nil {
		q.Terms = *req.Terms
	}
	if req.Deposit != nil {
		q.Deposit = *req.Deposit
	}
	if req.PaymentMethod != nil {
		q.PaymentMethod = *req.PaymentMethod
	}
	if req.DeliveryTimeline != nil {
		q.DeliveryTimeline = *req.DeliveryTimeline
	}
	if req.Revisions != nil {
		q.Revisions = *req.Revisions
	}
	if req.RequireSignature != nil {
		q.RequireSignature = *req.RequireSignature
	}
	if req.TrackViews != nil {
		q.TrackViews = *req.TrackViews
	}
	if req.SendReminder != nil {
		q.SendReminder = *req.SendReminder
	}
	if req.LineItems != nil {
		q.LineItems = nil
		for i, li := range req.LineItems {
			q.LineItems = append(q.LineItems, &quote.LineItem{
				ID:          types.GenerateUUID(),
				QuoteID:     q.ID,
				Description: li.Description,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
				Position:    i,
			})
		}
	} else {
		items, err := s.QuoteRepo.ListLineItems(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		q.LineItems = items
	}

	q.ApplyTotals()
	q.Touch()

	if err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.QuoteRepo.Update(ctx, q); err != nil {
			return err
		}
		if req.LineItems != nil {
			return s.QuoteRepo.ReplaceLineItems(ctx, q.ID, q.LineItems)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return dto.NewQuoteResponse(q, time.Now(), time.Local), nil
}

func (s *quoteService) DeleteQuote(ctx context.Context, id string) error {
	if _, err := s.getOwned(ctx, id); err != nil {
		return err
	}
	return s.QuoteRepo.Delete(ctx, id)
}

func (s *quoteService) DuplicateQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	src, err := s.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	prof, err := NewProfileService(s.ServiceParams).GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	used, err := s.QuoteRepo.CountCreatedSince(ctx, src.UserID, types.MonthStart(time.Now()))
	if err != nil {
		return nil, err
	}
	if err := entitlement.CheckQuoteCreation(prof.Plan, used); err != nil {
		return nil, err
	}

	items, err := s.QuoteRepo.ListLineItems(ctx, src.ID)
	if err != nil {
		return nil, err
	}

	validity := src.ValidityDays
	if validity < 1 {
		validity = prof.DefaultValidityDays
	}

	dup := &quote.Quote{
		ID:               types.GenerateUUIDWithPrefix(types.PrefixQuote),
		UserID:           src.UserID,
		ClientID:         src.ClientID,
		QuoteNumber:      types.GenerateQuoteNumber(),
		Title:            src.Title + " (Copy)",
		Status:           types.QuoteStatusDraft,
		Currency:         src.Currency,
		TaxRate:          src.TaxRate,
		TaxExempt:        src.TaxExempt,
		Terms:            src.Terms,
		Deposit:          src.Deposit,
		PaymentMethod:    src.PaymentMethod,
		DeliveryTimeline: src.DeliveryTimeline,
		Revisions:        src.Revisions,
		RequireSignature: src.RequireSignature,
		TrackViews:       src.TrackViews,
		SendReminder:     src.SendReminder,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
	dup.ValidityDays = validity
	dup.ExpiresAt = dup.CreatedAt.AddDate(0, 0, validity)
	for i, item := range items {
		dup.LineItems = append(dup.LineItems, &quote.LineItem{
			ID:          types.GenerateUUID(),
			QuoteID:     dup.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Position:    i,
		})
	}
	dup.ApplyTotals()

	if err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.QuoteRepo.Create(ctx, dup); err != nil {
			return err
		}
		return s.QuoteRepo.ReplaceLineItems(ctx, dup.ID, dup.LineItems)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("quote duplicated", "source_id", src.ID, "quote_id", dup.ID)
	return dto.NewQuoteResponse(dup, time.Now(), time.Local), nil
}

func (s *quoteService) MarkPaid(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := s.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status != types.QuoteStatusAccepted {
		return nil, ierr.NewError("only accepted quotes can be marked paid").
			WithHint("The quote must be accepted before it can be marked as paid").
			WithReportableDetails(map[string]any{"status": q.Status}).
			Mark(ierr.ErrInvalidOperation)
	}
	if q.Paid {
		return dto.NewQuoteResponse(q, time.Now(), time.Local), nil
	}

	now := time.Now().UTC()
	q.Paid = true
	q.PaidAt = &now
	q.Touch()

	if err := s.QuoteRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return dto.NewQuoteResponse(q, time.Now(), time.Local), nil
}

func (s *quoteService) SendQuote(ctx context.Context, id string, req dto.SendQuoteRequest) (*dto.SendQuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q, err := s.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	switch q.Status {
	case types.QuoteStatusDraft, types.QuoteStatusSent:
		// re-sending a sent quote is allowed and reuses its link
	default:
		return nil, ierr.NewError("quote can no longer be sent").
			WithHint("Only draft or sent quotes can be sent").
			WithReportableDetails(map[string]any{"status": q.Status}).
			Mark(ierr.ErrInvalidOperation)
	}

	if q.ShareToken == "" {
		q.ShareToken = types.GenerateShareToken()
	}
	if q.Status == types.QuoteStatusDraft {
		now := time.Now().UTC()
		q.Status = types.QuoteStatusSent
		q.SentAt = &now
	}
	q.Touch()

	if err := s.QuoteRepo.Update(ctx, q); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/q/%s", strings.TrimRight(s.Config.App.PublicBaseURL, "/"), q.ShareToken)
	resp := &dto.SendQuoteResponse{
		QuoteLink: link,
		Channel:   req.Channel,
	}

	switch req.Channel {
	case types.SendChannelEmail:
		prof, err := NewProfileService(s.ServiceParams).GetProfile(ctx)
		if err != nil {
			return nil, err
		}
		c, err := s.ClientRepo.Get(ctx, q.ClientID)
		if err != nil {
			return nil, err
		}
		subject, html := email.QuoteEmail(prof.BusinessName, q.QuoteNumber, c.Name, link)
		if err := s.Email.Send(ctx, req.RecipientEmail, subject, html); err != nil {
			return nil, err
		}
		resp.Message = fmt.Sprintf("Quote %s emailed to %s", q.QuoteNumber, req.RecipientEmail)
	case types.SendChannelWhatsApp:
		text := fmt.Sprintf("Here's your quote %s: %s", q.QuoteNumber, link)
		phone := strings.TrimLeft(req.RecipientPhone, "+")
		resp.WhatsAppLink = fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text))
		resp.Message = "WhatsApp link ready"
	case types.SendChannelLink:
		resp.Message = "Share link ready"
	}

	s.Logger.Infow("quote sent", "quote_id", q.ID, "channel", req.Channel)
	return resp, nil
}

func (s *quoteService) ExportCSV(ctx context.Context) ([]byte, error) {
	quotes, err := s.QuoteRepo.List(ctx, types.GetUserID(ctx), nil)
	if err != nil {
		return nil, err
	}

	clientNames := map[string]string{}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"quote_number", "title", "client", "status", "paid", "currency",
		"subtotal", "tax", "total", "created_at", "expires_at",
	})

	for _, q := range quotes {
		s.reconcileExpiry(ctx, q)
		name, ok := clientNames[q.ClientID]
		if !ok {
			if c, err := s.ClientRepo.Get(ctx, q.ClientID); err == nil {
				name = c.Name
			}
			clientNames[q.ClientID] = name
		}
		_ = w.Write([]string{
			q.QuoteNumber,
			q.Title,
			name,
			string(q.Status),
			fmt.Sprintf("%t", q.Paid),
			string(q.Currency),
			q.Subtotal.StringFixed(2),
			q.TaxAmount.StringFixed(2),
			q.Total.StringFixed(2),
			q.CreatedAt.Format(time.RFC3339),
			q.ExpiresAt.Format("2006-01-02"),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to export quotes").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}

// getOwned fetches a quote and verifies the caller owns it. Foreign quotes
// surface as not found, never as permission errors.
func (s *quoteService) getOwned(ctx context.Context, id string) (*quote.Quote, error) {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("quote not found").
			WithHint("Quote not found").
			Mark(ierr.ErrNotFound)
	}
	return q, nil
}

// reconcileExpiry lazily flips a sent quote past its expiry date to expired.
// The write is best effort; the in-memory status is authoritative for this
// response either way.
func (s *quoteService) reconcileExpiry(ctx context.Context, q *quote.Quote) {
	if q.Status != types.QuoteStatusSent || !q.IsExpired(time.Now(), time.Local) {
		return
	}
	q.Status = types.QuoteStatusExpired
	if _, err := s.QuoteRepo.UpdateStatusIfCurrent(ctx, q.ID, types.QuoteStatusSent, types.QuoteStatusExpired, time.Now().UTC()); err != nil {
		s.Logger.Warnw("failed to persist expiry", "quote_id", q.ID, "error", err)
	}
}
