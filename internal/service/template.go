package service

import (
	"context"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/template"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type TemplateService interface {
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	// CreateFromQuote snapshots an existing quote's line items and terms.
	CreateFromQuote(ctx context.Context, req dto.TemplateFromQuoteRequest) (*dto.TemplateResponse, error)
	GetTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error)
	ListTemplates(ctx context.Context) ([]*dto.TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string) error
}

type templateService struct {
	ServiceParams
}

func NewTemplateService(params ServiceParams) TemplateService {
	return &templateService{ServiceParams: params}
}

func (s *templateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := req.ToTemplate(ctx)
	if err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.TemplateRepo.Create(ctx, t); err != nil {
			return err
		}
		return s.TemplateRepo.ReplaceLineItems(ctx, t.ID, t.LineItems)
	}); err != nil {
		return nil, err
	}
	return &dto.TemplateResponse{Template: t}, nil
}

func (s *templateService) CreateFromQuote(ctx context.Context, req dto.TemplateFromQuoteRequest) (*dto.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q, err := s.QuoteRepo.Get(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}
	if q.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("quote not found").
			WithHint("Quote not found").
			Mark(ierr.ErrNotFound)
	}
	items, err := s.QuoteRepo.ListLineItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	t := &template.Template{
		ID:        types.GenerateUUIDWithPrefix(types.PrefixTemplate),
		UserID:    q.UserID,
		Name:      req.Name,
		TaxRate:   q.TaxRate,
		Terms:     q.Terms,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	for i, item := range items {
		t.LineItems = append(t.LineItems, &template.LineItem{
			ID:          types.GenerateUUID(),
			TemplateID:  t.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Position:    i,
		})
	}

	if err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.TemplateRepo.Create(ctx, t); err != nil {
			return err
		}
		return s.TemplateRepo.ReplaceLineItems(ctx, t.ID, t.LineItems)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("template created from quote", "template_id", t.ID, "quote_id", q.ID)
	return &dto.TemplateResponse{Template: t}, nil
}

func (s *templateService) GetTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	t, err := s.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.TemplateRepo.ListLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	t.LineItems = items
	return &dto.TemplateResponse{Template: t}, nil
}

func (s *templateService) ListTemplates(ctx context.Context) ([]*dto.TemplateResponse, error) {
	templates, err := s.TemplateRepo.List(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		items, err := s.TemplateRepo.ListLineItems(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.LineItems = items
		out = append(out, &dto.TemplateResponse{Template: t})
	}
	return out, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := s.getOwned(ctx, id); err != nil {
		return err
	}
	return s.TemplateRepo.Delete(ctx, id)
}

func (s *templateService) getOwned(ctx context.Context, id string) (*template.Template, error) {
	t, err := s.TemplateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("template not found").
			WithHint("Template not found").
			Mark(ierr.ErrNotFound)
	}
	return t, nil
}
