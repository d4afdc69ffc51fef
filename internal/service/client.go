package service

import (
	"context"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type ClientService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	ListClients(ctx context.Context) ([]*dto.ClientResponse, error)
	UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	ServiceParams
}

func NewClientService(params ServiceParams) ClientService {
	return &clientService{ServiceParams: params}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Please check the client fields").
			Mark(ierr.ErrValidation)
	}

	c := req.ToClient(ctx)
	if err := s.ClientRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}

	quoteCount, err := s.quoteCountFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c, QuoteCount: quoteCount}, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]*dto.ClientResponse, error) {
	clients, err := s.ClientRepo.List(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		count, err := s.quoteCountFor(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.ClientResponse{Client: c, QuoteCount: count})
	}
	return out, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Please check the client fields").
			Mark(ierr.ErrValidation)
	}

	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}

	req.Apply(c)
	if err := s.ClientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != types.GetUserID(ctx) {
		return ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}

	count, err := s.quoteCountFor(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ierr.NewError("client has quotes").
			WithHint("Delete or reassign this client's quotes first").
			WithReportableDetails(map[string]any{"quote_count": count}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.ClientRepo.Delete(ctx, id)
}

func (s *clientService) quoteCountFor(ctx context.Context, clientID string) (int, error) {
	return s.QuoteRepo.CountByClient(ctx, clientID)
}
