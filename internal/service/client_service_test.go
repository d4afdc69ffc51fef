package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/quote"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/testutil"
	"github.com/quoteflow/quote-service/internal/types"
)

type ClientServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ClientService
}

func TestClientService(t *testing.T) {
	suite.Run(t, new(ClientServiceSuite))
}

func (s *ClientServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewClientService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		Cache:        s.GetCache(),
		Email:        s.GetEmail(),
		Auth:         s.GetAuth(),
		QuoteRepo:    stores.QuoteRepo,
		ClientRepo:   stores.ClientRepo,
		ProfileRepo:  stores.ProfileRepo,
		TemplateRepo: stores.TemplateRepo,
		NoteRepo:     stores.NoteRepo,
		APIKeyRepo:   stores.APIKeyRepo,
		TeamRepo:     stores.TeamRepo,
	})
}

func (s *ClientServiceSuite) TestCreateAndGetClient() {
	created, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:    "Acme Ltd",
		Email:   "client@example.com",
		Company: "Acme",
	})
	s.NoError(err)
	s.Equal(testutil.TestUserID, created.UserID)

	got, err := s.service.GetClient(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("Acme Ltd", got.Name)
}

func (s *ClientServiceSuite) TestForeignClientIsNotFound() {
	created, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:  "Mine",
		Email: "mine@example.com",
	})
	s.NoError(err)

	otherCtx := types.SetUserID(s.GetContext(), "user_other")
	_, err = s.service.GetClient(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ClientServiceSuite) TestUpdateClient() {
	created, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:  "Before",
		Email: "before@example.com",
	})
	s.NoError(err)

	updated, err := s.service.UpdateClient(s.GetContext(), created.ID, dto.UpdateClientRequest{
		Name: lo.ToPtr("After"),
	})
	s.NoError(err)
	s.Equal("After", updated.Name)
	s.Equal("before@example.com", updated.Email)
}

func (s *ClientServiceSuite) TestDeleteBlockedWhileQuotesReferenceClient() {
	created, err := s.service.CreateClient(s.GetContext(), dto.CreateClientRequest{
		Name:  "Busy",
		Email: "busy@example.com",
	})
	s.NoError(err)

	q := &quote.Quote{
		ID:          types.GenerateUUIDWithPrefix(types.PrefixQuote),
		UserID:      testutil.TestUserID,
		ClientID:    created.ID,
		QuoteNumber: types.GenerateQuoteNumber(),
		Title:       "Pending work",
		Status:      types.QuoteStatusDraft,
		Currency:    types.CurrencyJMD,
		TaxRate:     decimal.NewFromInt(15),
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().QuoteRepo.Create(s.GetContext(), q))

	err = s.service.DeleteClient(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	s.NoError(s.GetStores().QuoteRepo.Delete(s.GetContext(), q.ID))
	s.NoError(s.service.DeleteClient(s.GetContext(), created.ID))
}
