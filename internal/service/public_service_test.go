package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/client"
	"github.com/quoteflow/quote-service/internal/domain/profile"
	"github.com/quoteflow/quote-service/internal/domain/quote"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/testutil"
	"github.com/quoteflow/quote-service/internal/types"
)

type PublicServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PublicService
}

func TestPublicService(t *testing.T) {
	suite.Run(t, new(PublicServiceSuite))
}

func (s *PublicServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPublicService(s.params())
}

func (s *PublicServiceSuite) params() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
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
	}
}

func (s *PublicServiceSuite) seedOwner(mutate func(p *profile.Profile)) {
	p := &profile.Profile{
		ID:                  testutil.TestUserID,
		Email:               testutil.TestUserEmail,
		FullName:            "Test Freelancer",
		BusinessName:        "Studio North",
		Plan:                types.PlanFree,
		DefaultCurrency:     types.CurrencyJMD,
		DefaultTaxRate:      decimal.NewFromInt(15),
		DefaultValidityDays: 30,
		BrandColor:          DefaultBrandColor,
		BaseModel:           types.GetDefaultBaseModel(s.GetContext()),
	}
	if mutate != nil {
		mutate(p)
	}
	s.NoError(s.GetStores().ProfileRepo.Create(s.GetContext(), p))
}

// seedSentQuote stores a sent quote with a share token, expiring the given
// number of days from now.
func (s *PublicServiceSuite) seedSentQuote(token string, daysUntilExpiry int, mutate ...func(q *quote.Quote)) *quote.Quote {
	ctx := s.GetContext()
	c := &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.PrefixClient),
		UserID:    testutil.TestUserID,
		Name:      "Acme Ltd",
		Email:     "client@example.com",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().ClientRepo.Create(ctx, c))

	now := time.Now().UTC()
	q := &quote.Quote{
		ID:          types.GenerateUUIDWithPrefix(types.PrefixQuote),
		UserID:      testutil.TestUserID,
		ClientID:    c.ID,
		QuoteNumber: types.GenerateQuoteNumber(),
		Title:       "Website build",
		Status:      types.QuoteStatusSent,
		Currency:    types.CurrencyJMD,
		TaxRate:     decimal.NewFromInt(15),
		ExpiresAt:   now.AddDate(0, 0, daysUntilExpiry),
		ShareToken:  token,
		SentAt:      &now,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	for _, m := range mutate {
		m(q)
	}
	q.LineItems = []*quote.LineItem{{
		ID:          types.GenerateUUID(),
		QuoteID:     q.ID,
		Description: "Build",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(1000),
	}}
	q.ApplyTotals()
	s.NoError(s.GetStores().QuoteRepo.Create(ctx, q))
	s.NoError(s.GetStores().QuoteRepo.ReplaceLineItems(ctx, q.ID, q.LineItems))
	return q
}

func (s *PublicServiceSuite) TestGetQuoteByTokenCarriesBranding() {
	s.seedOwner(func(p *profile.Profile) {
		p.Plan = types.PlanPro
		p.BrandColor = "#FF5500"
	})
	s.seedSentQuote("tok-brand", 10)

	resp, err := s.service.GetQuoteByToken(s.GetContext(), "tok-brand")
	s.NoError(err)
	s.Equal("Studio North", resp.BusinessName)
	s.Equal("#FF5500", resp.BrandColor)
	s.NotNil(resp.ExpiryBanner)
	s.True(resp.Total.Equal(decimal.NewFromInt(1150)))
}

func (s *PublicServiceSuite) TestUnknownTokenIsNotFound() {
	_, err := s.service.GetQuoteByToken(s.GetContext(), "tok-missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PublicServiceSuite) TestViewTrackingRequiresProAndOptIn() {
	s.seedOwner(nil) // free plan, so still no tracking
	q := s.seedSentQuote("tok-views", 10, func(q *quote.Quote) {
		q.TrackViews = true
	})

	_, err := s.service.GetQuoteByToken(s.GetContext(), "tok-views")
	s.NoError(err)
	stored, err := s.GetStores().QuoteRepo.Get(s.GetContext(), q.ID)
	s.NoError(err)
	s.Zero(stored.ViewCount)
	s.Nil(stored.ViewedAt)

	s.NoError(s.GetStores().ProfileRepo.UpdatePlan(s.GetContext(), testutil.TestUserID, types.PlanPro, ""))
	_, err = s.service.GetQuoteByToken(s.GetContext(), "tok-views")
	s.NoError(err)
	stored, err = s.GetStores().QuoteRepo.Get(s.GetContext(), q.ID)
	s.NoError(err)
	s.Equal(1, stored.ViewCount)
	s.NotNil(stored.ViewedAt)
}

func (s *PublicServiceSuite) TestAcceptQuote() {
	s.seedOwner(nil)
	q := s.seedSentQuote("tok-accept", 10)

	resp, err := s.service.AcceptQuote(s.GetContext(), "tok-accept", dto.AcceptQuoteRequest{SignatureName: "Jane Client"})
	s.NoError(err)
	s.True(resp.Accepted)
	s.Equal(q.QuoteNumber, resp.QuoteNumber)

	stored, err := s.GetStores().QuoteRepo.Get(s.GetContext(), q.ID)
	s.NoError(err)
	s.Equal(types.QuoteStatusAccepted, stored.Status)
	s.Equal("Jane Client", stored.AcceptedName)
	s.NotNil(stored.AcceptedAt)

	// owner is notified by email
	s.Equal(1, s.GetEmail().Count())
	s.Equal(testutil.TestUserEmail, s.GetEmail().Sent[0].To)
}

func (s *PublicServiceSuite) TestRepeatAcceptReturnsSameSuccess() {
	s.seedOwner(nil)
	s.seedSentQuote("tok-repeat", 10)

	first, err := s.service.AcceptQuote(s.GetContext(), "tok-repeat", dto.AcceptQuoteRequest{SignatureName: "Jane"})
	s.NoError(err)

	second, err := s.service.AcceptQuote(s.GetContext(), "tok-repeat", dto.AcceptQuoteRequest{SignatureName: "Someone Else"})
	s.NoError(err)
	s.Equal(first.QuoteNumber, second.QuoteNumber)
	s.True(second.Accepted)

	// the original signature stands
	stored, err := s.GetStores().QuoteRepo.GetByShareToken(s.GetContext(), "tok-repeat")
	s.NoError(err)
	s.Equal("Jane", stored.AcceptedName)
	// only the first accept notifies
	s.Equal(1, s.GetEmail().Count())
}

func (s *PublicServiceSuite) TestAcceptExpiredQuote() {
	s.seedOwner(nil)
	s.seedSentQuote("tok-expired", -2)

	_, err := s.service.AcceptQuote(s.GetContext(), "tok-expired", dto.AcceptQuoteRequest{SignatureName: "Late"})
	s.Error(err)
	s.True(ierr.IsQuoteExpired(err))
}

func (s *PublicServiceSuite) TestAcceptDraftQuoteIsInvalid() {
	s.seedOwner(nil)
	q := s.seedSentQuote("tok-draft", 10)
	q.Status = types.QuoteStatusDraft
	s.NoError(s.GetStores().QuoteRepo.Update(s.GetContext(), q))

	_, err := s.service.AcceptQuote(s.GetContext(), "tok-draft", dto.AcceptQuoteRequest{})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PublicServiceSuite) TestAcceptRequiresSignatureWhenConfigured() {
	s.seedOwner(nil)
	s.seedSentQuote("tok-sign", 10, func(q *quote.Quote) {
		q.RequireSignature = true
	})

	_, err := s.service.AcceptQuote(s.GetContext(), "tok-sign", dto.AcceptQuoteRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	resp, err := s.service.AcceptQuote(s.GetContext(), "tok-sign", dto.AcceptQuoteRequest{SignatureName: "Jane Client"})
	s.NoError(err)
	s.True(resp.Accepted)
}

func (s *PublicServiceSuite) TestClientNoteDoesNotTransitionQuote() {
	s.seedOwner(nil)
	q := s.seedSentQuote("tok-notes", 10)

	note, err := s.service.CreateClientNote(s.GetContext(), "tok-notes", dto.CreateNoteRequest{
		AuthorName: "Jane",
		NoteType:   types.NoteTypeChangeRequest,
		Body:       "Please drop the hosting line",
	})
	s.NoError(err)
	s.Equal(types.NoteAuthorClient, note.AuthorType)
	s.False(note.Read)

	stored, err := s.GetStores().QuoteRepo.Get(s.GetContext(), q.ID)
	s.NoError(err)
	s.Equal(types.QuoteStatusSent, stored.Status)

	notes, err := s.service.ListNotes(s.GetContext(), "tok-notes")
	s.NoError(err)
	s.Len(notes, 1)
}

// Full lifecycle across the owner and public surfaces: draft, send by link,
// sign, then mark paid.
func (s *PublicServiceSuite) TestQuoteLifecycle() {
	s.seedOwner(nil)
	quotes := NewQuoteService(s.params())

	c := &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.PrefixClient),
		UserID:    testutil.TestUserID,
		Name:      "Acme Ltd",
		Email:     "client@example.com",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ClientRepo.Create(s.GetContext(), c))

	created, err := quotes.CreateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ClientID: c.ID,
		Title:    "Site build",
		Currency: types.CurrencyJMD,
		TaxRate:  decimal.NewFromInt(15),
		LineItems: []dto.LineItemRequest{
			{Description: "Build", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000)},
		},
	})
	s.NoError(err)
	s.True(created.Total.Equal(decimal.NewFromInt(1150)))

	// not payable before acceptance
	_, err = quotes.MarkPaid(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	sent, err := quotes.SendQuote(s.GetContext(), created.ID, dto.SendQuoteRequest{Channel: types.SendChannelLink})
	s.NoError(err)
	s.NotEmpty(sent.QuoteLink)

	stored, err := s.GetStores().QuoteRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotEmpty(stored.ShareToken)

	accepted, err := s.service.AcceptQuote(s.GetContext(), stored.ShareToken, dto.AcceptQuoteRequest{SignatureName: "Jane Doe"})
	s.NoError(err)
	s.True(accepted.Accepted)

	stored, err = s.GetStores().QuoteRepo.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.QuoteStatusAccepted, stored.Status)
	s.Equal("Jane Doe", stored.AcceptedName)

	paid, err := quotes.MarkPaid(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(paid.Paid)
}
