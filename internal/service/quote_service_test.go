package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/client"
	"github.com/quoteflow/quote-service/internal/domain/profile"
	"github.com/quoteflow/quote-service/internal/entitlement"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/testutil"
	"github.com/quoteflow/quote-service/internal/types"
)

type QuoteServiceSuite struct {
	testutil.BaseServiceTestSuite
	service QuoteService
	client  *client.Client
}

func TestQuoteService(t *testing.T) {
	suite.Run(t, new(QuoteServiceSuite))
}

func (s *QuoteServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewQuoteService(s.params())
	s.seedProfile(types.PlanFree)
	s.client = s.seedClient("Acme Ltd")
}

func (s *QuoteServiceSuite) params() ServiceParams {
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

func (s *QuoteServiceSuite) seedProfile(plan types.PlanTier) {
	p := &profile.Profile{
		ID:                  testutil.TestUserID,
		Email:               testutil.TestUserEmail,
		FullName:            "Test Freelancer",
		Plan:                plan,
		DefaultCurrency:     types.CurrencyJMD,
		DefaultTaxRate:      decimal.NewFromInt(15),
		DefaultValidityDays: 30,
		BrandColor:          DefaultBrandColor,
		BaseModel:           types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProfileRepo.Create(s.GetContext(), p))
}

func (s *QuoteServiceSuite) setPlan(plan types.PlanTier) {
	s.NoError(s.GetStores().ProfileRepo.UpdatePlan(s.GetContext(), testutil.TestUserID, plan, ""))
	s.GetCache().Flush(s.GetContext())
}

func (s *QuoteServiceSuite) seedClient(name string) *client.Client {
	c := &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.PrefixClient),
		UserID:    testutil.TestUserID,
		Name:      name,
		Email:     "client@example.com",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ClientRepo.Create(s.GetContext(), c))
	return c
}

func (s *QuoteServiceSuite) createQuote(title string) *dto.QuoteResponse {
	resp, err := s.service.CreateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ClientID: s.client.ID,
		Title:    title,
		Currency: types.CurrencyJMD,
		TaxRate:  decimal.NewFromInt(15),
		LineItems: []dto.LineItemRequest{
			{Description: "Logo design", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(250)},
		},
	})
	s.NoError(err)
	return resp
}

func (s *QuoteServiceSuite) TestCreateQuoteComputesTotals() {
	resp := s.createQuote("Brand refresh")

	s.Equal(types.QuoteStatusDraft, resp.Status)
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(250)))
	s.True(resp.TaxAmount.Equal(decimal.RequireFromString("37.5")))
	s.True(resp.Total.Equal(decimal.RequireFromString("287.5")))
	s.NotEmpty(resp.QuoteNumber)
	s.Contains(resp.QuoteNumber, "QF-")
	s.Equal("Draft", resp.Badge.Label)
	s.Nil(resp.ExpiryBanner)
}

func (s *QuoteServiceSuite) TestCreateQuoteTaxExemptZeroesTax() {
	resp, err := s.service.CreateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ClientID:  s.client.ID,
		Title:     "NGO website",
		Currency:  types.CurrencyJMD,
		TaxRate:   decimal.NewFromInt(15),
		TaxExempt: true,
		LineItems: []dto.LineItemRequest{
			{Description: "Build", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(80)},
		},
	})
	s.NoError(err)

	s.True(resp.TaxExempt)
	s.True(resp.TaxAmount.IsZero())
	s.True(resp.Total.Equal(resp.Subtotal))
}

func (s *QuoteServiceSuite) TestCreateQuoteDefaultsValidityFromProfile() {
	resp := s.createQuote("Site build")
	s.Equal(resp.CreatedAt.AddDate(0, 0, 30), resp.ExpiresAt)
}

func (s *QuoteServiceSuite) TestCreateQuoteRejectsUnknownClient() {
	_, err := s.service.CreateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ClientID: "cl_missing",
		Title:    "Ghost",
		Currency: types.CurrencyJMD,
		LineItems: []dto.LineItemRequest{
			{Description: "Work", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *QuoteServiceSuite) TestFreeTierQuotaBlocksFourthQuote() {
	for i := 0; i < entitlement.FreeQuoteLimit; i++ {
		s.createQuote("Quote")
	}

	_, err := s.service.CreateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ClientID: s.client.ID,
		Title:    "One too many",
		Currency: types.CurrencyJMD,
		LineItems: []dto.LineItemRequest{
			{Description: "Work", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	s.Error(err)
	s.True(ierr.IsFreeTierLimit(err))
}

func (s *QuoteServiceSuite) TestProPlanHasNoQuota() {
	s.setPlan(types.PlanPro)
	for i := 0; i < entitlement.FreeQuoteLimit+2; i++ {
		s.createQuote("Quote")
	}
}

func (s *QuoteServiceSuite) TestUpdateQuoteRecomputesTotalsAndIsDraftOnly() {
	created := s.createQuote("Editable")

	title := "Edited"
	resp, err := s.service.UpdateQuote(s.GetContext(), created.ID, dto.UpdateQuoteRequest{
		Title: &title,
		LineItems: []dto.LineItemRequest{
			{Description: "Dev work", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	s.NoError(err)
	s.Equal("Edited", resp.Title)
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(1000)))
	s.True(resp.Total.Equal(decimal.NewFromInt(1150)))

	_, err = s.service.SendQuote(s.GetContext(), created.ID, dto.SendQuoteRequest{Channel: types.SendChannelLink})
	s.NoError(err)

	_, err = s.service.UpdateQuote(s.GetContext(), created.ID, dto.UpdateQuoteRequest{Title: &title})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *QuoteServiceSuite) TestDuplicateQuoteIsFreshDraft() {
	created := s.createQuote("Original")
	_, err := s.service.SendQuote(s.GetContext(), created.ID, dto.SendQuoteRequest{Channel: types.SendChannelLink})
	s.NoError(err)

	dup, err := s.service.DuplicateQuote(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("Original (Copy)", dup.Title)
	s.Equal(types.QuoteStatusDraft, dup.Status)
	s.NotEqual(created.ID, dup.ID)
	s.NotEqual(created.QuoteNumber, dup.QuoteNumber)
	s.Empty(dup.ShareToken)
	s.True(dup.Total.Equal(created.Total))
}

func (s *QuoteServiceSuite) TestDuplicateCountsAgainstQuota() {
	created := s.createQuote("Original")
	s.createQuote("Second")
	s.createQuote("Third")

	_, err := s.service.DuplicateQuote(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsFreeTierLimit(err))
}

func (s *QuoteServiceSuite) TestMarkPaidRequiresAccepted() {
	created := s.createQuote("Unpaid work")

	_, err := s.service.MarkPaid(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *QuoteServiceSuite) TestMarkPaidIsIdempotent() {
	created := s.createQuote("Paid work")
	sent, err := s.service.SendQuote(s.GetContext(), created.ID, dto.SendQuoteRequest{Channel: types.SendChannelLink})
	s.NoError(err)
	s.NotEmpty(sent.QuoteLink)

	ok, err := s.GetStores().QuoteRepo.Accept(s.GetContext(), created.ID, "Jane Client", s.GetNow())
	s.NoError(err)
	s.True(ok)

	first, err := s.service.MarkPaid(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(first.Paid)
	s.NotNil(first.PaidAt)
	s.Equal("Paid", first.Badge.Label)

	second, err := s.service.MarkPaid(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(first.PaidAt, second.PaidAt)
}

func (s *QuoteServiceSuite) TestSendQuoteMintsTokenOnce() {
	created := s.createQuote("Send me")

	first, err := s.service.SendQuote(s.GetContext(), created.ID, dto.SendQuoteRequest{Channel: types.SendChannelLink})
	s.NoError(err)
	s.Contains(first.QuoteLink, "https://quoteflow.test/q/")

	second, err := s.service.SendQuote(s.GetContext(), created.ID, dto.SendQuoteRequest{Channel: types.SendChannelLink})
	s.NoError(err)
	s.Equal(first.QuoteLink, second.QuoteLink)

	got, err := s.service.GetQuote(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.QuoteStatusSent, got.Status)
	s.NotNil(got.SentAt)
	s.NotNil(got.ExpiryBanner)
}

func (s *QuoteServiceSuite) TestSendQuoteEmailChannel() {
	created := s.createQuote("Mail me")

	resp, err := s.service.SendQuote(s.GetContext(), created.ID, dto.SendQuoteRequest{
		Channel:        types.SendChannelEmail,
		RecipientEmail: "client@example.com",
	})
	s.NoError(err)
	s.Contains(resp.Message, "emailed to client@example.com")
	s.Equal(1, s.GetEmail().Count())
	s.Equal("client@example.com", s.GetEmail().Sent[0].To)
}

func (s *QuoteServiceSuite) TestSendQuoteWhatsAppChannel() {
	created := s.createQuote("Message me")

	resp, err := s.service.SendQuote(s.GetContext(), created.ID, dto.SendQuoteRequest{
		Channel:        types.SendChannelWhatsApp,
		RecipientPhone: "+18765550123",
	})
	s.NoError(err)
	s.Contains(resp.WhatsAppLink, "https://wa.me/18765550123")
	s.Zero(s.GetEmail().Count())
}

func (s *QuoteServiceSuite) TestDeleteQuoteOfAnotherUserIsNotFound() {
	created := s.createQuote("Mine")

	otherCtx := types.SetUserID(s.GetContext(), "user_other")
	err := s.service.DeleteQuote(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *QuoteServiceSuite) TestListQuotesFiltersByStatus() {
	first := s.createQuote("Draft one")
	second := s.createQuote("To send")
	_, err := s.service.SendQuote(s.GetContext(), second.ID, dto.SendQuoteRequest{Channel: types.SendChannelLink})
	s.NoError(err)

	drafts, err := s.service.ListQuotes(s.GetContext(), &types.QuoteFilter{Status: types.QuoteStatusDraft})
	s.NoError(err)
	s.Len(drafts, 1)
	s.Equal(first.ID, drafts[0].ID)

	all, err := s.service.ListQuotes(s.GetContext(), &types.QuoteFilter{Status: "all"})
	s.NoError(err)
	s.Len(all, 2)
}

func (s *QuoteServiceSuite) TestExportCSVIncludesHeaderAndRows() {
	s.createQuote("Exported")

	data, err := s.service.ExportCSV(s.GetContext())
	s.NoError(err)
	csv := string(data)
	s.Contains(csv, "quote_number")
	s.Contains(csv, "Exported")
	s.Contains(csv, "Acme Ltd")
}
