package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/quoteflow/quote-service/internal/domain/quote"
	"github.com/quoteflow/quote-service/internal/domain/quotenote"
	"github.com/quoteflow/quote-service/internal/testutil"
	"github.com/quoteflow/quote-service/internal/types"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DashboardService
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewDashboardService(ServiceParams{
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

func (s *DashboardServiceSuite) seedQuote(currency types.Currency, status types.QuoteStatus, total int64, createdAt time.Time) *quote.Quote {
	q := &quote.Quote{
		ID:          types.GenerateUUIDWithPrefix(types.PrefixQuote),
		UserID:      testutil.TestUserID,
		ClientID:    "cl_seed",
		QuoteNumber: types.GenerateQuoteNumber(),
		Title:       "Seeded",
		Status:      status,
		Currency:    currency,
		TaxRate:     decimal.Zero,
		Total:       decimal.NewFromInt(total),
		ExpiresAt:   createdAt.AddDate(0, 0, 30),
	}
	q.CreatedAt = createdAt
	q.UpdatedAt = createdAt
	if status == types.QuoteStatusSent || status.IsTerminal() {
		sentAt := createdAt
		q.SentAt = &sentAt
	}
	if status == types.QuoteStatusAccepted {
		acceptedAt := createdAt.Add(time.Hour)
		q.AcceptedAt = &acceptedAt
	}
	s.NoError(s.GetStores().QuoteRepo.Create(s.GetContext(), q))
	return q
}

func (s *DashboardServiceSuite) TestStatsSingleCurrency() {
	now := time.Now().UTC()
	lastMonth := types.MonthStart(now).AddDate(0, 0, -5)

	s.seedQuote(types.CurrencyJMD, types.QuoteStatusAccepted, 1000, now.Add(-time.Hour))
	s.seedQuote(types.CurrencyJMD, types.QuoteStatusSent, 500, now.Add(-2*time.Hour))
	s.seedQuote(types.CurrencyJMD, types.QuoteStatusDraft, 200, lastMonth)

	stats, err := s.service.GetStats(s.GetContext(), "")
	s.NoError(err)

	s.True(stats.MoneyTotalsValid)
	s.Equal(3, stats.TotalQuotesAllTime)
	s.Equal(2, stats.QuotesCreatedThisMonth)
	s.Equal(1, stats.AcceptedThisMonth)
	s.True(stats.TotalQuotedThisMonth.Equal(decimal.NewFromInt(1500)))
	s.True(stats.TotalQuotedLastMonth.Equal(decimal.NewFromInt(200)))
	s.Equal(1, stats.StatusCounts[types.QuoteStatusAccepted])
	s.Equal(1, stats.StatusCounts[types.QuoteStatusSent])
	s.Equal(1, stats.StatusCounts[types.QuoteStatusDraft])
	s.Equal([]types.Currency{types.CurrencyJMD}, stats.CurrenciesUsed)

	// one accepted out of two ever sent
	s.True(stats.AcceptanceRate.Equal(decimal.NewFromInt(50)))
	s.NotEmpty(stats.RecentActivity)
}

func (s *DashboardServiceSuite) TestMixedCurrencySumsAreInvalid() {
	now := time.Now().UTC()
	s.seedQuote(types.CurrencyJMD, types.QuoteStatusDraft, 1000, now)
	s.seedQuote(types.CurrencyUSD, types.QuoteStatusDraft, 300, now)

	stats, err := s.service.GetStats(s.GetContext(), "")
	s.NoError(err)
	s.False(stats.MoneyTotalsValid)
	s.Len(stats.CurrenciesUsed, 2)

	// narrowing to one currency restores the sums
	narrowed, err := s.service.GetStats(s.GetContext(), types.CurrencyUSD)
	s.NoError(err)
	s.True(narrowed.MoneyTotalsValid)
	s.True(narrowed.TotalQuotedThisMonth.Equal(decimal.NewFromInt(300)))
}

func (s *DashboardServiceSuite) TestExpiringQuoteShowsInActivity() {
	now := time.Now().UTC()
	q := s.seedQuote(types.CurrencyJMD, types.QuoteStatusSent, 100, now.Add(-time.Hour))
	q.ExpiresAt = now.AddDate(0, 0, 1)
	s.NoError(s.GetStores().QuoteRepo.Update(s.GetContext(), q))

	stats, err := s.service.GetStats(s.GetContext(), "")
	s.NoError(err)

	var hasExpiring bool
	for _, e := range stats.RecentActivity {
		if e.Type == types.ActivityExpiring {
			hasExpiring = true
		}
	}
	s.True(hasExpiring)
}

func (s *DashboardServiceSuite) TestUnreadMessagesGroupedByQuote() {
	now := time.Now().UTC()
	q := s.seedQuote(types.CurrencyJMD, types.QuoteStatusSent, 100, now.Add(-time.Hour))

	for i := 0; i < 2; i++ {
		n := &quotenote.Note{
			ID:         types.GenerateUUIDWithPrefix(types.PrefixNote),
			QuoteID:    q.ID,
			AuthorType: types.NoteAuthorClient,
			AuthorName: "Jane",
			NoteType:   types.NoteTypeMessage,
			Body:       "Question about the quote",
		}
		n.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		s.NoError(s.GetStores().NoteRepo.Create(s.GetContext(), n))
	}

	resp, err := s.service.GetUnreadMessages(s.GetContext())
	s.NoError(err)
	s.Equal(2, resp.Total)
	s.Len(resp.Quotes, 1)
	s.Equal(q.ID, resp.Quotes[0].QuoteID)
	s.Equal(2, resp.Quotes[0].UnreadCount)
	s.Equal(q.QuoteNumber, resp.Quotes[0].QuoteNumber)

	stats, err := s.service.GetStats(s.GetContext(), "")
	s.NoError(err)
	s.Equal(2, stats.UnreadMessages)

	// marking read clears the poller feed
	s.NoError(s.GetStores().NoteRepo.MarkRead(s.GetContext(), q.ID))
	resp, err = s.service.GetUnreadMessages(s.GetContext())
	s.NoError(err)
	s.Zero(resp.Total)
}
