package service

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/quote"
	"github.com/quoteflow/quote-service/internal/domain/quotenote"
	"github.com/quoteflow/quote-service/internal/types"
)

// recentActivityLimit caps the dashboard feed.
const recentActivityLimit = 10

type DashboardService interface {
	// GetStats aggregates the dashboard view. Money sums are only meaningful
	// when currency narrows the quotes to one currency; otherwise counts are
	// returned and MoneyTotalsValid is false.
	GetStats(ctx context.Context, currency types.Currency) (*dto.DashboardStats, error)
	// GetUnreadMessages groups unread client notes by quote for the poller.
	GetUnreadMessages(ctx context.Context) (*dto.UnreadMessagesResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{ServiceParams: params}
}

func (s *dashboardService) GetStats(ctx context.Context, currency types.Currency) (*dto.DashboardStats, error) {
	if currency != "" {
		if err := currency.Validate(); err != nil {
			return nil, err
		}
	}

	userID := types.GetUserID(ctx)

	var (
		quotes []*quote.Quote
		unread []*quotenote.Note
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		quotes, err = s.QuoteRepo.List(ctx, userID, nil)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		unread, err = s.NoteRepo.ListUnreadForUser(ctx, userID)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := types.MonthStart(now)
	lastMonthStart := types.MonthStart(monthStart.AddDate(0, 0, -1))

	stats := &dto.DashboardStats{
		StatusCounts:     map[types.QuoteStatus]int{},
		MoneyTotalsValid: true,
		UnreadMessages:   len(unread),
	}

	currencies := map[types.Currency]struct{}{}
	var (
		sumThisMonth decimal.Decimal
		sumLastMonth decimal.Decimal
		sumAccepted  decimal.Decimal
		sumAll       decimal.Decimal
		moneyCount   int
		sentCount    int
		acceptedAll  int
	)

	for _, q := range quotes {
		currencies[q.Currency] = struct{}{}
		stats.TotalQuotesAllTime++
		stats.StatusCounts[q.Status]++

		if q.CreatedAt.After(monthStart) || q.CreatedAt.Equal(monthStart) {
			stats.QuotesCreatedThisMonth++
		}

		if q.Status == types.QuoteStatusSent || q.Status.IsTerminal() {
			sentCount++
		}
		if q.Status == types.QuoteStatusAccepted {
			acceptedAll++
			if q.AcceptedAt != nil && !q.AcceptedAt.Before(monthStart) {
				stats.AcceptedThisMonth++
			}
		}

		if currency != "" && q.Currency != currency {
			continue
		}
		moneyCount++
		sumAll = sumAll.Add(q.Total)
		if !q.CreatedAt.Before(monthStart) {
			sumThisMonth = sumThisMonth.Add(q.Total)
		} else if !q.CreatedAt.Before(lastMonthStart) {
			sumLastMonth = sumLastMonth.Add(q.Total)
		}
		if q.Status == types.QuoteStatusAccepted {
			sumAccepted = sumAccepted.Add(q.Total)
		}
	}

	stats.CurrenciesUsed = lo.Keys(currencies)
	sort.Slice(stats.CurrenciesUsed, func(i, j int) bool {
		return stats.CurrenciesUsed[i] < stats.CurrenciesUsed[j]
	})

	// money sums across mixed currencies are meaningless
	if currency == "" && len(currencies) > 1 {
		stats.MoneyTotalsValid = false
	} else {
		stats.TotalQuotedThisMonth = sumThisMonth
		stats.TotalQuotedLastMonth = sumLastMonth
		if sumLastMonth.IsPositive() {
			stats.ChangePercent = sumThisMonth.Sub(sumLastMonth).
				Div(sumLastMonth).
				Mul(decimal.NewFromInt(100)).
				Round(1)
		}
		if moneyCount > 0 {
			stats.AvgQuoteValue = sumAll.Div(decimal.NewFromInt(int64(moneyCount))).Round(2)
		}
	}

	if sentCount > 0 {
		stats.AcceptanceRate = decimal.NewFromInt(int64(acceptedAll)).
			Div(decimal.NewFromInt(int64(sentCount))).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}

	stats.RecentActivity = buildActivity(quotes, now)
	return stats, nil
}

// buildActivity derives feed entries from quote timestamps, newest first.
func buildActivity(quotes []*quote.Quote, now time.Time) []dto.ActivityEntry {
	var entries []dto.ActivityEntry
	add := func(t types.ActivityType, q *quote.Quote, at time.Time) {
		entries = append(entries, dto.ActivityEntry{
			Type:        t,
			Color:       types.ActivityColor(t),
			QuoteID:     q.ID,
			QuoteNumber: q.QuoteNumber,
			Title:       q.Title,
			OccurredAt:  at,
		})
	}

	for _, q := range quotes {
		add(types.ActivityCreated, q, q.CreatedAt)
		if q.SentAt != nil {
			add(types.ActivitySent, q, *q.SentAt)
		}
		if q.ViewedAt != nil {
			add(types.ActivityViewed, q, *q.ViewedAt)
		}
		if q.AcceptedAt != nil {
			add(types.ActivityAccepted, q, *q.AcceptedAt)
		}
		if q.Status == types.QuoteStatusSent {
			days := types.DaysRemaining(now, q.ExpiresAt, time.Local)
			if days >= 0 && days <= 2 {
				add(types.ActivityExpiring, q, now)
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}
	return entries
}

func (s *dashboardService) GetUnreadMessages(ctx context.Context) (*dto.UnreadMessagesResponse, error) {
	userID := types.GetUserID(ctx)

	notes, err := s.NoteRepo.ListUnreadForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byQuote := map[string]*dto.UnreadQuote{}
	var order []string
	for _, n := range notes {
		entry, ok := byQuote[n.QuoteID]
		if !ok {
			entry = &dto.UnreadQuote{QuoteID: n.QuoteID, LatestAt: n.CreatedAt}
			byQuote[n.QuoteID] = entry
			order = append(order, n.QuoteID)
		}
		entry.UnreadCount++
		if n.CreatedAt.After(entry.LatestAt) {
			entry.LatestAt = n.CreatedAt
		}
	}

	resp := &dto.UnreadMessagesResponse{Total: len(notes)}
	for _, quoteID := range order {
		entry := byQuote[quoteID]
		if q, err := s.QuoteRepo.Get(ctx, quoteID); err == nil {
			entry.QuoteNumber = q.QuoteNumber
			entry.Title = q.Title
		}
		resp.Quotes = append(resp.Quotes, *entry)
	}
	return resp, nil
}
