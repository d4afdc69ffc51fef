package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quoteflow/quote-service/internal/types"
)

// DashboardStats is the aggregate view on the dashboard home. Money sums are
// only filled when a single currency is selected; mixed-currency accounts see
// counts but no totals unless they filter.
type DashboardStats struct {
	TotalQuotedThisMonth decimal.Decimal `json:"total_quoted_this_month"`
	TotalQuotedLastMonth decimal.Decimal `json:"total_quoted_last_month"`
	// ChangePercent compares this month to last; zero when last month was zero.
	ChangePercent        decimal.Decimal `json:"change_percent"`
	AcceptedThisMonth    int             `json:"accepted_this_month"`
	AcceptanceRate       decimal.Decimal `json:"acceptance_rate"`
	AvgQuoteValue        decimal.Decimal `json:"avg_quote_value"`
	TotalQuotesAllTime   int             `json:"total_quotes_all_time"`
	QuotesCreatedThisMonth int           `json:"quotes_created_this_month"`

	// UnreadMessages counts unread client notes across all quotes.
	UnreadMessages int `json:"unread_messages"`

	StatusCounts map[types.QuoteStatus]int `json:"status_counts"`
	// CurrenciesUsed drives the currency filter dropdown.
	CurrenciesUsed []types.Currency `json:"currencies_used"`
	// MoneyTotalsValid is false when mixed currencies made the sums meaningless.
	MoneyTotalsValid bool `json:"money_totals_valid"`

	RecentActivity []ActivityEntry `json:"recent_activity"`
}

// ActivityEntry is one row in the dashboard feed, derived from quote events.
type ActivityEntry struct {
	Type        types.ActivityType `json:"type"`
	Color       string             `json:"color"`
	QuoteID     string             `json:"quote_id"`
	QuoteNumber string             `json:"quote_number"`
	Title       string             `json:"title"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// UnreadMessagesResponse lists quotes with unread client notes.
type UnreadMessagesResponse struct {
	Quotes []UnreadQuote `json:"quotes"`
	Total  int           `json:"total"`
}

type UnreadQuote struct {
	QuoteID     string    `json:"quote_id"`
	QuoteNumber string    `json:"quote_number"`
	Title       string    `json:"title"`
	UnreadCount int       `json:"unread_count"`
	LatestAt    time.Time `json:"latest_at"`
}
