package quote

import (
	"testing"
	"time"

	"github.com/quoteflow/quote-service/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(desc string, qty, price float64) *LineItem {
	return &LineItem{
		Description: desc,
		Quantity:    decimal.NewFromFloat(qty),
		UnitPrice:   decimal.NewFromFloat(price),
	}
}

func TestComputeTotals(t *testing.T) {
	items := []*LineItem{
		item("Design", 1, 100),
		item("Development", 3, 50),
	}

	got := ComputeTotals(items, decimal.NewFromInt(15), false)

	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal %s", got.Subtotal)
	assert.True(t, got.Tax.Equal(decimal.NewFromFloat(37.5)), "tax %s", got.Tax)
	assert.True(t, got.Total.Equal(decimal.NewFromFloat(287.5)), "total %s", got.Total)
}

func TestComputeTotals_TaxRoundsHalfAwayFromZero(t *testing.T) {
	// 333.33 * 15% = 49.9995, which rounds up to 50.00
	items := []*LineItem{item("Retainer", 1, 333.33)}

	got := ComputeTotals(items, decimal.NewFromInt(15), false)

	assert.True(t, got.Tax.Equal(decimal.NewFromInt(50)), "tax %s", got.Tax)
	assert.True(t, got.Total.Equal(decimal.NewFromFloat(383.33)), "total %s", got.Total)
}

func TestComputeTotals_SubtotalStaysUnrounded(t *testing.T) {
	// fractional quantities keep their precision in the subtotal
	items := []*LineItem{item("Hourly work", 2.5, 33.333)}

	got := ComputeTotals(items, decimal.Zero, false)

	assert.True(t, got.Subtotal.Equal(decimal.NewFromFloat(83.3325)), "subtotal %s", got.Subtotal)
	assert.True(t, got.Tax.IsZero())
	assert.True(t, got.Total.Equal(got.Subtotal))
}

func TestComputeTotals_Empty(t *testing.T) {
	got := ComputeTotals(nil, decimal.NewFromInt(15), false)

	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Tax.IsZero())
	assert.True(t, got.Total.IsZero())
}

func TestComputeTotals_ExemptZeroesTax(t *testing.T) {
	items := []*LineItem{item("Consulting", 4, 80)}

	got := ComputeTotals(items, decimal.NewFromInt(15), true)

	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(320)))
	assert.True(t, got.Tax.IsZero())
	assert.True(t, got.Total.Equal(got.Subtotal))
}

func TestApplyTotals(t *testing.T) {
	q := &Quote{
		TaxRate: decimal.NewFromInt(10),
		LineItems: []*LineItem{
			item("Logo", 1, 1000),
			item("Business cards", 2, 75),
		},
	}

	q.ApplyTotals()

	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(1150)))
	assert.True(t, q.TaxAmount.Equal(decimal.NewFromInt(115)))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(1265)))
}

func TestIsEditable(t *testing.T) {
	assert.True(t, (&Quote{Status: types.QuoteStatusDraft}).IsEditable())
	assert.False(t, (&Quote{Status: types.QuoteStatusSent}).IsEditable())
	assert.False(t, (&Quote{Status: types.QuoteStatusAccepted}).IsEditable())
}

func TestIsExpired(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)

	sameDay := &Quote{ExpiresAt: time.Date(2025, 3, 10, 0, 0, 0, 0, loc)}
	assert.False(t, sameDay.IsExpired(now, loc), "expiry day itself is still valid")

	yesterday := &Quote{ExpiresAt: time.Date(2025, 3, 9, 23, 59, 0, 0, loc)}
	assert.True(t, yesterday.IsExpired(now, loc))
}

func TestBadge_PaidOverride(t *testing.T) {
	q := &Quote{Status: types.QuoteStatusAccepted, Paid: true}
	assert.Equal(t, "Paid", q.Badge().Label)
}
