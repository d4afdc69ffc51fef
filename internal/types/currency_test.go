package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency Currency
		want     string
	}{
		{name: "thousands separator", amount: decimal.NewFromInt(1150), currency: CurrencyJMD, want: "J$1,150.00"},
		{name: "no separator under a thousand", amount: decimal.NewFromFloat(287.5), currency: CurrencyUSD, want: "$287.50"},
		{name: "millions", amount: decimal.NewFromInt(1234567), currency: CurrencyTTD, want: "TT$1,234,567.00"},
		{name: "zero", amount: decimal.Zero, currency: CurrencyBBD, want: "Bds$0.00"},
		{name: "negative keeps sign outside symbol", amount: decimal.NewFromFloat(-42.1), currency: CurrencyUSD, want: "-$42.10"},
		{name: "unknown code falls back to raw code", amount: decimal.NewFromInt(10), currency: Currency("XCD"), want: "XCD10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency))
		})
	}
}

func TestCurrencyValidate(t *testing.T) {
	assert.NoError(t, CurrencyJMD.Validate())
	assert.NoError(t, CurrencyUSD.Validate())
	assert.Error(t, Currency("EUR").Validate())
	assert.Error(t, Currency("usd").Validate())
}
