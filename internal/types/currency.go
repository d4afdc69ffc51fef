package types

import (
	"strings"

	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Currency is one of the closed set of currencies a quote can be issued in.
type Currency string

const (
	CurrencyJMD Currency = "JMD"
	CurrencyUSD Currency = "USD"
	CurrencyTTD Currency = "TTD"
	CurrencyBBD Currency = "BBD"
)

var currencySymbols = map[Currency]string{
	CurrencyJMD: "J$",
	CurrencyUSD: "$",
	CurrencyTTD: "TT$",
	CurrencyBBD: "Bds$",
}

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Validate() error {
	allowed := []Currency{CurrencyJMD, CurrencyUSD, CurrencyTTD, CurrencyBBD}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid currency").
			WithHint("Please provide a valid currency").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Symbol returns the display symbol for the currency. Unknown codes fall back
// to the raw code so formatting never fails.
func (c Currency) Symbol() string {
	if sym, ok := currencySymbols[c]; ok {
		return sym
	}
	return string(c)
}

// FormatAmount renders an amount for display: symbol, thousands separators,
// fixed two decimals. Example: FormatAmount(1150, "JMD") == "J$1,150.00".
func FormatAmount(amount decimal.Decimal, currency Currency) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, ch := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}

	out := currency.Symbol() + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
