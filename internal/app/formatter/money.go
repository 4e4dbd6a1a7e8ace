package formatter

import (
	"strings"

	"octav_mcp/internal/domain/entity"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"CAD": "$",
	"SGD": "$",
	"AED": "د.إ",
	"CHF": "CHF",
}

// CurrencySymbol returns the display symbol for code and whether one is known.
func CurrencySymbol(code string) (string, bool) {
	sym, ok := currencySymbols[strings.ToUpper(code)]
	return sym, ok
}

// FormatMoney renders v with two decimals and thousands separators, rounding
// half away from zero. Unmapped currency codes stand in for the symbol.
func FormatMoney(v decimal.Decimal, currency string) string {
	code := strings.ToUpper(currency)
	rounded := v.Round(2)
	digits := groupDigits(rounded.Abs())
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	sym, ok := currencySymbols[code]
	if !ok {
		sym = code
	}
	return sign + sym + digits
}

// FormatUSD is FormatMoney in dollars.
func FormatUSD(v decimal.Decimal) string {
	return FormatMoney(v, "USD")
}

// FormatSignedUSD prefixes non-negative amounts with "+".
func FormatSignedUSD(v decimal.Decimal) string {
	if !v.Round(2).IsNegative() {
		return "+" + FormatUSD(v)
	}
	return FormatUSD(v)
}

// groupDigits writes a non-negative value as 1,234.56.
func groupDigits(v decimal.Decimal) string {
	fixed := v.StringFixed(2)
	frac := fixed[strings.IndexByte(fixed, '.'):]
	return humanize.BigComma(v.Truncate(0).BigInt()) + frac
}

// ParseAmount reads a wire amount. Absent or malformed values count as zero.
func ParseAmount(a entity.Amount) decimal.Decimal {
	if a.IsZero() {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(a.String()))
	if err != nil {
		return decimal.Zero
	}
	return d
}
