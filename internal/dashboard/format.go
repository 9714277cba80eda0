package dashboard

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders an amount as a US dollar string with grouping and two
// decimals, e.g. "$1,000.00".
func FormatUSD(amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return usd.Sprintf("$%v", number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
