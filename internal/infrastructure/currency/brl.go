package currency

import (
	"strings"

	"github.com/fincontrol/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format renders an amount as Brazilian currency text, e.g. "R$ 1.234,56"
func Format(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return "R$ " + printer.Sprint(number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Parse reads Brazilian currency text back into an amount. It accepts the
// "R$" prefix, thousand separators and a decimal comma.
func Parse(text string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	if cleaned == "" {
		return decimal.Zero, shared.NewValidationError("Currency text is empty")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, shared.NewValidationError("Currency text is not a valid amount")
	}
	return amount, nil
}

// ApplyMask formats raw digit input as currency text while typing. The
// digits are read as cents, so "123456" becomes "R$ 1.234,56".
func ApplyMask(text string) string {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}

	cents, err := decimal.NewFromString(digits.String())
	if err != nil {
		return ""
	}
	return Format(cents.Div(decimal.NewFromInt(100)))
}
