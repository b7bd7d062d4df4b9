package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter turns raw money amounts into display strings for one currency and locale
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
	symbol  string
}

// NewFormatter creates a Formatter for an ISO 4217 code such as NGN and a BCP 47 locale
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency code %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	printer := message.NewPrinter(tag)
	return &Formatter{
		unit:    unit,
		printer: printer,
		symbol:  printer.Sprint(currency.NarrowSymbol(unit)),
	}, nil
}

// Code returns the ISO code of the formatter's currency
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders amount with the currency symbol, digit grouping and two decimals
func (f *Formatter) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	digits := f.printer.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
	return sign + f.symbol + digits
}
