package sales

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
)

// Formatter renders KPI values for a locale and currency.
type Formatter struct {
	tag  language.Tag
	unit currency.Unit
}

// NewFormatter parses a BCP 47 locale and an ISO 4217 currency code.
func NewFormatter(locale, iso string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(iso)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", iso, err)
	}
	return &Formatter{tag: tag, unit: unit}, nil
}

// Count formats an integer with locale digit grouping.
func (f *Formatter) Count(n int64) string {
	return message.NewPrinter(f.tag).Sprintf("%d", n)
}

// Money formats an amount with the currency symbol. The amount passes
// through float64, so the result is for display only and must not be parsed
// back or used in arithmetic.
func (f *Formatter) Money(d decimal.Decimal) string {
	return message.NewPrinter(f.tag).Sprint(currency.Symbol(f.unit.Amount(d.InexactFloat64())))
}

// Display fills the display strings of k.
func (f *Formatter) Display(k model.KPIs) model.KPIs {
	k.Display = model.KPIDisplay{
		Orders:   f.Count(k.Orders),
		Revenue:  f.Money(k.Revenue),
		AvgOrder: f.Money(k.AvgOrder),
	}
	return k
}
