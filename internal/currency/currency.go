// Package currency converts reference-unit (EUR) amounts into display
// currencies using a static rate table and formats them for the storefront.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Unit is a supported display currency.
type Unit string

const (
	EUR Unit = "EUR"
	XAF Unit = "XAF"
	USD Unit = "USD"
)

// DefaultRates are the multiplicative rates from the reference unit. The
// USD rate historically differed between pages (1.08 vs 1.10); the table
// is injected so there is a single value, overridable via configuration.
func DefaultRates() map[Unit]decimal.Decimal {
	return map[Unit]decimal.Decimal{
		EUR: decimal.NewFromInt(1),
		XAF: decimal.RequireFromString("655.957"),
		USD: decimal.RequireFromString("1.10"),
	}
}

// ParseUnit maps a wire value onto a known unit. Anything unrecognised,
// including the empty string, falls back to the reference unit.
func ParseUnit(raw string) Unit {
	switch u := Unit(strings.ToUpper(strings.TrimSpace(raw))); u {
	case EUR, XAF, USD:
		return u
	}
	return EUR
}

var symbols = map[Unit]string{
	EUR: "€",
	XAF: "FCFA",
	USD: "$",
}

// Converter holds the rate table. All methods are pure.
type Converter struct {
	rates   map[Unit]decimal.Decimal
	printer *message.Printer
}

// NewConverter builds a Converter from the given rate table. A nil table
// means DefaultRates. Grouping follows the French locale, matching the
// storefront's audience.
func NewConverter(rates map[Unit]decimal.Decimal) *Converter {
	if rates == nil {
		rates = DefaultRates()
	}
	return &Converter{
		rates:   rates,
		printer: message.NewPrinter(language.French),
	}
}

// rate returns the multiplier for unit, falling back to the reference unit
// for anything unknown.
func (c *Converter) rate(unit Unit) decimal.Decimal {
	if r, ok := c.rates[unit]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

// ToDisplay converts a reference-unit amount into the target unit. The
// zero value converts to zero in every unit.
func (c *Converter) ToDisplay(amount decimal.Decimal, unit Unit) decimal.Decimal {
	return amount.Mul(c.rate(unit))
}

// Format renders a reference-unit amount as a localized price string.
// XAF rounds to the nearest whole franc with grouped thousands; the other
// units keep exactly two decimals.
func (c *Converter) Format(amount decimal.Decimal, unit Unit) string {
	symbol, ok := symbols[unit]
	if !ok {
		symbol = symbols[EUR]
		unit = EUR
	}

	value := c.ToDisplay(amount, unit)
	if unit == XAF {
		whole := value.Round(0).IntPart()
		return c.printer.Sprintf("%v %s", number.Decimal(whole), symbol)
	}
	return value.StringFixed(2) + " " + symbol
}
