// Package money holds the canonical representation of amounts: whole-number
// rupiah with no minor unit. Formatting happens only at the presentation
// edge; everything between the HTTP boundary and the database is int64.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

var symbols = map[string]string{
	"IDR": "Rp",
}

// ParseString extracts an amount from a display string such as "Rp 25.000".
// Every non-digit rune is dropped and the remaining digits are read as an
// integer. No digits means zero; malformed input never fails.
func ParseString(s string) int64 {
	var n int64
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		seen = true
		n = n*10 + int64(r-'0')
	}
	if !seen {
		return 0
	}
	return n
}

// Parse accepts the loose price shapes that show up at the JSON boundary
// (numbers or formatted strings) and normalizes them to int64.
func Parse(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case string:
		return ParseString(x)
	default:
		return 0
	}
}

// Format renders an amount with id-ID grouping and the currency symbol,
// zero decimal places: Format(25000, "IDR") == "Rp 25.000".
// For amounts it produced itself, ParseString is the exact inverse.
func Format(amount int64, currencyCode string) string {
	sym, ok := symbols[currencyCode]
	if !ok {
		sym = currencyCode
	}
	return sym + " " + FormatNumber(amount)
}

// FormatNumber renders a bare amount with id-ID digit grouping.
func FormatNumber(n int64) string {
	return printer.Sprintf("%v", number.Decimal(n, number.MaxFractionDigits(0)))
}
