package rate

import "rateproxy/internal/domain"

// FallbackBase is the numeraire the built-in rate table is expressed in.
const FallbackBase = "USD"

// builtinCatalog is the offline currency set shipped with the app.
var builtinCatalog = domain.Catalog{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"CAD": "Canadian Dollar",
	"AUD": "Australian Dollar",
	"CHF": "Swiss Franc",
}

// builtinRates holds units of each currency per one US Dollar.
var builtinRates = domain.RateTable{
	"USD": 1,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 151.4,
	"CAD": 1.36,
	"AUD": 1.52,
	"CHF": 0.88,
}

// BuiltinCatalog returns a fresh copy of the offline catalog.
func BuiltinCatalog() domain.Catalog {
	return builtinCatalog.Clone()
}

// DeriveFallbackRates rebases the built-in per-USD table so that base
// becomes the numeraire: every entry is usdPerBase * builtin[code], which
// leaves result[base] at exactly 1.
//
// A base that is not part of the built-in table returns the table
// unchanged. The values are then still relative to USD rather than the
// requested base; this is a known limitation of the offline table, kept
// so the caller always gets a renderable table.
func DeriveFallbackRates(base string) domain.RateTable {
	perUSD, ok := builtinRates[base]
	if !ok {
		return builtinRates.Clone()
	}
	usdPerBase := 1 / perUSD

	out := make(domain.RateTable, len(builtinRates))
	for code, v := range builtinRates {
		out[code] = usdPerBase * v
	}
	out[base] = 1
	return out
}
