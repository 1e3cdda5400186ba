package rate

import "rateproxy/internal/domain"

// CrossRate returns the conversion factor from source to target derived
// from a common-base rate table: table[target] / table[source]. If either
// code is absent the identity rate 1 is returned so the caller always has
// a usable factor.
func CrossRate(table domain.RateTable, source, target string) float64 {
	from, okFrom := table[source]
	to, okTo := table[target]
	if !okFrom || !okTo {
		return 1
	}
	return to / from
}
