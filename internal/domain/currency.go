package domain

import "maps"

// Catalog maps a 3-letter uppercase currency code to its display name.
type Catalog map[string]string

// RateTable maps a currency code to the amount of that currency equivalent
// to one unit of the table's numeraire. The numeraire code is always present
// in the table with value exactly 1.
type RateTable map[string]float64

func (c Catalog) Clone() Catalog {
	return maps.Clone(c)
}

func (t RateTable) Clone() RateTable {
	return maps.Clone(t)
}
