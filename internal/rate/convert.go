package rate

import "rateproxy/internal/domain"

// Side marks which half of a conversion pair the user edited last.
type Side int

const (
	SideSource Side = iota
	SideTarget
)

// Conversion is the pair being converted plus the side that currently
// drives the computation.
type Conversion struct {
	Source string
	Target string
	Edited Side
}

// Rate returns the cross rate from Source to Target under table.
func (c Conversion) Rate(table domain.RateTable) float64 {
	return CrossRate(table, c.Source, c.Target)
}

// Amounts computes both sides of the conversion from the edited amount.
func (c Conversion) Amounts(table domain.RateTable, edited float64) (source, target float64) {
	r := c.Rate(table)
	if c.Edited == SideTarget {
		return edited / r, edited
	}
	return edited, edited * r
}
