package units

import "fmt"

// Unit is the physical unit an upstream quotes a metal price in.
type Unit string

const (
	TroyOunce Unit = "oz"
	Pound     Unit = "lb"
	MetricTon Unit = "ton"
	Kilogram  Unit = "kg"
)

// Exact factors: 1 troy oz = 0.0311035 kg, 1 lb = 0.453592 kg.
const (
	ouncesPerTon    = 32150.7 // 1000 / 0.0311035
	poundsPerTon    = 2204.62 // 1000 / 0.453592
	kilogramsPerTon = 1000.0
)

// Factor returns how many of u make up one metric ton.
// An unknown tag is a programming error, not a runtime condition: the unit
// set is closed and every quote carries one by construction, so this panics
// rather than silently defaulting to tons.
func Factor(u Unit) float64 {
	switch u {
	case TroyOunce:
		return ouncesPerTon
	case Pound:
		return poundsPerTon
	case MetricTon:
		return 1
	case Kilogram:
		return kilogramsPerTon
	}
	panic(fmt.Sprintf("units: unknown unit %q", u))
}

// PerTon converts a price quoted per u into the canonical per-metric-ton price.
func PerTon(price float64, u Unit) float64 {
	return price * Factor(u)
}

// Valid reports whether u is one of the four known unit tags.
func Valid(u Unit) bool {
	switch u {
	case TroyOunce, Pound, MetricTon, Kilogram:
		return true
	}
	return false
}
