package registry

import "metaldash/internal/units"

// Static symbol tables mapping internal metal IDs to each upstream's
// vocabulary. Loaded once, never mutated at runtime; safe to share across
// goroutines without locking.

// yahooSymbols maps metal IDs to Yahoo Finance futures tickers.
var yahooSymbols = map[string]string{
	"gold":      "GC=F",
	"silver":    "SI=F",
	"platinum":  "PL=F",
	"palladium": "PA=F",
	"copper":    "HG=F",
	"aluminum":  "ALI=F",
	"zinc":      "ZN=F",
	"lead":      "LD=F",
	"tin":       "SN=F",
	"nickel":    "NI=F",
	"lithium":   "LTHM", // Livent Corp, lithium proxy
	"cobalt":    "OBTX", // cobalt proxy
}

// fmpSymbols maps metal IDs to FMP commodity symbols (USD quoted).
var fmpSymbols = map[string]string{
	"gold":      "GCUSD",
	"silver":    "SIUSD",
	"platinum":  "PLUSD",
	"palladium": "PAUSD",
	"copper":    "HGUSD",
	"aluminum":  "ALIUSD",
	"zinc":      "ZSUSD",
	"nickel":    "NIUSD",
	"lead":      "LDUSD",
	"tin":       "SNUSD",
	"lithium":   "LIUSD",
	"cobalt":    "COUSD",
}

// yahooUnits is the authoritative per-ticker unit table for Yahoo Finance,
// established against observed prices. Note aluminum and nickel trade per
// ton, not per pound.
var yahooUnits = map[string]units.Unit{
	"gold":      units.TroyOunce,
	"silver":    units.TroyOunce,
	"platinum":  units.TroyOunce,
	"palladium": units.TroyOunce,
	"copper":    units.Pound,
	"aluminum":  units.MetricTon,
	"zinc":      units.Pound,
	"lead":      units.Pound,
	"tin":       units.Pound,
	"nickel":    units.MetricTon,
	"lithium":   units.MetricTon,
	"cobalt":    units.MetricTon,
}

// Category lists backing the heuristic unit fallback for providers that ship
// no unit metadata. A documented approximation, not ground truth.
var (
	preciousMetals = map[string]struct{}{"gold": {}, "silver": {}, "platinum": {}, "palladium": {}}
	poundMetals    = map[string]struct{}{"copper": {}, "zinc": {}, "lead": {}, "tin": {}, "nickel": {}}
)

// Reverse lookup tables, built once at init for O(1) symbol resolution of
// batched, order-independent upstream responses.
var (
	yahooToMetal = invert(yahooSymbols)
	fmpToMetal   = invert(fmpSymbols)
)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for id, sym := range m {
		out[sym] = id
	}
	return out
}

// YahooSymbol returns the Yahoo ticker for a metal ID.
func YahooSymbol(metalID string) (string, bool) {
	s, ok := yahooSymbols[metalID]
	return s, ok
}

// FMPSymbol returns the FMP symbol for a metal ID.
func FMPSymbol(metalID string) (string, bool) {
	s, ok := fmpSymbols[metalID]
	return s, ok
}

// MetalIDForYahooSymbol resolves an upstream Yahoo ticker back to a metal ID.
func MetalIDForYahooSymbol(symbol string) (string, bool) {
	id, ok := yahooToMetal[symbol]
	return id, ok
}

// MetalIDForFMPSymbol resolves an upstream FMP symbol back to a metal ID.
func MetalIDForFMPSymbol(symbol string) (string, bool) {
	id, ok := fmpToMetal[symbol]
	return id, ok
}

// YahooSymbols resolves metal IDs to Yahoo tickers, silently skipping IDs
// with no mapping.
func YahooSymbols(metalIDs []string) []string {
	out := make([]string, 0, len(metalIDs))
	for _, id := range metalIDs {
		if s, ok := yahooSymbols[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// FMPSymbols resolves metal IDs to FMP symbols, silently skipping IDs with
// no mapping.
func FMPSymbols(metalIDs []string) []string {
	out := make([]string, 0, len(metalIDs))
	for _, id := range metalIDs {
		if s, ok := fmpSymbols[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// YahooUnit returns the authoritative unit Yahoo quotes metalID in, falling
// back to the category heuristic for IDs missing from the unit table.
func YahooUnit(metalID string) units.Unit {
	if u, ok := yahooUnits[metalID]; ok {
		return u
	}
	return HeuristicUnit(metalID)
}

// HeuristicUnit guesses a quote unit from the metal's category: precious
// metals per troy ounce, the usual exchange base metals per pound, everything
// else per metric ton. Used only where an upstream exposes no unit metadata.
func HeuristicUnit(metalID string) units.Unit {
	if _, ok := preciousMetals[metalID]; ok {
		return units.TroyOunce
	}
	if _, ok := poundMetals[metalID]; ok {
		return units.Pound
	}
	return units.MetricTon
}
