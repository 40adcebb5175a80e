// Package marketcap derives dashboard figures (market cap, changes, ATH
// distance, sparklines) from a live quote and the reference record.
package marketcap

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"metaldash/internal/provider"
	"metaldash/internal/refdata"
	"metaldash/internal/units"
)

// Derived holds the figures computed from one quote.
type Derived struct {
	MarketCap      int64
	Change24h      float64
	Change7d       float64
	ATHPrice       float64
	ATHDate        time.Time
	PercentFromATH float64
	Sparkline      []float64
}

// Compute derives the dashboard figures for one metal. Market cap is supply
// in tons times the per-ton price, rounded to whole dollars. A price above
// the recorded all-time high becomes the new high as of now.
func Compute(q provider.Quote, ref refdata.Metal, now time.Time, rng *rand.Rand) Derived {
	perTon := units.PerTon(q.Price, q.Unit)

	mcap := decimal.NewFromFloat(ref.SupplyTons).
		Mul(decimal.NewFromFloat(perTon)).
		Round(0).
		IntPart()

	change24h := q.ChangePercent
	if q.PreviousClose > 0 {
		change24h = (q.Price - q.PreviousClose) / q.PreviousClose * 100
	}

	d := Derived{
		MarketCap: mcap,
		Change24h: change24h,
		// the quote APIs expose no weekly figure; the daily percentage
		// stands in for it
		Change7d:  q.ChangePercent,
		ATHPrice:  ref.ATHPrice,
		ATHDate:   ref.ATHDate,
		Sparkline: Sparkline(q.Price, q.ChangePercent, rng),
	}
	if q.Price > d.ATHPrice {
		d.ATHPrice = q.Price
		d.ATHDate = now
		d.PercentFromATH = 0
	} else if d.ATHPrice > 0 {
		d.PercentFromATH = (q.Price - d.ATHPrice) / d.ATHPrice * 100
	}
	return d
}

// Sparkline builds a 7-point series ramping from the price implied by the
// change percentage up to the current price, with a small random wobble.
func Sparkline(price, changePercent float64, rng *rand.Rand) []float64 {
	base := price * (1 - changePercent/100)
	points := make([]float64, 7)
	for i := range points {
		progress := float64(i) / 6
		noise := (rng.Float64() - 0.5) * price * 0.01
		points[i] = round2(base + (price-base)*progress + noise)
	}
	return points
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
