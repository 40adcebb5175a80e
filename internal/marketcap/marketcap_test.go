package marketcap_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"metaldash/internal/marketcap"
	"metaldash/internal/provider"
	"metaldash/internal/refdata"
	"metaldash/internal/units"
)

func TestCompute_MarketCapWholeDollars(t *testing.T) {
	t.Parallel()

	q := provider.Quote{Price: 2000, Unit: units.TroyOunce, PreviousClose: 1980, ChangePercent: 1.01}
	ref := refdata.Metal{SupplyTons: 1.5, ATHPrice: 2790.07, ATHDate: time.Date(2024, 10, 30, 0, 0, 0, 0, time.UTC)}

	d := marketcap.Compute(q, ref, time.Now(), rand.New(rand.NewSource(1)))

	// 1.5 tons * 2000 * 32150.7 oz/ton = 96,452,100
	require.Equal(t, int64(96452100), d.MarketCap)
	require.InDelta(t, (2000.0-1980.0)/1980.0*100, d.Change24h, 1e-9)
	require.Negative(t, d.PercentFromATH)
	require.Equal(t, ref.ATHPrice, d.ATHPrice)
}

func TestCompute_NewAllTimeHigh(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	q := provider.Quote{Price: 3000, Unit: units.TroyOunce, PreviousClose: 2950}
	ref := refdata.Metal{SupplyTons: 1, ATHPrice: 2790.07, ATHDate: time.Date(2024, 10, 30, 0, 0, 0, 0, time.UTC)}

	d := marketcap.Compute(q, ref, now, rand.New(rand.NewSource(1)))

	require.Equal(t, 3000.0, d.ATHPrice)
	require.Equal(t, now, d.ATHDate)
	require.Zero(t, d.PercentFromATH)
}

func TestSparkline_ShapeAndBounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	points := marketcap.Sparkline(2000, 2.0, rng)

	require.Len(t, points, 7)
	base := 2000 * (1 - 0.02)
	for i, p := range points {
		// each point sits on the ramp plus at most half a percent of noise
		progress := float64(i) / 6
		expected := base + (2000-base)*progress
		require.InDeltaf(t, expected, p, 2000*0.005+0.01, "point %d", i)
	}
	// last point lands at the current price give or take noise
	require.InDelta(t, 2000, points[6], 2000*0.005+0.01)
}
