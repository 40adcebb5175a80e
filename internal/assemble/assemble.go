// Package assemble merges live quotes with the reference records into the
// ranked dashboard payload.
package assemble

import (
	"math/rand"
	"sort"
	"time"

	"metaldash/internal/marketcap"
	"metaldash/internal/pricefeed"
	"metaldash/internal/provider"
	"metaldash/internal/refdata"
)

// Record is one dashboard row.
type Record struct {
	ID             string    `json:"id"`
	Rank           int       `json:"rank"`
	Name           string    `json:"name"`
	Symbol         string    `json:"symbol"`
	Category       string    `json:"category"`
	Price          float64   `json:"price"`
	PriceUnit      string    `json:"priceUnit"`
	Change24h      float64   `json:"change24h"`
	Change7d       float64   `json:"change7d"`
	MarketCap      int64     `json:"marketCap"`
	Supply         float64   `json:"supply"`
	Demand         float64   `json:"demand"`
	Production     float64   `json:"production"`
	SparklineData  []float64 `json:"sparklineData"`
	IsMockData     bool      `json:"isMockData"`
	ATHPrice       float64   `json:"athPrice,omitempty"`
	ATHDate        string    `json:"athDate,omitempty"`
	PercentFromATH float64   `json:"percentFromAth"`
	Description    string    `json:"description,omitempty"`
}

// Merge builds one record per reference metal. Metals with a live quote get
// computed figures; the rest carry the reference baseline flagged as mock.
// Records are ranked by descending market cap, ties kept in reference order.
func Merge(metals []refdata.Metal, res pricefeed.Result, now time.Time, rng *rand.Rand) []Record {
	records := make([]Record, 0, len(metals))
	for _, m := range metals {
		q, live := res.Quotes[m.ID]
		if live && !res.Synthetic {
			records = append(records, liveRecord(m, q, now, rng))
		} else {
			records = append(records, baselineRecord(m, rng))
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MarketCap > records[j].MarketCap
	})
	for i := range records {
		records[i].Rank = i + 1
	}
	return records
}

func liveRecord(m refdata.Metal, q provider.Quote, now time.Time, rng *rand.Rand) Record {
	d := marketcap.Compute(q, m, now, rng)
	return Record{
		ID:             m.ID,
		Name:           m.Name,
		Symbol:         m.Symbol,
		Category:       string(m.Category),
		Price:          q.Price,
		PriceUnit:      string(q.Unit),
		Change24h:      d.Change24h,
		Change7d:       d.Change7d,
		MarketCap:      d.MarketCap,
		Supply:         m.SupplyTons,
		Demand:         m.DemandTons,
		Production:     m.ProductionTons,
		SparklineData:  d.Sparkline,
		ATHPrice:       d.ATHPrice,
		ATHDate:        formatDate(d.ATHDate),
		PercentFromATH: d.PercentFromATH,
		Description:    m.Description,
	}
}

func baselineRecord(m refdata.Metal, rng *rand.Rand) Record {
	pctFromATH := 0.0
	if m.ATHPrice > 0 && m.Price <= m.ATHPrice {
		pctFromATH = (m.Price - m.ATHPrice) / m.ATHPrice * 100
	}
	return Record{
		ID:             m.ID,
		Name:           m.Name,
		Symbol:         m.Symbol,
		Category:       string(m.Category),
		Price:          m.Price,
		PriceUnit:      string(m.Unit),
		Change24h:      m.Change24h,
		Change7d:       m.Change7d,
		MarketCap:      int64(m.MarketCap),
		Supply:         m.SupplyTons,
		Demand:         m.DemandTons,
		Production:     m.ProductionTons,
		SparklineData:  marketcap.Sparkline(m.Price, m.Change7d, rng),
		IsMockData:     true,
		ATHPrice:       m.ATHPrice,
		ATHDate:        formatDate(m.ATHDate),
		PercentFromATH: pctFromATH,
		Description:    m.Description,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
