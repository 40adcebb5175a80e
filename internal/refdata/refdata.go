package refdata

import (
	"time"

	"metaldash/internal/units"
)

// Category groups metals for presentation and for the unit heuristic.
type Category string

const (
	Precious   Category = "precious"
	Industrial Category = "industrial"
	Battery    Category = "battery"
)

// Metal is the static reference record for one commodity. Prices and change
// fields are the last known baseline, served verbatim when every live
// provider is down; supply, demand and production are in metric tons.
type Metal struct {
	ID             string
	Name           string
	Symbol         string
	Category       Category
	Price          float64
	Unit           units.Unit
	Change24h      float64
	Change7d       float64
	MarketCap      float64
	SupplyTons     float64
	DemandTons     float64
	ProductionTons float64
	ATHPrice       float64
	ATHDate        time.Time
	Description    string
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var metals = []Metal{
	{
		ID: "gold", Name: "Gold", Symbol: "XAU", Category: Precious,
		Price: 2063.45, Unit: units.TroyOunce, Change24h: 1.23, Change7d: 3.45,
		MarketCap:  13_500_000_000_000,
		SupplyTons: 216_265, DemandTons: 4_500, ProductionTons: 3_500,
		ATHPrice: 2790.07, ATHDate: date(2024, time.October, 30),
		Description: "Gold is a dense, soft, malleable metal with a bright yellow luster and one of the least reactive chemical elements. Prized for coinage, jewelry and the arts since before recorded history, today it serves investment, jewelry and industrial uses and acts as a hedge against inflation and a store of value.",
	},
	{
		ID: "silver", Name: "Silver", Symbol: "XAG", Category: Precious,
		Price: 24.18, Unit: units.TroyOunce, Change24h: 2.15, Change7d: 5.32,
		MarketCap:  1_400_000_000_000,
		SupplyTons: 1_700_000, DemandTons: 30_000, ProductionTons: 26_000,
		ATHPrice: 49.45, ATHDate: date(2011, time.April, 25),
		Description: "Silver is a lustrous white metal with the highest electrical and thermal conductivity of any element. Used for millennia in jewelry and currency, it is now critical to electronics, solar panels and medical equipment, straddling the line between precious-metal investment and industrial commodity.",
	},
	{
		ID: "platinum", Name: "Platinum", Symbol: "XPT", Category: Precious,
		Price: 912.34, Unit: units.TroyOunce, Change24h: -0.45, Change7d: -1.23,
		MarketCap:  185_000_000_000,
		SupplyTons: 8_000, DemandTons: 250, ProductionTons: 190,
		ATHPrice: 2290.00, ATHDate: date(2008, time.March, 4),
		Description: "Platinum is a dense, malleable, highly unreactive precious metal, rarer than gold. It is primarily used in automotive catalytic converters, jewelry, laboratory equipment and dentistry. South Africa supplies roughly seventy percent of world production.",
	},
	{
		ID: "palladium", Name: "Palladium", Symbol: "XPD", Category: Precious,
		Price: 1034.67, Unit: units.TroyOunce, Change24h: 1.89, Change7d: 4.12,
		MarketCap:  95_000_000_000,
		SupplyTons: 7_000, DemandTons: 300, ProductionTons: 210,
		ATHPrice: 3440.76, ATHDate: date(2022, time.March, 7),
		Description: "Palladium is a rare silvery-white platinum-group metal. The automotive industry accounts for about 85% of demand through catalytic converters for gasoline engines; Russia and South Africa are the largest producers.",
	},
	{
		ID: "copper", Name: "Copper", Symbol: "HG", Category: Industrial,
		Price: 3.74, Unit: units.Pound, Change24h: 0.87, Change7d: 2.34,
		MarketCap:  980_000_000_000,
		SupplyTons: 1_000_000_000, DemandTons: 28_000_000, ProductionTons: 23_000_000,
		ATHPrice: 5.20, ATHDate: date(2024, time.May, 20),
		Description: "Copper is a reddish-brown metal with excellent electrical and thermal conductivity, essential to modern infrastructure through wiring, plumbing and electronics. Its breadth of use in construction and manufacturing makes it a common economic indicator.",
	},
	{
		ID: "aluminum", Name: "Aluminum", Symbol: "ALU", Category: Industrial,
		Price: 2289.75, Unit: units.MetricTon, Change24h: -0.34, Change7d: 1.12,
		MarketCap:  450_000_000_000,
		SupplyTons: 1_200_000_000, DemandTons: 70_000_000, ProductionTons: 73_000_000,
		ATHPrice: 3849.00, ATHDate: date(2022, time.March, 7),
		Description: "Aluminum is a lightweight, corrosion-resistant metal and the most abundant metal in the Earth's crust, used extensively in transportation, packaging, construction and electronics. Its energy-intensive smelting makes electricity cost a key pricing factor.",
	},
	{
		ID: "lithium", Name: "Lithium", Symbol: "Li", Category: Battery,
		Price: 18_500.00, Unit: units.MetricTon, Change24h: 3.45, Change7d: 8.76,
		MarketCap:  125_000_000_000,
		SupplyTons: 28_000_000, DemandTons: 200_000, ProductionTons: 240_000,
		ATHPrice: 86_000, ATHDate: date(2022, time.November, 14),
		Description: "Lithium is the lightest of all metals and the backbone of rechargeable batteries for electric vehicles, phones and laptops. Demand has surged with the shift to electric mobility; Australia, Chile and China lead production.",
	},
	{
		ID: "nickel", Name: "Nickel", Symbol: "NI", Category: Battery,
		Price: 17_820.25, Unit: units.MetricTon, Change24h: 1.56, Change7d: 3.21,
		MarketCap:  78_000_000_000,
		SupplyTons: 130_000_000, DemandTons: 3_500_000, ProductionTons: 3_700_000,
		ATHPrice: 48_241, ATHDate: date(2022, time.March, 8),
		Description: "Nickel is a hard, ductile, corrosion-resistant metal used primarily in stainless steel and increasingly in electric-vehicle batteries. Indonesia and the Philippines are major producers.",
	},
	{
		ID: "zinc", Name: "Zinc", Symbol: "ZN", Category: Industrial,
		Price: 1.16, Unit: units.Pound, Change24h: -0.89, Change7d: -2.15,
		MarketCap:  65_000_000_000,
		SupplyTons: 224_000_000, DemandTons: 14_000_000, ProductionTons: 12_000_000,
		ATHPrice: 2.10, ATHDate: date(2006, time.November, 24),
		Description: "Zinc is a bluish-white metal mainly used to galvanize steel against rust, plus alloys such as brass, die casting and batteries. China is the largest producer and consumer.",
	},
	{
		ID: "cobalt", Name: "Cobalt", Symbol: "Co", Category: Battery,
		Price: 28_900.00, Unit: units.MetricTon, Change24h: 2.34, Change7d: 5.67,
		MarketCap:  42_000_000_000,
		SupplyTons: 11_000_000, DemandTons: 220_000, ProductionTons: 290_000,
		ATHPrice: 95_250, ATHDate: date(2018, time.March, 21),
		Description: "Cobalt is a hard, lustrous metal essential for lithium-ion battery cathodes, obtained mostly as a byproduct of copper and nickel mining. The Democratic Republic of Congo produces over seventy percent of world supply.",
	},
	{
		ID: "lead", Name: "Lead", Symbol: "PB", Category: Industrial,
		Price: 0.95, Unit: units.Pound, Change24h: 0.45, Change7d: 1.23,
		MarketCap:  38_000_000_000,
		SupplyTons: 90_000_000, DemandTons: 13_000_000, ProductionTons: 4_500_000,
		ATHPrice: 1.80, ATHDate: date(2007, time.October, 15),
		Description: "Lead is a heavy, soft, malleable metal that remains important for lead-acid batteries in vehicles, backup power and energy storage, with most demand met through recycling. China is the largest producer and consumer.",
	},
	{
		ID: "tin", Name: "Tin", Symbol: "SN", Category: Industrial,
		Price: 11.64, Unit: units.Pound, Change24h: 1.12, Change7d: 2.89,
		MarketCap:  28_000_000_000,
		SupplyTons: 4_900_000, DemandTons: 380_000, ProductionTons: 300_000,
		ATHPrice: 22.00, ATHDate: date(2022, time.March, 8),
		Description: "Tin is a soft, silvery-white metal used since antiquity in bronze and today mainly in electronics solder and food-grade plating. China and Indonesia are the largest producers; prices track electronics manufacturing demand.",
	},
}

var byID = func() map[string]Metal {
	m := make(map[string]Metal, len(metals))
	for _, mt := range metals {
		m[mt.ID] = mt
	}
	return m
}()

// All returns the full reference list in canonical order. The returned slice
// is a copy; callers may reorder it freely.
func All() []Metal {
	out := make([]Metal, len(metals))
	copy(out, metals)
	return out
}

// ByID returns the reference record for a metal ID.
func ByID(id string) (Metal, bool) {
	m, ok := byID[id]
	return m, ok
}

// IDs returns every known metal ID in canonical order.
func IDs() []string {
	out := make([]string, 0, len(metals))
	for _, m := range metals {
		out = append(out, m.ID)
	}
	return out
}
