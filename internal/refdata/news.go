package refdata

// NewsItem is one curated headline served by the news endpoint.
type NewsItem struct {
	ID          string `json:"id"`
	MetalID     string `json:"metalId,omitempty"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

var news = []NewsItem{
	{ID: "1", MetalID: "gold", Title: "Gold Prices Surge Amid Global Economic Uncertainty", Source: "Reuters", URL: "#", PublishedAt: "2024-01-15T10:30:00Z"},
	{ID: "2", MetalID: "lithium", Title: "Lithium Demand Expected to Triple by 2030 Due to EV Growth", Source: "Bloomberg", URL: "#", PublishedAt: "2024-01-15T09:15:00Z"},
	{ID: "3", MetalID: "copper", Title: "Copper Supply Concerns Drive Price Rally", Source: "Financial Times", URL: "#", PublishedAt: "2024-01-15T08:45:00Z"},
	{ID: "4", Title: "Central Banks Increase Precious Metal Reserves", Source: "WSJ", URL: "#", PublishedAt: "2024-01-14T16:20:00Z"},
	{ID: "5", MetalID: "nickel", Title: "Indonesia Nickel Export Ban Reshapes Global Market", Source: "CNBC", URL: "#", PublishedAt: "2024-01-14T14:00:00Z"},
}

// News returns the curated headline list.
func News() []NewsItem {
	out := make([]NewsItem, len(news))
	copy(out, news)
	return out
}
