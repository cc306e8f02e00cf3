package pricetrack

// Window is a lookback period used to pick a comparison baseline and to build a chart series.
type Window struct {
	Key        string // chart key, e.g. "7d"
	Days       int    // length of the lookback
	SummaryKey string // summary field holding the window variation, e.g. "variation_7d"
	Ranking    string // ranking artifact name, empty when the window publishes no ranking
}

// Config holds the parameters of the variation engine.
//
// It is passed explicitly to the builders so that alternate windows and
// categories can be substituted.
type Config struct {
	// Windows in display order.
	Windows []Window
	// Categories is the main category priority list used for display ordering.
	// Only these categories get their own chart series.
	Categories []string
	// RankingSize is the length of the ranking artifacts.
	RankingSize int
	// SummaryRankingSize is the length of the decreasing ranking embedded in the summary.
	SummaryRankingSize int
	// Currency is the ISO code used to display prices.
	Currency string
}

// DefaultConfig returns the configuration used for the published site.
func DefaultConfig() Config {
	return Config{
		Windows: []Window{
			{Key: "7d", Days: 7, SummaryKey: "variation_7d", Ranking: "ranking_7d"},
			{Key: "30d", Days: 30, SummaryKey: "variation_month", Ranking: "ranking_month"},
			// The 6 months window only contributes to the summary and charts.
			{Key: "6m", Days: 180, SummaryKey: "variation_6m"},
			{Key: "1y", Days: 365, SummaryKey: "variation_year", Ranking: "ranking_year"},
		},
		Categories: []string{
			"Almacén", "Frescos", "Congelados",
			"Bebidas Con Alcohol", "Bebidas Sin Alcohol",
			"Limpieza", "Cuidado Personal",
		},
		RankingSize:        20,
		SummaryRankingSize: 10,
		Currency:           "ARS",
	}
}
