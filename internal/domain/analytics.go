package domain

// AnalyticsSummary is the headline dashboard figures.
type AnalyticsSummary struct {
	Revenue        float64 `json:"revenue"`
	Orders         int     `json:"orders"`
	Visitors       int     `json:"visitors"`
	ConversionRate float64 `json:"conversionRate"`
}

// SalesPoint is one bucket of the sales chart.
type SalesPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// VisitorPoint is one bucket of the visitors chart.
type VisitorPoint struct {
	Date     string `json:"date"`
	Visitors int    `json:"visitors"`
}

// BestSeller is one row of the best-sellers ranking.
type BestSeller struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}
