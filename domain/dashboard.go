package domain

// CompositionSlice is one wedge of the payment composition chart.
type CompositionSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ChartPoint is one month of the payment schedule chart.
type ChartPoint struct {
	Month               int     `json:"month"`
	Principal           float64 `json:"principal"`
	Interest            float64 `json:"interest"`
	CumulativePrincipal float64 `json:"cumulative_principal"`
	CumulativeInterest  float64 `json:"cumulative_interest"`
}

type LoanSummary struct {
	Terms          LoanTerms          `json:"terms"`
	MonthlyPayment float64            `json:"monthly_payment"`
	TotalPayment   float64            `json:"total_payment"`
	TotalInterest  float64            `json:"total_interest"`
	Composition    []CompositionSlice `json:"composition"`
	SeriesNames    []string           `json:"series_names"`
	Series         []ChartPoint       `json:"series"`
	Preview        Schedule           `json:"preview"`
	Schedule       Schedule           `json:"schedule"`
}

// ModeComparison holds both interest models for the same terms.
type ModeComparison struct {
	Standard     LoanSummary       `json:"standard"`
	LinearProfit LoanSummary       `json:"linear_profit"`
	Difference   PaymentDifference `json:"difference"`
}

// PaymentDifference is linear-profit minus standard.
type PaymentDifference struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
}
