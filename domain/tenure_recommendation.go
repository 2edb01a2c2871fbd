package domain

type TenureRecommendationInput struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	Mode              Mode    `json:"mode"`
	MinTenureYears    int     `json:"min_tenure_years"`
	MaxTenureYears    int     `json:"max_tenure_years"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment"`
	Preference        string  `json:"preference"` // "minimize_cost", "minimize_payment", "balanced"
}

type TenureRecommendation struct {
	TenureYears    int     `json:"tenure_years"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalCost      float64 `json:"total_cost"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TenureRecommendationResult struct {
	RecommendedTenure int                    `json:"recommended_tenure"`
	Recommendations   []TenureRecommendation `json:"recommendations"`
}
