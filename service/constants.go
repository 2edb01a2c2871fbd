package service

import "easyqarz/amortization"

const (
	MaxPrincipal         = 1_000_000_000.0 // 1 billion
	MaxAnnualRatePercent = 1000.0          // 1000% per year
	MaxTenureYears       = amortization.MaxTenureYears
	MinTenureYears       = 1

	// PreviewMonths is the number of schedule rows shown in the table.
	PreviewMonths = 12

	seriesPrincipal = "Principal"
	seriesInterest  = "Interest"
)
