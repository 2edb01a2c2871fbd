package service

import "easyqarz/domain"

// buildSummary turns a computed schedule into the figures a dashboard
// renders. Money values are rounded to 2 decimals; the schedule math is
// done on unrounded values.
func buildSummary(
	terms domain.LoanTerms,
	payment float64,
	schedule domain.Schedule,
) domain.LoanSummary {
	totalPayment := payment * float64(terms.Months())

	// Linear-profit financing is shown without an interest figure.
	totalInterest := 0.0
	if terms.Mode == domain.ModeStandard {
		totalInterest = totalPayment - terms.Principal
	}

	rounded := roundSchedule(schedule)

	return domain.LoanSummary{
		Terms:          terms,
		MonthlyPayment: roundMoney(payment),
		TotalPayment:   roundMoney(totalPayment),
		TotalInterest:  roundMoney(totalInterest),
		Composition:    composition(terms, totalInterest),
		SeriesNames:    seriesNames(terms.Mode),
		Series:         chartSeries(schedule),
		Preview:        rounded.Head(PreviewMonths),
		Schedule:       rounded,
	}
}

func composition(terms domain.LoanTerms, totalInterest float64) []domain.CompositionSlice {
	slices := []domain.CompositionSlice{
		{Name: seriesPrincipal, Value: roundMoney(terms.Principal)},
	}
	if terms.Mode == domain.ModeStandard {
		slices = append(slices, domain.CompositionSlice{Name: seriesInterest, Value: roundMoney(totalInterest)})
	}
	return slices
}

func seriesNames(mode domain.Mode) []string {
	if mode == domain.ModeLinearProfit {
		return []string{seriesPrincipal}
	}
	return []string{seriesPrincipal, seriesInterest}
}

func chartSeries(schedule domain.Schedule) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0, len(schedule))
	var cumPrincipal, cumInterest float64
	for _, row := range schedule {
		cumPrincipal += row.PrincipalPortion
		cumInterest += row.InterestPortion
		points = append(points, domain.ChartPoint{
			Month:               row.Month,
			Principal:           roundMoney(row.PrincipalPortion),
			Interest:            roundMoney(row.InterestPortion),
			CumulativePrincipal: roundMoney(cumPrincipal),
			CumulativeInterest:  roundMoney(cumInterest),
		})
	}
	return points
}

func roundSchedule(schedule domain.Schedule) domain.Schedule {
	out := make(domain.Schedule, len(schedule))
	for i, row := range schedule {
		out[i] = domain.ScheduleRow{
			Month:            row.Month,
			Payment:          roundMoney(row.Payment),
			PrincipalPortion: roundMoney(row.PrincipalPortion),
			InterestPortion:  roundMoney(row.InterestPortion),
			RemainingBalance: roundMoney(row.RemainingBalance),
		}
	}
	return out
}
