// Package amortization computes fixed monthly installments and
// month-by-month repayment schedules for a loan.
//
// Two interest models are supported. Standard is a compound annuity: the
// balance accrues interest monthly and a constant installment (EMI)
// retires it over the tenure. LinearProfit charges simple profit on the
// original principal for the whole tenure and spreads principal plus
// profit evenly across the months.
//
// Every function is pure and safe for concurrent use.
package amortization

import (
	"fmt"
	"math"

	"easyqarz/domain"
)

// MaxTenureYears bounds the schedule length the engine will produce.
const MaxTenureYears = 50

// MonthlyRate converts an annual percentage rate to a monthly decimal rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 12 / 100
}

// Validate checks the loan parameters shared by both interest models.
func Validate(principal, annualRatePercent float64, tenureYears int) error {
	if principal <= 0 || math.IsNaN(principal) || math.IsInf(principal, 0) {
		return &ValidationError{Field: "principal", Value: principal, Err: ErrInvalidPrincipal}
	}
	if annualRatePercent <= 0 || math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) {
		return &ValidationError{Field: "annual_rate_percent", Value: annualRatePercent, Err: ErrInvalidRate}
	}
	if tenureYears <= 0 {
		return &ValidationError{Field: "tenure_years", Value: tenureYears, Err: ErrInvalidTenure}
	}
	if tenureYears > MaxTenureYears {
		return &ValidationError{
			Field: "tenure_years",
			Value: tenureYears,
			Err:   fmt.Errorf("%w: exceeds the maximum of %d years", ErrInvalidTenure, MaxTenureYears),
		}
	}
	return nil
}

// ValidateTerms is Validate plus a check of the interest mode.
func ValidateTerms(terms domain.LoanTerms) error {
	if err := Validate(terms.Principal, terms.AnnualRatePercent, terms.TenureYears); err != nil {
		return err
	}
	switch terms.Mode {
	case domain.ModeStandard, domain.ModeLinearProfit:
		return nil
	}
	return &ValidationError{Field: "mode", Value: terms.Mode, Err: ErrInvalidMode}
}

// StandardPayment returns the constant monthly installment that fully
// amortizes principal over tenureYears*12 months with monthly compounding.
func StandardPayment(principal, annualRatePercent float64, tenureYears int) (float64, error) {
	if err := Validate(principal, annualRatePercent, tenureYears); err != nil {
		return 0, err
	}
	return checkPayment(standardPayment(principal, MonthlyRate(annualRatePercent), tenureYears*12))
}

// standardPayment works in log space so that rates too small to change
// 1+r still yield principal/months instead of dividing by zero.
func standardPayment(principal, r float64, months int) float64 {
	exponent := float64(months) * math.Log1p(r)
	growth := math.Exp(exponent)
	return principal * r * growth / math.Expm1(exponent)
}

// checkPayment rejects installments that overflowed float64.
func checkPayment(payment float64) (float64, error) {
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return 0, &ValidationError{Field: "payment", Value: payment, Err: ErrPaymentNotFinite}
	}
	return payment, nil
}

// LinearProfitPayment returns principal plus simple profit over the whole
// tenure, divided evenly across the months.
func LinearProfitPayment(principal, annualRatePercent float64, tenureYears int) (float64, error) {
	if err := Validate(principal, annualRatePercent, tenureYears); err != nil {
		return 0, err
	}
	return checkPayment(linearProfitPayment(principal, annualRatePercent, tenureYears))
}

func linearProfitPayment(principal, annualRatePercent float64, tenureYears int) float64 {
	total := principal * (1 + (annualRatePercent/100)*float64(tenureYears))
	return total / float64(tenureYears*12)
}

// Payment dispatches to the installment formula of terms.Mode.
func Payment(terms domain.LoanTerms) (float64, error) {
	if err := ValidateTerms(terms); err != nil {
		return 0, err
	}
	if terms.Mode == domain.ModeLinearProfit {
		return checkPayment(linearProfitPayment(terms.Principal, terms.AnnualRatePercent, terms.TenureYears))
	}
	return checkPayment(standardPayment(terms.Principal, MonthlyRate(terms.AnnualRatePercent), terms.Months()))
}

// GenerateSchedule returns one row per month, in month order.
//
// In LinearProfit mode the whole installment is booked as principal and
// the interest portion is zero, so principal portions sum to the total
// repaid rather than to the original principal. Remaining balance is
// clamped at zero in both modes.
func GenerateSchedule(terms domain.LoanTerms) (domain.Schedule, error) {
	payment, err := Payment(terms)
	if err != nil {
		return nil, err
	}

	months := terms.Months()
	schedule := make(domain.Schedule, 0, months)
	balance := terms.Principal

	if terms.Mode == domain.ModeLinearProfit {
		for month := 1; month <= months; month++ {
			balance = math.Max(0, balance-payment)
			schedule = append(schedule, domain.ScheduleRow{
				Month:            month,
				Payment:          payment,
				PrincipalPortion: payment,
				InterestPortion:  0,
				RemainingBalance: balance,
			})
		}
		return schedule, nil
	}

	r := MonthlyRate(terms.AnnualRatePercent)
	for month := 1; month <= months; month++ {
		interest := balance * r
		principal := payment - interest
		balance = math.Max(0, balance-principal)
		schedule = append(schedule, domain.ScheduleRow{
			Month:            month,
			Payment:          payment,
			PrincipalPortion: principal,
			InterestPortion:  interest,
			RemainingBalance: balance,
		})
	}
	return schedule, nil
}
