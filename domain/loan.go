package domain

import (
	"encoding/json"
	"strings"
)

// Mode selects the interest model used for a loan.
type Mode string

const (
	ModeStandard     Mode = "standard"
	ModeLinearProfit Mode = "linear_profit"
)

// UnmarshalJSON accepts "islamic" as an alias of linear_profit, the name
// the dashboard toggle uses.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "islamic":
		*m = ModeLinearProfit
	default:
		*m = Mode(strings.ToLower(strings.TrimSpace(s)))
	}
	return nil
}

// LoanTerms are the inputs of a repayment calculation.
type LoanTerms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TenureYears       int     `json:"tenure_years"`
	Mode              Mode    `json:"mode"`
}

// Months is the total number of installments.
func (t LoanTerms) Months() int {
	return t.TenureYears * 12
}

type ScheduleRow struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	PrincipalPortion float64 `json:"principal_portion"`
	InterestPortion  float64 `json:"interest_portion"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// Schedule is ordered by increasing month, one row per month.
type Schedule []ScheduleRow

// Last returns the final row, or a zero row for an empty schedule.
func (s Schedule) Last() ScheduleRow {
	if len(s) == 0 {
		return ScheduleRow{}
	}
	return s[len(s)-1]
}

// Head returns at most n leading rows.
func (s Schedule) Head(n int) Schedule {
	if n > len(s) {
		n = len(s)
	}
	if n < 0 {
		n = 0
	}
	return s[:n]
}
