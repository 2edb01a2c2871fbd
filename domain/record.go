package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalculationRecord is the audit entry kept for every computed summary.
type CalculationRecord struct {
	ID             uuid.UUID
	Terms          LoanTerms
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
	CreatedAt      time.Time
}
