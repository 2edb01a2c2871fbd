package repository

import (
	"context"

	"easyqarz/domain"
)

type LoanRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
}
