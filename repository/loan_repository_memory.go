package repository

import (
	"context"
	"sync"

	"easyqarz/domain"
)

// LoanRepositoryMemory is an in-memory, bounded implementation of
// LoanRepository. Records live only as long as the process.
type LoanRepositoryMemory struct {
	mu         sync.Mutex
	maxEntries int
	data       []domain.CalculationRecord
}

// NewLoanRepositoryMemory creates a repository that keeps at most
// maxEntries records, dropping the oldest first. Zero means unbounded.
func NewLoanRepositoryMemory(maxEntries int) *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		maxEntries: maxEntries,
		data:       []domain.CalculationRecord{},
	}
}

// Save stores the calculation record in memory.
func (r *LoanRepositoryMemory) Save(
	ctx context.Context,
	record domain.CalculationRecord,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, record)
	if r.maxEntries > 0 && len(r.data) > r.maxEntries {
		r.data = append([]domain.CalculationRecord(nil), r.data[len(r.data)-r.maxEntries:]...)
	}
	return nil
}

// List returns a copy of the stored records, oldest first.
func (r *LoanRepositoryMemory) List() []domain.CalculationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.CalculationRecord, len(r.data))
	copy(out, r.data)
	return out
}
