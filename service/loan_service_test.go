package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"easyqarz/amortization"
	"easyqarz/domain"
	"easyqarz/repository"
)

// MockLoanRepository is a mock implementation of repository.LoanRepository.
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Save(ctx context.Context, record domain.CalculationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func newTestService(t *testing.T) (*LoanService, *MockLoanRepository, *repository.MemoryCache) {
	t.Helper()
	repo := &MockLoanRepository{}
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	cache := repository.NewMemoryCache(0)
	return NewLoanService(repo, cache, nil), repo, cache
}

func referenceTerms(mode domain.Mode) domain.LoanTerms {
	return domain.LoanTerms{
		Principal:         1_000_000,
		AnnualRatePercent: 15,
		TenureYears:       5,
		Mode:              mode,
	}
}

func TestCalculate_Standard(t *testing.T) {
	svc, repo, _ := newTestService(t)

	summary, err := svc.Calculate(context.Background(), referenceTerms(domain.ModeStandard))
	require.NoError(t, err)

	assert.Equal(t, 23789.93, summary.MonthlyPayment)
	assert.Equal(t, 1427395.81, summary.TotalPayment)
	assert.Equal(t, 427395.81, summary.TotalInterest)

	require.Len(t, summary.Schedule, 60)
	require.Len(t, summary.Preview, PreviewMonths)
	require.Len(t, summary.Series, 60)
	assert.Equal(t, summary.Schedule[:12], summary.Preview)
	assert.Equal(t, 12500.0, summary.Schedule[0].InterestPortion)
	assert.Zero(t, summary.Schedule.Last().RemainingBalance)

	assert.Equal(t, []string{"Principal", "Interest"}, summary.SeriesNames)
	assert.Equal(t, []domain.CompositionSlice{
		{Name: "Principal", Value: 1_000_000},
		{Name: "Interest", Value: 427395.81},
	}, summary.Composition)

	last := summary.Series[59]
	assert.InDelta(t, 1_000_000, last.CumulativePrincipal, 0.01)
	assert.InDelta(t, 427395.81, last.CumulativeInterest, 0.01)

	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestCalculate_LinearProfit(t *testing.T) {
	svc, _, _ := newTestService(t)

	summary, err := svc.Calculate(context.Background(), referenceTerms(domain.ModeLinearProfit))
	require.NoError(t, err)

	assert.Equal(t, 29166.67, summary.MonthlyPayment)
	assert.Equal(t, 1_750_000.0, summary.TotalPayment)
	assert.Zero(t, summary.TotalInterest)

	assert.Equal(t, []string{"Principal"}, summary.SeriesNames)
	assert.Equal(t, []domain.CompositionSlice{{Name: "Principal", Value: 1_000_000}}, summary.Composition)

	for _, row := range summary.Preview {
		assert.Equal(t, row.Payment, row.PrincipalPortion)
		assert.Zero(t, row.InterestPortion)
	}
	assert.InDelta(t, 1_750_000, summary.Series[59].CumulativePrincipal, 0.01)
	assert.Zero(t, summary.Series[59].CumulativeInterest)
}

func TestCalculate_DefaultsToStandard(t *testing.T) {
	svc, _, _ := newTestService(t)

	summary, err := svc.Calculate(context.Background(), referenceTerms(""))
	require.NoError(t, err)

	assert.Equal(t, domain.ModeStandard, summary.Terms.Mode)
	assert.Equal(t, 23789.93, summary.MonthlyPayment)
}

func TestCalculate_ShortTenurePreview(t *testing.T) {
	svc, _, _ := newTestService(t)
	terms := referenceTerms(domain.ModeStandard)
	terms.TenureYears = 1

	summary, err := svc.Calculate(context.Background(), terms)
	require.NoError(t, err)
	assert.Len(t, summary.Schedule, 12)
	assert.Len(t, summary.Preview, 12)
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		terms domain.LoanTerms
		want  error
	}{
		{"zero principal", domain.LoanTerms{Principal: 0, AnnualRatePercent: 10, TenureYears: 1}, amortization.ErrInvalidPrincipal},
		{"principal over cap", domain.LoanTerms{Principal: MaxPrincipal + 1, AnnualRatePercent: 10, TenureYears: 1}, amortization.ErrInvalidPrincipal},
		{"zero rate", domain.LoanTerms{Principal: 1000, AnnualRatePercent: 0, TenureYears: 1}, amortization.ErrInvalidRate},
		{"rate over cap", domain.LoanTerms{Principal: 1000, AnnualRatePercent: MaxAnnualRatePercent + 1, TenureYears: 1}, amortization.ErrInvalidRate},
		{"zero tenure", domain.LoanTerms{Principal: 1000, AnnualRatePercent: 10, TenureYears: 0}, amortization.ErrInvalidTenure},
		{"tenure over cap", domain.LoanTerms{Principal: 1000, AnnualRatePercent: 10, TenureYears: MaxTenureYears + 1}, amortization.ErrInvalidTenure},
		{"unknown mode", domain.LoanTerms{Principal: 1000, AnnualRatePercent: 10, TenureYears: 1, Mode: "balloon"}, amortization.ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newTestService(t)

			_, err := svc.Calculate(context.Background(), tt.terms)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, amortization.IsValidation(err))

			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			assert.Zero(t, cache.Len())
		})
	}
}

func TestCalculate_TinyRate(t *testing.T) {
	svc, _, _ := newTestService(t)

	summary, err := svc.Calculate(context.Background(), domain.LoanTerms{
		Principal:         1_000_000,
		AnnualRatePercent: 1e-15,
		TenureYears:       5,
	})
	require.NoError(t, err)

	assert.Equal(t, 16666.67, summary.MonthlyPayment)
	assert.Equal(t, 1_000_000.0, summary.TotalPayment)
	assert.Zero(t, summary.TotalInterest)
	require.Len(t, summary.Schedule, 60)
}

func TestCalculate_UsesCache(t *testing.T) {
	svc, repo, cache := newTestService(t)
	ctx := context.Background()

	first, err := svc.Calculate(ctx, referenceTerms(domain.ModeStandard))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := svc.Calculate(ctx, referenceTerms(domain.ModeStandard))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())

	_, err = svc.Calculate(ctx, referenceTerms(domain.ModeLinearProfit))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	repo.AssertNumberOfCalls(t, "Save", 3)
}

func TestCalculate_RedisCache(t *testing.T) {
	s := miniredis.RunT(t)
	cache, err := repository.NewRedisCache(context.Background(), repository.RedisOptions{Addr: s.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	repo := repository.NewLoanRepositoryMemory(0)
	svc := NewLoanService(repo, cache, nil)
	terms := referenceTerms(domain.ModeStandard)

	first, err := svc.Calculate(context.Background(), terms)
	require.NoError(t, err)
	assert.True(t, s.Exists("easyqarz:"+cacheKey(terms)))

	second, err := svc.Calculate(context.Background(), terms)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, repo.List(), 2)
}

func TestCalculate_IgnoresCorruptCacheEntry(t *testing.T) {
	svc, _, cache := newTestService(t)
	ctx := context.Background()
	terms := referenceTerms(domain.ModeStandard)
	require.NoError(t, cache.Set(ctx, cacheKey(terms), "{not json"))

	summary, err := svc.Calculate(ctx, terms)
	require.NoError(t, err)
	assert.Equal(t, 23789.93, summary.MonthlyPayment)

	raw, ok := cache.Get(ctx, cacheKey(terms))
	require.True(t, ok)
	assert.NotEqual(t, "{not json", raw)
}

func TestCalculate_RepositoryFailureIsNotFatal(t *testing.T) {
	repo := &MockLoanRepository{}
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("save error"))
	svc := NewLoanService(repo, repository.NewMemoryCache(0), nil)

	summary, err := svc.Calculate(context.Background(), referenceTerms(domain.ModeStandard))
	require.NoError(t, err)
	assert.Equal(t, 23789.93, summary.MonthlyPayment)
	repo.AssertExpectations(t)
}

func TestCalculate_RecordsCalculation(t *testing.T) {
	repo := repository.NewLoanRepositoryMemory(0)
	svc := NewLoanService(repo, repository.NewMemoryCache(0), nil)

	_, err := svc.Calculate(context.Background(), referenceTerms(domain.ModeLinearProfit))
	require.NoError(t, err)

	records := repo.List()
	require.Len(t, records, 1)
	assert.Equal(t, domain.ModeLinearProfit, records[0].Terms.Mode)
	assert.Equal(t, 29166.67, records[0].MonthlyPayment)
	assert.NotEmpty(t, records[0].ID.String())
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestCalculate_CanceledContext(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Calculate(ctx, referenceTerms(domain.ModeStandard))
	assert.ErrorIs(t, err, context.Canceled)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCompare(t *testing.T) {
	svc, _, _ := newTestService(t)

	cmp, err := svc.Compare(context.Background(), 1_000_000, 15, 5)
	require.NoError(t, err)

	assert.Equal(t, domain.ModeStandard, cmp.Standard.Terms.Mode)
	assert.Equal(t, domain.ModeLinearProfit, cmp.LinearProfit.Terms.Mode)
	assert.Equal(t, domain.PaymentDifference{MonthlyPayment: 5376.74, TotalPayment: 322604.19}, cmp.Difference)
}

func TestCompare_InvalidInput(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Compare(context.Background(), 1_000_000, 15, 0)
	assert.ErrorIs(t, err, amortization.ErrInvalidTenure)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 1.01, roundMoney(1.005))
	assert.Equal(t, 23789.93, roundMoney(23789.93008635879))
	assert.Equal(t, -2.5, roundMoney(-2.499))
	assert.Equal(t, 0.3, subtractMoney(0.5, 0.2))
}
