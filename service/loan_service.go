package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"easyqarz/amortization"
	"easyqarz/domain"
	"easyqarz/repository"
)

type LoanService struct {
	repo   repository.LoanRepository
	cache  repository.CacheRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewLoanService creates a new LoanService with the given repository and cache.
func NewLoanService(
	repo repository.LoanRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *LoanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanService{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("loan"),
		now:    time.Now,
	}
}

// Calculate computes the monthly payment, aggregates, chart data and
// repayment schedule for the given terms. An empty mode means Standard.
func (s *LoanService) Calculate(
	ctx context.Context,
	terms domain.LoanTerms,
) (domain.LoanSummary, error) {
	terms = normalizeTerms(terms)
	if err := validateTerms(terms); err != nil {
		return domain.LoanSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.LoanSummary{}, err
	}

	key := cacheKey(terms)
	summary, ok := s.cached(ctx, key)
	if !ok {
		payment, err := amortization.Payment(terms)
		if err != nil {
			return domain.LoanSummary{}, err
		}
		schedule, err := amortization.GenerateSchedule(terms)
		if err != nil {
			return domain.LoanSummary{}, err
		}
		summary = buildSummary(terms, payment, schedule)
		s.store(ctx, key, summary)
	}

	// Saving the record is not critical
	record := domain.CalculationRecord{
		ID:             uuid.New(),
		Terms:          terms,
		MonthlyPayment: summary.MonthlyPayment,
		TotalPayment:   summary.TotalPayment,
		TotalInterest:  summary.TotalInterest,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Warn("failed to save loan calculation", zap.Error(err))
	}

	s.logger.Debug("loan calculated",
		zap.String("id", record.ID.String()),
		zap.String("mode", string(terms.Mode)),
		zap.Bool("cached", ok),
		zap.Float64("monthly_payment", summary.MonthlyPayment))

	return summary, nil
}

// Compare calculates the same principal, rate and tenure under both
// interest models. Differences are linear-profit minus standard.
func (s *LoanService) Compare(
	ctx context.Context,
	principal float64,
	annualRatePercent float64,
	tenureYears int,
) (domain.ModeComparison, error) {
	terms := domain.LoanTerms{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TenureYears:       tenureYears,
		Mode:              domain.ModeStandard,
	}

	standard, err := s.Calculate(ctx, terms)
	if err != nil {
		return domain.ModeComparison{}, err
	}

	terms.Mode = domain.ModeLinearProfit
	linear, err := s.Calculate(ctx, terms)
	if err != nil {
		return domain.ModeComparison{}, err
	}

	return domain.ModeComparison{
		Standard:     standard,
		LinearProfit: linear,
		Difference: domain.PaymentDifference{
			MonthlyPayment: subtractMoney(linear.MonthlyPayment, standard.MonthlyPayment),
			TotalPayment:   subtractMoney(linear.TotalPayment, standard.TotalPayment),
		},
	}, nil
}

func (s *LoanService) cached(ctx context.Context, key string) (domain.LoanSummary, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.LoanSummary{}, false
	}
	var summary domain.LoanSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return domain.LoanSummary{}, false
	}
	return summary, true
}

func (s *LoanService) store(ctx context.Context, key string, summary domain.LoanSummary) {
	raw, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn("failed to encode loan summary for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		s.logger.Warn("failed to cache loan summary", zap.String("key", key), zap.Error(err))
	}
}

func normalizeTerms(terms domain.LoanTerms) domain.LoanTerms {
	if terms.Mode == "" {
		terms.Mode = domain.ModeStandard
	}
	return terms
}

// validateTerms applies the engine's checks and the service's caps on
// principal and rate. Tenure is bounded by the engine.
func validateTerms(terms domain.LoanTerms) error {
	if err := amortization.ValidateTerms(terms); err != nil {
		return err
	}
	if terms.Principal > MaxPrincipal {
		return &amortization.ValidationError{
			Field: "principal",
			Value: terms.Principal,
			Err:   fmt.Errorf("%w: exceeds the maximum of %.2f", amortization.ErrInvalidPrincipal, MaxPrincipal),
		}
	}
	if terms.AnnualRatePercent > MaxAnnualRatePercent {
		return &amortization.ValidationError{
			Field: "annual_rate_percent",
			Value: terms.AnnualRatePercent,
			Err:   fmt.Errorf("%w: exceeds the maximum of %.2f%%", amortization.ErrInvalidRate, MaxAnnualRatePercent),
		}
	}
	return nil
}

func cacheKey(terms domain.LoanTerms) string {
	return fmt.Sprintf("loan:%s:%s:%s:%d",
		terms.Mode,
		strconv.FormatFloat(terms.Principal, 'g', -1, 64),
		strconv.FormatFloat(terms.AnnualRatePercent, 'g', -1, 64),
		terms.TenureYears,
	)
}
