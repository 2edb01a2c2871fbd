package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"easyqarz/amortization"
	"easyqarz/domain"
)

const (
	PreferenceMinimizeCost    = "minimize_cost"
	PreferenceMinimizePayment = "minimize_payment"
	PreferenceBalanced        = "balanced"
)

var ErrNoAffordableTenure = errors.New("no tenure keeps the monthly payment within the maximum")

// TenureRecommendationService ranks tenures from the engine's payment alone.
// It neither caches nor records the candidates it evaluates.
type TenureRecommendationService struct {
	logger *zap.Logger
}

func NewTenureRecommendationService(logger *zap.Logger) *TenureRecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenureRecommendationService{
		logger: logger.Named("tenure"),
	}
}

// Recommend evaluates every whole-year tenure in the requested range and
// ranks the affordable ones by the caller's preference.
func (s *TenureRecommendationService) Recommend(
	ctx context.Context,
	input domain.TenureRecommendationInput,
) (domain.TenureRecommendationResult, error) {
	if input.Mode == "" {
		input.Mode = domain.ModeStandard
	}
	if err := validateRecommendationInput(input); err != nil {
		return domain.TenureRecommendationResult{}, err
	}

	recommendations := []domain.TenureRecommendation{}

	for years := input.MinTenureYears; years <= input.MaxTenureYears; years++ {
		if err := ctx.Err(); err != nil {
			return domain.TenureRecommendationResult{}, err
		}

		terms := domain.LoanTerms{
			Principal:         input.Principal,
			AnnualRatePercent: input.AnnualRatePercent,
			TenureYears:       years,
			Mode:              input.Mode,
		}
		payment, err := amortization.Payment(terms)
		if err != nil {
			s.logger.Warn("failed to calculate payment for tenure", zap.Int("tenure_years", years), zap.Error(err))
			continue
		}

		monthly := roundMoney(payment)
		if monthly > input.MaxMonthlyPayment {
			continue
		}

		// Profit counts as cost here even though the summary reports no
		// interest for linear-profit financing.
		cost := subtractMoney(roundMoney(payment*float64(terms.Months())), input.Principal)

		recommendations = append(recommendations, domain.TenureRecommendation{
			TenureYears:    years,
			MonthlyPayment: monthly,
			TotalCost:      cost,
			Score:          calculateScore(input, years, monthly, cost),
			Reason:         reasonFor(input.Preference),
		})
	}

	if len(recommendations) == 0 {
		return domain.TenureRecommendationResult{}, ErrNoAffordableTenure
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].TenureYears < recommendations[j].TenureYears
	})

	return domain.TenureRecommendationResult{
		RecommendedTenure: recommendations[0].TenureYears,
		Recommendations:   recommendations,
	}, nil
}

func validateRecommendationInput(input domain.TenureRecommendationInput) error {
	if err := validateTerms(domain.LoanTerms{
		Principal:         input.Principal,
		AnnualRatePercent: input.AnnualRatePercent,
		TenureYears:       MinTenureYears,
		Mode:              input.Mode,
	}); err != nil {
		return err
	}
	if input.MinTenureYears < MinTenureYears || input.MaxTenureYears < MinTenureYears {
		return &amortization.ValidationError{
			Field: "tenure_years",
			Value: fmt.Sprintf("%d..%d", input.MinTenureYears, input.MaxTenureYears),
			Err:   amortization.ErrInvalidTenure,
		}
	}
	if input.MinTenureYears > input.MaxTenureYears {
		return &amortization.ValidationError{
			Field: "min_tenure_years",
			Value: input.MinTenureYears,
			Err:   errors.New("minimum tenure is greater than maximum tenure"),
		}
	}
	if input.MaxTenureYears > MaxTenureYears {
		return &amortization.ValidationError{
			Field: "max_tenure_years",
			Value: input.MaxTenureYears,
			Err:   fmt.Errorf("%w: exceeds the maximum of %d years", amortization.ErrInvalidTenure, MaxTenureYears),
		}
	}
	if input.MaxMonthlyPayment <= 0 || math.IsNaN(input.MaxMonthlyPayment) {
		return &amortization.ValidationError{
			Field: "max_monthly_payment",
			Value: input.MaxMonthlyPayment,
			Err:   errors.New("maximum monthly payment must be greater than zero"),
		}
	}
	switch input.Preference {
	case PreferenceMinimizeCost, PreferenceMinimizePayment, PreferenceBalanced:
	default:
		return &amortization.ValidationError{
			Field: "preference",
			Value: input.Preference,
			Err:   errors.New("unknown preference"),
		}
	}
	return nil
}

// calculateScore rates a tenure from 0 to 10. Cost and payment are
// normalised against simple-interest bounds of the requested range.
func calculateScore(
	input domain.TenureRecommendationInput,
	years int,
	payment float64,
	cost float64,
) float64 {
	minYears := float64(input.MinTenureYears)
	maxYears := float64(input.MaxTenureYears)

	maxPossibleCost := input.Principal * (input.AnnualRatePercent / 100) * maxYears
	minPossibleCost := input.Principal * (input.AnnualRatePercent / 100) * minYears
	costRange := maxPossibleCost - minPossibleCost

	minPossiblePayment := input.Principal / (maxYears * 12)
	paymentRange := input.MaxMonthlyPayment - minPossiblePayment

	costScore := 10.0
	paymentScore := 10.0
	tenureScore := 10.0

	if costRange > 0 {
		costScore = clampScore(10.0 * (1.0 - (cost-minPossibleCost)/costRange))
	}
	if paymentRange > 0 {
		paymentScore = clampScore(10.0 * (1.0 - (payment-minPossiblePayment)/paymentRange))
	}
	if maxYears > minYears {
		tenureScore = 10.0 * (1.0 - (float64(years)-minYears)/(maxYears-minYears))
	}

	var score float64
	switch input.Preference {
	case PreferenceMinimizeCost:
		score = 0.6*costScore + 0.2*paymentScore + 0.2*tenureScore
	case PreferenceMinimizePayment:
		score = 0.2*costScore + 0.6*paymentScore + 0.2*tenureScore
	case PreferenceBalanced:
		score = 0.4*costScore + 0.4*paymentScore + 0.2*tenureScore
	}

	return roundMoney(score)
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}

func reasonFor(preference string) string {
	switch preference {
	case PreferenceMinimizeCost:
		return "Tenure chosen to keep the total financing cost low"
	case PreferenceMinimizePayment:
		return "Tenure chosen to keep the monthly payment low"
	case PreferenceBalanced:
		return "Balance between monthly payment and total cost"
	}
	return "Recommendation based on the supplied parameters"
}
