package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyqarz/domain"
	"easyqarz/service"
)

func newTenureHandler() *TenureRecommendationHandler {
	return NewTenureRecommendationHandler(service.NewTenureRecommendationService(nil), nil)
}

func TestRecommendTenureHandler_OK(t *testing.T) {
	handler := newTenureHandler()

	req := postJSON("/loan/recommend-tenure", `{
		"principal": 1000000,
		"annual_rate_percent": 15,
		"mode": "standard",
		"min_tenure_years": 1,
		"max_tenure_years": 10,
		"max_monthly_payment": 30000,
		"preference": "minimize_cost"
	}`)
	w := httptest.NewRecorder()

	handler.RecommendTenure(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.TenureRecommendationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 4, result.RecommendedTenure)
	assert.Len(t, result.Recommendations, 7)
}

func TestRecommendTenureHandler_NothingAffordable(t *testing.T) {
	handler := newTenureHandler()

	req := postJSON("/loan/recommend-tenure", `{
		"principal": 1000000,
		"annual_rate_percent": 15,
		"min_tenure_years": 1,
		"max_tenure_years": 3,
		"max_monthly_payment": 10,
		"preference": "balanced"
	}`)
	w := httptest.NewRecorder()

	handler.RecommendTenure(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRecommendTenureHandler_InvalidPreference(t *testing.T) {
	handler := newTenureHandler()

	req := postJSON("/loan/recommend-tenure", `{
		"principal": 1000000,
		"annual_rate_percent": 15,
		"min_tenure_years": 1,
		"max_tenure_years": 3,
		"max_monthly_payment": 50000,
		"preference": "cheapest"
	}`)
	w := httptest.NewRecorder()

	handler.RecommendTenure(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
