package http

import (
	"net/http"

	"go.uber.org/zap"

	"easyqarz/domain"
	"easyqarz/service"
)

type TenureRecommendationHandler struct {
	service *service.TenureRecommendationService
	logger  *zap.Logger
}

func NewTenureRecommendationHandler(service *service.TenureRecommendationService, logger *zap.Logger) *TenureRecommendationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenureRecommendationHandler{service: service, logger: logger}
}

func (h *TenureRecommendationHandler) RecommendTenure(w http.ResponseWriter, r *http.Request) {
	var input domain.TenureRecommendationInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.Recommend(r.Context(), input)
	if err != nil {
		h.logger.Debug("error recommending tenure", zap.Error(err))
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
