package http

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"easyqarz/domain"
	"easyqarz/export"
	"easyqarz/service"
)

const exportFilename = "amortization-schedule.xlsx"

type LoanHandler struct {
	service *service.LoanService
	logger  *zap.Logger
}

func NewLoanHandler(service *service.LoanService, logger *zap.Logger) *LoanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanHandler{service: service, logger: logger}
}

// CalculateLoan serves the dashboard summary for one set of loan terms.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanTerms
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// CompareModes serves standard and linear-profit summaries side by side.
// The mode field of the request is ignored.
func (h *LoanHandler) CompareModes(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanTerms
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.Compare(r.Context(), input.Principal, input.AnnualRatePercent, input.TenureYears)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// ExportSchedule returns the repayment schedule as an XLSX attachment.
func (h *LoanHandler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanTerms
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	summary, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteSchedule(&buf, summary); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("error writing export", zap.Error(err))
	}
}

func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
