package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

// ReportBuilder produces the finalized dashboard report for one rendering
// pass.
type ReportBuilder interface {
	BuildReport(ctx context.Context) (domain.Report, error)
}

// ReportHandler serves the aggregated report as JSON.
type ReportHandler struct {
	reports ReportBuilder
	logger  *slog.Logger
}

// NewReportHandler creates a ReportHandler with the provided dependencies.
func NewReportHandler(reports ReportBuilder, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger.With(slog.String("handler", "report")),
	}
}

// GetReport runs a rendering pass and returns the full report. An upstream
// failure surfaces as a 502 with no partial body.
// GET /api/report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.BuildReport(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "report build failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "failed to build report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
