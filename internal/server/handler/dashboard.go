package handler

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

// DashboardHandler renders the HTML dashboard page: the aggregated tables
// as charts plus the narrative commentary.
type DashboardHandler struct {
	reports ReportBuilder
	tmpl    *template.Template
	logger  *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler, parsing the embedded page
// template.
func NewDashboardHandler(reports ReportBuilder, logger *slog.Logger) (*DashboardHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, err
	}
	return &DashboardHandler{
		reports: reports,
		tmpl:    tmpl,
		logger:  logger.With(slog.String("handler", "dashboard")),
	}, nil
}

// dashboardData is the template context: the report itself plus a JSON copy
// for the chart scripts.
type dashboardData struct {
	Report     domain.Report
	ReportJSON template.JS
}

// ServeDashboard runs a rendering pass and renders the page. Any failure
// yields a plain failed page load, never a partial render.
// GET /
func (h *DashboardHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.BuildReport(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "report build failed",
			slog.String("error", err.Error()),
		)
		http.Error(w, "failed to load dashboard data", http.StatusBadGateway)
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, dashboardData{
		Report:     report,
		ReportJSON: template.JS(raw),
	}); err != nil {
		h.logger.ErrorContext(r.Context(), "template render failed",
			slog.String("error", err.Error()),
		)
	}
}
