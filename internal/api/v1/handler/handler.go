package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"speedx/internal/analysis"
	"speedx/internal/log"
	"speedx/internal/model"
	"speedx/internal/score"
	"speedx/internal/service"
	"speedx/internal/util"
	"speedx/internal/view"
	"speedx/pkg/response"
)

// Error codes returned in the response envelope.
const (
	CodeInvalidURL    = "INVALID_URL"
	CodeInvalidMetric = "INVALID_METRIC"
	CodeBusy          = "ANALYSIS_IN_PROGRESS"
	CodeFetchFailure  = "FETCH_FAILURE"
	CodeNotFound      = "NOT_FOUND"
	CodeTimeout       = "TIMEOUT"
	CodeInternalError = "INTERNAL_ERROR"
)

const busyMessage = "An analysis is already in progress. Please wait."

// Analyzer is the service surface the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, targetURL string) (*model.Report, error)
	History(targetURL string) []model.HistoryEntry
	Latest(targetURL string) (*model.Report, bool)
	URLs() []string
	Busy() bool
}

type Handler struct {
	analyzer Analyzer
	renderer *view.Renderer
}

func New(analyzer Analyzer, renderer *view.Renderer) *Handler {
	return &Handler{analyzer: analyzer, renderer: renderer}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "ok"}, "")
}

// targetURL reads and validates the url query parameter, writing the 400
// response itself when the parameter is unusable.
func targetURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	u := r.URL.Query().Get("url")
	if u == "" {
		response.Fail(w, http.StatusBadRequest, CodeInvalidURL, "missing 'url' query parameter")
		return "", false
	}
	if !util.IsValidURL(u) {
		response.Fail(w, http.StatusBadRequest, CodeInvalidURL, "invalid 'url' format")
		return "", false
	}
	return u, true
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	u, ok := targetURL(w, r)
	if !ok {
		return
	}

	report, err := h.analyzer.Analyze(r.Context(), u)
	if err != nil {
		status, code, message := classifyError(err)
		response.Fail(w, status, code, message)
		return
	}

	response.Success(w, report, "")
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	u, ok := targetURL(w, r)
	if !ok {
		return
	}
	response.Success(w, h.analyzer.History(u), "")
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	u, ok := targetURL(w, r)
	if !ok {
		return
	}
	report, found := h.analyzer.Latest(u)
	if !found {
		response.Fail(w, http.StatusNotFound, CodeNotFound, "no analysis recorded for url")
		return
	}
	response.Success(w, report, "")
}

// URLs lists every URL with recorded history.
func (h *Handler) URLs(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.analyzer.URLs(), "")
}

type thresholdRow struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Unit  string  `json:"unit,omitempty"`
	Good  float64 `json:"good"`
	Bad   float64 `json:"bad"`
}

func newThresholdRow(m score.Metric) thresholdRow {
	th := m.Threshold()
	return thresholdRow{Name: m.String(), Label: m.Label(), Unit: m.Unit(), Good: th.Good, Bad: th.Bad}
}

// Thresholds returns the per-metric tier bounds, or a single row when the
// metric query parameter is set.
func (h *Handler) Thresholds(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("metric"); name != "" {
		m, err := score.ParseMetric(name)
		if err != nil {
			response.Fail(w, http.StatusBadRequest, CodeInvalidMetric, err.Error())
			return
		}
		response.Success(w, newThresholdRow(m), "")
		return
	}

	rows := make([]thresholdRow, 0, len(score.Metrics))
	for _, m := range score.Metrics {
		rows = append(rows, newThresholdRow(m))
	}
	response.Success(w, rows, "")
}

// Page renders the HTML analyzer. With a url parameter it runs an analysis
// first and shows the result or the generic failure message.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := view.Page{URL: r.URL.Query().Get("url"), Busy: h.analyzer.Busy()}
	status := http.StatusOK

	if page.URL != "" {
		switch {
		case !util.IsValidURL(page.URL):
			page.Error = view.ErrorMessage
			status = http.StatusBadRequest
		default:
			report, err := h.analyzer.Analyze(r.Context(), page.URL)
			switch {
			case errors.Is(err, service.ErrBusy):
				page.Busy = true
				page.Error = busyMessage
				status = http.StatusConflict
			case err != nil:
				page.Error = view.ErrorMessage
				status, _, _ = classifyError(err)
			default:
				page.Report = report
				page.Busy = false
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, page); err != nil {
		log.Logger.Error("failed to render page", zap.Error(err))
	}
}

func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, service.ErrBusy):
		return http.StatusConflict, CodeBusy, busyMessage
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout, view.ErrorMessage
	case errors.Is(err, analysis.ErrFetchFailure):
		return http.StatusBadGateway, CodeFetchFailure, view.ErrorMessage
	default:
		log.Logger.Error("unexpected analysis error", zap.Error(err))
		return http.StatusInternalServerError, CodeInternalError, view.ErrorMessage
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
