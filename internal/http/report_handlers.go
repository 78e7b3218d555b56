package http

import (
	"errors"
	"io"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/stores"
)

// ReportSummary is one entry of GET /reports.
type ReportSummary struct {
	Date civil.Date `json:"date"`
	Key  string     `json:"key"`
	Href string     `json:"href"`
}

// ListReportsResponse is the body of GET /reports, newest report first.
type ListReportsResponse struct {
	Reports []ReportSummary `json:"reports"`
}

type listReportsHandler struct {
	reportStore stores.ReportStore
}

func NewListReportsHandler(reportStore stores.ReportStore) AppHttpHandler {
	return &listReportsHandler{reportStore: reportStore}
}

// Handle processes GET /reports requests.
func (h *listReportsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	dates, err := h.reportStore.List(r.Context())
	if err != nil {
		return errInternalReportStoreFailed(err)
	}

	response := ListReportsResponse{Reports: make([]ReportSummary, 0, len(dates))}
	for _, date := range dates {
		response.Reports = append(response.Reports, ReportSummary{
			Date: date,
			Key:  models.ReportKey(date),
			Href: "/reports/" + date.String(),
		})
	}
	writeJSON(w, http.StatusOK, response)
	return nil
}

type getReportHandler struct {
	reportStore stores.ReportStore
}

func NewGetReportHandler(reportStore stores.ReportStore) AppHttpHandler {
	return &getReportHandler{reportStore: reportStore}
}

// Handle processes GET /reports/{date} requests, date being YYYY-MM-DD.
func (h *getReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	raw := chi.URLParam(r, "date")
	date, err := civil.ParseDate(raw)
	if err != nil {
		return errInvalidReportDate(raw, err)
	}

	report, err := h.reportStore.Open(r.Context(), date)
	if err != nil {
		if errors.Is(err, stores.ErrReportNotFound) {
			return errReportNotFound(date.String(), err)
		}
		return errInternalReportStoreFailed(err)
	}
	defer report.Close()

	w.Header().Set(headerContentType, contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, report); err != nil {
		// headers are gone, all that is left is to log
		loggers.Ctx(r.Context()).Warn().Err(err).Str(loggers.FieldReportDate, date.String()).Msg("failed to stream report")
	}
	return nil
}
