package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/svcerrors"
)

// appResponseWriter carries what a handler learned about the request back out to the
// middlewares: the service error it answered with, or the analysis run it triggered.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
	run      *models.RunResult
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) SetRun(run *models.RunResult) {
	w.run = run
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError == nil {
		return ""
	}
	return w.svcError.Code
}

// StatusOrDefault is the written status, 200 when the handler never called WriteHeader.
func (w *appResponseWriter) StatusOrDefault() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

// RunID and Outcome are empty unless the request ran an analysis successfully.
func (w *appResponseWriter) RunID() string {
	if w.run == nil {
		return ""
	}
	return w.run.RunID
}

func (w *appResponseWriter) Outcome() string {
	if w.run == nil {
		return ""
	}
	return string(w.run.Outcome)
}

// asAppWriter finds the appResponseWriter installed by mwAppResponseWriter, if any.
func asAppWriter(w http.ResponseWriter) (*appResponseWriter, bool) {
	appWriter, ok := w.(*appResponseWriter)
	return appWriter, ok
}
