package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/shared/ulid"
)

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwPrometheus)
	router.Use(mwRequestCompletionLog)
	router.Use(mwRecoverer)
}

func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(newAppResponseWriter(w, r.ProtoMajor), r)
	})
}

// mwRequestID reuses the caller's x-request-id or mints a ULID, echoes it on the response and
// attaches a request-scoped logger to the context.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestID(r)
			if id == "" {
				id = ulid.NewULID()
				setRequestID(r, id)
			}
			w.Header().Set(headerRequestID, id)

			ctx := httpLogger.With().
				Str(loggers.FieldRequestID, id).
				Logger().WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// mwPrometheus labels by route pattern; report dates in raw paths would grow one series per day.
func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		status, errorCode := http.StatusOK, ""
		if appWriter, ok := asAppWriter(w); ok {
			status = appWriter.StatusOrDefault()
			errorCode = appWriter.ErrorCode()
		}

		labels := []string{r.Method, routeOf(r), strconv.Itoa(status), errorCode}
		metricHTTPRequestsTotal.WithLabelValues(labels...).Inc()
		metricHTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

// mwRequestCompletionLog writes one line per request. Requests that ran an analysis also carry
// its run id and outcome so the line can be joined with the run's own logs.
func mwRequestCompletionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			event := loggers.Ctx(r.Context()).Info().
				Str(loggers.FieldHttpMethod, r.Method).
				Str(loggers.FieldHttpPath, r.URL.Path).
				Str(loggers.FieldHttpRoute, routeOf(r))

			status := http.StatusOK
			if appWriter, ok := asAppWriter(w); ok {
				status = appWriter.StatusOrDefault()
				event = event.Int(loggers.FieldHttpBytes, appWriter.BytesWritten())
				if runID := appWriter.RunID(); runID != "" {
					event = event.
						Str(loggers.FieldRunID, runID).
						Str(loggers.FieldOutcome, appWriter.Outcome())
				}
				if code := appWriter.ErrorCode(); code != "" {
					event = event.Str(loggers.FieldErrorCode, code)
				}
			}

			event.
				Int(loggers.FieldHttpStatus, status).
				Int64(loggers.FieldDuration, time.Since(start).Milliseconds()).
				Msg("request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			loggers.Ctx(r.Context()).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("http panic recovered: %v", p)
			writeErrorResponse(w, r, svcerrors.NewInternalErrorPanic(panicError(p)))
		}()

		next.ServeHTTP(w, r)
	})
}

func panicError(p any) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("%v", p)
}

func routeOf(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
