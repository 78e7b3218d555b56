package http

import (
	"context"
	"net/http"
	"sync"

	"log-analyzer/internal/analyzers"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type runAnalysisHandler struct {
	analysisService analyzers.AnalysisService
	running         sync.Mutex
}

func NewRunAnalysisHandler(analysisService analyzers.AnalysisService) AppHttpHandler {
	return &runAnalysisHandler{
		analysisService: analysisService,
	}
}

// Handle processes POST /runs requests. Runs are serialized: a request arriving while a run is
// in progress is rejected instead of queued. A run outlives a disconnected client so the report
// is still published.
func (h *runAnalysisHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if !h.running.TryLock() {
		return errRunInProgress()
	}
	defer h.running.Unlock()

	result, err := h.analysisService.Analyze(context.WithoutCancel(r.Context()))
	if err != nil {
		return err
	}

	if appWriter, ok := asAppWriter(w); ok {
		appWriter.SetRun(result)
	}
	writeJSON(w, http.StatusOK, result)
	return nil
}
