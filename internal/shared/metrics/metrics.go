package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	promhttppkg "github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	FieldErrorCode = "error_code"

	ValueNoError = ""

	Namespace   = "log_analyzer"
	SubLocator  = "locator"
	SubParser   = "parser"
	SubAnalysis = "analysis"
	SubReport   = "report"
	SubHTTP     = "http"
)

// CounterOpts is a type alias for prometheus.CounterOpts.
type CounterOpts = prometheus.CounterOpts

// HistogramOpts is a type alias for prometheus.HistogramOpts.
type HistogramOpts = prometheus.HistogramOpts

// DefBuckets is a re-export of prometheus.DefBuckets.
var DefBuckets = prometheus.DefBuckets

// NewCounterVec creates a new CounterVec with the given CounterOpts and label names.
// It is automatically registered with the default prometheus registry.
var NewCounterVec = promauto.NewCounterVec

// NewCounter creates a new Counter without labels.
// It is automatically registered with the default prometheus registry.
var NewCounter = promauto.NewCounter

// NewHistogramVec creates a new HistogramVec with the given HistogramOpts and label names.
// It is automatically registered with the default prometheus registry.
var NewHistogramVec = promauto.NewHistogramVec

// NewHistogram creates a new Histogram without labels.
// It is automatically registered with the default prometheus registry.
var NewHistogram = promauto.NewHistogram

// PromHTTP wraps the promhttp package to provide access via metrics.promhttp.
type promHTTP struct{}

// Handler returns an http.Handler for the Prometheus metrics endpoint.
func (promHTTP) Handler() http.Handler {
	return promhttppkg.Handler()
}

// PromHTTP is an instance that wraps the promhttp package functionality.
// Access it via metrics.PromHTTP.
var PromHTTP = promHTTP{}

// PushDefault pushes everything registered with the default registry to a Pushgateway.
// Batch runs exit before any scrape could happen, so this is their only way out.
var PushDefault = func(url, job string) error {
	if err := push.New(url, job).Gatherer(prometheus.DefaultGatherer).Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %q: %w", url, err)
	}
	return nil
}
