package main

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// cliMetrics holds the Prometheus collectors exposed by `lportal watch
// --metrics`, for a studio running the watcher as a long-lived
// asset-pipeline service rather than a one-shot tool.
type cliMetrics struct {
	conversions prometheus.Counter
	warnings    *prometheus.CounterVec
	exhaustions prometheus.Counter
	duration    prometheus.Histogram
}

// newCLIMetrics registers the CLI's collectors into the default
// Prometheus registry, the one promhttp.Handler() (in serveMetrics)
// serves.
func newCLIMetrics() *cliMetrics {
	return newCLIMetricsOn(prometheus.DefaultRegisterer)
}

// newCLIMetricsOn registers into reg instead of the default registry, so
// tests can use a scratch prometheus.NewRegistry() and avoid colliding
// with collectors any other test in this package already registered.
func newCLIMetricsOn(reg prometheus.Registerer) *cliMetrics {
	f := promauto.With(reg)
	return &cliMetrics{
		conversions: f.NewCounter(prometheus.CounterOpts{
			Name: "lportal_conversions_total",
			Help: "Total number of scene conversions run by this process.",
		}),
		warnings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lportal_warnings_total",
			Help: "Total warnings emitted by the conversion core, by class.",
		}, []string{"class"}),
		exhaustions: f.NewCounter(prometheus.CounterOpts{
			Name: "lportal_pool_exhaustions_total",
			Help: "Total plane-pool exhaustion warnings (a subset of lportal_warnings_total{class=\"exhaustion\"}).",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lportal_conversion_duration_seconds",
			Help:    "Wall-clock duration of a single Convert call.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// recordWarning classifies a warning string emitted by the core's
// WarnSink into a failure class, so the metric stays meaningful without
// the core package itself knowing about Prometheus.
func (cm *cliMetrics) recordWarning(msg string) {
	class := classifyWarning(msg)
	cm.warnings.WithLabelValues(class).Inc()
	if class == "exhaustion" {
		cm.exhaustions.Inc()
	}
}

func classifyWarning(msg string) string {
	switch {
	case strings.Contains(msg, "pool exhausted"):
		return "exhaustion"
	case containsAny(msg, "unresolved", "fewer than", "hull construction failed", "unsupported", "dropping"):
		return "authoring"
	default:
		return "other"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// serveMetrics starts a blocking HTTP server exposing the default
// Prometheus registry (which promauto registered cm's collectors into) on
// addr, at the conventional /metrics path.
func serveMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
