package main

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyWarning(t *testing.T) {
	cases := map[string]string{
		"room \"hall\": portal targets unknown room \"foo\", dropping portal": "authoring",
		"room \"hall\": bound mesh has fewer than 4 vertices, dropping bound": "authoring",
		"plane pool exhausted tracing light 3, pruning branch":                "exhaustion",
		"something unclassified happened":                                    "other",
	}
	for msg, want := range cases {
		assert.Equal(t, want, classifyWarning(msg), msg)
	}
}

func TestRecordWarningIncrementsExhaustionCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	cm := newCLIMetricsOn(reg)

	cm.recordWarning("plane pool exhausted resetting for light trace")
	cm.recordWarning("room \"hall\": bound mesh has fewer than 4 vertices, dropping bound")

	assert.Equal(t, float64(1), testutil.ToFloat64(cm.exhaustions))
	assert.Equal(t, float64(1), testutil.ToFloat64(cm.warnings.WithLabelValues("exhaustion")))
	assert.Equal(t, float64(1), testutil.ToFloat64(cm.warnings.WithLabelValues("authoring")))
}
