package services

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMetrics() *PrometheusMetrics {
	return NewPrometheusMetrics(prometheus.NewRegistry()).(*PrometheusMetrics)
}
