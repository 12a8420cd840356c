package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics
const (
	MetricReportGenerated       = "report.generated"
	MetricReportFailed          = "report.failed"
	MetricReportDuration        = "report.duration"
	MetricReportRowsScanned     = "report.transactions_scanned"
	MetricTransactionMutation   = "transaction.mutation"
	MetricBudgetMutation        = "budget.mutation"
	MetricAuthenticationEvent   = "authentication_event"
	MetricReceiptUploaded       = "receipt.uploaded"
	MetricReceiptSize           = "receipt.size_bytes"
	MetricMaintenanceRowsPurged = "maintenance.rows_purged"
)

type PrometheusMetrics struct {
	reportsTotal              *prometheus.CounterVec
	reportDuration            prometheus.Histogram
	reportRowsScanned         prometheus.Histogram
	transactionMutations      *prometheus.CounterVec
	budgetMutations           *prometheus.CounterVec
	authenticationEventsTotal *prometheus.CounterVec
	receiptsUploaded          prometheus.Counter
	receiptSize               prometheus.Histogram
	maintenanceRowsPurged     *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the application collectors on reg
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		reportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_generated_total",
				Help: "Total number of reports generated by report and status",
			},
			[]string{"report", "status"},
		),
		reportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "report_duration_milliseconds",
				Help:    "Report generation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		reportRowsScanned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "report_transactions_scanned",
				Help:    "Number of transactions folded into a single report",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		transactionMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_mutations_total",
				Help: "Total number of transaction writes by operation",
			},
			[]string{"operation"},
		),
		budgetMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_mutations_total",
				Help: "Total number of budget writes by operation",
			},
			[]string{"operation"},
		),
		authenticationEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		receiptsUploaded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "receipts_uploaded_total",
				Help: "Total number of receipt files stored",
			},
		),
		receiptSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "receipt_size_bytes",
				Help:    "Size of stored receipt files in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
		maintenanceRowsPurged: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "maintenance_rows_purged",
				Help: "Rows removed by the most recent maintenance run",
			},
			[]string{"task"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]
	report := tags["report"]

	switch name {
	case MetricReportGenerated:
		m.reportsTotal.WithLabelValues(report, "success").Inc()
	case MetricReportFailed:
		m.reportsTotal.WithLabelValues(report, "failed").Inc()
	case MetricTransactionMutation:
		if operation != "" {
			m.transactionMutations.WithLabelValues(operation).Inc()
		}
	case MetricBudgetMutation:
		if operation != "" {
			m.budgetMutations.WithLabelValues(operation).Inc()
		}
	case MetricAuthenticationEvent:
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	case MetricReceiptUploaded:
		m.receiptsUploaded.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricReportDuration:
		m.reportDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricReportRowsScanned:
		m.reportRowsScanned.Observe(value)
	case MetricReceiptSize:
		m.receiptSize.Observe(value)
	case MetricMaintenanceRowsPurged:
		if task := tags["task"]; task != "" {
			m.maintenanceRowsPurged.WithLabelValues(task).Set(value)
		}
	}
}
