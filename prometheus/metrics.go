package prometheus

import (
	"barpos/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Ticket metrics
	TicketsClosedCounter *prometheus.CounterVec
	TicketSalesCounter   *prometheus.CounterVec

	// Shift metrics
	ShiftsSettledCounter *prometheus.CounterVec

	// Inventory metrics
	ProductStockGauge *prometheus.GaugeVec

	// Chip metrics
	ChipsOutstandingGauge *prometheus.GaugeVec

	// Persistence metrics
	SnapshotSaveFailures prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of operator login attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful operator logins",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of failed operator logins",
		},
	)

	TicketsClosedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tickets_closed_total",
			Help: "Total number of tickets closed, by payment method",
		},
		[]string{"method"},
	)

	TicketSalesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_ticket_sales_total",
			Help: "Gross sales closed, by payment method",
		},
		[]string{"method"},
	)

	ShiftsSettledCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_shifts_settled_total",
			Help: "Total number of shifts settled, by flagged outcome",
		},
		[]string{"flagged"},
	)

	ProductStockGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_product_stock",
			Help: "Current tracked stock level for products",
		},
		[]string{"product_id", "product_name", "category"},
	)

	ChipsOutstandingGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_chips_outstanding",
			Help: "Outstanding chips by type",
		},
		[]string{"type"},
	)

	SnapshotSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_snapshot_save_failures_total",
			Help: "Total number of failed snapshot saves",
		},
	)
}

// RecordAuthAttempt counts a login attempt and its outcome.
func RecordAuthAttempt(success bool) {
	if AuthAttemptsCounter == nil {
		return
	}
	AuthAttemptsCounter.Inc()
	if success {
		AuthSuccessCounter.Inc()
	} else {
		AuthErrorsCounter.Inc()
	}
}

// RecordTicketClosed increments the close counters for a settled ticket.
func RecordTicketClosed(method string, total float64) {
	if TicketsClosedCounter == nil {
		return
	}
	TicketsClosedCounter.WithLabelValues(method).Inc()
	TicketSalesCounter.WithLabelValues(method).Add(total)
}

// RecordShiftSettled increments the settlement counter.
func RecordShiftSettled(flagged bool) {
	if ShiftsSettledCounter == nil {
		return
	}
	label := "false"
	if flagged {
		label = "true"
	}
	ShiftsSettledCounter.WithLabelValues(label).Inc()
}

// UpdateProductStock updates the stock gauge for one product.
func UpdateProductStock(productID, productName, category string, count float64) {
	if ProductStockGauge == nil {
		return
	}
	ProductStockGauge.WithLabelValues(productID, productName, category).Set(count)
}

// RecordSnapshotSaveFailure counts a failed snapshot save.
func RecordSnapshotSaveFailure() {
	if SnapshotSaveFailures == nil {
		return
	}
	SnapshotSaveFailures.Inc()
}

// UpdateChipsOutstanding updates the outstanding gauge for one chip type.
func UpdateChipsOutstanding(chipType string, count int) {
	if ChipsOutstandingGauge == nil {
		return
	}
	ChipsOutstandingGauge.WithLabelValues(chipType).Set(float64(count))
}
