package prometheus

import (
	"inventory-service/pkg/config"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Entity operation metrics (category/supplier/product/inventory CRUD)
	EntityOperationsCounter *prometheus.CounterVec

	// Low-stock report metrics
	LowStockGauge *prometheus.GaugeVec
)

var initOnce sync.Once

// InitMetrics initializes Prometheus metrics with configuration. Safe to
// call more than once; registration happens only on the first call.
func InitMetrics(cfg *config.Config) {
	initOnce.Do(func() {
		// Use metric prefix from configuration
		prefix := cfg.Metrics.Prefix

		// HTTP request metrics
		HttpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		)

		// HTTP request duration
		HttpRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		// Database operation metrics
		DbOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		)

		// Entity operation metrics
		EntityOperationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_operations_total",
				Help: "Total number of entity operations",
			},
			[]string{"entity", "operation"},
		)

		// Low-stock metrics
		LowStockGauge = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: prefix + "_low_stock_quantity",
				Help: "Current stock level of products at or below their reorder level",
			},
			[]string{"product_id", "product_name"},
		)
	})
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DbOperationDuration == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordEntityOperation increments the counter for an entity operation
func RecordEntityOperation(entity, operation string) {
	if EntityOperationsCounter == nil {
		return
	}
	EntityOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// UpdateLowStock updates the gauge for a product from the low-stock report
func UpdateLowStock(productID string, productName string, quantity float64) {
	if LowStockGauge == nil {
		return
	}
	LowStockGauge.WithLabelValues(productID, productName).Set(quantity)
}
