package prometheus

import (
	"strconv"
	"time"

	"github.com/iamsashka/Kursach/pkg/config"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.CounterVec

	// Checkout metrics
	OrdersPlacedCounter prometheus.Counter
	OrderRevenueCounter prometheus.Counter

	// Product popularity metrics
	ProductViewsCounter prometheus.CounterVec

	// Store-level gauges, refreshed from the database on a ticker
	ActiveProductsGauge prometheus.Gauge
	ActiveUsersGauge    prometheus.Gauge
	OrdersTotalGauge    prometheus.Gauge
	RevenueTotalGauge   prometheus.Gauge
	CartItemsTotalGauge prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	// Checkout metrics
	OrdersPlacedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	OrderRevenueCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_order_revenue_total",
			Help: "Total revenue of placed orders",
		},
	)

	// Product popularity metrics
	ProductViewsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_views_total",
			Help: "Total number of product views",
		},
		[]string{"product_id", "category"},
	)

	// Store-level gauges
	ActiveProductsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_active_products",
			Help: "Number of active products in the catalog",
		},
	)

	ActiveUsersGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_active_users",
			Help: "Number of active user accounts",
		},
	)

	OrdersTotalGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_orders",
			Help: "Number of orders on record",
		},
	)

	RevenueTotalGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_revenue",
			Help: "Total revenue of non-cancelled orders",
		},
	)

	CartItemsTotalGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_cart_items",
			Help: "Number of cart lines across all users",
		},
	)
}

// RecordAuthError records an authentication error by reason
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordProductView increments the counter for product views
func RecordProductView(productID uint, category string) {
	ProductViewsCounter.WithLabelValues(strconv.FormatUint(uint64(productID), 10), category).Inc()
}

// RecordOrderPlaced counts a placed order and accumulates its total
func RecordOrderPlaced(total float64) {
	OrdersPlacedCounter.Inc()
	OrderRevenueCounter.Add(total)
}

// StoreSnapshot holds the values for the store-level gauges. They are
// recomputed from the database rather than incremented in handlers, so the
// gauges stay correct across restarts and concurrent writers.
type StoreSnapshot struct {
	ActiveProducts int64
	ActiveUsers    int64
	Orders         int64
	Revenue        float64
	CartItems      int64
}

// StartStoreGauges refreshes the store-level gauges from collect on the given
// interval until stop is closed. Collection failures are logged and skipped.
func StartStoreGauges(interval time.Duration, collect func() (StoreSnapshot, error), stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			refreshStoreGauges(collect)
			select {
			case <-ticker.C:
			case <-stop:
				return
			}
		}
	}()
}

func refreshStoreGauges(collect func() (StoreSnapshot, error)) {
	snapshot, err := collect()
	if err != nil {
		logger.GetLogger().Warn("Failed to refresh store gauges", zap.Error(err))
		return
	}

	ActiveProductsGauge.Set(float64(snapshot.ActiveProducts))
	ActiveUsersGauge.Set(float64(snapshot.ActiveUsers))
	OrdersTotalGauge.Set(float64(snapshot.Orders))
	RevenueTotalGauge.Set(float64(snapshot.Revenue))
	CartItemsTotalGauge.Set(float64(snapshot.CartItems))
}
