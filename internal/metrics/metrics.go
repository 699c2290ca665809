package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// POSMetrics counts sales and cart activity.
type POSMetrics struct {
	Transactions *prometheus.CounterVec
	RevenueIDR   *prometheus.CounterVec
	GuardRejects *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	transactions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "transactions_total",
		Help:      "Completed transactions by payment method.",
	}, []string{"payment_method"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "revenue_idr_total",
		Help:      "Revenue in whole rupiah by payment method.",
	}, []string{"payment_method"})
	guardRejects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "guard_rejections_total",
		Help:      "Add-to-cart attempts rejected by the inventory guard.",
	}, []string{"reason"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pos",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	reg.MustRegister(transactions, revenue, guardRejects, latency)
	return &POSMetrics{
		Transactions: transactions,
		RevenueIDR:   revenue,
		GuardRejects: guardRejects,
		HTTPLatency:  latency,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
