// internal/payment/metrics.go

package payment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_orders_created_total",
		Help: "Checkout orders created, labelled by plan",
	}, []string{"plan"})

	verificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_verifications_total",
		Help: "Payment verification attempts, labelled by result",
	}, []string{"result"})

	revenuePaiseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_revenue_paise_total",
		Help: "Captured revenue in paise, labelled by plan",
	}, []string{"plan"})

	refundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_refunds_total",
		Help: "Refunds processed, labelled by plan",
	}, []string{"plan"})
)

func RecordOrderCreated(plan string) {
	ordersCreatedTotal.WithLabelValues(plan).Inc()
}

func RecordVerification(result string) {
	verificationsTotal.WithLabelValues(result).Inc()
}

func RecordRevenue(plan string, amount int64) {
	revenuePaiseTotal.WithLabelValues(plan).Add(float64(amount))
}

func RecordRefund(plan string) {
	refundsTotal.WithLabelValues(plan).Inc()
}
