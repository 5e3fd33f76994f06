// internal/notification/metrics.go

package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_deliveries_total",
		Help: "Notifications delivered, labelled by channel",
	}, []string{"channel"})

	deliveryFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_delivery_failures_total",
		Help: "Notification delivery failures, labelled by channel",
	}, []string{"channel"})
)

func RecordDelivery(channel string) {
	deliveriesTotal.WithLabelValues(channel).Inc()
}

func RecordDeliveryFailure(channel string) {
	deliveryFailuresTotal.WithLabelValues(channel).Inc()
}
