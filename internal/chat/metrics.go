// internal/chat/metrics.go

package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_sent_total",
		Help: "Total number of chat messages sent",
	})

	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_active_connections",
		Help: "Number of open chat websocket connections",
	})
)

func RecordMessageSent() {
	messagesSentTotal.Inc()
}

func RecordConnectionOpened() {
	activeConnections.Inc()
}

func RecordConnectionClosed() {
	activeConnections.Dec()
}
