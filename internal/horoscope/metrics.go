package horoscope

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chartsDerived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "horoscope_charts_derived_total",
			Help: "Total number of horoscope charts derived",
		},
		[]string{"rashi"},
	)

	gunaScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "horoscope_guna_scores",
			Help:    "Distribution of guna-milan match scores",
			Buckets: prometheus.LinearBuckets(0, 4, 10),
		},
	)
)

func RecordChartDerived(rashi string) {
	chartsDerived.WithLabelValues(rashi).Inc()
}

func RecordMatchScore(score int) {
	gunaScores.Observe(float64(score))
}
