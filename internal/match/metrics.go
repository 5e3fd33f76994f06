package match

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	interestsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_interests_sent_total",
			Help: "Total number of interests sent",
		},
	)

	interestResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_interest_responses_total",
			Help: "Total number of interest responses by outcome",
		},
		[]string{"status"},
	)

	mutualMatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_mutual_matches_total",
			Help: "Total number of mutual matches formed",
		},
	)

	matchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_compatibility_scores",
			Help:    "Distribution of demographic compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

func RecordInterestSent() {
	interestsSent.Inc()
}

func RecordInterestResponse(status string) {
	interestResponses.WithLabelValues(status).Inc()
}

func RecordMutualMatch() {
	mutualMatches.Inc()
}

func RecordMatchScore(score int) {
	matchScores.Observe(float64(score))
}
