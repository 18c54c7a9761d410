package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// classifierOperations counts engine calls.
	// Labels: operation (train, untrain, flush, score, classify, load)
	classifierOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simplebayes",
		Subsystem: "classifier",
		Name:      "operations_total",
		Help:      "Total classifier operations by type",
	}, []string{"operation"})

	// classifierCategories tracks the number of trained categories
	classifierCategories = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "simplebayes",
		Subsystem: "classifier",
		Name:      "categories",
		Help:      "Number of trained categories",
	})

	// classifierTokens tracks the sum of all category tallies
	classifierTokens = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "simplebayes",
		Subsystem: "classifier",
		Name:      "tokens",
		Help:      "Total trained token count across all categories",
	})
)

// recordOperation counts one classifier call
func recordOperation(operation string) {
	classifierOperations.WithLabelValues(operation).Inc()
}

// recordStore refreshes the store gauges. Callers must hold the classifier lock.
func recordStore(store *CategoryStore) {
	var total int64
	for _, category := range store.Categories() {
		total += category.Tally()
	}
	classifierCategories.Set(float64(store.Len()))
	classifierTokens.Set(float64(total))
}
