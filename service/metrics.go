package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "insightboard",
		Name:      "extractions_total",
		Help:      "Transcript extractions by outcome (success, provider_error, parse_error).",
	}, []string{"outcome"})

	extractedItemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "insightboard",
		Name:      "extracted_action_items_total",
		Help:      "Action items produced by the extraction engine.",
	})

	bestEffortFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "insightboard",
		Name:      "best_effort_failures_total",
		Help:      "Swallowed failures of best-effort steps (persist, index, archive).",
	}, []string{"step"})
)
