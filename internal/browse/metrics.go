package browse

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	staleResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artbrowse_stale_responses_total",
		Help: "Responses discarded because a newer request superseded them",
	}, []string{"kind"})

	accumulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artbrowse_accumulations_total",
		Help: "Select-first-N runs by outcome",
	}, []string{"outcome"})
)
