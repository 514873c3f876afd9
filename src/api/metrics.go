package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uuidgen_identifiers_generated_total",
		Help: "Number of version 4 identifiers generated over HTTP.",
	})

	entropyFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uuidgen_entropy_failures_total",
		Help: "Number of failed reads from the OS entropy source.",
	})
)
