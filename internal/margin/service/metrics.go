package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entriesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rxledger",
		Subsystem: "margin",
		Name:      "ledger_entries_recorded_total",
		Help:      "Margin ledger entries appended.",
	})
	recordingsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rxledger",
		Subsystem: "margin",
		Name:      "recordings_failed_total",
		Help:      "Sale margin recordings that failed and were dropped.",
	})
)
