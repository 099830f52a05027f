// Package metrics defines the prometheus instrumentation for check cycles
// and alert delivery.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check result label values.
const (
	ResultMatch   = "match"
	ResultMissing = "missing"
	ResultError   = "error"
)

// Alert kind label values.
const (
	AlertContentsChanged = "contents_changed"
	AlertCheckFailed     = "check_failed"
	AlertGivingUp        = "giving_up"
)

var (
	// ChecksTotal counts completed check cycles per site and result.
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagewatch_checks_total",
			Help: "Total number of completed check cycles, partitioned by result.",
		},
		[]string{"site", "result"},
	)

	// AlertsTotal counts alerts handed to the notifier per site and kind.
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagewatch_alerts_total",
			Help: "Total number of alerts handed to the notifier, partitioned by kind.",
		},
		[]string{"site", "kind"},
	)

	// AlertSendFailuresTotal counts alerts the notifier failed to deliver.
	AlertSendFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagewatch_alert_send_failures_total",
			Help: "Total number of alerts the notifier failed to deliver.",
		},
		[]string{"site"},
	)
)
