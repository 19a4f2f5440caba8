// Package metrics defines and registers the custom Prometheus metrics for the
// sign server. It is the single source of truth for metric names, labels, and
// help strings. All metrics register with the default registry at package
// init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sign"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid", "misconfigured", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// PanelSavesTotal counts full-replacement panel writes.
// Label:
//   - result: "success", "invalid", or "error"
var PanelSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panel_saves_total",
		Help:      "Total number of panel collection writes, by result.",
	},
	[]string{"result"},
)

// SessionsActive tracks sessions created minus sessions destroyed. Expired
// sessions are decremented lazily, when their expiry is observed.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of admin sessions currently believed live.",
	},
)

// PanelsVisible reports how many panels were visible after the last save.
var PanelsVisible = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "panels_visible",
		Help:      "Number of publicly visible panels after the last write.",
	},
)
