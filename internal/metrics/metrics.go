// Package metrics exposes Prometheus counters/gauges for
// NumberRegistry transitions and harvest outcomes, mirroring a node
// daemon's monitoring package in spirit. This is an ambient
// observability layer, not core semantics: nothing in consensus/
// imports this package; callers wire it in at the edges by calling
// these functions after a Context operation succeeds.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// IssuedTotal counts every transaction number ever issued, across
	// all relationships this process has tracked.
	IssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "otxconsensus",
		Name:      "issued_total",
		Help:      "Total transaction numbers issued across all relationships.",
	})

	// AvailableGauge reports the current size of the available set
	// for the most recently audited relationship. Labeled by relation
	// so multiple concurrent relationships can be distinguished.
	AvailableGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "otxconsensus",
		Name:      "available_gauge",
		Help:      "Current size of the available transaction-number set.",
	}, []string{"relation"})

	// HarvestRecoveredTotal counts Harvester actions that returned a
	// number to available.
	HarvestRecoveredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "otxconsensus",
		Name:      "harvest_recovered_total",
		Help:      "Total transaction numbers recovered by the harvester.",
	})

	// HarvestBurnedTotal counts Harvester actions that discarded a
	// number as burned.
	HarvestBurnedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "otxconsensus",
		Name:      "harvest_burned_total",
		Help:      "Total transaction numbers burned by the harvester.",
	})
)

// Registry is the collector registry every metric above is registered
// against. Callers expose it with promhttp.HandlerFor in their own
// server setup; this package doesn't assume an HTTP mux.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(IssuedTotal, AvailableGauge, HarvestRecoveredTotal, HarvestBurnedTotal)
}

// ObserveRegistry updates AvailableGauge for relation from a live
// count, and increments IssuedTotal by newlyIssued (0 for a pure
// observation with no new issuance).
func ObserveRegistry(relation string, availableCount int, newlyIssued int) {
	AvailableGauge.WithLabelValues(relation).Set(float64(availableCount))
	if newlyIssued > 0 {
		IssuedTotal.Add(float64(newlyIssued))
	}
}

// ObserveHarvest updates the recovered/burned counters by the given
// deltas, as computed from one harvest.Result's actions.
func ObserveHarvest(recovered, burned int) {
	if recovered > 0 {
		HarvestRecoveredTotal.Add(float64(recovered))
	}
	if burned > 0 {
		HarvestBurnedTotal.Add(float64(burned))
	}
}
