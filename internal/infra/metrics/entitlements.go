package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(grantsTotal, grantWriteFailures, journalDepth)
}

var grantsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "entitlement_grants_total",
		Help: "Entitlement grants by source (razorpay/manual_enrollment) and result.",
	},
	[]string{"source", "result"},
)

// grantWriteFailures counts verified payments whose profile write failed.
// A non-zero rate here pages someone: money was captured without access.
var grantWriteFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "entitlement_grant_failures_total",
		Help: "Verified payments whose entitlement write failed and was journaled.",
	},
)

var journalDepth = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "grant_journal_unresolved",
		Help: "Unresolved reconciliation journal entries.",
	},
)

func IncGrant(source, result string) {
	grantsTotal.WithLabelValues(norm(source), norm(result)).Inc()
}

func IncGrantWriteFailure() { grantWriteFailures.Inc() }

func SetJournalDepth(n int) { journalDepth.Set(float64(n)) }
