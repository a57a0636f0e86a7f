package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(ordersTotal, orderAmountPaise, signatureChecksTotal)
}

var ordersTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Gateway order creations by outcome (created/rejected/gateway_error).",
	},
	[]string{"outcome", "kind"},
)

var orderAmountPaise = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "checkout_order_amount_paise",
		Help:    "Distribution of created order amounts in minor units.",
		Buckets: []float64{10_000, 25_000, 50_000, 100_000, 250_000, 500_000, 1_000_000},
	},
)

var signatureChecksTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payment_signature_checks_total",
		Help: "Payment callback signature verifications by result (ok/mismatch/malformed).",
	},
	[]string{"result"},
)

func IncOrder(outcome, kind string) {
	ordersTotal.WithLabelValues(norm(outcome), norm(kind)).Inc()
}

func ObserveOrderAmount(paise int64) {
	orderAmountPaise.Observe(float64(paise))
}

func IncSignatureCheck(result string) {
	signatureChecksTotal.WithLabelValues(norm(result)).Inc()
}
