package client

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomePaid         = "paid"
	outcomeEmpty        = "empty_order"
	outcomeInsufficient = "insufficient_funds"
)

type Metrics struct {
	Payments *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Payments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ministore",
				Name:      "payments_total",
				Help:      "Order payment attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.Payments)
	return m
}

func (m *Metrics) payment(outcome string) {
	if m == nil {
		return
	}
	m.Payments.WithLabelValues(outcome).Inc()
}
