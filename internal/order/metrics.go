package order

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	PositionsAdded *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PositionsAdded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ministore",
				Name:      "positions_added_total",
				Help:      "Positions added to orders",
			},
			[]string{"pricing"},
		),
	}
	reg.MustRegister(m.PositionsAdded)
	return m
}

func (m *Metrics) positionAdded(pricing string) {
	if m == nil {
		return
	}
	m.PositionsAdded.WithLabelValues(pricing).Inc()
}
