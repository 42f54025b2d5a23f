package projection

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	tableBessel = "bessel"
	tableJ      = "J"
)

// metrics records table sizes and fill timings. The collectors exist even
// without a registerer so that recording never branches.
type metrics struct {
	doubles *prometheus.GaugeVec
	slots   *prometheus.CounterVec
	seconds *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		doubles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "bessel2",
				Name:      "table_doubles",
				Help:      "Number of float64 held by a table, samples and spline derivatives",
			},
			[]string{"table"},
		),
		slots: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bessel2",
				Name:      "slots_total",
				Help:      "Number of tabulated slots by table and state",
			},
			[]string{"table", "state"},
		),
		seconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bessel2",
				Name:      "tabulation_seconds",
				Help:      "Duration of the tabulation phases in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"phase"},
		),
	}
	if reg == nil {
		return m, nil
	}
	var err error
	if m.doubles, err = register(reg, m.doubles); err != nil {
		return nil, err
	}
	if m.slots, err = register(reg, m.slots); err != nil {
		return nil, err
	}
	if m.seconds, err = register(reg, m.seconds); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, or returns the collector registered earlier
// under the same name, so that several Tables can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, newError(KindConfig, "Init", err, "register metrics")
}

func (m *metrics) observeSlot(table string, s *Slot) {
	state := "stored"
	if s.Empty() {
		state = "empty"
	}
	m.slots.WithLabelValues(table, state).Inc()
}

func (m *metrics) observePhase(phase string, start time.Time) {
	m.seconds.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

func (m *metrics) setDoubles(table string, n int64) {
	m.doubles.WithLabelValues(table).Set(float64(n))
}
