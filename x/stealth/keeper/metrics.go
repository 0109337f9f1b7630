package keeper

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

const (
	metricsNamespace = "hikari"

	resultSuccess  = "success"
	resultFailure  = "failure"
	resultOwned    = "owned"
	resultNotOwned = "not_owned"
	resultInvalid  = "invalid"
)

// Metrics holds the stealth engine counters. A nil *Metrics records nothing.
type Metrics struct {
	Generated *prometheus.CounterVec
	Opened    *prometheus.CounterVec
	Scanned   *prometheus.CounterVec
}

// NewMetrics creates the engine counters and registers them on reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: types.ModuleName,
				Name:      "generated_total",
				Help:      "Stealth address generation attempts by result.",
			},
			[]string{"result"},
		),
		Opened: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: types.ModuleName,
				Name:      "opened_total",
				Help:      "Stealth address open attempts by strategy and result.",
			},
			[]string{"strategy", "result"},
		),
		Scanned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: types.ModuleName,
				Name:      "scanned_total",
				Help:      "Scanned candidate announcements by result.",
			},
			[]string{"result"},
		),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Generated, m.Opened, m.Scanned} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) generated(result string) {
	if m == nil {
		return
	}
	m.Generated.WithLabelValues(result).Inc()
}

func (m *Metrics) opened(strategy, result string) {
	if m == nil {
		return
	}
	m.Opened.WithLabelValues(strategy, result).Inc()
}

func (m *Metrics) scanned(result string) {
	if m == nil {
		return
	}
	m.Scanned.WithLabelValues(result).Inc()
}
