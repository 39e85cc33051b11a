package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

const namespace = "account_selector"

type selectorMetrics struct {
	lockWait   *prometheus.HistogramVec
	updates    *prometheus.CounterVec
	autoSelect *prometheus.CounterVec
}

// NewSelectorMetrics registers the collectors of the selection engine on
// the given registerer.
func NewSelectorMetrics(reg prometheus.Registerer) (ports.SelectorMetrics, error) {
	m := &selectorMetrics{
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting for a mutation lock.",
			Buckets:   []float64{.0001, .001, .01, .05, .1, .5, 1, 5},
		}, []string{"lock"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selected_account_updates_total",
			Help:      "Selection updates by scene and whether they changed the slot.",
		}, []string{"scene", "result"}),
		autoSelect: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_select_total",
			Help:      "Auto-select runs by scene and outcome.",
		}, []string{"scene", "outcome"}),
	}

	for _, c := range []prometheus.Collector{m.lockWait, m.updates, m.autoSelect} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *selectorMetrics) ObserveLockWait(lock string, wait time.Duration) {
	m.lockWait.WithLabelValues(lock).Observe(wait.Seconds())
}

func (m *selectorMetrics) IncUpdate(scene domain.SceneName, committed bool) {
	result := "noop"
	if committed {
		result = "committed"
	}
	m.updates.WithLabelValues(string(scene), result).Inc()
}

func (m *selectorMetrics) IncAutoSelect(scene domain.SceneName, outcome string) {
	m.autoSelect.WithLabelValues(string(scene), outcome).Inc()
}
