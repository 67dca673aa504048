package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"questboss/internal/engine"
)

// Metrics are registered on their own registry so tests can build as many
// servers as they like.
type Metrics struct {
	Registry *prometheus.Registry

	completions *prometheus.CounterVec
	xpGranted   prometheus.Counter
	bossDamage  prometheus.Counter
	defeats     prometheus.Counter
	level       prometheus.Gauge
	xp          prometheus.Gauge
	bossHP      prometheus.Gauge
	tasks       prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "questboss",
			Name:      "completions_total",
			Help:      "Quests and tasks completed, by kind.",
		}, []string{"kind"}),
		xpGranted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "questboss",
			Name:      "xp_granted_total",
			Help:      "Experience points granted.",
		}),
		bossDamage: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "questboss",
			Name:      "boss_damage_total",
			Help:      "Damage dealt to the weekly boss.",
		}),
		defeats: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "questboss",
			Name:      "boss_defeats_total",
			Help:      "Bosses brought to zero HP.",
		}),
		level: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "questboss",
			Name:      "level",
			Help:      "Current player level.",
		}),
		xp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "questboss",
			Name:      "xp",
			Help:      "XP toward the next level.",
		}),
		bossHP: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "questboss",
			Name:      "boss_hp",
			Help:      "Remaining HP of this session's boss.",
		}),
		tasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "questboss",
			Name:      "custom_tasks",
			Help:      "Open custom tasks.",
		}),
	}
	m.Registry.MustRegister(m.completions, m.xpGranted, m.bossDamage, m.defeats, m.level, m.xp, m.bossHP, m.tasks)
	return m
}

// Observe updates the gauges from a snapshot. It is subscribed to the service.
func (m *Metrics) Observe(s engine.Snapshot) {
	m.level.Set(float64(s.Level))
	m.xp.Set(float64(s.XP))
	m.bossHP.Set(float64(s.Boss.HP))
	m.tasks.Set(float64(len(s.Tasks)))
}

func (m *Metrics) completed(res *engine.CompleteResult) {
	m.completions.WithLabelValues(string(res.Quest.Kind)).Inc()
	m.xpGranted.Add(float64(res.XPAwarded))
	m.bossDamage.Add(float64(res.Damage))
	if res.BossDefeated {
		m.defeats.Inc()
	}
}
