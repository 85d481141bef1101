// Package metrics exports plan progress as Prometheus gauges, written to a
// node_exporter textfile or any writer.
package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/stefanpenner/ninety/pkg/plan"
)

// Metrics holds the plan gauges.
type Metrics struct {
	ActionsCompleted  *prometheus.GaugeVec
	ActionsTotal      *prometheus.GaugeVec
	StreakDays        prometheus.Gauge
	DaysRemaining     prometheus.Gauge
	GoalCurrent       *prometheus.GaugeVec
	GoalTarget        *prometheus.GaugeVec
	GoalProgress      *prometheus.GaugeVec
	MilestoneAchieved *prometheus.GaugeVec

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		ActionsCompleted: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ninety_actions_completed",
				Help: "Completed action items by phase.",
			},
			[]string{"phase"},
		),
		ActionsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ninety_actions_total",
				Help: "Action items in the catalog by phase.",
			},
			[]string{"phase"},
		),
		StreakDays: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ninety_streak_days",
				Help: "Consecutive active days ending today or yesterday.",
			},
		),
		DaysRemaining: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ninety_days_remaining",
				Help: "Days left in the plan horizon.",
			},
		),
		GoalCurrent: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ninety_goal_current",
				Help: "Current value of each goal.",
			},
			[]string{"goal"},
		),
		GoalTarget: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ninety_goal_target",
				Help: "Target value of each goal.",
			},
			[]string{"goal"},
		),
		GoalProgress: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ninety_goal_progress_ratio",
				Help: "Goal progress clamped to [0, 1].",
			},
			[]string{"goal"},
		),
		MilestoneAchieved: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ninety_milestone_achieved",
				Help: "1 when the milestone is achieved.",
			},
			[]string{"milestone"},
		),
		registry: reg,
	}

	reg.MustRegister(m.ActionsCompleted)
	reg.MustRegister(m.ActionsTotal)
	reg.MustRegister(m.StreakDays)
	reg.MustRegister(m.DaysRemaining)
	reg.MustRegister(m.GoalCurrent)
	reg.MustRegister(m.GoalTarget)
	reg.MustRegister(m.GoalProgress)
	reg.MustRegister(m.MilestoneAchieved)

	return m
}

// Observe sets every gauge from d, replacing earlier label sets.
func (m *Metrics) Observe(d *plan.Dashboard) {
	m.ActionsCompleted.Reset()
	m.ActionsTotal.Reset()
	m.GoalCurrent.Reset()
	m.GoalTarget.Reset()
	m.GoalProgress.Reset()
	m.MilestoneAchieved.Reset()

	for _, p := range d.Phases {
		phase := strconv.Itoa(p.Phase)
		m.ActionsCompleted.WithLabelValues(phase).Set(float64(p.Completed))
		m.ActionsTotal.WithLabelValues(phase).Set(float64(p.Total))
	}
	m.StreakDays.Set(float64(d.Streak))
	m.DaysRemaining.Set(float64(d.DaysRemaining))

	for _, g := range d.Goals {
		goal := string(g.Key)
		m.GoalCurrent.WithLabelValues(goal).Set(g.Current)
		m.GoalTarget.WithLabelValues(goal).Set(g.Target)
		m.GoalProgress.WithLabelValues(goal).Set(g.Ratio)
	}
	for _, ms := range d.Milestones {
		v := 0.0
		if ms.Achieved {
			v = 1
		}
		m.MilestoneAchieved.WithLabelValues(ms.ID).Set(v)
	}
}

// Write encodes every metric in the text exposition format.
func (m *Metrics) Write(w io.Writer) error {
	mfs, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}

// WriteTextfile atomically writes the metrics to path for the node_exporter
// textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
