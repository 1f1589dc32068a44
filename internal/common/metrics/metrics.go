// internal/common/metrics/metrics.go
package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"assessment-runner/internal/common/errors"
)

// Recorder holds the per-step collectors of one run. Collectors live on the
// registry passed to NewRecorder rather than the global default.
type Recorder struct {
	StepsCompleted *prometheus.CounterVec
	StepsFailed    *prometheus.CounterVec
	StepDuration   *prometheus.HistogramVec
	RunsTotal      *prometheus.CounterVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		StepsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assessment_steps_completed_total",
				Help: "Total number of run steps that completed",
			},
			[]string{"step"},
		),
		StepsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assessment_steps_failed_total",
				Help: "Total number of run steps that failed",
			},
			[]string{"step", "error_code"},
		),
		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assessment_step_duration_seconds",
				Help:    "Duration of each outbound step in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"step"},
		),
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assessment_runs_total",
				Help: "Total number of runs by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveStep records one step execution. A nil Recorder is a no-op.
func (r *Recorder) ObserveStep(step string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.StepDuration.WithLabelValues(step).Observe(elapsed.Seconds())
	if err != nil {
		r.StepsFailed.WithLabelValues(step, string(errors.CodeOf(err))).Inc()
		return
	}
	r.StepsCompleted.WithLabelValues(step).Inc()
}

// ObserveRun records the final outcome of a run.
func (r *Recorder) ObserveRun(outcome string) {
	if r == nil {
		return
	}
	r.RunsTotal.WithLabelValues(outcome).Inc()
}

// Snapshot flattens counters and gauges to name{label="v"} -> value and
// histograms to name_count / name_sum, for logging at process exit.
func Snapshot(g prometheus.Gatherer) (map[string]interface{}, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName() + formatLabels(m.GetLabel())
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[mf.GetName()+"_count"+formatLabels(m.GetLabel())] = m.GetHistogram().GetSampleCount()
				out[mf.GetName()+"_sum"+formatLabels(m.GetLabel())] = m.GetHistogram().GetSampleSum()
			}
		}
	}
	return out, nil
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, l.GetName()+`="`+l.GetValue()+`"`)
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
