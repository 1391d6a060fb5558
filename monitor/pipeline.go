package monitor

import (
	"fmt"
	"sort"
	"time"

	"github.com/preeja73/robocurrent/baseline"
	"github.com/preeja73/robocurrent/dal"
	"github.com/preeja73/robocurrent/detector"
	"github.com/preeja73/robocurrent/ts"
	"github.com/preeja73/robocurrent/utils"
)

// Pipeline runs the batch detection flow: stored measurements -> per-axis
// series -> fitted baselines -> residual-threshold detection -> event log.
type Pipeline struct {
	measurements dal.MeasurementStore
	events       dal.EventStore
	metricser    utils.Metricser
	logger       utils.Logger
}

// NewPipeline .
func NewPipeline(measurements dal.MeasurementStore, events dal.EventStore,
	metricser utils.Metricser) *Pipeline {
	return &Pipeline{
		measurements: measurements,
		events:       events,
		metricser:    metricser,
		logger:       utils.NewLogger("pipeline"),
	}
}

// DetectResult .
type DetectResult struct {
	Events []detector.Event `json:"events"`
	// SkippedAxes maps axes with no usable baseline to the reason.
	SkippedAxes map[int]string `json:"skipped_axes,omitempty"`
}

// BuildAxisSeries expands stored measurement rows into one ordered series
// per axis. NULL axis values are dropped. Rows sharing a timestamp keep the
// later row's value (append-or-upsert semantics of the measurement table).
func BuildAxisSeries(rows []*dal.TraitMeasurement) map[int]ts.Points {
	series := make(map[int]ts.Points)
	for _, row := range rows {
		for axis := 1; axis <= dal.NumAxes; axis++ {
			v, ok := row.AxisValue(axis)
			if !ok {
				continue
			}
			series[axis] = append(series[axis], ts.NewPoint(row.RecordedAt, v))
		}
	}

	for axis, points := range series {
		sort.Stable(points)
		series[axis] = dedupeStamps(points)
	}
	return series
}

func dedupeStamps(points ts.Points) ts.Points {
	if points.N() < 2 {
		return points
	}
	out := points[:1]
	for _, p := range points[1:] {
		if p.Stamp().Equal(out[len(out)-1].Stamp()) {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// Detect fits per-axis baselines over the stored history for the trait and
// runs the event detector over the same series, persisting emitted events.
func (p *Pipeline) Detect(trait string, cfgs map[int]detector.ThresholdConfig) (*DetectResult, error) {
	started := time.Now()

	rows, err := p.measurements.QueryMeasurements(trait)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no measurements stored for trait %q", trait)
	}

	series := BuildAxisSeries(rows)
	models, fitErrs := baseline.FitAxes(series)

	result := &DetectResult{SkippedAxes: make(map[int]string)}
	for axis, ferr := range fitErrs {
		p.logger.Warnf("axis %v has no baseline: %v", axis, ferr)
		result.SkippedAxes[axis] = ferr.Error()
	}

	predictors := make(map[int]detector.Predictor, len(models))
	for axis, m := range models {
		predictors[axis] = m
	}
	det, err := detector.New(cfgs, predictors)
	if err != nil {
		return nil, err
	}

	axes := make([]int, 0, len(models))
	for axis := range models {
		axes = append(axes, axis)
	}
	sort.Ints(axes)
	for _, axis := range axes {
		for _, pt := range series[axis] {
			if _, err := det.Process(detector.Sample{
				Axis:    axis,
				Stamp:   pt.Stamp(),
				Current: pt.Value(),
			}); err != nil {
				return nil, fmt.Errorf("detect trait %q err: %v", trait, err)
			}
		}
	}

	result.Events = det.Events()
	if err := p.events.SaveEvents(toStoredEvents(result.Events)); err != nil {
		return nil, err
	}

	for _, ev := range result.Events {
		p.metricser.EmitCounter("events_emitted_total", 1,
			map[string]string{"severity": string(ev.Severity)})
	}
	p.metricser.EmitTimer("detect_duration_ms", int(time.Since(started).Milliseconds()),
		map[string]string{"trait": trait})

	return result, nil
}

func toStoredEvents(events []detector.Event) []*dal.AnomalyEvent {
	stored := make([]*dal.AnomalyEvent, 0, len(events))
	for _, ev := range events {
		stored = append(stored, &dal.AnomalyEvent{
			Axis:         ev.Axis,
			Severity:     string(ev.Severity),
			StartTime:    ev.StartTime,
			EndTime:      ev.EndTime,
			PeakResidual: ev.PeakResidual,
		})
	}
	return stored
}
