package detector

import (
	"fmt"
	"time"
)

// Sample is one observed current value for one axis.
type Sample struct {
	Axis    int
	Stamp   time.Time
	Current float64
}

// Detector runs independent Axis detectors over a mixed sample stream and
// accumulates the combined event log.
type Detector struct {
	axes   map[int]*Axis
	events []Event
}

// New builds one Axis detector per fitted model. Axes without a model are
// not registered; feeding them a sample surfaces ErrModelUnavailable.
func New(cfgs map[int]ThresholdConfig, models map[int]Predictor) (*Detector, error) {
	axes := make(map[int]*Axis, len(models))
	for axis, model := range models {
		cfg, ok := cfgs[axis]
		if !ok {
			return nil, fmt.Errorf("axis %v: no threshold config", axis)
		}
		a, err := NewAxis(axis, cfg, model)
		if err != nil {
			return nil, err
		}
		axes[axis] = a
	}
	return &Detector{axes: axes}, nil
}

// Process .
func (d *Detector) Process(s Sample) (*Event, error) {
	a, ok := d.axes[s.Axis]
	if !ok {
		return nil, fmt.Errorf("axis %v: %w", s.Axis, ErrModelUnavailable)
	}
	ev, err := a.Process(s.Stamp, s.Current)
	if err != nil {
		return nil, err
	}
	if ev != nil {
		d.events = append(d.events, *ev)
	}
	return ev, nil
}

// Events returns the accumulated event log in emission order.
func (d *Detector) Events() []Event {
	return d.events
}

// Reset clears every axis state and the event log.
func (d *Detector) Reset() {
	for _, a := range d.axes {
		a.Reset()
	}
	d.events = nil
}
