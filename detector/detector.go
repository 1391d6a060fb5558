package detector

import (
	"fmt"
	"math"
	"time"
)

// Predictor evaluates a fitted per-axis baseline at a timestamp.
type Predictor interface {
	Predict(stamp time.Time) float64
}

// ErrModelUnavailable .
var ErrModelUnavailable = fmt.Errorf("no baseline model available for this axis")

// SequenceError reports an out-of-order sample fed into an axis detector.
type SequenceError struct {
	Axis int
	Got  time.Time
	Last time.Time
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("axis %v: sample stamp %v is not after last processed stamp %v",
		e.Axis, e.Got.Format(time.RFC3339), e.Last.Format(time.RFC3339))
}

// ThresholdConfig holds the per-axis detection thresholds.
// Residuals inside [MinC, MaxC] are normal; residuals whose magnitude
// exceeds ErrorLimit are critical; anything else out of bounds is a warning.
// AlertLimit bounds the expected warning band and is checked by Validate.
type ThresholdConfig struct {
	MinC       float64 `yaml:"MinC" json:"min_c"`
	MaxC       float64 `yaml:"MaxC" json:"max_c"`
	AlertLimit float64 `yaml:"AlertLimit" json:"alert_limit"`
	ErrorLimit float64 `yaml:"ErrorLimit" json:"error_limit"`
	T          int     `yaml:"T" json:"t"`
}

// Validate .
func (c ThresholdConfig) Validate() error {
	if c.T < 1 {
		return fmt.Errorf("minimum duration T must be >= 1, got %v", c.T)
	}
	if c.MinC > c.MaxC {
		return fmt.Errorf("MinC %v > MaxC %v", c.MinC, c.MaxC)
	}
	if c.AlertLimit < c.MaxC || c.AlertLimit < -c.MinC {
		return fmt.Errorf("AlertLimit %v must cover the normal band [%v, %v]",
			c.AlertLimit, c.MinC, c.MaxC)
	}
	if c.ErrorLimit < c.AlertLimit {
		return fmt.Errorf("ErrorLimit %v < AlertLimit %v", c.ErrorLimit, c.AlertLimit)
	}
	return nil
}

type bucket int

const (
	bucketNormal bucket = iota
	bucketWarning
	bucketCritical
)

func (c ThresholdConfig) classify(residual float64) bucket {
	if residual >= c.MinC && residual <= c.MaxC {
		return bucketNormal
	}
	if math.Abs(residual) > c.ErrorLimit {
		return bucketCritical
	}
	return bucketWarning
}

type streakKind int

const (
	streakNone streakKind = iota
	streakWarning
	streakCritical
)

// RunState is the open out-of-bounds streak for one axis.
// There is at most one open streak per axis at any time.
type RunState struct {
	Kind     streakKind
	Start    time.Time
	Length   int
	Peak     float64
	Reported bool
}

// Axis detects sustained deviations on a single axis. Samples must be fed
// in strictly increasing stamp order; axes never share state.
type Axis struct {
	axis  int
	cfg   ThresholdConfig
	model Predictor

	state   RunState
	last    time.Time
	hasLast bool
}

// NewAxis .
func NewAxis(axis int, cfg ThresholdConfig, model Predictor) (*Axis, error) {
	if model == nil {
		return nil, fmt.Errorf("axis %v: %w", axis, ErrModelUnavailable)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("axis %v threshold config err: %v", axis, err)
	}
	return &Axis{axis: axis, cfg: cfg, model: model}, nil
}

// State returns a copy of the current run state.
func (a *Axis) State() RunState {
	return a.state
}

// Reset clears the run state and the sequencing watermark.
func (a *Axis) Reset() {
	a.state = RunState{}
	a.last = time.Time{}
	a.hasLast = false
}

// Process feeds one observed sample through the streak state machine and
// returns an Event when a streak first satisfies the minimum duration, or
// when a warning streak that already reported escalates to critical and the
// critical phase satisfies the duration on its own.
//
// Escalation resets the streak: the counter, start stamp and peak restart at
// the escalating sample, and prior warning samples are not credited.
func (a *Axis) Process(stamp time.Time, current float64) (*Event, error) {
	if a.hasLast && !stamp.After(a.last) {
		return nil, &SequenceError{Axis: a.axis, Got: stamp, Last: a.last}
	}

	residual := current - a.model.Predict(stamp)
	a.last = stamp
	a.hasLast = true

	switch a.cfg.classify(residual) {
	case bucketNormal:
		a.state = RunState{}
		return nil, nil

	case bucketWarning:
		if a.state.Kind == streakNone {
			a.state = RunState{Kind: streakWarning, Start: stamp, Length: 1, Peak: residual}
		} else {
			// critical dominates once entered; a warning sample extends it
			a.extend(residual)
		}

	case bucketCritical:
		switch a.state.Kind {
		case streakCritical:
			a.extend(residual)
		default:
			// fresh streak, or warning streak upgraded in place
			a.state = RunState{Kind: streakCritical, Start: stamp, Length: 1, Peak: residual}
		}
	}

	if a.state.Length >= a.cfg.T && !a.state.Reported {
		a.state.Reported = true
		ev := Event{
			Axis:         a.axis,
			Severity:     a.state.Kind.severity(),
			StartTime:    a.state.Start,
			EndTime:      stamp,
			PeakResidual: a.state.Peak,
		}
		return &ev, nil
	}
	return nil, nil
}

func (a *Axis) extend(residual float64) {
	a.state.Length++
	if math.Abs(residual) > math.Abs(a.state.Peak) {
		a.state.Peak = residual
	}
}
