package detector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// flatModel predicts a constant so the fed values are the residuals.
type flatModel struct {
	value float64
}

func (m flatModel) Predict(time.Time) float64 {
	return m.value
}

var testCfg = ThresholdConfig{
	MinC:       -2,
	MaxC:       2,
	AlertLimit: 4,
	ErrorLimit: 8,
	T:          3,
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func stamp(i int) time.Time {
	return base.Add(time.Duration(i) * 30 * time.Second)
}

func newTestAxis(t *testing.T) *Axis {
	t.Helper()
	a, err := NewAxis(1, testCfg, flatModel{})
	require.NoError(t, err)
	return a
}

// feed pushes residuals one per 30s step and returns the emitted events.
func feed(t *testing.T, a *Axis, residuals ...float64) []Event {
	t.Helper()
	var events []Event
	for i, r := range residuals {
		ev, err := a.Process(stamp(i+1), r)
		require.NoError(t, err)
		if ev != nil {
			events = append(events, *ev)
		}
	}
	return events
}

func TestProcess_InBoundsResidualsNeverEmit(t *testing.T) {
	a := newTestAxis(t)
	events := feed(t, a, 0, 1.5, -2, 2, 0.3, -0.7)
	require.Empty(t, events)
	require.Equal(t, RunState{}, a.State())
}

func TestProcess_AlertAfterSustainedWarning(t *testing.T) {
	a := newTestAxis(t)
	// warning run of exactly T=3 samples, then back in bounds
	events := feed(t, a, 0, 0, 3, 3, 3, 0)
	require.Len(t, events, 1)

	ev := events[0]
	require.Equal(t, SeverityAlert, ev.Severity)
	require.Equal(t, 1, ev.Axis)
	require.Equal(t, stamp(3), ev.StartTime)
	require.Equal(t, stamp(5), ev.EndTime)
	require.Equal(t, 3.0, ev.PeakResidual)

	// the trailing normal sample reset the streak
	require.Equal(t, RunState{}, a.State())
}

func TestProcess_NoAlertBelowMinimumDuration(t *testing.T) {
	a := newTestAxis(t)
	events := feed(t, a, 3, 3, 0, 3, 3, 0)
	require.Empty(t, events)
}

func TestProcess_NoDuplicateEmissionWhileStreakContinues(t *testing.T) {
	a := newTestAxis(t)
	events := feed(t, a, 3, 3, 3, 3, 3, 3, 3)
	require.Len(t, events, 1)
	require.Equal(t, stamp(3), events[0].EndTime)
}

func TestProcess_PeakTracksLargestMagnitude(t *testing.T) {
	a := newTestAxis(t)
	events := feed(t, a, 3, -3.5, 2.5)
	require.Len(t, events, 1)
	require.Equal(t, -3.5, events[0].PeakResidual)
}

func TestProcess_EscalationBeforeAlertEmitsOnlyError(t *testing.T) {
	a := newTestAxis(t)
	// warning run of 2 < T, then critical; the counter restarts at the
	// escalation sample, so no Alert and exactly one Error
	events := feed(t, a, 0, 3, 3, 9, 9, 9)
	require.Len(t, events, 1)

	ev := events[0]
	require.Equal(t, SeverityError, ev.Severity)
	require.Equal(t, stamp(4), ev.StartTime)
	require.Equal(t, stamp(6), ev.EndTime)
	require.Equal(t, 9.0, ev.PeakResidual)
}

func TestProcess_EscalationAfterReportedAlertEmitsFreshError(t *testing.T) {
	a := newTestAxis(t)
	events := feed(t, a, 3, 3, 3, 9, 9, 9)
	require.Len(t, events, 2)

	require.Equal(t, SeverityAlert, events[0].Severity)
	require.Equal(t, stamp(1), events[0].StartTime)
	require.Equal(t, stamp(3), events[0].EndTime)

	require.Equal(t, SeverityError, events[1].Severity)
	require.Equal(t, stamp(4), events[1].StartTime)
	require.Equal(t, stamp(6), events[1].EndTime)
	require.Equal(t, 9.0, events[1].PeakResidual)
}

func TestProcess_WarningDoesNotDowngradeCriticalStreak(t *testing.T) {
	a := newTestAxis(t)
	// the warning sample extends the critical streak
	events := feed(t, a, 9, 9, 3)
	require.Len(t, events, 1)
	require.Equal(t, SeverityError, events[0].Severity)
	require.Equal(t, stamp(1), events[0].StartTime)
	require.Equal(t, stamp(3), events[0].EndTime)
	require.Equal(t, 9.0, events[0].PeakResidual)
}

func TestProcess_OutOfOrderStampFailsAndKeepsState(t *testing.T) {
	a := newTestAxis(t)
	feed(t, a, 3, 3)
	before := a.State()

	_, err := a.Process(stamp(1), 3)
	var seqErr *SequenceError
	require.ErrorAs(t, err, &seqErr)
	require.Equal(t, 1, seqErr.Axis)
	require.Equal(t, before, a.State())

	// an equal stamp violates strict monotonicity too
	_, err = a.Process(stamp(2), 3)
	require.Error(t, err)
	require.Equal(t, before, a.State())

	// the streak continues as if the bad samples never arrived
	ev, err := a.Process(stamp(3), 3)
	require.NoError(t, err)
	require.NotNil(t, ev)
	require.Equal(t, SeverityAlert, ev.Severity)
}

func TestProcess_DeterministicAcrossReruns(t *testing.T) {
	residuals := []float64{0, 3, 3, 3, 0, 9, 9, 3, 9, 0, 3}

	a := newTestAxis(t)
	first := feed(t, a, residuals...)

	a.Reset()
	second := feed(t, a, residuals...)

	require.Equal(t, first, second)
}

func TestNewAxis_RejectsMissingModel(t *testing.T) {
	_, err := NewAxis(1, testCfg, nil)
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestThresholdConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     ThresholdConfig
		wantErr bool
	}{
		{"valid", testCfg, false},
		{"zero duration", ThresholdConfig{MinC: -2, MaxC: 2, AlertLimit: 4, ErrorLimit: 8}, true},
		{"inverted band", ThresholdConfig{MinC: 2, MaxC: -2, AlertLimit: 4, ErrorLimit: 8, T: 3}, true},
		{"alert below band", ThresholdConfig{MinC: -2, MaxC: 2, AlertLimit: 1, ErrorLimit: 8, T: 3}, true},
		{"error below alert", ThresholdConfig{MinC: -2, MaxC: 2, AlertLimit: 4, ErrorLimit: 3, T: 3}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
