package detector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDetector(t *testing.T, axes ...int) *Detector {
	t.Helper()
	cfgs := make(map[int]ThresholdConfig, len(axes))
	models := make(map[int]Predictor, len(axes))
	for _, axis := range axes {
		cfgs[axis] = testCfg
		models[axis] = flatModel{}
	}
	d, err := New(cfgs, models)
	require.NoError(t, err)
	return d
}

func TestDetector_AxesAreIndependent(t *testing.T) {
	d := newTestDetector(t, 1, 2)

	// interleave: axis 1 never completes a streak, axis 2 does
	residuals := map[int][]float64{
		1: {3, 3, 0, 3, 3, 0},
		2: {0, 3, 3, 3, 0, 0},
	}
	for i := 0; i < 6; i++ {
		for axis := 1; axis <= 2; axis++ {
			_, err := d.Process(Sample{Axis: axis, Stamp: stamp(i + 1), Current: residuals[axis][i]})
			require.NoError(t, err)
		}
	}

	events := d.Events()
	require.Len(t, events, 1)
	require.Equal(t, 2, events[0].Axis)
	require.Equal(t, SeverityAlert, events[0].Severity)
	require.Equal(t, stamp(2), events[0].StartTime)
	require.Equal(t, stamp(4), events[0].EndTime)
}

func TestDetector_UnknownAxisSurfacesModelUnavailable(t *testing.T) {
	d := newTestDetector(t, 1)
	_, err := d.Process(Sample{Axis: 7, Stamp: stamp(1), Current: 0})
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestDetector_MissingThresholdConfigFailsConstruction(t *testing.T) {
	_, err := New(map[int]ThresholdConfig{}, map[int]Predictor{1: flatModel{}})
	require.Error(t, err)
}

func TestDetector_ResetClearsEventLog(t *testing.T) {
	d := newTestDetector(t, 1)
	for i := 0; i < 3; i++ {
		_, err := d.Process(Sample{Axis: 1, Stamp: stamp(i + 1), Current: 3})
		require.NoError(t, err)
	}
	require.Len(t, d.Events(), 1)

	d.Reset()
	require.Empty(t, d.Events())

	// same stream replays cleanly after a reset
	for i := 0; i < 3; i++ {
		_, err := d.Process(Sample{Axis: 1, Stamp: stamp(i + 1), Current: 3})
		require.NoError(t, err)
	}
	require.Len(t, d.Events(), 1)
}
