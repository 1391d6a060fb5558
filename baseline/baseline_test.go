package baseline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/preeja73/robocurrent/ts"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func linePoints(n int, slope, intercept float64) ts.Points {
	var points ts.Points
	for i := 0; i < n; i++ {
		stamp := base.Add(time.Duration(i) * time.Second)
		points = append(points, ts.NewPoint(stamp, slope*float64(i)+intercept))
	}
	return points
}

func TestFit_RecoversExactLine(t *testing.T) {
	m, err := Fit(linePoints(10, 2, 1))
	require.NoError(t, err)
	require.InDelta(t, 2, m.Slope, 1e-9)
	require.InDelta(t, 1, m.Intercept, 1e-9)

	// predictor extrapolates past the window
	require.InDelta(t, 2*100+1, m.Predict(base.Add(100*time.Second)), 1e-9)
}

func TestFit_ConstantSeries(t *testing.T) {
	m, err := Fit(linePoints(5, 0, 7.5))
	require.NoError(t, err)
	require.InDelta(t, 0, m.Slope, 1e-9)
	require.InDelta(t, 7.5, m.Predict(base.Add(time.Hour)), 1e-9)
}

func TestFit_InsufficientData(t *testing.T) {
	_, err := Fit(nil)
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = Fit(linePoints(1, 0, 1))
	require.ErrorIs(t, err, ErrInsufficientData)

	// two points on the same stamp cannot fix a line either
	same := ts.Points{
		ts.NewPoint(base, 1),
		ts.NewPoint(base, 2),
	}
	_, err = Fit(same)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestLSFit_RegressionPairs(t *testing.T) {
	pairs := ts.XYPoints{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}}
	intercept, slope := lsFit(pairs)
	require.InDelta(t, 1, intercept, 1e-9)
	require.InDelta(t, 2, slope, 1e-9)
}

func TestFit_Deterministic(t *testing.T) {
	points := linePoints(50, 0.3, -4)
	m1, err := Fit(points)
	require.NoError(t, err)
	m2, err := Fit(points)
	require.NoError(t, err)
	require.Equal(t, m1.Slope, m2.Slope)
	require.Equal(t, m1.Intercept, m2.Intercept)
}

func TestFitAxes_PartialFailure(t *testing.T) {
	series := map[int]ts.Points{
		1: linePoints(10, 1, 0),
		2: linePoints(1, 0, 3),
	}
	models, errs := FitAxes(series)

	require.Contains(t, models, 1)
	require.NotContains(t, models, 2)
	require.ErrorIs(t, errs[2], ErrInsufficientData)
	require.NotContains(t, errs, 1)
}
