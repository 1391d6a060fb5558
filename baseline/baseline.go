// Package baseline fits per-axis linear current baselines over a
// historical window by ordinary least squares.
package baseline

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/preeja73/robocurrent/ts"
)

// ErrInsufficientData .
var ErrInsufficientData = fmt.Errorf("need at least 2 distinct time values to fit a line")

// Model is a fitted slope/intercept baseline for one axis. It carries no
// mutable state after fitting; refits replace the model wholesale.
type Model struct {
	Slope     float64
	Intercept float64

	// base anchors the regression x axis at the first historical stamp
	// to keep the normal equations well conditioned.
	base time.Time
}

// Predict .
func (m *Model) Predict(stamp time.Time) float64 {
	return m.Slope*m.x(stamp) + m.Intercept
}

func (m *Model) x(stamp time.Time) float64 {
	return stamp.Sub(m.base).Seconds()
}

// Fit runs OLS of current against time over the historical window.
// Deterministic given identical input ordering.
func Fit(points ts.Points) (*Model, error) {
	if points.N() < 2 {
		return nil, ErrInsufficientData
	}

	base := points[0].Stamp()
	pairs := make(ts.XYPoints, 0, points.N())
	distinct := make(map[float64]struct{}, points.N())
	for _, p := range points {
		x := p.Stamp().Sub(base).Seconds()
		pairs = append(pairs, ts.XYPoint{X: x, Y: p.Value()})
		distinct[x] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil, ErrInsufficientData
	}

	intercept, slope := lsFit(pairs)
	return &Model{Slope: slope, Intercept: intercept, base: base}, nil
}

func lsFit(pairs ts.XYPoints) (intercept, slope float64) {
	xs := make([]float64, len(pairs))
	ys := make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return stat.LinearRegression(xs, ys, nil, false)
}

// FitAxes fits one model per axis. Axes that cannot be fit are reported in
// the error map instead of sinking the whole build.
func FitAxes(series map[int]ts.Points) (map[int]*Model, map[int]error) {
	models := make(map[int]*Model, len(series))
	errs := make(map[int]error)
	for axis, points := range series {
		m, err := Fit(points)
		if err != nil {
			errs[axis] = fmt.Errorf("axis %v: %w", axis, err)
			continue
		}
		models[axis] = m
	}
	return models, errs
}
