// Package testtools generates synthetic joint-current telemetry for the
// workshop: drifting baselines, noise, and injected deviation windows with
// known Alert/Error outcomes.
package testtools

import (
	"math"
	"math/rand"
	"time"

	"github.com/preeja73/robocurrent/ts"
)

// Stamp2X converts a timestamp to a value on X.
type Stamp2X func(stamp time.Time) float64

// SecondsSince .
func SecondsSince(base time.Time) Stamp2X {
	return func(stamp time.Time) float64 {
		return stamp.Sub(base).Seconds()
	}
}

// Generator .
type Generator interface {
	Gen(stamp time.Time) float64
}

// LineGener y = Ax + B
type LineGener struct {
	A       float64
	B       float64
	Stamp2X Stamp2X
}

// Gen .
func (lg *LineGener) Gen(stamp time.Time) float64 {
	x := lg.Stamp2X(stamp)
	return lg.A*x + lg.B
}

// SinGener .
type SinGener struct {
	Amp     float64
	Stamp2X Stamp2X
}

// Gen .
func (sg *SinGener) Gen(stamp time.Time) float64 {
	x := sg.Stamp2X(stamp)
	return sg.Amp * math.Sin(x)
}

// UniRandGener uniform distribution random generator
type UniRandGener struct {
	Min float64
	Max float64
	Rnd *rand.Rand
}

// Gen .
func (urg *UniRandGener) Gen(stamp time.Time) float64 {
	k := urg.Max - urg.Min
	r := urg.Rnd.Float64() * k
	return r + urg.Min
}

// DeviationGener adds a constant offset inside [From, Until); zero outside.
// Stacked on a baseline generator it produces a known out-of-bounds window.
type DeviationGener struct {
	Offset float64
	From   time.Time
	Until  time.Time
}

// Gen .
func (dg *DeviationGener) Gen(stamp time.Time) float64 {
	if !stamp.Before(dg.From) && stamp.Before(dg.Until) {
		return dg.Offset
	}
	return 0
}

// SumGener .
type SumGener struct {
	Parts []Generator
}

// Gen .
func (sg *SumGener) Gen(stamp time.Time) float64 {
	var v float64
	for _, g := range sg.Parts {
		v += g.Gen(stamp)
	}
	return v
}

// GenPoints samples a generator on a fixed frequency grid.
func GenPoints(begin, end time.Time, freq time.Duration, g Generator) ts.Points {
	var points ts.Points
	for stamp := begin; !stamp.After(end); stamp = stamp.Add(freq) {
		points = append(points, ts.NewPoint(stamp, g.Gen(stamp)))
	}
	return points
}
