package ts

import "time"

// Point is one observed value at a timestamp.
type Point struct {
	stamp time.Time
	value float64
}

// NewPoint .
func NewPoint(stamp time.Time, value float64) Point {
	return Point{stamp: stamp, value: value}
}

// Stamp .
func (p Point) Stamp() time.Time {
	return p.stamp
}

// Value .
func (p Point) Value() float64 {
	return p.value
}

// Points is a time-series ordered by stamp.
type Points []Point

func (ps Points) Len() int           { return len(ps) }
func (ps Points) Swap(i, j int)      { ps[i], ps[j] = ps[j], ps[i] }
func (ps Points) Less(i, j int) bool { return ps[i].stamp.Before(ps[j].stamp) }

// N .
func (ps Points) N() int {
	return len(ps)
}

// XYPoint is a plain (x, y) pair for regression input/output.
type XYPoint struct {
	X float64
	Y float64
}

// XYPoints .
type XYPoints []XYPoint
