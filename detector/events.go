package detector

import (
	"fmt"
	"time"
)

// Severity .
type Severity string

const (
	// SeverityAlert marks a sustained warning-level deviation.
	SeverityAlert Severity = "Alert"
	// SeverityError marks a sustained critical-level deviation.
	SeverityError Severity = "Error"
)

func (k streakKind) severity() Severity {
	if k == streakCritical {
		return SeverityError
	}
	return SeverityAlert
}

// Event is one emitted deviation. Immutable once created.
type Event struct {
	Axis         int       `json:"axis"`
	Severity     Severity  `json:"severity"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	PeakResidual float64   `json:"peak_residual"`
}

func (e Event) String() string {
	return fmt.Sprintf("axis %v %v [%v, %v] peak %v",
		e.Axis, e.Severity,
		e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339),
		e.PeakResidual)
}
