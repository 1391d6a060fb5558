package dal

import (
	"fmt"
	"time"
)

// NumAxes is the number of joint axes in the input schema.
const NumAxes = 14

// TraitMeasurement is one recorded row of per-axis values for a trait
// (e.g. motor current) at a timestamp. Axis values are nullable to keep
// rows with missing axis data.
type TraitMeasurement struct {
	ID    uint   `gorm:"primary_key"`
	Trait string `gorm:"type:varchar(100);index"`

	Axis1  *float64 `gorm:"column:axis_1"`
	Axis2  *float64 `gorm:"column:axis_2"`
	Axis3  *float64 `gorm:"column:axis_3"`
	Axis4  *float64 `gorm:"column:axis_4"`
	Axis5  *float64 `gorm:"column:axis_5"`
	Axis6  *float64 `gorm:"column:axis_6"`
	Axis7  *float64 `gorm:"column:axis_7"`
	Axis8  *float64 `gorm:"column:axis_8"`
	Axis9  *float64 `gorm:"column:axis_9"`
	Axis10 *float64 `gorm:"column:axis_10"`
	Axis11 *float64 `gorm:"column:axis_11"`
	Axis12 *float64 `gorm:"column:axis_12"`
	Axis13 *float64 `gorm:"column:axis_13"`
	Axis14 *float64 `gorm:"column:axis_14"`

	RecordedAt time.Time `gorm:"index"`
}

// TableName .
func (m TraitMeasurement) TableName() string {
	return "trait_measurements"
}

func (m *TraitMeasurement) axisFields() []**float64 {
	return []**float64{
		&m.Axis1, &m.Axis2, &m.Axis3, &m.Axis4, &m.Axis5, &m.Axis6, &m.Axis7,
		&m.Axis8, &m.Axis9, &m.Axis10, &m.Axis11, &m.Axis12, &m.Axis13, &m.Axis14,
	}
}

// AxisValue returns the value for axis 1..NumAxes, or ok=false if the
// column is NULL.
func (m *TraitMeasurement) AxisValue(axis int) (float64, bool) {
	if axis < 1 || axis > NumAxes {
		return 0, false
	}
	p := *m.axisFields()[axis-1]
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SetAxisValue .
func (m *TraitMeasurement) SetAxisValue(axis int, value float64) error {
	if axis < 1 || axis > NumAxes {
		return fmt.Errorf("axis %v out of range [1, %v]", axis, NumAxes)
	}
	v := value
	*m.axisFields()[axis-1] = &v
	return nil
}

// AnomalyEvent is one persisted Alert/Error event.
type AnomalyEvent struct {
	ID           uint   `gorm:"primary_key"`
	Axis         int    `gorm:"index"`
	Severity     string `gorm:"type:varchar(20)"`
	StartTime    time.Time
	EndTime      time.Time
	PeakResidual float64
}

// TableName .
func (e AnomalyEvent) TableName() string {
	return "anomaly_events"
}
