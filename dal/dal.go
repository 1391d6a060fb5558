// Package dal persists trait measurements and anomaly events in a managed
// PostgreSQL database (e.g. Neon).
package dal

import (
	"fmt"
	"os"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

// EnvDatabaseURL is the fallback DSN environment variable.
const EnvDatabaseURL = "NEON_DATABASE_URL"

// StorageError is a persistence failure surfaced after the in-flight batch
// was rolled back; no partial state is visible.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %v err: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// MeasurementStore is the narrow storage surface seen by the loader and
// the detection pipeline.
type MeasurementStore interface {
	InsertMeasurementBatch(rows []*TraitMeasurement) error
	QueryMeasurements(trait string) ([]*TraitMeasurement, error)
}

// EventStore .
type EventStore interface {
	SaveEvents(events []*AnomalyEvent) error
	QueryEvents(axis int) ([]*AnomalyEvent, error)
}

// DAL .
type DAL struct {
	db *gorm.DB
}

// Open connects to PostgreSQL and migrates the schema. An empty dsn falls
// back to NEON_DATABASE_URL.
func Open(dsn string) (*DAL, error) {
	if dsn == "" {
		dsn = os.Getenv(EnvDatabaseURL)
	}
	if dsn == "" {
		return nil, fmt.Errorf("no postgres DSN configured and %v is not set", EnvDatabaseURL)
	}

	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres err: %v", err)
	}
	if err := db.AutoMigrate(&TraitMeasurement{}, &AnomalyEvent{}).Error; err != nil {
		return nil, fmt.Errorf("migrate schema err: %v", err)
	}
	return &DAL{db: db}, nil
}

// Close .
func (d *DAL) Close() error {
	return d.db.Close()
}

// InsertMeasurementBatch writes all rows in one transaction; on any failure
// the whole batch is rolled back.
func (d *DAL) InsertMeasurementBatch(rows []*TraitMeasurement) error {
	if len(rows) == 0 {
		return nil
	}
	tx := d.db.Begin()
	if tx.Error != nil {
		return &StorageError{Op: "begin", Err: tx.Error}
	}
	for _, row := range rows {
		if err := tx.Create(row).Error; err != nil {
			tx.Rollback()
			return &StorageError{Op: "insert measurement", Err: err}
		}
	}
	if err := tx.Commit().Error; err != nil {
		return &StorageError{Op: "commit", Err: err}
	}
	return nil
}

// QueryMeasurements returns all rows for a trait in recording order.
func (d *DAL) QueryMeasurements(trait string) ([]*TraitMeasurement, error) {
	var rows []*TraitMeasurement
	q := d.db.Order("recorded_at asc")
	if trait != "" {
		q = q.Where("trait = ?", trait)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, &StorageError{Op: "query measurements", Err: err}
	}
	return rows, nil
}

// SaveEvents appends events to the log in one transaction.
func (d *DAL) SaveEvents(events []*AnomalyEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx := d.db.Begin()
	if tx.Error != nil {
		return &StorageError{Op: "begin", Err: tx.Error}
	}
	for _, ev := range events {
		if err := tx.Create(ev).Error; err != nil {
			tx.Rollback()
			return &StorageError{Op: "insert event", Err: err}
		}
	}
	if err := tx.Commit().Error; err != nil {
		return &StorageError{Op: "commit", Err: err}
	}
	return nil
}

// QueryEvents returns events for one axis, or all events for axis 0.
func (d *DAL) QueryEvents(axis int) ([]*AnomalyEvent, error) {
	var events []*AnomalyEvent
	q := d.db.Order("start_time asc")
	if axis > 0 {
		q = q.Where("axis = ?", axis)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, &StorageError{Op: "query events", Err: err}
	}
	return events, nil
}
