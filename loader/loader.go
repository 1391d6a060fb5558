// Package loader ingests trait measurement CSVs into persistent storage.
//
// Input format follows the workshop export: columns Trait, Axis #1..#14
// and Time. Rows that do not parse are skipped and reported; rows that do
// parse are committed in transactional chunks.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/preeja73/robocurrent/dal"
	"github.com/preeja73/robocurrent/utils"
)

// DefaultChunkSize matches the workshop's bulk-insert chunking.
const DefaultChunkSize = 2000

var logger = utils.NewLogger("loader")

// RowError reports one skipped input row.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %v: %v", e.Line, e.Reason)
}

// Report summarizes one load run.
type Report struct {
	Inserted int
	Skipped  []RowError
}

// Loader .
type Loader struct {
	store     dal.MeasurementStore
	chunkSize int
}

// New .
func New(store dal.MeasurementStore, chunkSize int) *Loader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Loader{store: store, chunkSize: chunkSize}
}

// LoadCSV .
func (l *Loader) LoadCSV(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file err: %v", err)
	}
	defer f.Close()
	return l.Load(f)
}

// Load reads the CSV row-by-row, expanding each row into one measurement,
// and inserts parsed rows in transactional chunks. A persistence failure
// aborts the load after the in-flight chunk rolled back.
func (l *Loader) Load(r io.Reader) (*Report, error) {
	cr := csv.NewReader(r)
	// field-count mismatches are row errors, not file errors
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header err: %v", err)
	}
	cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	chunk := make([]*dal.TraitMeasurement, 0, l.chunkSize)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return report, fmt.Errorf("read row err: %v", err)
		}
		line++

		row, rowErr := parseRow(line, cols, record)
		if rowErr != nil {
			logger.Warnf("skip %v", rowErr)
			report.Skipped = append(report.Skipped, *rowErr)
			continue
		}
		chunk = append(chunk, row)

		if len(chunk) >= l.chunkSize {
			if err := l.store.InsertMeasurementBatch(chunk); err != nil {
				return report, err
			}
			report.Inserted += len(chunk)
			chunk = chunk[:0]
		}
	}

	if len(chunk) > 0 {
		if err := l.store.InsertMeasurementBatch(chunk); err != nil {
			return report, err
		}
		report.Inserted += len(chunk)
	}
	return report, nil
}

// columns maps the CSV layout to record indexes.
type columns struct {
	width int
	trait int
	time  int
	axes  [dal.NumAxes]int
}

func parseHeader(header []string) (*columns, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	cols := &columns{width: len(header)}
	var missing []string
	var ok bool
	if cols.trait, ok = idx["Trait"]; !ok {
		missing = append(missing, "Trait")
	}
	if cols.time, ok = idx["Time"]; !ok {
		missing = append(missing, "Time")
	}
	for axis := 1; axis <= dal.NumAxes; axis++ {
		name := fmt.Sprintf("Axis #%v", axis)
		if cols.axes[axis-1], ok = idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv is missing columns: %v", missing)
	}
	return cols, nil
}

func parseRow(line int, cols *columns, record []string) (*dal.TraitMeasurement, *RowError) {
	if len(record) != cols.width {
		return nil, &RowError{Line: line,
			Reason: fmt.Sprintf("expected %v fields, got %v", cols.width, len(record))}
	}

	get := func(i int) (string, bool) {
		if i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}

	trait, ok := get(cols.trait)
	if !ok || trait == "" {
		return nil, &RowError{Line: line, Reason: "empty trait"}
	}

	rawTime, ok := get(cols.time)
	if !ok || rawTime == "" {
		return nil, &RowError{Line: line, Reason: "empty time"}
	}
	stamp, err := parseTime(rawTime)
	if err != nil {
		return nil, &RowError{Line: line, Reason: fmt.Sprintf("invalid time %q", rawTime)}
	}

	m := &dal.TraitMeasurement{Trait: trait, RecordedAt: stamp}
	for axis := 1; axis <= dal.NumAxes; axis++ {
		cell, ok := get(cols.axes[axis-1])
		if !ok || cell == "" {
			continue // missing value stays NULL
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, &RowError{Line: line,
				Reason: fmt.Sprintf("axis %v: non-numeric value %q", axis, cell)}
		}
		m.SetAxisValue(axis, v)
	}
	return m, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %v", s)
}
