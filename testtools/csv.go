package testtools

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/preeja73/robocurrent/dal"
	"github.com/preeja73/robocurrent/detector"
	"github.com/preeja73/robocurrent/ts"
)

// Measurements2CSVFile writes per-axis series to a workshop-format CSV
// (Trait, Axis #1..#14, Time). Every axis series must be sampled on the
// same stamp grid; axes without a series leave their column empty.
func Measurements2CSVFile(fpath, trait string, series map[int]ts.Points) error {
	var grid ts.Points
	for _, points := range series {
		if grid == nil {
			grid = points
			continue
		}
		if points.N() != grid.N() {
			return fmt.Errorf("axis series have different lengths: %v vs %v", points.N(), grid.N())
		}
	}

	f, err := os.OpenFile(fpath, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0666)
	if err != nil {
		return fmt.Errorf("open file err: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, 0, dal.NumAxes+2)
	header = append(header, "Trait")
	for axis := 1; axis <= dal.NumAxes; axis++ {
		header = append(header, fmt.Sprintf("Axis #%v", axis))
	}
	header = append(header, "Time")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write file: %v, err: %v", fpath, err)
	}

	for i := 0; i < grid.N(); i++ {
		record := make([]string, 0, dal.NumAxes+2)
		record = append(record, trait)
		for axis := 1; axis <= dal.NumAxes; axis++ {
			points, ok := series[axis]
			if !ok {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(points[i].Value(), 'f', -1, 64))
		}
		record = append(record, grid[i].Stamp().UTC().Format(time.RFC3339))
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write file: %v, err: %v", fpath, err)
		}
	}

	w.Flush()
	return w.Error()
}

// Events2CSVFile exports an event log as tabular rows for downstream use.
func Events2CSVFile(fpath string, events []detector.Event) error {
	f, err := os.OpenFile(fpath, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0666)
	if err != nil {
		return fmt.Errorf("open file err: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"axis", "severity", "start_time", "end_time", "peak_residual"}); err != nil {
		return fmt.Errorf("write file: %v, err: %v", fpath, err)
	}
	for _, ev := range events {
		record := []string{
			strconv.Itoa(ev.Axis),
			string(ev.Severity),
			ev.StartTime.UTC().Format(time.RFC3339),
			ev.EndTime.UTC().Format(time.RFC3339),
			strconv.FormatFloat(ev.PeakResidual, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write file: %v, err: %v", fpath, err)
		}
	}

	w.Flush()
	return w.Error()
}
