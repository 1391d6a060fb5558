package monitor

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/preeja73/robocurrent/loader"
)

// LoadCSV ingests a server-local CSV file into the measurement table.
func LoadCSV(c *gin.Context) {
	type req struct {
		Path string `json:"path"`
	}
	var r req
	if err := c.BindJSON(&r); err != nil {
		c.String(400, "invalid request")
		return
	}
	if r.Path == "" {
		c.String(400, "no csv path")
		return
	}

	report, err := loader.New(store, config.ChunkSize).LoadCSV(r.Path)
	if err != nil {
		c.String(500, "load csv err: %v", err)
		return
	}

	metricser.EmitCounter("rows_loaded_total", report.Inserted, map[string]string{})
	metricser.EmitCounter("rows_skipped_total", len(report.Skipped), map[string]string{})
	c.JSON(200, report)
}

// RunDetection fits baselines over the stored history and runs the event
// detector, persisting and returning the emitted events.
func RunDetection(c *gin.Context) {
	type req struct {
		Trait string `json:"trait"`
	}
	var r req
	if err := c.BindJSON(&r); err != nil {
		c.String(400, "invalid request")
		return
	}
	if r.Trait == "" {
		r.Trait = config.Trait
	}

	result, err := pipe.Detect(r.Trait, config.Thresholds())
	if err != nil {
		c.String(500, "run detection err: %v", err)
		return
	}

	c.JSON(200, result)
}

// QueryEvents .
func QueryEvents(c *gin.Context) {
	axis := 0
	if raw := c.Query("axis"); raw != "" {
		var err error
		axis, err = strconv.Atoi(raw)
		if err != nil {
			c.String(400, "invalid axis %v", raw)
			return
		}
	}

	events, err := store.QueryEvents(axis)
	if err != nil {
		c.String(500, "query events err: %v", err)
		return
	}
	c.JSON(200, events)
}

// Summary .
func Summary(c *gin.Context) {
	events, err := store.QueryEvents(0)
	if err != nil {
		c.String(500, "query events err: %v", err)
		return
	}

	summary := make(map[string]int)
	for _, ev := range events {
		summary["events_"+ev.Severity]++
	}
	summary["events_total"] = len(events)
	c.JSON(200, summary)
}
