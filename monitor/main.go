// Package monitor wires the workshop pipeline into a small HTTP service:
// CSV loading, baseline fitting, residual-threshold detection, and event
// queries over one PostgreSQL-backed measurement store.
package monitor

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/preeja73/robocurrent/dal"
	"github.com/preeja73/robocurrent/utils"
)

var (
	config    *Config
	store     *dal.DAL
	pipe      *Pipeline
	metricser *utils.DefaultMetricser
	logger    = utils.NewLogger("monitor")
)

// Start .
func Start(c *Config) error {
	config = c
	utils.SetLogLevel(c.LogLevel)
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config err: %v", err)
	}

	metricser = utils.NewDefaultMetricser()

	var err error
	store, err = dal.Open(c.PostgresDSN)
	if err != nil {
		return fmt.Errorf("open dal err: %v", err)
	}
	pipe = NewPipeline(store, store, metricser)
	logger.Infof("monitor started, trait %v, port %v", c.Trait, c.Port)

	g := gin.Default()
	api := g.Group("robocurrent/api")
	{
		api.POST("load_csv", LoadCSV)
		api.POST("run_detection", RunDetection)
		api.GET("query_events", QueryEvents)
		api.GET("summary", Summary)
	}
	g.GET("metrics", gin.WrapH(promhttp.HandlerFor(metricser.Registry(), promhttp.HandlerOpts{})))

	go func() {
		err := g.Run(fmt.Sprintf("0.0.0.0:%v", c.Port))
		panic(err)
	}()

	return nil
}
