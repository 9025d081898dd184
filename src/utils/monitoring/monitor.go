package monitoring

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/warp-contracts/dao-bridge/src/utils/task"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report Report

	collector *Collector
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	// Initialization
	self.Report.Run.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(10*time.Second, self.monitorUptime)
	return
}

func (self *Monitor) GetReport() *Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func (self *Monitor) monitorUptime() (err error) {
	self.Report.Run.UpForSeconds.Store(uint64(time.Now().Unix() - self.Report.Run.StartTimestamp.Load()))
	return
}

func (self *Monitor) OnGet(c *gin.Context) {
	err := self.monitorUptime()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, &self.Report)
}
