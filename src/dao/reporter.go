package dao

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/dao-bridge/src/utils/logger"
	"github.com/warp-contracts/dao-bridge/src/utils/monitoring"
)

// Single path for all failures of wallet and chain interaction
type Reporter struct {
	log     *logrus.Entry
	monitor *monitoring.Monitor
}

func NewReporter() (self *Reporter) {
	self = new(Reporter)
	self.log = logger.NewSublogger("reporter")
	return
}

func (self *Reporter) WithMonitor(monitor *monitoring.Monitor) *Reporter {
	self.monitor = monitor
	return self
}

// Logs the error and converts it to a Fault
func (self *Reporter) Report(err error) error {
	if err == nil {
		return nil
	}

	var fault *Fault
	if errors.As(err, &fault) {
		// Already reported
		return err
	}

	self.log.WithField("error", serialize(err)).Error("Operation failed")

	if self.monitor != nil {
		report := self.monitor.GetReport()
		report.Errors.Reported.Inc()
		switch {
		case errors.Is(err, ErrReadFailure):
			report.Errors.ReadFailures.Inc()
		case errors.Is(err, ErrTransactionFailure):
			report.Errors.TransactionFailures.Inc()
		}
	}

	return &Fault{cause: err}
}

func serialize(err error) string {
	buf, jsonErr := json.Marshal(struct {
		Type  string `json:"type"`
		Error string `json:"error"`
	}{
		Type:  fmt.Sprintf("%T", err),
		Error: err.Error(),
	})
	if jsonErr != nil {
		return err.Error()
	}
	return string(buf)
}
