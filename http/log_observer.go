package http

import (
	"github.com/sirupsen/logrus"
)

// LogObserver is an Observer that writes each exchange phase to a logrus
// logger. Requests are logged at debug level, responses at info level and
// transport failures at error level (warn once acknowledged by an earlier
// observer).
type LogObserver struct {
	logger logrus.FieldLogger
}

// NewLogObserver creates a LogObserver. A nil logger uses the logrus
// standard logger.
func NewLogObserver(logger logrus.FieldLogger) *LogObserver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogObserver{logger: logger}
}

// BeforeSend implements Observer.
func (o *LogObserver) BeforeSend(req *ResolvedRequest, xc *ExchangeContext) {
	o.logger.WithFields(logrus.Fields{
		"exchange_id": xc.ID.String(),
		"method":      req.Method(),
		"url":         req.String(),
		"headers":     len(req.Headers()),
		"body_bytes":  req.Content().Len(),
	}).Debug("sending request")
}

// AfterReceive implements Observer.
func (o *LogObserver) AfterReceive(resp *Response, xc *ExchangeContext) {
	o.logger.WithFields(logrus.Fields{
		"exchange_id": xc.ID.String(),
		"status":      resp.StatusCode,
		"bytes":       xc.ResponseSize,
		"elapsed":     xc.Elapsed().String(),
	}).Info("received response")
}

// OnError implements Observer.
func (o *LogObserver) OnError(err error, req *ResolvedRequest, xc *ExchangeContext) {
	entry := o.logger.WithFields(logrus.Fields{
		"exchange_id": xc.ID.String(),
		"method":      req.Method(),
		"url":         req.String(),
		"elapsed":     xc.Elapsed().String(),
	}).WithError(err)

	if xc.FailureHandled {
		entry.Warn("exchange failed (handled)")
		return
	}
	entry.Error("exchange failed")
}
