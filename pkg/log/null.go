package log

type nullLogger struct{}

func (nullLogger) Debugf(string, ...interface{}) {}
func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Warnf(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Fatal(...interface{})          {}

// NewNullLogger returns a Logger that discards everything, used
// when no logger is configured.
func NewNullLogger() Logger {
	return nullLogger{}
}
