package reconcile

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// LogStatus is a Status that writes to a zap logger and stops on request.
type LogStatus struct {
	logger  *zap.Logger
	stopped atomic.Bool
}

// NewLogStatus creates a LogStatus. A nil logger discards messages.
func NewLogStatus(logger *zap.Logger) *LogStatus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogStatus{logger: logger}
}

// Stop makes ContinueProcessing return false.
func (s *LogStatus) Stop() {
	s.stopped.Store(true)
}

func (s *LogStatus) ContinueProcessing() bool {
	return !s.stopped.Load()
}

func (s *LogStatus) Progress(total, current int) {
	s.logger.Debug("Progress", zap.Int("current", current), zap.Int("total", total))
}

func (s *LogStatus) LogMessage(msg string) {
	s.logger.Warn(msg)
}
