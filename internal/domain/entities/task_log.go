package entities

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
)

// TaskLog is the reporting channel handed to a single task invocation. Errors
// are logged immediately and remembered, so the task can report overall
// failure once every item has been processed.
type TaskLog struct {
	log    logger.FieldLogger
	errors []string
}

// NewTaskLog creates a TaskLog writing through the given logger.
func NewTaskLog(log logger.FieldLogger) *TaskLog {
	return &TaskLog{log: log}
}

// LogError logs and records a formatted error message.
func (it *TaskLog) LogError(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	it.errors = append(it.errors, message)
	it.log.Error(message)
}

// LogWarning logs a formatted warning; warnings do not fail the task.
func (it *TaskLog) LogWarning(format string, args ...any) {
	it.log.Warnf(format, args...)
}

// LogMessage logs a formatted informational message.
func (it *TaskLog) LogMessage(format string, args ...any) {
	it.log.Infof(format, args...)
}

// HasLoggedErrors reports whether LogError was called at least once.
func (it *TaskLog) HasLoggedErrors() bool {
	return len(it.errors) > 0
}

// Errors returns the recorded error messages in logging order.
func (it *TaskLog) Errors() []string {
	return it.errors
}
