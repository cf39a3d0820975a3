package scheduler

import "github.com/charmbracelet/log"

// logger forwards gocron's internal messages to the scheduler logger.
// gocron reports every run at info level, those are demoted to debug.
type logger struct {
	log *log.Logger
}

func newLogger(base *log.Logger) *logger {
	return &logger{
		log: base.With("source", "gocron"),
	}
}

func (l *logger) Debug(msg string, args ...any) { l.log.Debug(msg, args...) }
func (l *logger) Info(msg string, args ...any)  { l.log.Debug(msg, args...) }
func (l *logger) Warn(msg string, args ...any)  { l.log.Warn(msg, args...) }
func (l *logger) Error(msg string, args ...any) { l.log.Error(msg, args...) }
