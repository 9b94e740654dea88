package logger

import "log"

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

// Logger is the leveled printf surface the rest of the module writes
// through, usually looked up from the request context. SILENCE drops
// every record.
type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type stdLogger struct {
	level int
}

// NewLogger returns a Logger over the standard log package, dropping records
// below the given level.
func NewLogger(level int) *stdLogger {
	return &stdLogger{level: level}
}

func (l *stdLogger) logf(level int, tag, msg string, a ...any) {
	if l.level <= level {
		log.Printf(tag+" "+msg+"\n", a...)
	}
}

func (l *stdLogger) Debugf(msg string, a ...any) {
	l.logf(DEBUG, "DEBUG", msg, a...)
}

func (l *stdLogger) Infof(msg string, a ...any) {
	l.logf(INFO, "INFO", msg, a...)
}

func (l *stdLogger) Warnf(msg string, a ...any) {
	l.logf(WARNING, "WARN", msg, a...)
}

func (l *stdLogger) Errorf(msg string, a ...any) {
	l.logf(ERROR, "ERROR", msg, a...)
}
