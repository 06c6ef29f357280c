package logger

import (
	"io"
	"os"
	"strings"
	"sync"
)

// Logger is a small leveled key-value logger. Callers pass alternating
// key/value pairs after the message, e.g. log.Info("uploaded", "key", k).
type Logger struct {
	config    *Config
	formatter Formatter
	output    io.Writer
	mu        sync.Mutex
}

func New() *Logger {
	return NewWithConfig(ConfigFromEnv())
}

func NewWithConfig(cfg *Config) *Logger {
	var formatter Formatter = &JSONFormatter{}
	if cfg.Format == "text" {
		formatter = &TextFormatter{}
	}
	return &Logger{
		config:    cfg,
		formatter: formatter,
		output:    os.Stdout,
	}
}

// SetOutput redirects log output; used by tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log("debug", msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log("info", msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log("warn", msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log("error", msg, keysAndValues...)
}

func (l *Logger) log(level, msg string, keysAndValues ...interface{}) {
	if !l.config.enabled(level) {
		return
	}

	var fields map[string]interface{}
	if len(keysAndValues) > 1 {
		fields = make(map[string]interface{}, len(keysAndValues)/2)
		for i := 0; i+1 < len(keysAndValues); i += 2 {
			if key, ok := keysAndValues[i].(string); ok {
				fields[key] = keysAndValues[i+1]
			}
		}
	}

	formatted, err := l.formatter.Format(strings.ToUpper(level), msg, fields)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(formatted))
}
