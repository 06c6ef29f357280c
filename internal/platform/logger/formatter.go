package logger

import (
	"encoding/json"
	"fmt"
	"time"
)

type Formatter interface {
	Format(level, msg string, fields map[string]interface{}) (string, error)
}

type entry struct {
	Level     string                 `json:"level"`
	Timestamp time.Time              `json:"timestamp"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

type JSONFormatter struct{}

func (f *JSONFormatter) Format(level, msg string, fields map[string]interface{}) (string, error) {
	data, err := json.Marshal(entry{
		Level:     level,
		Timestamp: time.Now(),
		Message:   msg,
		Fields:    fields,
	})
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

type TextFormatter struct{}

func (f *TextFormatter) Format(level, msg string, fields map[string]interface{}) (string, error) {
	line := fmt.Sprintf("[%s] %s %s", time.Now().Format(time.RFC3339), level, msg)
	for k, v := range fields {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	return line + "\n", nil
}
