// Package logger provides the structured JSON logger shared by the admin
// binaries. One line per entry, fields flattened into the envelope.
package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is the logging surface the services depend on. Fatal logs and then
// exits; it is reserved for startup wiring.
type Logger interface {
	Info(message string, fields map[string]interface{})
	Warn(message string, fields map[string]interface{})
	Error(message string, fields map[string]interface{})
	Fatal(message string, fields map[string]interface{})
}

type jsonLogger struct {
	service string
	mu      sync.Mutex
	out     io.Writer
	exit    func(int)
}

// New returns a JSON logger writing to stdout under the given service name.
func New(service string) Logger {
	return NewWithWriter(service, os.Stdout)
}

// NewWithWriter returns a JSON logger writing to w.
func NewWithWriter(service string, w io.Writer) Logger {
	return &jsonLogger{service: service, out: w, exit: os.Exit}
}

func (l *jsonLogger) emit(level, message string, fields map[string]interface{}) {
	entry := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["service"] = l.service
	entry["message"] = message

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(append(line, '\n'))
}

func (l *jsonLogger) Info(message string, fields map[string]interface{}) {
	l.emit("info", message, fields)
}

func (l *jsonLogger) Warn(message string, fields map[string]interface{}) {
	l.emit("warn", message, fields)
}

func (l *jsonLogger) Error(message string, fields map[string]interface{}) {
	l.emit("error", message, fields)
}

func (l *jsonLogger) Fatal(message string, fields map[string]interface{}) {
	l.emit("fatal", message, fields)
	l.exit(1)
}

// NewNop returns a logger that discards everything; used in tests.
func NewNop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
func (nopLogger) Fatal(string, map[string]interface{}) {}
