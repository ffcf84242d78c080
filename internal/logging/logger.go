package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

type Fields map[string]interface{}

var (
	mu        sync.Mutex
	out       = log.New(os.Stderr, "", 0)
	errorOnly bool
	now       = time.Now
)

// SetOutput redirects log lines. The terminal UI owns stdout, so callers
// usually point this at stderr or a file.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = log.New(w, "", 0)
}

// SetLevel accepts "info" or "error". Anything else leaves info enabled.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	errorOnly = level == "error"
}

func output(level, msg string, fields Fields) {
	mu.Lock()
	defer mu.Unlock()
	if level == "info" && errorOnly {
		return
	}
	entry := Fields{}
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["ts"] = now().UTC().Format(time.RFC3339)
	entry["msg"] = msg
	b, err := json.Marshal(entry)
	if err != nil {
		// fallback to plain logging
		out.Printf("%s: %s (%v)\n", level, msg, fields)
		return
	}
	out.Println(string(b))
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output("info", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output("error", msg, withError(fields, err))
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output("fatal", msg, withError(fields, err))
	os.Exit(1)
}

func withError(fields Fields, err error) Fields {
	merged := Fields{}
	for k, v := range fields {
		merged[k] = v
	}
	if err != nil {
		merged["error"] = err.Error()
	}
	return merged
}
