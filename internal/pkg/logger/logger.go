// Package logger provides structured JSON logging with PII redaction.
// Lead email addresses routinely pass through the generation pipeline, so
// redaction is on by default and keyed off field names.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// Logger emits structured JSON log entries tagged with a component name.
type Logger struct {
	component string
	level     Level
	redactPII bool
	out       io.Writer
	mu        *sync.Mutex
}

var (
	defaultMu    sync.Mutex
	defaultLevel = INFO
)

// New returns a logger scoped to the given component (e.g. "generation",
// "dispatch"). All component loggers share one writer and mutex.
func New(component string) *Logger {
	return &Logger{
		component: component,
		level:     defaultLevel,
		redactPII: true,
		out:       os.Stderr,
		mu:        &defaultMu,
	}
}

// SetLevel sets the minimum level for loggers created after this call.
func SetLevel(l Level) { defaultLevel = l }

// Debug emits a DEBUG-level entry.
func (l *Logger) Debug(msg string, fields ...interface{}) { l.log(DEBUG, msg, fields...) }

// Info emits an INFO-level entry.
func (l *Logger) Info(msg string, fields ...interface{}) { l.log(INFO, msg, fields...) }

// Warn emits a WARN-level entry.
func (l *Logger) Warn(msg string, fields ...interface{}) { l.log(WARN, msg, fields...) }

// Error emits an ERROR-level entry.
func (l *Logger) Error(msg string, fields ...interface{}) { l.log(ERROR, msg, fields...) }

func (l *Logger) log(level Level, msg string, fields ...interface{}) {
	if level < l.level {
		return
	}

	entry := map[string]interface{}{
		"time":      time.Now().UTC().Format(time.RFC3339),
		"level":     levelNames[level],
		"component": l.component,
		"msg":       msg,
	}

	// fields are alternating key/value pairs
	for i := 0; i < len(fields)-1; i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		val := fmt.Sprintf("%v", fields[i+1])
		if l.redactPII {
			val = redactValue(key, val)
		}
		entry[key] = val
	}

	data, _ := json.Marshal(entry)
	l.mu.Lock()
	fmt.Fprintln(l.out, string(data))
	l.mu.Unlock()
}

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

func redactValue(key, val string) string {
	k := strings.ToLower(key)
	if strings.Contains(k, "email") || strings.Contains(k, "lead") || k == "to" {
		return RedactEmail(val)
	}
	return emailRegex.ReplaceAllStringFunc(val, RedactEmail)
}

// RedactEmail masks an address, keeping the domain and at most the first two
// characters of the local part: "ada.l@example.com" becomes
// "ad***@example.com". Strings that are not addresses mask entirely.
func RedactEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if len(local) > 2 {
		return local[:2] + "***@" + domain
	}
	return "***@" + domain
}
