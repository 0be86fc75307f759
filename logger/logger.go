// Package logger writes single-line structured log records through the
// standard log package: a level, a message and a JSON object of fields.
package logger

import (
	"encoding/json"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"phone":       {},
	"phonenumber": {},
	"email":       {},
}

var (
	mu      sync.Mutex
	out     = log.New(log.Writer(), "", log.LstdFlags)
	session = uuid.NewString()
)

// SetOutput redirects log records to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out.SetOutput(w)
}

// Session returns the identifier attached to every record written by this process.
func Session() string { return session }

func Info(message string, fields Fields) {
	write("INFO", message, fields)
}

func Warn(message string, fields Fields) {
	write("WARN", message, fields)
}

func Error(message string, err error, fields Fields) {
	base := Fields{}
	for k, v := range fields {
		base[k] = v
	}
	if err != nil {
		base["error"] = err.Error()
	}
	write("ERROR", message, base)
}

func write(level, message string, fields Fields) {
	mu.Lock()
	defer mu.Unlock()
	out.Printf("%s %s %s", level, message, fieldsJSON(fields))
}

func fieldsJSON(fields Fields) string {
	sanitized := Fields{"session": session}
	for k, v := range fields {
		if isSensitiveKey(k) {
			sanitized[k] = mask(v)
			continue
		}
		sanitized[k] = v
	}

	b, err := json.Marshal(sanitized)
	if err != nil {
		return `{}`
	}
	return string(b)
}

// mask keeps the last two characters of a value so records stay correlatable.
func mask(v any) string {
	s, ok := v.(string)
	if !ok || len(s) <= 2 {
		return "******"
	}
	return strings.Repeat("*", len(s)-2) + s[len(s)-2:]
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "_", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
