package app

import (
	"strings"
	"sync"
)

// logCapture keeps the last lines written to it so the UI can show them.
// It is an io.Writer for the zerolog console writer.
type logCapture struct {
	mu       sync.Mutex
	limit    int
	lines    []string
	partial  string
	onChange func()
}

func newLogCapture(limit int) *logCapture {
	return &logCapture{limit: limit}
}

func (l *logCapture) Write(p []byte) (int, error) {
	l.mu.Lock()
	text := l.partial + string(p)
	parts := strings.Split(text, "\n")
	l.partial = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		l.lines = append(l.lines, line)
	}
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	notify := l.onChange
	l.mu.Unlock()
	if notify != nil {
		notify()
	}
	return len(p), nil
}

func (l *logCapture) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

func (l *logCapture) setOnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}
