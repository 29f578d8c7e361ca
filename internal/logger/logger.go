package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Stream is the append-only session log the web UI polls. Every line is
// mirrored to the console through the standard logger.
type Stream struct {
	mu   sync.Mutex
	path string
}

// NewStream creates a log stream backed by the given file. An empty path
// means console-only, which is what tests use.
func NewStream(path string) *Stream {
	return &Stream{path: path}
}

func (s *Stream) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)

	if s.path == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("⚠️ Could not open log stream file: %v", err)
		return
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("15:04:05"), msg)
	if _, err := f.WriteString(line); err != nil {
		log.Printf("⚠️ Could not append to log stream: %v", err)
	}
}

// Clear truncates the stream before a fresh session.
func (s *Stream) Clear() error {
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, nil, 0644)
}

// Tail returns all buffered lines, oldest first.
func (s *Stream) Tail() ([]string, error) {
	if s.path == "" {
		return []string{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return []string{}, nil
	}
	return lines, nil
}
