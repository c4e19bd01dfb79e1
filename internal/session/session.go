// Package session owns the per-run scratch directory, the append-only event
// log inside it, and the before/after memory accounting for a batch of
// terminations.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	dirPrefix   = "ramtop_"
	logFileName = "ramtop.log"
	timeLayout  = "2006-01-02 15:04:05"
)

// Session holds the scratch directory and log for one run of the tool. It is
// constructed explicitly and passed around rather than living in package
// state.
type Session struct {
	dir     string
	logPath string
	logFile *os.File

	now func() time.Time
}

// Open acquires a fresh scratch directory and opens the session log inside
// it. An empty dir selects the system temp location.
func Open(dir string) (*Session, error) {
	tmp, err := os.MkdirTemp(dir, dirPrefix)
	if err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	logPath := filepath.Join(tmp, logFileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		os.RemoveAll(tmp)
		return nil, fmt.Errorf("open session log: %w", err)
	}

	return &Session{dir: tmp, logPath: logPath, logFile: f, now: time.Now}, nil
}

// Logf appends a timestamped line to the session log. The log is advisory:
// write failures are dropped, never surfaced.
func (s *Session) Logf(format string, args ...any) {
	if s == nil || s.logFile == nil {
		return
	}
	line := fmt.Sprintf("[%s] %s\n", s.now().Format(timeLayout), fmt.Sprintf(format, args...))
	_, _ = s.logFile.WriteString(line)
}

// LogPath returns the location of the session log for display to the user.
func (s *Session) LogPath() string {
	return s.logPath
}

// Dir returns the session's scratch directory.
func (s *Session) Dir() string {
	return s.dir
}

// Close releases the log file handle. The directory and its log are left in
// place so the user can inspect them after the run.
func (s *Session) Close() error {
	if s == nil || s.logFile == nil {
		return nil
	}
	err := s.logFile.Close()
	s.logFile = nil
	return err
}
