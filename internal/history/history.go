// Package history is the append-only log of persisted diary entries.
package history

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tasaronina/MyDiary/internal/models"
	"github.com/tasaronina/MyDiary/internal/recordio"
)

// NoSymptomsMarker replaces the symptom list of an entry without symptoms.
const NoSymptomsMarker = "no symptoms noted"

// Line renders the one-line summary stored for rec.
func Line(rec models.HealthRecord) string {
	summary := NoSymptomsMarker
	if len(rec.Symptoms) > 0 {
		summary = strings.Join(rec.Symptoms, ", ")
	}
	return rec.Timestamp + " — " + summary
}

// Log appends records to a single file. Writes through one Log never
// interleave.
type Log struct {
	path string
	mu   sync.Mutex
	log  logrus.FieldLogger
}

func New(path string, log logrus.FieldLogger) *Log {
	return &Log{
		path: path,
		log:  log.WithFields(logrus.Fields{"component": "history", "path": path}),
	}
}

func (l *Log) Path() string { return l.path }

// Append adds the summary line of rec to the end of the log. Errors are
// logged and reported as false.
func (l *Log) Append(_ context.Context, rec models.HealthRecord) bool {
	line := Line(rec)
	buf, err := recordio.Encode(line)
	if err != nil {
		l.log.WithError(err).Error("encode history line")
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		l.log.WithError(err).Error("open history for append")
		return false
	}
	if _, err := f.Write(buf); err != nil {
		f.Close()
		l.log.WithError(err).Error("append history line")
		return false
	}
	if err := f.Close(); err != nil {
		l.log.WithError(err).Error("close history")
		return false
	}
	return true
}

// ReadAll returns every line in append order. A missing file is an empty
// history; a corrupt tail is logged and the lines before it are returned.
func (l *Log) ReadAll(_ context.Context) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}
	}
	if err != nil {
		l.log.WithError(err).Error("open history")
		return []string{}
	}
	defer f.Close()

	lines, err := recordio.ReadAll(f)
	if err != nil {
		l.log.WithError(err).WithField("recovered", len(lines)).Warn("history is corrupt, returning readable prefix")
	}
	return lines
}

// Clear deletes the log file.
func (l *Log) Clear(_ context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.log.WithError(err).Error("delete history")
		return false
	}
	return true
}
