// Package export keeps a single externally visible report blob, stored as
// one length-prefixed record outside the private data directory.
package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tasaronina/MyDiary/internal/recordio"
)

// ErrNotExist is returned by a Backend when no blob has been written.
var ErrNotExist = fs.ErrNotExist

var errTrailingData = errors.New("trailing data after record")

// Backend is the place the blob lives in.
type Backend interface {
	// Ensure prepares the location and returns a printable handle for it.
	Ensure(ctx context.Context) (string, error)
	Put(ctx context.Context, data []byte) error
	Get(ctx context.Context) ([]byte, error)
	Remove(ctx context.Context) error
}

type Store struct {
	backend Backend
	mu      sync.Mutex
	log     logrus.FieldLogger
}

func New(b Backend, log logrus.FieldLogger) *Store {
	return &Store{backend: b, log: log.WithField("component", "export")}
}

// EnsureLocation resolves the target location. false means external
// storage is unavailable and the caller should skip the operation.
func (s *Store) EnsureLocation(ctx context.Context) (string, bool) {
	loc, err := s.backend.Ensure(ctx)
	if err != nil {
		s.log.WithError(err).Warn("export location unavailable")
		return "", false
	}
	return loc, true
}

// Write replaces the blob with text.
func (s *Store) Write(ctx context.Context, text string) bool {
	buf, err := recordio.Encode(text)
	if err != nil {
		s.log.WithError(err).Error("encode export")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.EnsureLocation(ctx)
	if !ok {
		return false
	}
	if err := s.backend.Put(ctx, buf); err != nil {
		s.log.WithError(err).WithField("location", loc).Error("write export")
		return false
	}
	return true
}

// Read returns the stored text; false if nothing is stored, the location is
// unavailable or the blob cannot be decoded.
func (s *Store) Read(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.EnsureLocation(ctx)
	if !ok {
		return "", false
	}
	data, err := s.backend.Get(ctx)
	if errors.Is(err, ErrNotExist) {
		return "", false
	}
	if err != nil {
		s.log.WithError(err).WithField("location", loc).Error("read export")
		return "", false
	}

	r := recordio.NewReader(bytes.NewReader(data))
	text, err := r.Next()
	if err == nil {
		if _, tail := r.Next(); !errors.Is(tail, io.EOF) {
			err = errTrailingData
		}
	}
	if err != nil {
		s.log.WithError(err).WithField("location", loc).Warn("export is corrupt")
		return "", false
	}
	return text, true
}

// Delete removes the blob if present.
func (s *Store) Delete(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.EnsureLocation(ctx)
	if !ok {
		return false
	}
	if err := s.backend.Remove(ctx); err != nil && !errors.Is(err, ErrNotExist) {
		s.log.WithError(err).WithField("location", loc).Error("delete export")
		return false
	}
	return true
}
