// Package snapshot keeps the most recent diary entry in a key-value store.
package snapshot

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tasaronina/MyDiary/internal/labels"
	"github.com/tasaronina/MyDiary/internal/models"
)

// Slot names in the key-value store.
const (
	KeyTimestamp = "last_dt"
	KeyDiseases  = "last_diseases"
	KeySymptoms  = "last_symptoms"
	KeyTriggers  = "last_triggers"
	KeyReport    = "last_report"
)

var keys = []string{KeyTimestamp, KeyDiseases, KeySymptoms, KeyTriggers, KeyReport}

// KV is the backing store. PutAll must apply all pairs atomically.
type KV interface {
	PutAll(ctx context.Context, kv map[string]string) error
	GetAll(ctx context.Context, keys ...string) (map[string]string, error)
	Clear(ctx context.Context) error
}

type Store struct {
	kv  KV
	log logrus.FieldLogger
}

func New(kv KV, log logrus.FieldLogger) *Store {
	return &Store{kv: kv, log: log.WithField("component", "snapshot")}
}

// Save overwrites all five slots with rec. Failures are logged and
// reported as false.
func (s *Store) Save(ctx context.Context, rec models.HealthRecord) bool {
	for _, list := range [][]string{rec.Diseases, rec.Symptoms, rec.Triggers} {
		for _, l := range list {
			if !labels.Valid(l) {
				s.log.WithField("label", l).Warn("label contains the list delimiter and will not round-trip")
			}
		}
	}

	err := s.kv.PutAll(ctx, map[string]string{
		KeyTimestamp: rec.Timestamp,
		KeyDiseases:  labels.Encode(rec.Diseases),
		KeySymptoms:  labels.Encode(rec.Symptoms),
		KeyTriggers:  labels.Encode(rec.Triggers),
		KeyReport:    rec.Report,
	})
	if err != nil {
		s.log.WithError(err).Error("save last entry")
		return false
	}
	return true
}

// Load returns the stored entry; false when nothing was saved yet or the
// store could not be read.
func (s *Store) Load(ctx context.Context) (models.HealthRecord, bool) {
	vals, err := s.kv.GetAll(ctx, keys...)
	if err != nil {
		s.log.WithError(err).Error("load last entry")
		return models.HealthRecord{}, false
	}
	ts, ok := vals[KeyTimestamp]
	if !ok {
		return models.HealthRecord{}, false
	}
	return models.HealthRecord{
		Timestamp: ts,
		Diseases:  labels.Decode(vals[KeyDiseases]),
		Symptoms:  labels.Decode(vals[KeySymptoms]),
		Triggers:  labels.Decode(vals[KeyTriggers]),
		Report:    vals[KeyReport],
	}, true
}

// Clear removes every slot.
func (s *Store) Clear(ctx context.Context) bool {
	if err := s.kv.Clear(ctx); err != nil {
		s.log.WithError(err).Error("clear last entry")
		return false
	}
	return true
}
