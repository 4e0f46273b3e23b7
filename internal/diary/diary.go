// Package diary is the persistence facade used by the front-ends. Every
// call runs on the worker pool and returns a future. Entry and export calls
// share one lane and advice calls another, so each runs in call order.
package diary

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tasaronina/MyDiary/internal/export"
	"github.com/tasaronina/MyDiary/internal/history"
	"github.com/tasaronina/MyDiary/internal/models"
	"github.com/tasaronina/MyDiary/internal/snapshot"
	"github.com/tasaronina/MyDiary/internal/storage"
	"github.com/tasaronina/MyDiary/internal/worker"
)

// AdviceSource yields the shared advice database handle.
type AdviceSource interface {
	Get() (*storage.DB, error)
}

type Deps struct {
	Pool     *worker.Pool
	Snapshot *snapshot.Store
	History  *history.Log
	Export   *export.Store
	Advice   AdviceSource
	Log      logrus.FieldLogger
}

type Service struct {
	entries  *worker.Lane
	tips     *worker.Lane
	snapshot *snapshot.Store
	history  *history.Log
	export   *export.Store
	advice   AdviceSource
	log      logrus.FieldLogger
}

func New(d Deps) *Service {
	return &Service{
		entries:  d.Pool.Lane(),
		tips:     d.Pool.Lane(),
		snapshot: d.Snapshot,
		history:  d.History,
		export:   d.Export,
		advice:   d.Advice,
		log:      d.Log.WithField("component", "diary"),
	}
}

// PersistResult says which tiers accepted the record.
type PersistResult struct {
	Snapshot bool
	History  bool
}

// ---------- entries ---------------------------------------------------------

// Persist overwrites the last-entry snapshot with rec and appends its line
// to the history log.
func (s *Service) Persist(rec models.HealthRecord) *worker.Future[PersistResult] {
	rec = rec.Clone()
	return worker.Enqueue(s.entries, func(ctx context.Context) (PersistResult, error) {
		res := PersistResult{
			Snapshot: s.snapshot.Save(ctx, rec),
			History:  s.history.Append(ctx, rec),
		}
		s.log.WithFields(logrus.Fields{
			"timestamp": rec.Timestamp,
			"snapshot":  res.Snapshot,
			"history":   res.History,
		}).Debug("entry persisted")
		return res, nil
	})
}

// LastEntry resolves to nil when no entry is stored.
func (s *Service) LastEntry() *worker.Future[*models.HealthRecord] {
	return worker.Enqueue(s.entries, func(ctx context.Context) (*models.HealthRecord, error) {
		rec, ok := s.snapshot.Load(ctx)
		if !ok {
			return nil, nil
		}
		return &rec, nil
	})
}

func (s *Service) ClearLastEntry() *worker.Future[bool] {
	return worker.Enqueue(s.entries, func(ctx context.Context) (bool, error) {
		return s.snapshot.Clear(ctx), nil
	})
}

func (s *Service) History() *worker.Future[[]string] {
	return worker.Enqueue(s.entries, func(ctx context.Context) ([]string, error) {
		return s.history.ReadAll(ctx), nil
	})
}

func (s *Service) ClearHistory() *worker.Future[bool] {
	return worker.Enqueue(s.entries, func(ctx context.Context) (bool, error) {
		return s.history.Clear(ctx), nil
	})
}

// ---------- export ----------------------------------------------------------

func (s *Service) SaveExport(text string) *worker.Future[bool] {
	return worker.Enqueue(s.entries, func(ctx context.Context) (bool, error) {
		return s.export.Write(ctx, text), nil
	})
}

// LoadExport resolves to nil when there is nothing to show.
func (s *Service) LoadExport() *worker.Future[*string] {
	return worker.Enqueue(s.entries, func(ctx context.Context) (*string, error) {
		text, ok := s.export.Read(ctx)
		if !ok {
			return nil, nil
		}
		return &text, nil
	})
}

func (s *Service) DeleteExport() *worker.Future[bool] {
	return worker.Enqueue(s.entries, func(ctx context.Context) (bool, error) {
		return s.export.Delete(ctx), nil
	})
}

// ExportLocation resolves to "" when external storage is unavailable.
func (s *Service) ExportLocation() *worker.Future[string] {
	return worker.Enqueue(s.entries, func(ctx context.Context) (string, error) {
		loc, _ := s.export.EnsureLocation(ctx)
		return loc, nil
	})
}

// ---------- advice ----------------------------------------------------------

// AdviceList is the content of the default category.
type AdviceList struct {
	CategoryID int64
	Items      []models.AdviceItem
}

func (s *Service) defaultCategory(ctx context.Context) (*storage.DB, int64, error) {
	db, err := s.advice.Get()
	if err != nil {
		return nil, 0, fmt.Errorf("open advice db: %w", err)
	}
	id, err := db.EnsureCategory(ctx, DefaultCategory)
	if err != nil {
		return nil, 0, err
	}
	return db, id, nil
}

// Advice makes sure the default category exists and holds the starter set
// on first use, then lists it.
func (s *Service) Advice() *worker.Future[AdviceList] {
	return worker.Enqueue(s.tips, func(ctx context.Context) (AdviceList, error) {
		db, cat, err := s.defaultCategory(ctx)
		if err != nil {
			return AdviceList{}, err
		}
		seeded, err := db.SeedIfEmpty(ctx, cat, Seeds)
		if err != nil {
			return AdviceList{}, err
		}
		if seeded {
			s.log.WithField("category_id", cat).Info("advice seeded")
		}
		items, err := db.ListByCategory(ctx, cat)
		if err != nil {
			return AdviceList{}, err
		}
		return AdviceList{CategoryID: cat, Items: items}, nil
	})
}

// AddAdvice inserts into the default category.
func (s *Service) AddAdvice(title, text string) *worker.Future[models.AdviceItem] {
	return worker.Enqueue(s.tips, func(ctx context.Context) (models.AdviceItem, error) {
		db, cat, err := s.defaultCategory(ctx)
		if err != nil {
			return models.AdviceItem{}, err
		}
		id, err := db.InsertAdvice(ctx, title, text, cat)
		if err != nil {
			return models.AdviceItem{}, err
		}
		return models.AdviceItem{ID: id, Title: title, Text: text, CategoryID: cat}, nil
	})
}

// UpdateAdvice rewrites title and text of an item of the default category.
// It resolves to false if no such item exists.
func (s *Service) UpdateAdvice(id int64, title, text string) *worker.Future[bool] {
	return worker.Enqueue(s.tips, func(ctx context.Context) (bool, error) {
		db, cat, err := s.defaultCategory(ctx)
		if err != nil {
			return false, err
		}
		return db.UpdateAdvice(ctx, models.AdviceItem{ID: id, Title: title, Text: text, CategoryID: cat})
	})
}

// DeleteAdvice removes an item of the default category. Items of other
// categories are left alone and resolve to false.
func (s *Service) DeleteAdvice(id int64) *worker.Future[bool] {
	return worker.Enqueue(s.tips, func(ctx context.Context) (bool, error) {
		db, cat, err := s.defaultCategory(ctx)
		if err != nil {
			return false, err
		}
		item, err := db.GetAdvice(ctx, id)
		if err != nil || item == nil || item.CategoryID != cat {
			return false, err
		}
		return db.DeleteAdvice(ctx, *item)
	})
}
