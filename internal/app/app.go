// Package app wires configuration into the stores and the diary service.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tasaronina/MyDiary/internal/config"
	"github.com/tasaronina/MyDiary/internal/diary"
	"github.com/tasaronina/MyDiary/internal/export"
	"github.com/tasaronina/MyDiary/internal/history"
	"github.com/tasaronina/MyDiary/internal/snapshot"
	"github.com/tasaronina/MyDiary/internal/storage"
	"github.com/tasaronina/MyDiary/internal/worker"
)

type App struct {
	Diary  *diary.Service
	Advice *storage.Lazy

	pool  *worker.Pool
	prefs *storage.Prefs
}

func New(cfg *config.Config, log logrus.FieldLogger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	prefs, err := storage.NewPrefs(cfg.PrefsPath())
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}

	backend, err := exportBackend(cfg.Export)
	if err != nil {
		prefs.Close()
		return nil, err
	}

	a := &App{
		Advice: storage.NewLazy(cfg.DBPath()),
		pool:   worker.NewPool(cfg.Workers),
		prefs:  prefs,
	}
	a.Diary = diary.New(diary.Deps{
		Pool:     a.pool,
		Snapshot: snapshot.New(prefs, log),
		History:  history.New(cfg.HistoryPath(), log),
		Export:   export.New(backend, log),
		Advice:   a.Advice,
		Log:      log,
	})

	log.WithFields(logrus.Fields{
		"data_dir": cfg.DataDir,
		"export":   cfg.Export.Backend,
		"workers":  cfg.Workers,
	}).Info("diary storage ready")
	return a, nil
}

func exportBackend(c config.ExportConfig) (export.Backend, error) {
	switch c.Backend {
	case "minio":
		b, err := export.NewMinIO(c.MinIOEndpoint, c.MinIOAccessKey, c.MinIOSecretKey, c.MinIOBucket, c.Name, c.MinIOUseSSL)
		if err != nil {
			return nil, fmt.Errorf("minio export: %w", err)
		}
		return b, nil
	default:
		return export.DirBackend{Dir: c.Dir, Name: c.Name}, nil
	}
}

// Close waits for queued work and releases the databases.
func (a *App) Close() error {
	a.pool.Wait()
	return errors.Join(a.Advice.Close(), a.prefs.Close())
}
