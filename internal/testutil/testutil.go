// Package testutil builds real temp-dir backed services and a recording
// Telegram sender for tests.
package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/tasaronina/MyDiary/internal/diary"
	"github.com/tasaronina/MyDiary/internal/export"
	"github.com/tasaronina/MyDiary/internal/history"
	"github.com/tasaronina/MyDiary/internal/snapshot"
	"github.com/tasaronina/MyDiary/internal/storage"
	"github.com/tasaronina/MyDiary/internal/worker"
)

// NewDiary returns a diary service over fresh stores in t.TempDir().
func NewDiary(t *testing.T) (*diary.Service, *test.Hook) {
	t.Helper()
	dir := t.TempDir()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	prefs, err := storage.NewPrefs(filepath.Join(dir, "prefs.db"))
	require.NoError(t, err)
	advice := storage.NewLazy(filepath.Join(dir, "advice.db"))
	pool := worker.NewPool(2)
	t.Cleanup(func() {
		pool.Wait()
		advice.Close()
		prefs.Close()
	})

	return diary.New(diary.Deps{
		Pool:     pool,
		Snapshot: snapshot.New(prefs, log),
		History:  history.New(filepath.Join(dir, "history.bin"), log),
		Export:   export.New(export.DirBackend{Dir: filepath.Join(dir, "documents"), Name: "export.bin"}, log),
		Advice:   advice,
		Log:      log,
	}), hook
}

// Await resolves f or fails the test after five seconds.
func Await[T any](t *testing.T, f *worker.Future[T]) T {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := f.Await(ctx)
	require.NoError(t, err)
	return v
}

// Bot records everything sent through it.
type Bot struct {
	mu       sync.Mutex
	nextID   int
	Sent     []tgbotapi.Chattable
	Requests []tgbotapi.Chattable
	Err      error
}

func (b *Bot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return tgbotapi.Message{}, b.Err
	}
	b.nextID++
	b.Sent = append(b.Sent, c)
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *Bot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	b.Requests = append(b.Requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// Texts returns the text of every sent message, in order.
func (b *Bot) Texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, c := range b.Sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

// Last returns the most recently sent message.
func (b *Bot) Last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.Sent)
	m, ok := b.Sent[len(b.Sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok, "last sent is %T", b.Sent[len(b.Sent)-1])
	return m
}

func (b *Bot) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Sent, b.Requests = nil, nil
}
