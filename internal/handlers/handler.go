package handlers

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/tasaronina/MyDiary/internal/diary"
	"github.com/tasaronina/MyDiary/internal/entry"
	"github.com/tasaronina/MyDiary/internal/messages"
	"github.com/tasaronina/MyDiary/internal/models"
)

// session is the per-chat entry builder state.
type session struct {
	state models.State
	sel   *entry.Selection
	msgID int // message carrying the label keyboard
}

type Handler struct {
	Bot   messages.Sender
	Diary *diary.Service
	Owner int64 // 0 serves every chat
	Log   logrus.FieldLogger
	Loc   *time.Location
	Now   func() time.Time

	// Timeout bounds each wait on the diary.
	Timeout time.Duration

	mu       sync.Mutex
	sessions map[int64]*session
}

func New(bot messages.Sender, d *diary.Service, owner int64, loc *time.Location, log logrus.FieldLogger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		Bot:      bot,
		Diary:    d,
		Owner:    owner,
		Log:      log.WithField("component", "handlers"),
		Loc:      loc,
		Now:      time.Now,
		Timeout:  10 * time.Second,
		sessions: map[int64]*session{},
	}
}

// Listen dispatches updates until ctx ends or the channel closes.
func (h *Handler) Listen(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, upd)
		}
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		if !h.allowed(upd.Message.Chat) {
			return
		}
		h.HandleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		if upd.CallbackQuery.Message == nil || !h.allowed(upd.CallbackQuery.Message.Chat) {
			return
		}
		h.HandleCallback(ctx, upd.CallbackQuery)
	}
}

func (h *Handler) allowed(chat *tgbotapi.Chat) bool {
	if chat == nil {
		return false
	}
	if h.Owner != 0 && chat.ID != h.Owner {
		h.Log.WithField("chat_id", chat.ID).Debug("ignoring foreign chat")
		return false
	}
	return true
}

func (h *Handler) now() time.Time { return h.Now().In(h.Loc) }

func (h *Handler) wait(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.Timeout)
}

func (h *Handler) session(chatID int64) *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.sessions[chatID]
	if s == nil {
		s = &session{state: models.StateIdle}
		h.sessions[chatID] = s
	}
	return s
}

// ---------- sending ---------------------------------------------------------

func (h *Handler) send(chatID int64, text string) {
	for _, part := range messages.Split(text, messages.MaxText) {
		if _, err := h.Bot.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			h.Log.WithError(err).WithField("chat_id", chatID).Error("send failed")
			return
		}
	}
}

func (h *Handler) sendMarkup(chatID int64, text string, markup any) (int, bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	m, err := h.Bot.Send(msg)
	if err != nil {
		h.Log.WithError(err).WithField("chat_id", chatID).Error("send failed")
		return 0, false
	}
	return m.MessageID, true
}

func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.Bot.Request(c); err != nil {
		h.Log.WithError(err).Warn("request failed")
	}
}

func mainMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnNewEntry),
			tgbotapi.NewKeyboardButton(btnLastEntry),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnHistory),
			tgbotapi.NewKeyboardButton(btnExport),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAdvice),
		),
	)
}
