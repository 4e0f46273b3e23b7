// Package messages holds the outgoing Telegram messages shared by the
// handlers and the scheduler.
package messages

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tasaronina/MyDiary/internal/diary"
	"github.com/tasaronina/MyDiary/internal/entry"
	"github.com/tasaronina/MyDiary/internal/models"
)

// MaxText is the Telegram limit for one message.
const MaxText = 4096

const ReminderText = "Time to fill in the health diary! Tap «New entry» to record how you feel today."

// Sender is the part of *tgbotapi.BotAPI the bot uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// EnteredToday reports whether rec was recorded on the calendar day of now.
func EnteredToday(rec *models.HealthRecord, now time.Time) bool {
	if rec == nil {
		return false
	}
	ts, err := time.ParseInLocation(entry.TimeLayout, rec.Timestamp, now.Location())
	if err != nil {
		return false
	}
	y1, m1, d1 := ts.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SendReminder nudges chatID unless an entry was already made today.
func SendReminder(ctx context.Context, bot Sender, d *diary.Service, chatID int64, now time.Time) (bool, error) {
	last, err := d.LastEntry().Await(ctx)
	if err != nil {
		return false, err
	}
	if EnteredToday(last, now) {
		return false, nil
	}
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, ReminderText)); err != nil {
		return false, err
	}
	return true, nil
}

// Split cuts text into chunks of at most limit bytes, breaking on newlines
// where possible.
func Split(text string, limit int) []string {
	var out []string
	for len(text) > limit {
		cut := strings.LastIndexByte(text[:limit], '\n')
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8Start(text[cut]) {
				cut--
			}
		}
		out = append(out, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

func utf8Start(b byte) bool { return b&0xC0 != 0x80 }
