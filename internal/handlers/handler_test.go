package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasaronina/MyDiary/internal/diary"
	"github.com/tasaronina/MyDiary/internal/entry"
	"github.com/tasaronina/MyDiary/internal/history"
	"github.com/tasaronina/MyDiary/internal/models"
	"github.com/tasaronina/MyDiary/internal/testutil"
)

const owner = int64(7)

var fixedNow = time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *testutil.Bot, *diary.Service) {
	t.Helper()
	d, _ := testutil.NewDiary(t)
	bot := &testutil.Bot{}
	log, _ := test.NewNullLogger()
	h := New(bot, d, owner, time.UTC, log)
	h.Now = func() time.Time { return fixedNow }
	return h, bot, d
}

func textMsg(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 100,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}}
}

func command(chatID int64, text string) tgbotapi.Update {
	upd := textMsg(chatID, text)
	name := strings.Fields(text)[0]
	upd.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}}
	return upd
}

func callback(chatID int64, msgID int, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Message: &tgbotapi.Message{MessageID: msgID, Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}}
}

func buttonTexts(m tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range m.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.Text)
		}
	}
	return out
}

func lastEdit(t *testing.T, bot *testutil.Bot) tgbotapi.EditMessageReplyMarkupConfig {
	t.Helper()
	for i := len(bot.Requests) - 1; i >= 0; i-- {
		if e, ok := bot.Requests[i].(tgbotapi.EditMessageReplyMarkupConfig); ok {
			return e
		}
	}
	t.Fatal("no keyboard edit")
	return tgbotapi.EditMessageReplyMarkupConfig{}
}

func lastAnswer(t *testing.T, bot *testutil.Bot) tgbotapi.CallbackConfig {
	t.Helper()
	require.NotEmpty(t, bot.Requests)
	c, ok := bot.Requests[len(bot.Requests)-1].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	return c
}

func TestForeignChatIgnored(t *testing.T) {
	h, bot, _ := newTestHandler(t)
	ctx := context.Background()

	h.HandleUpdate(ctx, command(owner+1, "/start"))
	h.HandleUpdate(ctx, callback(owner+1, 1, cbBuild))
	assert.Empty(t, bot.Sent)
	assert.Empty(t, bot.Requests)
}

func TestOwnerZeroServesAnyone(t *testing.T) {
	h, bot, _ := newTestHandler(t)
	h.Owner = 0

	h.HandleUpdate(context.Background(), command(99, "/start"))
	assert.Equal(t, int64(99), bot.Last(t).ChatID)
}

func TestStart_ShowsMenu(t *testing.T) {
	h, bot, _ := newTestHandler(t)

	h.HandleUpdate(context.Background(), command(owner, "/start"))
	msg := bot.Last(t)
	assert.Equal(t, txtMenu, msg.Text)
	kb, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.Len(t, kb.Keyboard, 3)

	bot.Reset()
	h.HandleUpdate(context.Background(), textMsg(owner, "something else"))
	assert.Equal(t, txtMenu, bot.Last(t).Text)
}

func TestEntryFlow(t *testing.T) {
	h, bot, d := newTestHandler(t)
	ctx := context.Background()

	h.HandleUpdate(ctx, textMsg(owner, btnNewEntry))
	pick := bot.Last(t)
	assert.Equal(t, txtPick, pick.Text)
	kb, ok := pick.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Contains(t, buttonTexts(kb), uncheckMark+entry.Migraine)
	assert.Equal(t, models.StateSelecting, h.session(owner).state)

	h.HandleUpdate(ctx, callback(owner, 1, toggleData(models.GroupDiseases, 2)))
	h.HandleUpdate(ctx, callback(owner, 1, toggleData(models.GroupTriggers, 0)))
	edit := lastEdit(t, bot)
	require.NotNil(t, edit.ReplyMarkup)
	assert.Contains(t, buttonTexts(*edit.ReplyMarkup), checkMark+entry.Migraine)
	assert.Contains(t, buttonTexts(*edit.ReplyMarkup), checkMark+entry.Stress)

	bot.Reset()
	h.HandleUpdate(ctx, callback(owner, 1, cbBuild))
	want := entry.BuildRecord([]string{entry.Migraine}, nil, []string{entry.Stress}, fixedNow)
	assert.Equal(t, []string{want.Report}, bot.Texts())
	assert.Equal(t, models.StateIdle, h.session(owner).state)

	last := testutil.Await(t, d.LastEntry())
	require.NotNil(t, last)
	assert.Equal(t, want, *last)
	assert.Equal(t, []string{"05.03.2024 09:30 — " + history.NoSymptomsMarker}, testutil.Await(t, d.History()))
}

func TestReset(t *testing.T) {
	h, bot, _ := newTestHandler(t)
	ctx := context.Background()

	h.HandleUpdate(ctx, textMsg(owner, btnNewEntry))
	h.HandleUpdate(ctx, callback(owner, 1, toggleData(models.GroupSymptoms, 0)))
	h.HandleUpdate(ctx, callback(owner, 1, cbReset))

	edit := lastEdit(t, bot)
	for _, text := range buttonTexts(*edit.ReplyMarkup) {
		assert.False(t, strings.HasPrefix(text, checkMark), text)
	}
}

func TestCallbackWithoutSession(t *testing.T) {
	h, bot, d := newTestHandler(t)
	ctx := context.Background()

	for _, data := range []string{cbBuild, cbReset, toggleData(models.GroupDiseases, 0)} {
		bot.Reset()
		h.HandleUpdate(ctx, callback(owner, 1, data))
		assert.Equal(t, txtNoSession, lastAnswer(t, bot).Text, data)
		assert.Empty(t, bot.Sent)
	}
	assert.Nil(t, testutil.Await(t, d.LastEntry()))
}

func TestParseToggle(t *testing.T) {
	tests := []struct {
		data string
		ok   bool
	}{
		{"tg:d:0", true},
		{"tg:t:6", true},
		{"tg:t:7", false},
		{"tg:x:0", false},
		{"tg:s:-1", false},
		{"tg:s", false},
		{"xx:s:1", false},
	}
	for _, tt := range tests {
		_, _, ok := parseToggle(tt.data)
		assert.Equal(t, tt.ok, ok, tt.data)
	}
}

func TestLastEntry(t *testing.T) {
	h, bot, d := newTestHandler(t)
	ctx := context.Background()

	h.HandleUpdate(ctx, textMsg(owner, btnLastEntry))
	assert.Equal(t, txtNoEntries, bot.Last(t).Text)

	rec := entry.BuildRecord([]string{entry.Asthma}, []string{entry.Dyspnea}, nil, fixedNow)
	testutil.Await(t, d.Persist(rec))

	h.HandleUpdate(ctx, textMsg(owner, btnLastEntry))
	assert.Equal(t, rec.Report, bot.Last(t).Text)

	// reopen the keyboard pre-filled from the last entry
	h.HandleUpdate(ctx, callback(owner, 5, cbEdit))
	kb, ok := bot.Last(t).ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Contains(t, buttonTexts(kb), checkMark+entry.Asthma)
	assert.Contains(t, buttonTexts(kb), checkMark+entry.Dyspnea)
	assert.Equal(t, models.StateSelecting, h.session(owner).state)
}

func TestHistory(t *testing.T) {
	h, bot, d := newTestHandler(t)
	ctx := context.Background()

	h.HandleUpdate(ctx, textMsg(owner, btnHistory))
	assert.Equal(t, txtHistoryEmpty, bot.Last(t).Text)

	testutil.Await(t, d.Persist(entry.BuildRecord(nil, []string{entry.Headache}, nil, fixedNow)))
	testutil.Await(t, d.Persist(entry.BuildRecord(nil, []string{entry.Nausea, entry.Tremor}, nil, fixedNow.Add(time.Hour))))

	h.HandleUpdate(ctx, textMsg(owner, btnHistory))
	assert.Equal(t, "05.03.2024 09:30 — Headache\n05.03.2024 10:30 — Nausea, Tremor", bot.Last(t).Text)

	h.HandleUpdate(ctx, command(owner, "/clearhistory"))
	assert.Equal(t, txtHistCleared, bot.Last(t).Text)
	assert.Empty(t, testutil.Await(t, d.History()))
}

func TestClearLastEntry(t *testing.T) {
	h, bot, d := newTestHandler(t)
	testutil.Await(t, d.Persist(entry.BuildRecord(nil, nil, nil, fixedNow)))

	h.HandleUpdate(context.Background(), command(owner, "/clear"))
	assert.Equal(t, txtLastCleared, bot.Last(t).Text)
	assert.Nil(t, testutil.Await(t, d.LastEntry()))
	assert.Len(t, testutil.Await(t, d.History()), 1)
}

func TestExport(t *testing.T) {
	h, bot, d := newTestHandler(t)
	ctx := context.Background()

	h.HandleUpdate(ctx, textMsg(owner, btnExport))
	menu := bot.Last(t)
	assert.True(t, strings.HasPrefix(menu.Text, "Export storage: "))
	kb, ok := menu.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, []string{btnSaveExp, btnShowExp, btnDelExp}, buttonTexts(kb))

	h.HandleUpdate(ctx, callback(owner, 1, cbExpSave))
	assert.Equal(t, txtNothingExport, bot.Last(t).Text)

	rec := entry.BuildRecord([]string{entry.Diabetes}, []string{entry.Thirst}, nil, fixedNow)
	testutil.Await(t, d.Persist(rec))

	h.HandleUpdate(ctx, callback(owner, 1, cbExpSave))
	assert.True(t, strings.HasPrefix(bot.Last(t).Text, "Report saved to "))

	h.HandleUpdate(ctx, callback(owner, 1, cbExpShow))
	assert.Equal(t, rec.Report, bot.Last(t).Text)

	h.HandleUpdate(ctx, callback(owner, 1, cbExpDel))
	assert.Equal(t, txtExportDeleted, bot.Last(t).Text)

	h.HandleUpdate(ctx, callback(owner, 1, cbExpShow))
	assert.Equal(t, txtExportMissing, bot.Last(t).Text)
}

func TestAdvice(t *testing.T) {
	h, bot, _ := newTestHandler(t)
	ctx := context.Background()

	h.HandleUpdate(ctx, textMsg(owner, btnAdvice))
	list := bot.Last(t).Text
	for _, s := range diary.Seeds {
		assert.Contains(t, list, s.Title)
	}
	assert.True(t, strings.HasPrefix(list, "#1 "+diary.Seeds[0].Title+"\n"))

	h.HandleUpdate(ctx, command(owner, "/addadvice"))
	assert.Equal(t, txtUsageAdd, bot.Last(t).Text)

	h.HandleUpdate(ctx, command(owner, "/addadvice Water | Drink enough water."))
	assert.Equal(t, "Added advice #4.", bot.Last(t).Text)

	h.HandleUpdate(ctx, command(owner, "/editadvice 4 | Water | Drink 2 litres a day."))
	assert.Equal(t, "Advice #4 updated.", bot.Last(t).Text)

	h.HandleUpdate(ctx, command(owner, "/editadvice 40 | Water | x"))
	assert.Equal(t, "There is no advice #40.", bot.Last(t).Text)

	h.HandleUpdate(ctx, command(owner, "/editadvice four | Water | x"))
	assert.Equal(t, txtUsageEdit, bot.Last(t).Text)

	h.HandleUpdate(ctx, textMsg(owner, btnAdvice))
	assert.Contains(t, bot.Last(t).Text, "#4 Water\nDrink 2 litres a day.")

	h.HandleUpdate(ctx, command(owner, "/deladvice #4"))
	assert.Equal(t, "Advice #4 deleted.", bot.Last(t).Text)

	h.HandleUpdate(ctx, command(owner, "/deladvice 4"))
	assert.Equal(t, "There is no advice #4.", bot.Last(t).Text)

	h.HandleUpdate(ctx, command(owner, "/deladvice"))
	assert.Equal(t, txtUsageDel, bot.Last(t).Text)
}

func TestFormatAdvice(t *testing.T) {
	got := FormatAdvice([]models.AdviceItem{
		{ID: 1, Title: "A", Text: "first"},
		{ID: 3, Title: "B", Text: "second"},
	})
	assert.Equal(t, "#1 A\nfirst\n\n#3 B\nsecond", got)
}

func TestListen_StopsOnClose(t *testing.T) {
	h, bot, _ := newTestHandler(t)
	updates := make(chan tgbotapi.Update, 1)
	updates <- command(owner, "/help")
	close(updates)

	done := make(chan struct{})
	go func() {
		h.Listen(context.Background(), updates)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Listen did not return")
	}
	assert.Equal(t, txtHelp, bot.Last(t).Text)
}
