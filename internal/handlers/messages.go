package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tasaronina/MyDiary/internal/entry"
	"github.com/tasaronina/MyDiary/internal/models"
)

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		h.HandleCommand(ctx, chatID, msg.Command(), msg.CommandArguments())
		return
	}

	switch strings.TrimSpace(msg.Text) {
	case btnNewEntry:
		h.startEntry(chatID, entry.NewSelection())
	case btnLastEntry:
		h.showLastEntry(ctx, chatID)
	case btnHistory:
		h.showHistory(ctx, chatID)
	case btnExport:
		h.showExportMenu(ctx, chatID)
	case btnAdvice:
		h.showAdvice(ctx, chatID)
	default:
		h.showMenu(chatID)
	}
}

func (h *Handler) showMenu(chatID int64) {
	h.sendMarkup(chatID, txtMenu, mainMenu())
}

// startEntry opens the label keyboard for sel.
func (h *Handler) startEntry(chatID int64, sel *entry.Selection) {
	id, ok := h.sendMarkup(chatID, txtPick, labelKeyboard(sel))
	if !ok {
		return
	}
	s := h.session(chatID)
	s.state = models.StateSelecting
	s.sel = sel
	s.msgID = id
}

func (h *Handler) showLastEntry(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	rec, err := h.Diary.LastEntry().Await(ctx)
	if err != nil {
		h.Log.WithError(err).Error("load last entry")
	}
	if rec == nil {
		h.send(chatID, txtNoEntries)
		return
	}
	report := rec.Report
	if report == "" {
		report = entry.RenderReport(rec.Timestamp, rec.Diseases, rec.Symptoms, rec.Triggers)
	}
	h.sendMarkup(chatID, report, tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnEdit, cbEdit)),
	))
}

func (h *Handler) showHistory(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	lines, err := h.Diary.History().Await(ctx)
	if err != nil {
		h.Log.WithError(err).Error("load history")
	}
	if len(lines) == 0 {
		h.send(chatID, txtHistoryEmpty)
		return
	}
	h.send(chatID, strings.Join(lines, "\n"))
}

func (h *Handler) showExportMenu(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	loc, err := h.Diary.ExportLocation().Await(ctx)
	if err != nil || loc == "" {
		h.send(chatID, txtExportNoLoc)
		return
	}
	h.sendMarkup(chatID, fmt.Sprintf(txtExportMenu, loc), tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btnSaveExp, cbExpSave)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnShowExp, cbExpShow),
			tgbotapi.NewInlineKeyboardButtonData(btnDelExp, cbExpDel),
		),
	))
}

func (h *Handler) showAdvice(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	list, err := h.Diary.Advice().Await(ctx)
	if err != nil {
		h.Log.WithError(err).Error("load advice")
		h.send(chatID, txtAdviceFailed)
		return
	}
	if len(list.Items) == 0 {
		h.send(chatID, txtAdviceEmpty)
		return
	}
	h.send(chatID, FormatAdvice(list.Items))
}

// FormatAdvice renders items as "#id Title" followed by the text.
func FormatAdvice(items []models.AdviceItem) string {
	var b strings.Builder
	for i, a := range items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "#%d %s\n%s", a.ID, a.Title, a.Text)
	}
	return b.String()
}
