package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/tasaronina/MyDiary/internal/entry"
	"github.com/tasaronina/MyDiary/internal/models"
)

func (h *Handler) HandleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	data := cq.Data

	answer := ""
	switch {
	case strings.HasPrefix(data, cbToggle+":"):
		answer = h.handleToggle(chatID, data)
	case data == cbBuild:
		answer = h.handleBuild(ctx, chatID)
	case data == cbReset:
		answer = h.handleReset(chatID)
	case data == cbEdit:
		h.handleEdit(ctx, chatID)
	case data == cbExpSave:
		h.handleExportSave(ctx, chatID)
	case data == cbExpShow:
		h.handleExportShow(ctx, chatID)
	case data == cbExpDel:
		h.handleExportDelete(ctx, chatID)
	}

	// always answer to stop the client spinner
	h.request(tgbotapi.NewCallback(cq.ID, answer))
}

// labelKeyboard shows every catalog label under its group title, ticked
// ones marked.
func labelKeyboard(sel *entry.Selection) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, g := range entry.Groups {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("— "+entry.GroupTitle(g)+" —", cbNoop),
		))
		var row []tgbotapi.InlineKeyboardButton
		for i, l := range entry.Labels(g) {
			mark := uncheckMark
			if sel.Has(g, l) {
				mark = checkMark
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(mark+l, toggleData(g, i)))
			if len(row) == 2 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(btnBuild, cbBuild),
		tgbotapi.NewInlineKeyboardButtonData(btnReset, cbReset),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func toggleData(g models.Group, i int) string {
	return fmt.Sprintf("%s:%s:%d", cbToggle, g, i)
}

func parseToggle(data string) (models.Group, int, bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != cbToggle {
		return "", 0, false
	}
	g := models.Group(parts[1])
	i, err := strconv.Atoi(parts[2])
	if err != nil || i < 0 || i >= len(entry.Labels(g)) {
		return "", 0, false
	}
	return g, i, true
}

// selecting returns the open session of chatID, or nil.
func (h *Handler) selecting(chatID int64) *session {
	s := h.session(chatID)
	if s.state != models.StateSelecting || s.sel == nil {
		return nil
	}
	return s
}

func (h *Handler) refreshKeyboard(chatID int64, s *session) {
	h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, s.msgID, labelKeyboard(s.sel)))
}

func (h *Handler) handleToggle(chatID int64, data string) string {
	s := h.selecting(chatID)
	if s == nil {
		return txtNoSession
	}
	g, i, ok := parseToggle(data)
	if !ok {
		return ""
	}
	s.sel.Toggle(g, i)
	h.refreshKeyboard(chatID, s)
	return ""
}

func (h *Handler) handleReset(chatID int64) string {
	s := h.selecting(chatID)
	if s == nil {
		return txtNoSession
	}
	s.sel.Reset()
	h.refreshKeyboard(chatID, s)
	return ""
}

func (h *Handler) handleBuild(ctx context.Context, chatID int64) string {
	s := h.selecting(chatID)
	if s == nil {
		return txtNoSession
	}
	rec := entry.BuildRecord(
		s.sel.Selected(models.GroupDiseases),
		s.sel.Selected(models.GroupSymptoms),
		s.sel.Selected(models.GroupTriggers),
		h.now(),
	)
	s.state, s.sel = models.StateIdle, nil
	// drop the keyboard from the finished message
	h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, s.msgID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}))

	ctx, cancel := h.wait(ctx)
	defer cancel()
	res, err := h.Diary.Persist(rec).Await(ctx)
	if err != nil {
		h.Log.WithError(err).Error("persist entry")
	}
	h.send(chatID, rec.Report)
	if !res.Snapshot || !res.History {
		h.Log.WithFields(logrus.Fields{"snapshot": res.Snapshot, "history": res.History}).Warn("entry saved partially")
		h.send(chatID, txtSavePartial)
	}
	return ""
}

func (h *Handler) handleEdit(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	rec, err := h.Diary.LastEntry().Await(ctx)
	if err != nil || rec == nil {
		h.send(chatID, txtNoEntries)
		return
	}
	h.startEntry(chatID, entry.FromRecord(*rec))
}

// ---------- export ----------------------------------------------------------

func (h *Handler) handleExportSave(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	rec, err := h.Diary.LastEntry().Await(ctx)
	if err != nil || rec == nil {
		h.send(chatID, txtNothingExport)
		return
	}
	if ok, err := h.Diary.SaveExport(rec.Report).Await(ctx); err != nil || !ok {
		h.send(chatID, txtExportFailed)
		return
	}
	loc, _ := h.Diary.ExportLocation().Await(ctx)
	h.send(chatID, fmt.Sprintf(txtExportSaved, loc))
}

func (h *Handler) handleExportShow(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	text, err := h.Diary.LoadExport().Await(ctx)
	if err != nil || text == nil || *text == "" {
		h.send(chatID, txtExportMissing)
		return
	}
	h.send(chatID, *text)
}

func (h *Handler) handleExportDelete(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	if ok, err := h.Diary.DeleteExport().Await(ctx); err != nil || !ok {
		h.send(chatID, txtExportDelFail)
		return
	}
	h.send(chatID, txtExportDeleted)
}
