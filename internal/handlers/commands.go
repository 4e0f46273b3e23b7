package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tasaronina/MyDiary/internal/utils"
)

func (h *Handler) HandleCommand(ctx context.Context, chatID int64, cmd, args string) {
	switch cmd {
	case "start":
		h.showMenu(chatID)
	case "help":
		h.send(chatID, txtHelp)
	case "addadvice":
		h.addAdvice(ctx, chatID, args)
	case "editadvice":
		h.editAdvice(ctx, chatID, args)
	case "deladvice":
		h.deleteAdvice(ctx, chatID, args)
	case "clear":
		h.clearLastEntry(ctx, chatID)
	case "clearhistory":
		h.clearHistory(ctx, chatID)
	default:
		h.showMenu(chatID)
	}
}

// ---------------- advice --------------------

func (h *Handler) addAdvice(ctx context.Context, chatID int64, args string) {
	parts, ok := utils.SplitFields(args, "|", 2)
	if !ok {
		h.send(chatID, txtUsageAdd)
		return
	}
	ctx, cancel := h.wait(ctx)
	defer cancel()

	item, err := h.Diary.AddAdvice(parts[0], parts[1]).Await(ctx)
	if err != nil {
		h.Log.WithError(err).Error("add advice")
		h.send(chatID, txtAdviceFailed)
		return
	}
	h.send(chatID, fmt.Sprintf(txtAdviceAdded, item.ID))
}

func (h *Handler) editAdvice(ctx context.Context, chatID int64, args string) {
	parts, ok := utils.SplitFields(args, "|", 3)
	if !ok {
		h.send(chatID, txtUsageEdit)
		return
	}
	id, err := parseID(parts[0])
	if err != nil {
		h.send(chatID, txtUsageEdit)
		return
	}
	ctx, cancel := h.wait(ctx)
	defer cancel()

	updated, err := h.Diary.UpdateAdvice(id, parts[1], parts[2]).Await(ctx)
	switch {
	case err != nil:
		h.Log.WithError(err).Error("update advice")
		h.send(chatID, txtAdviceFailed)
	case !updated:
		h.send(chatID, fmt.Sprintf(txtAdviceMissing, id))
	default:
		h.send(chatID, fmt.Sprintf(txtAdviceUpdated, id))
	}
}

func (h *Handler) deleteAdvice(ctx context.Context, chatID int64, args string) {
	id, err := parseID(args)
	if err != nil {
		h.send(chatID, txtUsageDel)
		return
	}
	ctx, cancel := h.wait(ctx)
	defer cancel()

	deleted, err := h.Diary.DeleteAdvice(id).Await(ctx)
	switch {
	case err != nil:
		h.Log.WithError(err).Error("delete advice")
		h.send(chatID, txtAdviceFailed)
	case !deleted:
		h.send(chatID, fmt.Sprintf(txtAdviceMissing, id))
	default:
		h.send(chatID, fmt.Sprintf(txtAdviceDeleted, id))
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
}

// ---------------- clearing ------------------

func (h *Handler) clearLastEntry(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	if ok, err := h.Diary.ClearLastEntry().Await(ctx); err != nil || !ok {
		h.send(chatID, txtClearFailed)
		return
	}
	h.send(chatID, txtLastCleared)
}

func (h *Handler) clearHistory(ctx context.Context, chatID int64) {
	ctx, cancel := h.wait(ctx)
	defer cancel()

	if ok, err := h.Diary.ClearHistory().Await(ctx); err != nil || !ok {
		h.send(chatID, txtClearFailed)
		return
	}
	h.send(chatID, txtHistCleared)
}
