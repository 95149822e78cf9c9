package botapp

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mhmad0m0/modcatalog/internal/infra/telegram"
	"github.com/mhmad0m0/modcatalog/internal/ui"
)

const (
	callbackPrefixMenu     = "menu"
	callbackPrefixAddMod   = "addmod"
	callbackPrefixSuggest  = "suggest"
	callbackPrefixCategory = "cat"
	callbackPrefixReview   = "rev"
)

func (a *App) routeUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		a.routeMessage(ctx, update.Message)
	}

	if update.CallbackQuery != nil {
		a.handleCallback(ctx, update.CallbackQuery)
	}
}

func (a *App) routeMessage(ctx context.Context, message *tgbotapi.Message) {
	if message == nil || message.From == nil {
		return
	}

	if message.IsCommand() {
		clearFlowState(a, message.Chat.ID)
		switch message.Command() {
		case "start":
			a.handleStart(ctx, message)
		case "cancel":
			a.sendText(message.Chat.ID, ui.MsgCancelled)
		default:
			a.sendText(message.Chat.ID, ui.MsgUnknownCommand)
		}
		return
	}

	if a.handleFlowMessageIfNeeded(ctx, message) {
		return
	}

	if a.handleCategoryNameIfNeeded(ctx, message) {
		return
	}
}

func (a *App) handleStart(ctx context.Context, message *tgbotapi.Message) {
	if a.isOwner(message.From.ID) {
		if _, err := a.adminsService.EnsureOwner(ctx, message.From.ID, message.From.UserName); err != nil {
			a.logger.Warn("ensure owner record", zap.Error(err), zap.Int64("tg_id", message.From.ID))
		}
		a.sendOwnerMenu(ctx, message.Chat.ID)
		return
	}

	a.sendInline(message.Chat.ID, ui.MsgUserGreeting, ui.UserMenu())
}

func (a *App) ownerMenuRows(ctx context.Context) [][]telegram.InlineButton {
	var pending int64
	ids, err := a.reviewService.PendingIDs(ctx)
	if err != nil {
		a.logger.Warn("count pending mods for menu", zap.Error(err))
	} else {
		pending = int64(len(ids))
	}
	return ui.OwnerMenu(pending)
}

func (a *App) sendOwnerMenu(ctx context.Context, chatID int64) {
	a.sendInline(chatID, ui.MsgOwnerGreeting, a.ownerMenuRows(ctx))
}

func (a *App) editOwnerMenu(ctx context.Context, chatID int64, messageID int) {
	a.editInline(chatID, messageID, ui.MsgOwnerGreeting, a.ownerMenuRows(ctx))
}

func (a *App) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query == nil || query.From == nil {
		return
	}

	chatID, ok := callbackChatID(query)
	if !ok {
		a.answerCallback(query.ID, "", false)
		return
	}
	messageID := query.Message.MessageID

	ackText := ""
	ackAlert := false
	defer func() { a.answerCallback(query.ID, ackText, ackAlert) }()

	parts := strings.Split(query.Data, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		clearFlowState(a, chatID)
		a.sendText(chatID, ui.MsgUnrecognizedAction)
		return
	}

	// Every surface except the suggestion flow belongs to the owner.
	ownerOnly := true
	switch {
	case parts[0] == callbackPrefixSuggest:
		ownerOnly = false
	case parts[0] == callbackPrefixMenu && parts[1] == "suggest":
		ownerOnly = false
	}
	if ownerOnly && !a.isOwner(query.From.ID) {
		ackText, ackAlert = ui.MsgAccessDenied, true
		return
	}

	switch parts[0] {
	case callbackPrefixMenu:
		ackText, ackAlert = a.handleMenuCallback(ctx, chatID, messageID, query.From.ID, parts)
	case callbackPrefixAddMod, callbackPrefixSuggest:
		ackText, ackAlert = a.handleConfirmCallback(ctx, chatID, query.From.ID, parts)
	case callbackPrefixCategory:
		ackText, ackAlert = a.handleCategoryCallback(ctx, chatID, messageID, query.From.ID, parts)
	case callbackPrefixReview:
		ackText, ackAlert = a.handleReviewCallback(ctx, chatID, query.From.ID, parts)
	default:
		clearFlowState(a, chatID)
		a.sendText(chatID, ui.MsgUnrecognizedAction)
	}
}

func (a *App) handleMenuCallback(ctx context.Context, chatID int64, messageID int, actorTGID int64, parts []string) (string, bool) {
	switch parts[1] {
	case "addmod":
		a.startAddFlow(chatID, actorTGID, true)
	case "suggest":
		a.startAddFlow(chatID, actorTGID, false)
	case "categories":
		a.editInline(chatID, messageID, "Categories", ui.CategoryMenu())
	case "review":
		a.startReviewPass(ctx, chatID, actorTGID)
	case "stats":
		a.sendStats(ctx, chatID)
	default:
		clearFlowState(a, chatID)
		a.sendText(chatID, ui.MsgUnrecognizedAction)
	}
	return "", false
}

func (a *App) sendStats(ctx context.Context, chatID int64) {
	stats, err := a.modsService.BuildStats(ctx)
	if err != nil {
		a.logger.Warn("build catalog stats", zap.Error(err))
		a.sendText(chatID, ui.MsgReviewLoadFailed)
		return
	}

	a.sendText(chatID, ui.RenderStats(stats.Total, stats.Approved, stats.Pending, stats.Rejected))
}

func (a *App) sendInline(chatID int64, text string, rows [][]telegram.InlineButton) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = telegram.BuildInlineKeyboard(rows)
	if err := a.tg.Send(msg); err != nil {
		a.logger.Error("send inline message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

// editInline rewrites an existing menu message in place, the way the
// bot moves between inline menus without flooding the chat.
func (a *App) editInline(chatID int64, messageID int, text string, rows [][]telegram.InlineButton) {
	msg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, telegram.BuildInlineKeyboard(rows))
	if err := a.tg.Send(msg); err != nil {
		a.logger.Error("edit inline message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (a *App) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if err := a.tg.Send(msg); err != nil {
		a.logger.Error("send message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}

func (a *App) sendPhotoByURL(chatID int64, mediaURL, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(mediaURL))
	photo.Caption = caption
	return a.tg.Send(photo)
}

func (a *App) answerCallback(callbackID, text string, alert bool) {
	cfg := tgbotapi.NewCallback(callbackID, text)
	cfg.ShowAlert = alert
	if err := a.tg.Request(cfg); err != nil {
		a.logger.Warn("answer callback", zap.Error(err))
	}
}

func callbackChatID(query *tgbotapi.CallbackQuery) (int64, bool) {
	if query == nil || query.Message == nil {
		return 0, false
	}
	return query.Message.Chat.ID, true
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
