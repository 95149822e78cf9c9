package botapp

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mhmad0m0/modcatalog/internal/repo/postgres"
	"github.com/mhmad0m0/modcatalog/internal/services/categories"
	"github.com/mhmad0m0/modcatalog/internal/services/images"
	"github.com/mhmad0m0/modcatalog/internal/services/mods"
	"github.com/mhmad0m0/modcatalog/internal/services/review"
	"github.com/mhmad0m0/modcatalog/internal/ui"
)

func (a *App) startAddFlow(chatID, actorTGID int64, ownerFlow bool) {
	clearFlowState(a, chatID)
	setAddState(a, chatID, addModState{
		ActorTGID: actorTGID,
		OwnerFlow: ownerFlow,
		Step:      stepName,
	})
	a.sendText(chatID, ui.MsgAskName)
}

// handleFlowMessageIfNeeded feeds a plain message into the add or
// suggest conversation. Input of the wrong kind leaves the state
// untouched and re-prompts.
func (a *App) handleFlowMessageIfNeeded(ctx context.Context, message *tgbotapi.Message) bool {
	state, ok := getAddState(a, message.Chat.ID)
	if !ok || state.ActorTGID != message.From.ID {
		return false
	}

	switch state.Step {
	case stepName, stepDescription, stepLink:
		text := strings.TrimSpace(message.Text)
		if text == "" {
			a.sendText(message.Chat.ID, ui.MsgNeedText)
			return true
		}
		switch state.Step {
		case stepName:
			state.Name = text
			state.Step = stepDescription
			setAddState(a, message.Chat.ID, state)
			a.sendText(message.Chat.ID, ui.MsgAskDescription)
		case stepDescription:
			state.Description = text
			state.Step = stepLink
			setAddState(a, message.Chat.ID, state)
			a.sendText(message.Chat.ID, ui.MsgAskLink)
		case stepLink:
			state.DownloadLink = text
			state.Step = stepImage
			setAddState(a, message.Chat.ID, state)
			a.sendText(message.Chat.ID, ui.MsgAskImage)
		}
	case stepImage:
		a.handleImageStep(ctx, message, state)
	case stepConfirm:
		a.sendDraftSummary(message.Chat.ID, state)
	}

	return true
}

func (a *App) handleImageStep(ctx context.Context, message *tgbotapi.Message, state addModState) {
	if len(message.Photo) == 0 {
		a.sendText(message.Chat.ID, ui.MsgNeedPhoto)
		return
	}

	key, err := a.storeLargestPhoto(ctx, message.Photo)
	if err != nil {
		a.logger.Warn("store mod image",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID),
			zap.Int64("tg_id", state.ActorTGID),
		)
		a.sendText(message.Chat.ID, ui.MsgImageFailed)
		return
	}

	state.ImageKey = key
	state.Step = stepConfirm
	setAddState(a, message.Chat.ID, state)
	a.sendDraftSummary(message.Chat.ID, state)
}

// storeLargestPhoto downloads the biggest size Telegram offers and
// hands the bytes to the images service.
func (a *App) storeLargestPhoto(ctx context.Context, sizes []tgbotapi.PhotoSize) (string, error) {
	if a.imagesService == nil {
		return "", errors.New("image storage is disabled")
	}

	largest := sizes[len(sizes)-1]
	body, size, name, contentType, err := a.tg.DownloadFile(ctx, largest.FileID)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	return a.imagesService.SavePhoto(ctx, images.SaveInput{
		FileUniqueID: largest.FileUniqueID,
		FileName:     name,
		ContentType:  contentType,
		Body:         body,
		Size:         size,
	})
}

func (a *App) sendDraftSummary(chatID int64, state addModState) {
	prefix := callbackPrefixSuggest
	if state.OwnerFlow {
		prefix = callbackPrefixAddMod
	}
	a.sendInline(chatID, ui.RenderDraftSummary(ui.ModDraft{
		Name:         state.Name,
		Description:  state.Description,
		DownloadLink: state.DownloadLink,
		HasImage:     state.ImageKey != "",
	}), ui.ConfirmMenu(prefix))
}

func (a *App) handleConfirmCallback(ctx context.Context, chatID, actorTGID int64, parts []string) (string, bool) {
	state, ok := getAddState(a, chatID)
	if !ok || state.ActorTGID != actorTGID || state.Step != stepConfirm {
		return ui.MsgUnrecognizedAction, true
	}

	switch parts[1] {
	case "cancel":
		deleteAddState(a, chatID)
		a.sendText(chatID, ui.MsgCancelled)
		return "", false
	case "ok":
		a.commitAddFlow(ctx, chatID, state)
		return "", false
	default:
		return ui.MsgUnrecognizedAction, true
	}
}

func (a *App) commitAddFlow(ctx context.Context, chatID int64, state addModState) {
	input := mods.CreateInput{
		Name:         state.Name,
		Description:  state.Description,
		DownloadLink: state.DownloadLink,
		ImageKey:     state.ImageKey,
		UploaderTGID: state.ActorTGID,
	}

	if state.OwnerFlow {
		if _, err := a.modsService.AddApproved(ctx, input); err != nil {
			a.logger.Warn("publish owner mod", zap.Error(err), zap.Int64("tg_id", state.ActorTGID))
			a.sendText(chatID, ui.MsgSaveFailed)
			return
		}
		deleteAddState(a, chatID)
		a.sendText(chatID, ui.MsgModPublished)
		return
	}

	mod, err := a.modsService.SubmitSuggestion(ctx, input)
	if err != nil {
		a.logger.Warn("submit mod suggestion", zap.Error(err), zap.Int64("tg_id", state.ActorTGID))
		a.sendText(chatID, ui.MsgSaveFailed)
		return
	}
	deleteAddState(a, chatID)
	a.sendText(chatID, ui.MsgSuggestionSent)
	a.notifySuggestionSubmitted(mod)
}

func (a *App) handleCategoryCallback(ctx context.Context, chatID int64, messageID int, actorTGID int64, parts []string) (string, bool) {
	switch parts[1] {
	case "add":
		clearFlowState(a, chatID)
		setCategoryState(a, chatID, categoryAddState{ActorTGID: actorTGID, AwaitingName: true})
		a.sendText(chatID, ui.MsgAskCategoryName)
	case "ok":
		state, ok := getCategoryState(a, chatID)
		if !ok || state.ActorTGID != actorTGID || state.AwaitingName {
			return ui.MsgUnrecognizedAction, true
		}
		deleteCategoryState(a, chatID)
		a.commitCategory(ctx, chatID, state.Name)
	case "cancel":
		deleteCategoryState(a, chatID)
		a.editInline(chatID, messageID, "Categories", ui.CategoryMenu())
	case "list":
		list, err := a.categoriesService.List(ctx)
		if err != nil {
			a.logger.Warn("list categories", zap.Error(err))
			return ui.MsgSaveFailed, true
		}
		a.sendText(chatID, ui.RenderCategoryList(list))
	case "back":
		a.editOwnerMenu(ctx, chatID, messageID)
	default:
		clearFlowState(a, chatID)
		a.sendText(chatID, ui.MsgUnrecognizedAction)
	}
	return "", false
}

func (a *App) handleCategoryNameIfNeeded(ctx context.Context, message *tgbotapi.Message) bool {
	state, ok := getCategoryState(a, message.Chat.ID)
	if !ok || state.ActorTGID != message.From.ID || !state.AwaitingName {
		return false
	}

	name := strings.TrimSpace(message.Text)
	if name == "" {
		a.sendText(message.Chat.ID, ui.MsgAskCategoryName)
		return true
	}

	state.Name = name
	state.AwaitingName = false
	setCategoryState(a, message.Chat.ID, state)
	a.sendInline(message.Chat.ID, "Add category \""+name+"\"?", ui.ConfirmMenu(callbackPrefixCategory))
	return true
}

func (a *App) commitCategory(ctx context.Context, chatID int64, name string) {
	_, err := a.categoriesService.Create(ctx, name)
	switch {
	case errors.Is(err, categories.ErrCategoryExists):
		a.sendText(chatID, ui.MsgCategoryExists)
	case err != nil:
		a.logger.Warn("create category", zap.Error(err), zap.String("name", name))
		a.sendText(chatID, ui.MsgSaveFailed)
	default:
		a.sendText(chatID, ui.MsgCategoryAdded)
	}

	a.sendInline(chatID, "Categories", ui.CategoryMenu())
}

func (a *App) startReviewPass(ctx context.Context, chatID, actorTGID int64) {
	clearFlowState(a, chatID)

	ids, err := a.reviewService.PendingIDs(ctx)
	if err != nil {
		a.logger.Warn("snapshot pending mods", zap.Error(err))
		a.sendText(chatID, ui.MsgReviewLoadFailed)
		return
	}
	if len(ids) == 0 {
		a.sendText(chatID, ui.MsgNothingToReview)
		a.sendOwnerMenu(ctx, chatID)
		return
	}

	setReviewState(a, chatID, reviewState{ActorTGID: actorTGID, IDs: ids})
	a.sendReviewCard(ctx, chatID)
}

func (a *App) sendReviewCard(ctx context.Context, chatID int64) {
	state, ok := getReviewState(a, chatID)
	if !ok {
		return
	}
	if state.Index >= len(state.IDs) {
		deleteReviewState(a, chatID)
		a.sendText(chatID, ui.MsgReviewDone)
		a.sendOwnerMenu(ctx, chatID)
		return
	}

	modID := state.IDs[state.Index]
	mod, err := a.reviewService.Get(ctx, modID)
	if errors.Is(err, postgres.ErrModNotFound) {
		deleteReviewState(a, chatID)
		a.sendText(chatID, ui.MsgReviewItemGone)
		a.sendOwnerMenu(ctx, chatID)
		return
	}
	if err != nil {
		a.logger.Warn("load review item", zap.Error(err), zap.Int64("mod_id", modID))
		deleteReviewState(a, chatID)
		a.sendText(chatID, ui.MsgReviewLoadFailed)
		a.sendOwnerMenu(ctx, chatID)
		return
	}

	a.sendText(chatID, ui.RenderReviewCard(mod, state.Index+1, len(state.IDs)))
	if mod.ImageKey != "" && a.imagesService != nil {
		url, err := a.imagesService.PhotoURL(ctx, mod.ImageKey)
		if err != nil {
			a.logger.Warn("presign review image", zap.Error(err), zap.Int64("mod_id", mod.ID))
		} else if url != "" {
			if err := a.sendPhotoByURL(chatID, url, mod.Name); err != nil {
				a.logger.Warn("send review image", zap.Error(err), zap.Int64("mod_id", mod.ID))
			}
		}
	}
	a.sendInline(chatID, "Decision:", ui.ReviewMenu(mod.ID))
}

func (a *App) handleReviewCallback(ctx context.Context, chatID, actorTGID int64, parts []string) (string, bool) {
	switch parts[1] {
	case "start":
		a.startReviewPass(ctx, chatID, actorTGID)
		return "", false
	case "skip":
		a.advanceReview(ctx, chatID, actorTGID)
		return "", false
	case "stop":
		deleteReviewState(a, chatID)
		a.sendOwnerMenu(ctx, chatID)
		return "", false
	case "approve", "reject":
		if len(parts) < 3 {
			return ui.MsgUnrecognizedAction, true
		}
		modID, err := parseID(parts[2])
		if err != nil {
			return ui.MsgUnrecognizedAction, true
		}
		return a.decideReview(ctx, chatID, actorTGID, modID, parts[1] == "approve")
	default:
		clearFlowState(a, chatID)
		a.sendText(chatID, ui.MsgUnrecognizedAction)
		return "", false
	}
}

func (a *App) decideReview(ctx context.Context, chatID, actorTGID, modID int64, approve bool) (string, bool) {
	state, ok := getReviewState(a, chatID)
	if !ok || state.ActorTGID != actorTGID {
		return ui.MsgUnrecognizedAction, true
	}
	// Buttons from an earlier card carry that card's id; only the
	// currently displayed item may be decided.
	if state.Index >= len(state.IDs) || state.IDs[state.Index] != modID {
		return ui.MsgReviewStale, false
	}

	decide := a.reviewService.Reject
	resultText := ui.MsgReviewRejected
	if approve {
		decide = a.reviewService.Approve
		resultText = ui.MsgReviewApproved
	}

	mod, err := decide(ctx, modID)
	switch {
	case errors.Is(err, review.ErrNotPending):
		a.sendText(chatID, ui.MsgAlreadyReviewed)
		a.advanceReview(ctx, chatID, actorTGID)
		return "", false
	case errors.Is(err, postgres.ErrModNotFound):
		deleteReviewState(a, chatID)
		a.sendText(chatID, ui.MsgReviewItemGone)
		a.sendOwnerMenu(ctx, chatID)
		return "", false
	case err != nil:
		a.logger.Warn("apply review decision", zap.Error(err), zap.Int64("mod_id", modID))
		return ui.MsgDecisionFailed, true
	}

	a.sendText(chatID, resultText)
	a.notifyDecision(mod)
	a.advanceReview(ctx, chatID, actorTGID)
	return "", false
}

func (a *App) advanceReview(ctx context.Context, chatID, actorTGID int64) {
	state, ok := getReviewState(a, chatID)
	if !ok || state.ActorTGID != actorTGID {
		return
	}

	state.Index++
	setReviewState(a, chatID, state)
	a.sendReviewCard(ctx, chatID)
}
