package botapp

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mhmad0m0/modcatalog/internal/domain/enums"
	"github.com/mhmad0m0/modcatalog/internal/domain/model"
)

// Notifications are best effort. A delivery failure never fails the
// operation that triggered it, it is only logged.

func (a *App) notifySuggestionSubmitted(mod model.Mod) {
	if a.cfg.Bot.OwnerTGID == 0 {
		return
	}

	text := fmt.Sprintf("New suggestion #%d %q awaits review", mod.ID, mod.Name)
	if err := a.tg.Send(tgbotapi.NewMessage(a.cfg.Bot.OwnerTGID, text)); err != nil {
		a.logger.Warn("notify owner about suggestion", zap.Error(err), zap.Int64("mod_id", mod.ID))
	}
}

func (a *App) notifyDecision(mod model.Mod) {
	if mod.UploaderTGID == 0 || mod.UploaderTGID == a.cfg.Bot.OwnerTGID {
		return
	}

	var text string
	switch mod.Status {
	case enums.ModStatusApproved:
		text = fmt.Sprintf("Your mod %q was approved and is now in the catalog!", mod.Name)
	case enums.ModStatusRejected:
		text = fmt.Sprintf("Your mod %q was rejected", mod.Name)
	default:
		return
	}

	if err := a.tg.Send(tgbotapi.NewMessage(mod.UploaderTGID, text)); err != nil {
		a.logger.Warn("notify uploader about decision",
			zap.Error(err),
			zap.Int64("mod_id", mod.ID),
			zap.Int64("tg_id", mod.UploaderTGID),
		)
	}
}
