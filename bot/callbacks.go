package bot

import (
	"context"

	"github.com/DrDelphi/TenPercentBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) callbackQueryReceived(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	b.tgBot.AnswerCallbackQuery(tgbotapi.NewCallback(callback.ID, ""))
	name := utils.FormatTgUser(callback.From)
	log.Info("callback received", "callback", callback.Data, "user", name)

	if !b.allowed(callback.From) || callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	if callback.Data == callbackBalance {
		b.sendBalance(ctx, chatID)
		return
	}

	if _, ok := actionLabels[callback.Data]; ok {
		b.runAction(ctx, chatID, callback.Data)
	}
}
