package bot

import (
	"context"

	"github.com/DrDelphi/TenPercentBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) privateCommandReceived(ctx context.Context, message *tgbotapi.Message) {
	cmd := message.Command()
	name := utils.FormatTgUser(message.From)
	log.Info("private command received", "command", cmd, "user", name)

	if !b.allowed(message.From) {
		b.sendMessage(message.Chat.ID, "⛔️ This bot only takes orders from its owner")
		return
	}

	switch cmd {
	case "start":
		b.mainMenu(message.Chat.ID)
		b.helpWithActions(message.Chat.ID)
	case "help":
		b.helpWithActions(message.Chat.ID)
	case "balance":
		b.sendBalance(ctx, message.Chat.ID)
	default:
		if action, ok := commandActions[cmd]; ok {
			b.runAction(ctx, message.Chat.ID, action)
		}
	}
}

func (b *Bot) privateMessageReceived(ctx context.Context, message *tgbotapi.Message) {
	name := utils.FormatTgUser(message.From)
	log.Info("private message received", "message", message.Text, "user", name)

	if !b.allowed(message.From) {
		return
	}

	switch message.Text {
	case menuMainHelp:
		b.helpWithActions(message.Chat.ID)
	case menuBalance:
		b.sendBalance(ctx, message.Chat.ID)
	default:
		if action, ok := menuActions[message.Text]; ok {
			b.runAction(ctx, message.Chat.ID, action)
		}
	}
}
