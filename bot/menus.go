package bot

import (
	"github.com/DrDelphi/TenPercentBot/actions"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) mainMenu(chatID int64) {
	menu := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuStartGame),
			tgbotapi.NewKeyboardButton(menuReset),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuShort),
			tgbotapi.NewKeyboardButton(menuLong),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuBalance),
			tgbotapi.NewKeyboardButton(menuMainHelp),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "`🏘 Main menu`")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = menu
	b.tgBot.Send(msg)
}

// actionsKeyboard carries the action names as callback data
func actionsKeyboard() tgbotapi.InlineKeyboardMarkup {
	button := func(action string) tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardButtonData(actionLabels[action], action)
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button(actions.StartGame), button(actions.ResetGame)),
		tgbotapi.NewInlineKeyboardRow(button(actions.GuessShort), button(actions.GuessLong)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(menuBalance, callbackBalance)),
	)
}

func (b *Bot) helpWithActions(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, helpMessage)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = actionsKeyboard()
	if _, err := b.tgBot.Send(msg); err != nil {
		log.Warn("error sending help", "chat", chatID, "error", err.Error())
	}
}

// againKeyboard is attached to a finished action so it can be repeated with one tap
func againKeyboard(action string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔁 "+actionLabels[action], action),
		tgbotapi.NewInlineKeyboardButtonData(menuBalance, callbackBalance),
	))
}
