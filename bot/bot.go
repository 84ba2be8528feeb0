package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/DrDelphi/TenPercentBot/actions"
	"github.com/DrDelphi/TenPercentBot/data"
	"github.com/DrDelphi/TenPercentBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"golang.org/x/sync/errgroup"
)

var log = logger.GetOrCreate("bot")

type balanceReader interface {
	GetBalance(ctx context.Context) (float64, error)
}

// Bot - holds the required fields of the bot application
type Bot struct {
	tgBot    *tgbotapi.BotAPI
	cfg      data.AppConfig
	registry *actions.Registry
	balances balanceReader

	tasks *errgroup.Group
}

// NewBot - creates a new Bot object
func NewBot(cfg data.AppConfig, registry *actions.Registry, balances balanceReader) (*Bot, error) {
	if cfg.Bot.Token == "" {
		return nil, &data.ConfigurationError{Field: "bot.token", Err: data.ErrMissingField}
	}
	if cfg.Bot.Owner == 0 {
		return nil, &data.ConfigurationError{Field: "bot.owner", Err: data.ErrMissingField}
	}

	tgBot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Error("can not create telegram bot", "error", err)
		return nil, err
	}

	return &Bot{
		tgBot:    tgBot,
		cfg:      cfg,
		registry: registry,
		balances: balances,
	}, nil
}

// Run - serves updates until ctx is done, then waits for the actions still in flight
func (b *Bot) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	b.tasks = g

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.tgBot.GetUpdatesChan(u)
	if err != nil {
		log.Error("can not get Telegram bot updates", "error", err)
		return err
	}
	updates.Clear()

	log.Info("bot started", "bot", b.tgBot.Self.UserName, "owner", b.cfg.Bot.Owner)

	g.Go(func() error {
		<-ctx.Done()
		b.tgBot.StopReceivingUpdates()
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case update, ok := <-updates:
				if !ok {
					return nil
				}
				b.handleUpdate(ctx, update)
			}
		}
	})

	return g.Wait()
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil && update.Message.Chat.IsPrivate() {
		if update.Message.IsCommand() {
			b.privateCommandReceived(ctx, update.Message)
			return
		}
		b.privateMessageReceived(ctx, update.Message)
		return
	}
	if update.CallbackQuery != nil {
		b.callbackQueryReceived(ctx, update.CallbackQuery)
	}
}

func (b *Bot) allowed(user *tgbotapi.User) bool {
	return user != nil && int64(user.ID) == b.cfg.Bot.Owner
}

func (b *Bot) reportError(text string) {
	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, "⛔️ "+text)
	b.tgBot.Send(msg)
}

func (b *Bot) sendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message", "chat", chatID, "message", text, "error", err.Error())
	}

	return res, err
}

func (b *Bot) sendBalance(ctx context.Context, chatID int64) {
	balance, err := b.balances.GetBalance(ctx)
	if err != nil {
		b.reportError("can not get account balance: " + err.Error())
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("`Account:` %s\n`Balance:` %v", utils.ShortenAddress(b.cfg.AccountAddress), balance))
}

// runAction posts a pending status, runs the action in the background and
// edits the status once the action resolved
func (b *Bot) runAction(ctx context.Context, chatID int64, action string) {
	format := fmt.Sprintf("`%s` - Status: ", actionLabels[action])
	res, err := b.sendMessage(chatID, format+"pending ⌛️")
	if err != nil {
		return
	}

	b.tasks.Go(func() error {
		result := b.registry.Run(ctx, action)
		if !result.Success {
			log.Warn("action failed", "action", action, "hash", result.TransactionHash(), "error", result.Error)
		}

		msg := tgbotapi.NewEditMessageText(chatID, res.MessageID, formatOutcome(format, b.cfg.Network.ExplorerTransaction, result))
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true
		keyboard := againKeyboard(action)
		msg.ReplyMarkup = &keyboard
		if _, err := b.tgBot.Send(msg); err != nil {
			log.Warn("can not edit action status message", "action", action, "error", err)
		}

		return nil
	})
}

func formatOutcome(format string, explorer string, result *data.ActionResult) string {
	hash := result.TransactionHash()
	link := func(status string) string {
		if hash == "" {
			return status
		}
		if explorer == "" {
			return fmt.Sprintf("%s `%s`", status, hash)
		}
		return fmt.Sprintf("[%s](%s%s)", status, explorer, hash)
	}

	if result.Success {
		if result.Confirmed() {
			return format + link("confirmed ✅")
		}
		return format + link(string(result.Transaction.Hash.Status)+" ❌")
	}

	text := format + link("failed ❌")
	if result.Error != nil {
		text += "\n`" + strings.ReplaceAll(result.Error.Error(), "`", "'") + "`"
	}

	return text
}
