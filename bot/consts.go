package bot

import "github.com/DrDelphi/TenPercentBot/actions"

const (
	menuStartGame = "🎲 Start game"
	menuShort     = "⬇️ Short"
	menuLong      = "⬆️ Long"
	menuReset     = "🔄 Reset"
	menuBalance   = "💰 Balance"
	menuMainHelp  = "📖 Help"

	callbackBalance = "balance"

	aboutMessage = "*Made with ❤️ by* [@DrDelphi](https://t.me/DrDelphi)"
)

var (
	menuActions = map[string]string{
		menuStartGame: actions.StartGame,
		menuShort:     actions.GuessShort,
		menuLong:      actions.GuessLong,
		menuReset:     actions.ResetGame,
	}

	commandActions = map[string]string{
		"startgame": actions.StartGame,
		"short":     actions.GuessShort,
		"long":      actions.GuessLong,
		"reset":     actions.ResetGame,
	}

	actionLabels = map[string]string{
		actions.StartGame:  "Start game",
		actions.GuessShort: "Guess short",
		actions.GuessLong:  "Guess long",
		actions.ResetGame:  "Reset game",
	}
)

var helpMessage = "`Instructions`\n" +
	"\n" +
	"This bot plays the TenPercent game contract from the configured account.\n\n" +
	"/startgame - start a new game\n" +
	"/short - guess short\n" +
	"/long - guess long\n" +
	"/reset - reset the game\n" +
	"/balance - account balance\n\n" +
	"Every action sends one transaction and reports back once the network confirmed it.\n\n" +
	aboutMessage
