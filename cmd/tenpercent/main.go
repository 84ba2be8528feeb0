package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DrDelphi/TenPercentBot/actions"
	"github.com/DrDelphi/TenPercentBot/bot"
	"github.com/DrDelphi/TenPercentBot/config"
	"github.com/DrDelphi/TenPercentBot/data"
	"github.com/DrDelphi/TenPercentBot/network"
	"github.com/DrDelphi/TenPercentBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/urfave/cli"
)

var log = logger.GetOrCreate("main")

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to the JSON configuration file",
		Value: utils.DefaultConfigPath,
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "log level pattern, e.g. *:DEBUG or *:INFO,network:TRACE",
		Value: utils.DefaultLogLevel,
	}
)

var actionCommands = []struct {
	command string
	action  string
	usage   string
}{
	{"start-game", actions.StartGame, "start a new game"},
	{"guess-short", actions.GuessShort, "guess short"},
	{"guess-long", actions.GuessLong, "guess long"},
	{"reset-game", actions.ResetGame, "reset the game"},
}

func main() {
	app := cli.NewApp()
	app.Name = "tenpercent"
	app.Usage = "plays the TenPercent game contract from a single account"
	app.Flags = []cli.Flag{configFlag, logLevelFlag}
	app.Before = func(c *cli.Context) error {
		return logger.SetLogLevel(c.GlobalString(logLevelFlag.Name))
	}

	for _, ac := range actionCommands {
		action := ac.action
		app.Commands = append(app.Commands, cli.Command{
			Name:  ac.command,
			Usage: ac.usage,
			Action: func(c *cli.Context) error {
				return runAction(c, action)
			},
		})
	}
	app.Commands = append(app.Commands, cli.Command{
		Name:   "bot",
		Usage:  "serve the actions over Telegram until interrupted",
		Action: runBot,
	})

	if err := app.Run(os.Args); err != nil {
		log.Error("tenpercent stopped", "error", err)
		os.Exit(1)
	}
}

type services struct {
	cfg      *data.AppConfig
	contract network.Contract
	registry *actions.Registry
}

func setup(ctx context.Context, c *cli.Context) (*services, error) {
	cfg, err := config.NewConfig(c.GlobalString(configFlag.Name))
	if err != nil {
		return nil, err
	}

	contract, err := network.NewContract(ctx, *cfg)
	if err != nil {
		return nil, err
	}

	runner, err := actions.NewRunner(contract, contract, cfg.ConfirmationTimeout.Duration)
	if err != nil {
		contract.Close()
		return nil, err
	}

	return &services{
		cfg:      cfg,
		contract: contract,
		registry: actions.NewRegistry(runner),
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runAction(c *cli.Context, action string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := setup(ctx, c)
	if err != nil {
		return err
	}
	defer a.contract.Close()

	result := a.registry.Run(ctx, action)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if !result.Success {
		return cli.NewExitError("", 1)
	}

	return nil
}

func runBot(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := setup(ctx, c)
	if err != nil {
		return err
	}
	defer a.contract.Close()

	b, err := bot.NewBot(*a.cfg, a.registry, a.contract)
	if err != nil {
		return err
	}

	return b.Run(ctx)
}
