package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/scepticulous/lita-github/internal/bot"
	"github.com/scepticulous/lita-github/internal/config"
	"github.com/scepticulous/lita-github/internal/handlers"
	"github.com/scepticulous/lita-github/internal/i18n"
	"github.com/scepticulous/lita-github/internal/infrastructure/github"
	"github.com/scepticulous/lita-github/internal/logger"
	"github.com/scepticulous/lita-github/internal/version"
)

func main() {
	app := newApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:        "lita-github",
		Usage:       "GitHub management from chat",
		Version:     version.Version,
		Description: "Runs a Slack bot that exposes GitHub organization, repository, pull request and issue management as chat commands.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the config file or its directory",
				Sources: cli.EnvVars("LITA_GITHUB_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log at debug level with source locations",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log at info level",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "colorized human-readable logs instead of logfmt",
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "print the version and exit",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Println(version.FullVersion())
					return nil
				},
			},
		},
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"), cmd.Bool("pretty"))

	path := cmd.String("config")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving the home directory: %w", err)
		}
		path = home
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.AccessToken == "" {
		return errors.New("no GitHub access token configured; set access_token or GITHUB_ACCESS_TOKEN")
	}
	if cfg.SlackToken == "" {
		return errors.New("no Slack token configured; set slack_token or SLACK_TOKEN")
	}

	trans, err := i18n.NewTranslations(cfg.Language)
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}

	client := github.NewClient(cfg.AccessToken)

	router := bot.NewDefaultRouter(bot.Handlers{
		Core:   handlers.NewCoreHandler(client, cfg, trans),
		Repo:   handlers.NewRepoHandler(client, cfg, trans),
		PR:     handlers.NewPRHandler(client, cfg, trans),
		Org:    handlers.NewOrgHandler(client, cfg, trans),
		Issues: handlers.NewIssuesHandler(client, cfg, trans),
	})

	logger.Info(ctx, "starting", "version", version.FullVersion(), "default_org", cfg.DefaultOrg)
	return bot.NewSlack(cfg.SlackToken, router).Run(ctx)
}
