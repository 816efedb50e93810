package cli

import (
	"context"

	"github.com/example/sozluk/internal/bot"
	"github.com/example/sozluk/internal/quiz"
	"github.com/example/sozluk/internal/scheduler"
	"github.com/example/sozluk/internal/server"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the daily word scheduler and the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if seed {
				if err := a.seedIfEmpty(ctx); err != nil {
					return err
				}
			}
			return serve(ctx, a)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", true, "Load the built-in dictionary when the database is empty")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	if !a.cfg.AdminEnabled() {
		logrus.Warn("ADMIN_PASSWORD is not set, admin routes are disabled")
	}

	var api *tgbotapi.BotAPI
	if a.cfg.TelegramToken != "" {
		var err error
		if api, err = bot.NewAPI(a.cfg.TelegramToken); err != nil {
			return err
		}
	}

	var notifier scheduler.Notifier = scheduler.LogNotifier{}
	if api != nil && a.cfg.TelegramEnabled() {
		notifier = bot.NewNotifier(api, a.cfg.TelegramChat)
	}

	sched := scheduler.New(a.cfg.Location, a.cfg.DailyAt, a.dict, notifier)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	qz := quiz.New(a.dict, 0)
	srv := server.New(server.Options{
		Dictionary:   a.dict,
		Library:      a.library,
		Quiz:         qz,
		Authorizer:   server.NewSharedSecret(a.cfg.AdminPassword),
		PopularLimit: a.cfg.PopularLimit,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, a.cfg.Addr())
	})
	if api != nil {
		b := bot.New(api, a.dict, bot.DefaultConfig()).WithQuiz(qz)
		g.Go(func() error {
			return b.Run(ctx)
		})
	}
	return g.Wait()
}
