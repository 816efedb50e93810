package cli

import (
	"fmt"
	"io"

	"github.com/example/sozluk/internal/bot"
	"github.com/example/sozluk/internal/scheduler"
	"github.com/example/sozluk/pkg/models"
	"github.com/spf13/cobra"
)

func newDailyCommand() *cobra.Command {
	var (
		date   string
		notify bool
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Print the word of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if notify {
				if date != "" {
					return fmt.Errorf("--notify always sends today's word, drop --date")
				}
				var notifier scheduler.Notifier = scheduler.LogNotifier{}
				if a.cfg.TelegramEnabled() {
					api, err := bot.NewAPI(a.cfg.TelegramToken)
					if err != nil {
						return err
					}
					notifier = bot.NewNotifier(api, a.cfg.TelegramChat)
				}
				w, err := scheduler.New(a.cfg.Location, a.cfg.DailyAt, a.dict, notifier).RunNow(ctx)
				if err != nil {
					return err
				}
				printWord(cmd.OutOrStdout(), w)
				return nil
			}

			var w models.Word
			if date != "" {
				asOf, err := a.dict.ParseDate(date)
				if err != nil {
					return err
				}
				w, err = a.dict.Daily(ctx, asOf)
				if err != nil {
					return err
				}
			} else if w, err = a.dict.Today(ctx); err != nil {
				return err
			}
			printWord(cmd.OutOrStdout(), w)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to pick for, YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&notify, "notify", false, "Send today's word through the configured notifier")
	return cmd
}

func printWord(w io.Writer, word models.Word) {
	fmt.Fprintf(w, "%s\n  %s\n", word.Word, word.Meaning)
	if word.Quote != "" {
		fmt.Fprintf(w, "  \"%s\"\n", word.Quote)
	}
	if word.Book != "" {
		fmt.Fprintf(w, "  (%s)\n", word.Book)
	}
}
