package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/sozluk/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier posts the word of the day to one chat.
type Notifier struct {
	api    sender
	chatID int64
}

// NewNotifier creates a notifier posting to chatID.
func NewNotifier(api sender, chatID int64) *Notifier {
	return &Notifier{api: api, chatID: chatID}
}

// SendDailyWord implements scheduler.Notifier.
func (n *Notifier) SendDailyWord(_ context.Context, w models.Word) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatWord("Günün Kelimesi", w))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to post to chat %d: %w", n.chatID, err)
	}
	return nil
}

// FormatWord renders w as a Telegram HTML message, with an optional title line.
func FormatWord(title string, w models.Word) string {
	esc := func(s string) string { return tgbotapi.EscapeText(tgbotapi.ModeHTML, s) }

	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "✨ <b>%s</b>\n\n", esc(title))
	}
	fmt.Fprintf(&b, "<b>%s</b>\n%s\n", esc(w.Word), esc(w.Meaning))
	if w.Quote != "" {
		fmt.Fprintf(&b, "\n<i>“%s”</i>\n", esc(w.Quote))
	}
	if w.Book != "" {
		fmt.Fprintf(&b, "📖 %s\n", esc(w.Book))
	}
	if w.HasCategory() {
		fmt.Fprintf(&b, "#%s\n", esc(strings.ReplaceAll(*w.Category, " ", "_")))
	}
	return strings.TrimRight(b.String(), "\n")
}
