package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/sozluk/internal/dictionary"
	"github.com/example/sozluk/internal/lexicon"
	"github.com/example/sozluk/internal/quiz"
	"github.com/example/sozluk/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	callbackToday  = "today"
	callbackRandom = "random"
)

const usageText = "Tanpınar Sözlüğü\n\n" +
	"/bugun - günün kelimesi\n" +
	"/rastgele - rastgele bir kelime\n" +
	"/ara <kelime> - sözlükte ara\n" +
	"/test [baglam] - kendini dene"

func wordKeyboard() tgbotapi.InlineKeyboardMarkup {
	return createKeyboard([][]MenuButton{
		{{Text: "📅 Günün kelimesi", CallbackData: callbackToday}, {Text: "🎲 Rastgele", CallbackData: callbackRandom}},
	})
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}

	message := update.Message
	if !message.IsCommand() {
		b.send(tgbotapi.NewMessage(message.Chat.ID, usageText))
		return
	}

	switch message.Command() {
	case "start", "help":
		b.send(tgbotapi.NewMessage(message.Chat.ID, usageText))
	case "bugun":
		b.sendToday(ctx, message.Chat.ID)
	case "rastgele":
		b.sendRandom(ctx, message.Chat.ID)
	case "ara":
		b.handleSearch(ctx, message.Chat.ID, message.CommandArguments())
	case "test":
		b.handleQuiz(ctx, message.Chat.ID, message.CommandArguments())
	default:
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Bilinmeyen komut.\n\n"+usageText))
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logrus.WithError(err).Warn("Error answering callback")
	}
	if query.Message == nil {
		return
	}
	switch query.Data {
	case callbackToday:
		b.sendToday(ctx, query.Message.Chat.ID)
	case callbackRandom:
		b.sendRandom(ctx, query.Message.Chat.ID)
	}
}

func (b *Bot) sendToday(ctx context.Context, chatID int64) {
	w, err := b.dict.Today(ctx)
	b.sendWord(chatID, "Günün Kelimesi", w, err)
}

func (b *Bot) sendRandom(ctx context.Context, chatID int64) {
	w, err := b.dict.Random(ctx)
	b.sendWord(chatID, "", w, err)
}

func (b *Bot) sendWord(chatID int64, title string, w models.Word, err error) {
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	msg := tgbotapi.NewMessage(chatID, FormatWord(title, w))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = wordKeyboard()
	b.send(msg)
}

func (b *Bot) handleSearch(ctx context.Context, chatID int64, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		b.send(tgbotapi.NewMessage(chatID, "Kullanım: /ara <kelime>"))
		return
	}

	words, err := b.dict.Words(ctx, dictionary.Query{
		Criteria: lexicon.Criteria{Query: query},
		Sort:     dictionary.SortAlphabetic,
	})
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	if len(words) == 0 {
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("%q için sonuç bulunamadı.", query)))
		return
	}

	limit := b.config.SearchLimit
	var text strings.Builder
	for i, w := range words {
		if i == limit {
			fmt.Fprintf(&text, "\n… ve %d kelime daha", len(words)-limit)
			break
		}
		if i > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(FormatWord("", w))
	}

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(msg)
}

// Telegram caps poll questions and options.
const (
	maxPollQuestion = 300
	maxPollOption   = 100
)

func (b *Bot) handleQuiz(ctx context.Context, chatID int64, args string) {
	if b.quiz == nil {
		b.send(tgbotapi.NewMessage(chatID, "Test şu an kullanılamıyor."))
		return
	}

	opts := quiz.Options{Count: 1, Type: quiz.MultipleChoice}
	if strings.TrimSpace(args) == "baglam" {
		opts.Type = quiz.ContextTest
	}
	questions, err := b.quiz.Create(ctx, opts)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			b.send(tgbotapi.NewMessage(chatID, "Test için yeterli kelime yok."))
			return
		}
		b.sendError(chatID, err)
		return
	}

	q := questions[0]
	prompt := fmt.Sprintf("«%s» ne demek?", q.Prompt)
	if q.Type == quiz.ContextTest {
		prompt = "Boşluğa hangi kelime gelir?\n\n" + q.Prompt
	}
	options := make([]string, len(q.Options))
	for i, o := range q.Options {
		options[i] = truncate(o, maxPollOption)
	}

	poll := tgbotapi.NewPoll(chatID, truncate(prompt, maxPollQuestion), options...)
	poll.Type = "quiz"
	poll.IsAnonymous = false
	poll.CorrectOptionID = int64(q.CorrectIndex)
	if _, err := b.api.Send(poll); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Error sending quiz")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (b *Bot) sendError(chatID int64, err error) {
	text := "Bir hata oluştu, lütfen daha sonra tekrar deneyin."
	if errors.Is(err, models.ErrNotFound) {
		text = "Sözlükte henüz kelime yok."
	} else {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Bot lookup failed")
	}
	b.send(tgbotapi.NewMessage(chatID, text))
}
