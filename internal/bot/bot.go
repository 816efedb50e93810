package bot

import (
	"context"
	"fmt"

	"github.com/example/sozluk/internal/dictionary"
	"github.com/example/sozluk/internal/quiz"
	"github.com/example/sozluk/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// sender is the part of *tgbotapi.BotAPI used to post messages.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// poller adds long polling to sender.
type poller interface {
	sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Dictionary is what the bot looks words up in.
type Dictionary interface {
	Today(ctx context.Context) (models.Word, error)
	Random(ctx context.Context) (models.Word, error)
	Words(ctx context.Context, q dictionary.Query) ([]models.Word, error)
}

// Quizzer builds quiz questions for /test.
type Quizzer interface {
	Create(ctx context.Context, opts quiz.Options) ([]quiz.Question, error)
}

// NewAPI connects to Telegram with token.
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	logrus.WithField("account", api.Self.UserName).Info("Authorized on Telegram")
	return api, nil
}

// Bot represents the Telegram bot application
type Bot struct {
	api    poller
	dict   Dictionary
	quiz   Quizzer
	config *Config
}

// New creates a bot answering commands from dict.
func New(api poller, dict Dictionary, config *Config) *Bot {
	if config == nil {
		config = DefaultConfig()
	}
	return &Bot{api: api, dict: dict, config: config}
}

// WithQuiz enables the /test command.
func (b *Bot) WithQuiz(q Quizzer) *Bot {
	b.quiz = q
	return b
}

// Run handles updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.PollTimeout

	updates := b.api.GetUpdatesChan(updateConfig)
	logrus.Info("Telegram bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logrus.Info("Telegram bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", msg.ChatID).Error("Error sending message")
	}
}
