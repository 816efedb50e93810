package bot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/sozluk/internal/dictionary"
	"github.com/example/sozluk/internal/lexicon"
	"github.com/example/sozluk/internal/quiz"
	"github.com/example/sozluk/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.MessageConfig
	polls    []tgbotapi.SendPollConfig
	requests int
	updates  chan tgbotapi.Update
	stopped  bool
	err      error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(chan tgbotapi.Update, 4)}
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	switch msg := c.(type) {
	case tgbotapi.MessageConfig:
		f.sent = append(f.sent, msg)
	case tgbotapi.SendPollConfig:
		f.polls = append(f.polls, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeAPI) messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), f.sent...)
}

type fakeDictionary struct {
	words []models.Word
	err   error
}

func (d fakeDictionary) Today(context.Context) (models.Word, error) {
	if d.err != nil {
		return models.Word{}, d.err
	}
	if len(d.words) == 0 {
		return models.Word{}, models.ErrNotFound
	}
	return d.words[0], nil
}

func (d fakeDictionary) Random(ctx context.Context) (models.Word, error) {
	return d.Today(ctx)
}

func (d fakeDictionary) Words(_ context.Context, q dictionary.Query) ([]models.Word, error) {
	if d.err != nil {
		return nil, d.err
	}
	return lexicon.SortAlphabetic(lexicon.Filter(d.words, q.Criteria)), nil
}

func strPtr(s string) *string { return &s }

var testWords = []models.Word{
	{ID: 1, Word: "Bedâhet", Meaning: "Açıklık, apaçıklık", Book: "Saatleri Ayarlama Enstitüsü",
		Quote: "öyle bir bedahet vardı", Category: strPtr("zihin hali")},
	{ID: 2, Word: "Behemehal", Meaning: "Her halde", Book: "Huzur"},
	{ID: 3, Word: "Bedbaht", Meaning: "Talihsiz", Book: "Huzur"},
}

func command(chatID int64, text string) tgbotapi.Update {
	length := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		length = i
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func TestFormatWord(t *testing.T) {
	text := FormatWord("Günün Kelimesi", models.Word{
		Word: "Münhani", Meaning: "Eğri <kavisli>", Book: "Beş Şehir", Quote: "münhani bir yol", Category: strPtr("mekân tasviri"),
	})
	assert.Contains(t, text, "<b>Günün Kelimesi</b>")
	assert.Contains(t, text, "<b>Münhani</b>")
	assert.Contains(t, text, "Eğri &lt;kavisli&gt;")
	assert.Contains(t, text, "<i>“münhani bir yol”</i>")
	assert.Contains(t, text, "📖 Beş Şehir")
	assert.True(t, strings.HasSuffix(text, "#mekân_tasviri"))

	bare := FormatWord("", models.Word{Word: "Yetim", Meaning: "Öksüz"})
	assert.Equal(t, "<b>Yetim</b>\nÖksüz", bare)
}

func TestNotifier(t *testing.T) {
	api := newFakeAPI()
	n := NewNotifier(api, -100123)

	require.NoError(t, n.SendDailyWord(context.Background(), testWords[0]))
	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(-100123), sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, sent[0].ParseMode)
	assert.Contains(t, sent[0].Text, "Bedâhet")

	api.err = errors.New("forbidden")
	assert.Error(t, n.SendDailyWord(context.Background(), testWords[0]))
}

func TestCommands(t *testing.T) {
	api := newFakeAPI()
	b := New(api, fakeDictionary{words: testWords}, nil)
	ctx := context.Background()

	b.handleUpdate(ctx, command(7, "/start"))
	b.handleUpdate(ctx, command(7, "/bugun"))
	b.handleUpdate(ctx, command(7, "/ara bed"))
	b.handleUpdate(ctx, command(7, "/ara"))
	b.handleUpdate(ctx, command(7, "/nope"))

	sent := api.messages()
	require.Len(t, sent, 5)
	assert.Equal(t, usageText, sent[0].Text)
	assert.Contains(t, sent[1].Text, "Günün Kelimesi")
	assert.NotNil(t, sent[1].ReplyMarkup)

	assert.Contains(t, sent[2].Text, "Bedâhet")
	assert.Contains(t, sent[2].Text, "Bedbaht")
	assert.NotContains(t, sent[2].Text, "Behemehal")

	assert.Contains(t, sent[3].Text, "Kullanım")
	assert.Contains(t, sent[4].Text, "Bilinmeyen komut")
}

func TestSearchLimit(t *testing.T) {
	api := newFakeAPI()
	b := New(api, fakeDictionary{words: testWords}, &Config{SearchLimit: 1, PollTimeout: 1})

	b.handleUpdate(context.Background(), command(1, "/ara be"))
	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "2 kelime daha")
}

func TestEmptyDictionary(t *testing.T) {
	api := newFakeAPI()
	b := New(api, fakeDictionary{}, nil)

	b.handleUpdate(context.Background(), command(1, "/rastgele"))
	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Text, "henüz kelime yok")
}

func TestCallback(t *testing.T) {
	api := newFakeAPI()
	b := New(api, fakeDictionary{words: testWords}, nil)

	b.handleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    callbackRandom,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 9}},
	}})

	assert.Equal(t, 1, api.requests)
	sent := api.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(9), sent[0].ChatID)
}

func TestRunStopsOnCancel(t *testing.T) {
	api := newFakeAPI()
	b := New(api, fakeDictionary{words: testWords}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	api.updates <- command(3, "/bugun")
	require.Eventually(t, func() bool { return len(api.messages()) == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("bot did not stop")
	}
	assert.True(t, api.stopped)
}

func TestQuizCommand(t *testing.T) {
	api := newFakeAPI()
	dict := fakeDictionary{words: testWords}
	b := New(api, dict, nil)
	ctx := context.Background()

	b.handleUpdate(ctx, command(5, "/test"))
	require.Len(t, api.messages(), 1)
	assert.Contains(t, api.messages()[0].Text, "kullanılamıyor")

	b.WithQuiz(quiz.New(dict, 3))
	b.handleUpdate(ctx, command(5, "/test"))
	b.handleUpdate(ctx, command(5, "/test baglam"))

	require.Len(t, api.polls, 2)
	mc := api.polls[0]
	assert.Equal(t, "quiz", mc.Type)
	assert.False(t, mc.IsAnonymous)
	assert.Len(t, mc.Options, 3)
	assert.Contains(t, mc.Question, "ne demek?")

	// Only Bedâhet has its headword in the quote.
	ctxPoll := api.polls[1]
	assert.Contains(t, ctxPoll.Question, "öyle bir _____ vardı")
	assert.Equal(t, "Bedâhet", ctxPoll.Options[ctxPoll.CorrectOptionID])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Sükût", truncate("Sükût", 5))
	assert.Equal(t, "Sük…", truncate("Sükûtun", 4))
}
