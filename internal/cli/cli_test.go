package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/sozluk/internal/dataset"
	"github.com/example/sozluk/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "sqlite3://"+filepath.Join(t.TempDir(), "sozluk.db"))
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestSeedAndDaily(t *testing.T) {
	setupEnv(t)

	out := run(t, "seed")
	assert.Contains(t, out, "Created:   8")

	out = run(t, "seed")
	assert.Contains(t, out, "Created:   0")

	expected, ok := lexicon.SelectDailyWord(dataset.Words(), time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	out = run(t, "daily", "--date", "2025-01-03")
	assert.Contains(t, out, expected.Word)

	out = run(t, "daily", "--notify")
	assert.NotEmpty(t, out)
}

func TestImportCommand(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte("word,meaning,book\nMüphem,Belirsiz,Huzur\n,eksik,\n"), 0o644))

	out := run(t, "import", path)
	assert.Contains(t, out, "Created:   1")
	assert.Contains(t, out, "Row 3")
}

func TestDailyRejectsBadDate(t *testing.T) {
	setupEnv(t)
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"daily", "--date", "yarın"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
