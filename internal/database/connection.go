package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/sozluk/pkg/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite3"
)

var channelBindingParam = regexp.MustCompile(`[?&]channel_binding=[^&]*`)

// SanitizeURL drops connection parameters the drivers do not understand.
// Neon hands out URLs with channel_binding=require, which lib/pq rejects.
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return channelBindingParam.ReplaceAllString(raw, "")
	}
	q := u.Query()
	if !q.Has("channel_binding") {
		return raw
	}
	q.Del("channel_binding")
	u.RawQuery = q.Encode()
	return u.String()
}

// ParseURL maps a database URL to a driver name and its DSN.
// postgres:// and postgresql:// go to lib/pq; sqlite3://<path>, sqlite://<path>
// and file: URLs go to go-sqlite3.
func ParseURL(raw string) (driverName, dsn string, err error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return driverPostgres, SanitizeURL(raw), nil
	case strings.HasPrefix(raw, "sqlite3://"):
		return driverSQLite, strings.TrimPrefix(raw, "sqlite3://"), nil
	case strings.HasPrefix(raw, "sqlite://"):
		return driverSQLite, strings.TrimPrefix(raw, "sqlite://"), nil
	case strings.HasPrefix(raw, "file:"):
		return driverSQLite, raw, nil
	}
	return "", "", fmt.Errorf("unsupported database url %q", raw)
}

// Open connects to the database behind rawURL and bootstraps the schema.
func Open(ctx context.Context, rawURL string) (*sqlx.DB, error) {
	driverName, dsn, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	if driverName == driverSQLite {
		if dir := sqliteDir(dsn); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w: %w", models.ErrStorageUnavailable, err)
	}

	if driverName == driverSQLite {
		// SQLite doesn't support multiple writers, and :memory: is per connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logrus.WithField("driver", driverName).Info("Database connection established")
	return db, nil
}

func sqliteDir(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}

func isPostgres(db *sqlx.DB) bool {
	return db.DriverName() == driverPostgres
}

// InitSchema creates the tables if they don't exist and adds columns that
// older deployments are missing. view_count is left to RecordView.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if isPostgres(db) {
		idColumn = "id SERIAL PRIMARY KEY"
	}

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS words (
			`+idColumn+`,
			word TEXT NOT NULL,
			meaning TEXT NOT NULL,
			source TEXT,
			example TEXT,
			category TEXT,
			is_word_of_day BOOLEAN DEFAULT FALSE,
			view_count INTEGER DEFAULT 0,
			relations TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return wrapErr("failed to create words table", err)
	}

	for column, definition := range map[string]string{
		"is_word_of_day": "BOOLEAN DEFAULT FALSE",
		"relations":      "TEXT",
	} {
		if err := ensureColumn(ctx, db, "words", column, definition); err != nil {
			return err
		}
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			store_key TEXT PRIMARY KEY,
			store_value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return wrapErr("failed to create kv_store table", err)
	}

	return nil
}

func hasColumn(ctx context.Context, db *sqlx.DB, table, column string) (bool, error) {
	query := `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`
	if isPostgres(db) {
		query = `SELECT COUNT(*) FROM information_schema.columns WHERE table_name = ? AND column_name = ?`
	}
	var n int
	if err := db.GetContext(ctx, &n, db.Rebind(query), table, column); err != nil {
		return false, wrapErr("failed to inspect columns", err)
	}
	return n > 0, nil
}

func ensureColumn(ctx context.Context, db *sqlx.DB, table, column, definition string) error {
	ok, err := hasColumn(ctx, db, table, column)
	if err != nil || ok {
		return err
	}
	if _, err := db.ExecContext(ctx, addColumnSQL(db, table, column, definition)); err != nil {
		return wrapErr(fmt.Sprintf("failed to add %s.%s", table, column), err)
	}
	logrus.WithFields(logrus.Fields{"table": table, "column": column}).Info("Added missing column")
	return nil
}

func addColumnSQL(db *sqlx.DB, table, column, definition string) string {
	if isPostgres(db) {
		return fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", table, column, definition)
	}
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)
}

// isUnavailable reports errors that mean the store itself cannot be reached.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, models.ErrStorageUnavailable) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"database is closed", "connection refused", "no such host", "unable to open database file", "bad connection"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// wrapErr adds context and tags connectivity failures with ErrStorageUnavailable.
func wrapErr(msg string, err error) error {
	if isUnavailable(err) && !errors.Is(err, models.ErrStorageUnavailable) {
		return fmt.Errorf("%s: %w: %w", msg, models.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
