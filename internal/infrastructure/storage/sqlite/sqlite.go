package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"babyjournal/internal/infrastructure/storage"

	// Blank import required for SQLite driver registration
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

const pragmas = "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"

// Open открывает файл базы (создавая каталог при необходимости).
// Каскадное удаление требует foreign_keys=on на каждом соединении,
// поэтому pragma передается через DSN.
func Open(ctx context.Context, path string, log *slog.Logger) (*storage.Gateway, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?"+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// один писатель, иначе SQLITE_BUSY под нагрузкой
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return storage.New(db, storage.SQLite, log), nil
}
