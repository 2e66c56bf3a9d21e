package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"babyjournal/internal/infrastructure/storage"

	// pgx как драйвер database/sql
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/exp/slog"
)

// Open подключается к postgres и возвращает шлюз с плейсхолдерами $N
func Open(ctx context.Context, uri string, log *slog.Logger) (*storage.Gateway, error) {
	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return storage.New(db, storage.Postgres, log), nil
}
