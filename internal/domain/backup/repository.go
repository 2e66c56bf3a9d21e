package backup

import (
	"context"
	"io"

	"babyjournal/internal/domain/event"
	"babyjournal/internal/domain/journal"
	"babyjournal/internal/domain/memory"
)

// Source отдает все строки журнала без пагинации
type Source interface {
	Journal(ctx context.Context, journalID string) (journal.Journal, error)
	Events(ctx context.Context, journalID string) ([]event.Event, error)
	Memories(ctx context.Context, journalID string) ([]memory.Memory, error)
	Shares(ctx context.Context, journalID string) ([]journal.Share, error)
}

// Mirror - внешнее хранилище для копий архивов
type Mirror interface {
	Put(ctx context.Context, key string, body io.Reader) error
}

// Transactor - снимок читается в одной транзакции
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
