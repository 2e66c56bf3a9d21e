package sqlstore

import (
	"context"

	"babyjournal/internal/domain/event"
	"babyjournal/internal/domain/journal"
	"babyjournal/internal/domain/memory"
	"babyjournal/internal/infrastructure/storage"

	"golang.org/x/exp/slog"
)

// BackupSource собирает строки журнала для архива из отдельных репозиториев
type BackupSource struct {
	journals *JournalRepository
	shares   *ShareRepository
	events   *EventRepository
	memories *MemoryRepository
}

func NewBackupSource(gw *storage.Gateway, log *slog.Logger) *BackupSource {
	return &BackupSource{
		journals: NewJournalRepository(gw, log),
		shares:   NewShareRepository(gw, log),
		events:   NewEventRepository(gw, log),
		memories: NewMemoryRepository(gw, log),
	}
}

func (s *BackupSource) Journal(ctx context.Context, journalID string) (journal.Journal, error) {
	return s.journals.Get(ctx, journalID)
}

func (s *BackupSource) Events(ctx context.Context, journalID string) ([]event.Event, error) {
	return s.events.All(ctx, journalID)
}

func (s *BackupSource) Memories(ctx context.Context, journalID string) ([]memory.Memory, error) {
	return s.memories.All(ctx, journalID)
}

func (s *BackupSource) Shares(ctx context.Context, journalID string) ([]journal.Share, error) {
	return s.shares.List(ctx, journalID)
}
