package sqlstore

import (
	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/backup"
	"babyjournal/internal/domain/event"
	"babyjournal/internal/domain/journal"
	"babyjournal/internal/domain/memory"
	"babyjournal/internal/domain/session"
	"babyjournal/internal/domain/settings"
	"babyjournal/internal/domain/user"
)

var (
	_ user.Repository         = (*UserRepository)(nil)
	_ journal.UserFinder      = (*UserRepository)(nil)
	_ settings.UserGetter     = (*UserRepository)(nil)
	_ session.Repository      = (*SessionRepository)(nil)
	_ access.Repository       = (*JournalRepository)(nil)
	_ journal.Repository      = (*JournalRepository)(nil)
	_ journal.ShareRepository = (*ShareRepository)(nil)
	_ event.Repository        = (*EventRepository)(nil)
	_ memory.Repository       = (*MemoryRepository)(nil)
	_ settings.Repository     = (*SettingsRepository)(nil)
	_ backup.Source           = (*BackupSource)(nil)
)
