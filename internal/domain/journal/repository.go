package journal

import (
	"context"
	"time"

	"babyjournal/internal/domain/access"
	"babyjournal/internal/domain/user"
	"babyjournal/internal/infrastructure/media"
)

type Repository interface {
	Create(ctx context.Context, j Journal) error
	// Get возвращает ErrNotFound, если журнала нет
	Get(ctx context.Context, id string) (Journal, error)
	Update(ctx context.Context, j Journal) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	// ListForUser - свои и расшаренные журналы, новые первыми
	ListForUser(ctx context.Context, userID int64) ([]View, error)
}

type ShareRepository interface {
	// Upsert перезаписывает роль, если доступ уже выдан
	Upsert(ctx context.Context, journalID string, userID int64, role access.Role, at time.Time) error
	List(ctx context.Context, journalID string) ([]Share, error)
	Delete(ctx context.Context, journalID string, userID int64) (int64, error)
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (user.User, error)
}

// Sessions - отметка активного журнала в сессии
type Sessions interface {
	SetActiveJournal(ctx context.Context, sessionID, journalID string) error
	ActiveJournal(ctx context.Context, sessionID string) (string, bool, error)
	ClearActiveJournal(ctx context.Context, journalID string) error
}

type Files interface {
	StashJournal(journalID string) (*media.Stash, error)
}

type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
