package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Session) error
	// Find возвращает ErrNotFound для отсутствующей или истекшей сессии
	Find(ctx context.Context, tokenHash string, now time.Time) (Session, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	SetActiveJournal(ctx context.Context, tokenHash string, journalID *string) error
	// ClearActiveJournal сбрасывает активный журнал во всех сессиях, где он выбран
	ClearActiveJournal(ctx context.Context, journalID string) (int64, error)
}
